package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/locallibrary/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig holds everything the router wires into handlers.
type RouterConfig struct {
	DB    Catalog
	Views Renderer
	// Covers may be nil; cover upload and download are then disabled.
	Covers         CoverStore
	MaxUploadBytes int64
	Log            *zap.Logger
	// Registry receives the HTTP metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	errs := &ErrorHandler{Views: cfg.Views, Log: cfg.Log}
	wrap := errs.Wrap

	index := &IndexHandler{DB: cfg.DB, Views: cfg.Views, Log: cfg.Log}
	authors := &AuthorsHandler{DB: cfg.DB, Views: cfg.Views}
	genres := &GenresHandler{DB: cfg.DB, Views: cfg.Views}
	books := &BooksHandler{DB: cfg.DB, Views: cfg.Views, Covers: cfg.Covers, MaxUploadBytes: cfg.MaxUploadBytes, Log: cfg.Log}
	instances := &BookInstancesHandler{DB: cfg.DB, Views: cfg.Views}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.NewMetrics(cfg.Registry).Handler)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errs.Handle(w, r, notFound("Page"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})
	r.Get("/health", health(cfg.DB))
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", wrap(index.Index))

		r.Get("/authors", wrap(authors.List))
		r.Get("/author/create", wrap(authors.CreateForm))
		r.Post("/author/create", wrap(authors.Create))
		r.Get("/author/{id}", wrap(authors.Detail))
		r.Get("/author/{id}/delete", wrap(authors.DeleteForm))
		r.Post("/author/{id}/delete", wrap(authors.Delete))
		r.Get("/author/{id}/update", wrap(authors.UpdateForm))
		r.Post("/author/{id}/update", wrap(authors.Update))

		r.Get("/genres", wrap(genres.List))
		r.Get("/genre/create", wrap(genres.CreateForm))
		r.Post("/genre/create", wrap(genres.Create))
		r.Get("/genre/{id}", wrap(genres.Detail))
		r.Get("/genre/{id}/delete", wrap(genres.DeleteForm))
		r.Post("/genre/{id}/delete", wrap(genres.Delete))
		r.Get("/genre/{id}/update", wrap(genres.UpdateForm))
		r.Post("/genre/{id}/update", wrap(genres.Update))

		r.Get("/books", wrap(books.List))
		r.Get("/book/create", wrap(books.CreateForm))
		r.Post("/book/create", wrap(books.Create))
		r.Get("/book/{id}", wrap(books.Detail))
		r.Get("/book/{id}/cover", wrap(books.Cover))
		r.Get("/book/{id}/delete", wrap(books.DeleteForm))
		r.Post("/book/{id}/delete", wrap(books.Delete))
		r.Get("/book/{id}/update", wrap(books.UpdateForm))
		r.Post("/book/{id}/update", wrap(books.Update))

		r.Get("/bookinstances", wrap(instances.List))
		r.Get("/bookinstance/create", wrap(instances.CreateForm))
		r.Post("/bookinstance/create", wrap(instances.Create))
		r.Get("/bookinstance/{id}", wrap(instances.Detail))
		r.Get("/bookinstance/{id}/delete", wrap(instances.DeleteForm))
		r.Post("/bookinstance/{id}/delete", wrap(instances.Delete))
		r.Get("/bookinstance/{id}/update", wrap(instances.UpdateForm))
		r.Post("/bookinstance/{id}/update", wrap(instances.Update))
	})
	return r
}

func health(db Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		status, body := http.StatusOK, map[string]string{"status": "ok"}
		if err := db.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}
