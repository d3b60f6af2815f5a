package handlers

import (
	"context"
	"net/http"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/views"
	"go.uber.org/zap"
)

type IndexHandler struct {
	DB    Catalog
	Views Renderer
	Log   *zap.Logger
}

// Index shows record counts. A storage failure is reported on the page
// itself rather than through the error page.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) error {
	page := views.Index{Title: "Local Library Home"}
	count := func(dst *int64, fn func(context.Context) (int64, error)) func(context.Context) error {
		return func(ctx context.Context) error {
			n, err := fn(ctx)
			*dst = n
			return err
		}
	}
	err := fetch(r.Context(),
		count(&page.BookCount, h.DB.CountBooks),
		count(&page.InstanceCount, func(ctx context.Context) (int64, error) {
			return h.DB.CountBookInstances(ctx, "")
		}),
		count(&page.AvailableCount, func(ctx context.Context) (int64, error) {
			return h.DB.CountBookInstances(ctx, models.StatusAvailable)
		}),
		count(&page.AuthorCount, h.DB.CountAuthors),
		count(&page.GenreCount, h.DB.CountGenres),
	)
	if err != nil {
		h.Log.Error("load catalog counts", zap.Error(err))
		page = views.Index{Title: page.Title, Error: "could not load catalog counts"}
	}
	return h.Views.Render(w, http.StatusOK, views.IndexView, page)
}
