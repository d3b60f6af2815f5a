package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/store"
	"github.com/kevinaaaquil/locallibrary/validation"
	"github.com/kevinaaaquil/locallibrary/views"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	genreListURL      = "/catalog/genres"
	genreTakenMessage = "A genre with this name already exists"
)

type GenresHandler struct {
	DB    Catalog
	Views Renderer
}

func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) error {
	genres, err := h.DB.AllGenres(r.Context())
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.GenreListView, views.GenreList{Title: "Genre List", Genres: genres})
}

func (h *GenresHandler) withBooks(ctx context.Context, id primitive.ObjectID) (*models.Genre, []models.Book, error) {
	var (
		genre *models.Genre
		books []models.Book
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			genre, err = h.DB.GenreByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = h.DB.BooksByGenre(ctx, id)
			return err
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

// loadWithBooks is withBooks with a missing genre reported as a 404.
func (h *GenresHandler) loadWithBooks(r *http.Request) (*models.Genre, []models.Book, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, nil, notFound("Genre")
	}
	genre, books, err := h.withBooks(r.Context(), id)
	if isNotFound(err) {
		return nil, nil, notFound("Genre")
	}
	return genre, books, err
}

func (h *GenresHandler) Detail(w http.ResponseWriter, r *http.Request) error {
	genre, books, err := h.loadWithBooks(r)
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.GenreDetailView, views.GenreDetail{Title: "Genre Detail", Genre: *genre, Books: books})
}

func (h *GenresHandler) CreateForm(w http.ResponseWriter, r *http.Request) error {
	return h.Views.Render(w, http.StatusOK, views.GenreFormView, views.GenreForm{Title: "Create Genre"})
}

// Create inserts a genre, or redirects to the one that already has the
// submitted name.
func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) error {
	if err := parseForm(r); err != nil {
		return err
	}
	res := genreForm.Validate(r.PostForm)
	genre := genreFromForm(res)
	if !res.Valid() {
		return h.renderForm(w, "Create Genre", genre, res, false)
	}

	existing, err := h.DB.GenreByName(r.Context(), genre.Name)
	switch {
	case err == nil:
		return redirect(w, r, existing.URL())
	case !isNotFound(err):
		return err
	}

	id, err := h.DB.InsertGenre(r.Context(), &genre)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent create of the same name.
		existing, err := h.DB.GenreByName(r.Context(), genre.Name)
		if err != nil {
			return err
		}
		return redirect(w, r, existing.URL())
	}
	if err != nil {
		return err
	}
	genre.ID = id
	return redirect(w, r, genre.URL())
}

func (h *GenresHandler) DeleteForm(w http.ResponseWriter, r *http.Request) error {
	genre, books, err := h.loadWithBooks(r)
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.GenreDeleteView, views.GenreDelete{Title: "Delete Genre", Genre: *genre, Books: books})
}

func (h *GenresHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	genre, books, err := h.loadWithBooks(r)
	if err != nil {
		return err
	}
	if len(books) > 0 {
		return h.Views.Render(w, http.StatusOK, views.GenreDeleteView, views.GenreDelete{Title: "Delete Genre", Genre: *genre, Books: books})
	}

	err = h.DB.DeleteGenre(r.Context(), genre.ID)
	if isNotFound(err) {
		return notFound("Genre")
	}
	if err != nil {
		return err
	}
	return redirect(w, r, genreListURL)
}

func (h *GenresHandler) UpdateForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Genre")
	}
	genre, err := h.DB.GenreByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Genre")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.GenreFormView, views.GenreForm{Title: "Update Genre", Genre: *genre, Update: true})
}

// Update renames a genre. Taking a name another genre already has is a
// validation failure rather than a merge.
func (h *GenresHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Genre")
	}
	if err := parseForm(r); err != nil {
		return err
	}
	res := genreForm.Validate(r.PostForm)
	genre := genreFromForm(res)
	genre.ID = id
	if !res.Valid() {
		return h.renderForm(w, "Update Genre", genre, res, true)
	}

	existing, err := h.DB.GenreByName(r.Context(), genre.Name)
	if err != nil && !isNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != id {
		res.AddError("name", genreTakenMessage)
		return h.renderForm(w, "Update Genre", genre, res, true)
	}

	err = h.DB.ReplaceGenre(r.Context(), id, &genre)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		res.AddError("name", genreTakenMessage)
		return h.renderForm(w, "Update Genre", genre, res, true)
	case isNotFound(err):
		return notFound("Genre")
	case err != nil:
		return err
	}
	return redirect(w, r, genre.URL())
}

func (h *GenresHandler) renderForm(w http.ResponseWriter, title string, genre models.Genre, res *validation.Result, update bool) error {
	return h.Views.Render(w, http.StatusOK, views.GenreFormView, views.GenreForm{Title: title, Genre: genre, Errors: res.Errors, Update: update})
}
