package handlers

import (
	"context"
	"net/http"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/views"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const authorListURL = "/catalog/authors"

type AuthorsHandler struct {
	DB    Catalog
	Views Renderer
}

func (h *AuthorsHandler) List(w http.ResponseWriter, r *http.Request) error {
	authors, err := h.DB.AllAuthors(r.Context())
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.AuthorListView, views.AuthorList{Title: "Author List", Authors: authors})
}

// withBooks loads an author and the books written by them concurrently.
func (h *AuthorsHandler) withBooks(ctx context.Context, id primitive.ObjectID) (*models.Author, []models.Book, error) {
	var (
		author *models.Author
		books  []models.Book
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			author, err = h.DB.AuthorByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = h.DB.BooksByAuthor(ctx, id)
			return err
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

func (h *AuthorsHandler) Detail(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Author")
	}
	author, books, err := h.withBooks(r.Context(), id)
	if isNotFound(err) {
		return notFound("Author")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.AuthorDetailView, views.AuthorDetail{Title: "Author Detail", Author: *author, Books: books})
}

func (h *AuthorsHandler) CreateForm(w http.ResponseWriter, r *http.Request) error {
	return h.Views.Render(w, http.StatusOK, views.AuthorFormView, views.AuthorForm{Title: "Create Author"})
}

func (h *AuthorsHandler) Create(w http.ResponseWriter, r *http.Request) error {
	if err := parseForm(r); err != nil {
		return err
	}
	res := authorForm.Validate(r.PostForm)
	author := authorFromForm(res)
	if !res.Valid() {
		return h.Views.Render(w, http.StatusOK, views.AuthorFormView, views.AuthorForm{Title: "Create Author", Author: author, Errors: res.Errors})
	}

	id, err := h.DB.InsertAuthor(r.Context(), &author)
	if err != nil {
		return err
	}
	author.ID = id
	return redirect(w, r, author.URL())
}

// DeleteForm asks for confirmation, or lists the books that block deletion.
func (h *AuthorsHandler) DeleteForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return redirect(w, r, authorListURL)
	}
	author, books, err := h.withBooks(r.Context(), id)
	if isNotFound(err) {
		return redirect(w, r, authorListURL)
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.AuthorDeleteView, views.AuthorDelete{Title: "Delete Author", Author: *author, Books: books})
}

// Delete removes the author unless books still reference them, in which case
// the confirmation page is shown again with those books.
func (h *AuthorsHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return redirect(w, r, authorListURL)
	}
	author, books, err := h.withBooks(r.Context(), id)
	if isNotFound(err) {
		return redirect(w, r, authorListURL)
	}
	if err != nil {
		return err
	}
	if len(books) > 0 {
		return h.Views.Render(w, http.StatusOK, views.AuthorDeleteView, views.AuthorDelete{Title: "Delete Author", Author: *author, Books: books})
	}

	if err := h.DB.DeleteAuthor(r.Context(), id); err != nil && !isNotFound(err) {
		return err
	}
	return redirect(w, r, authorListURL)
}

func (h *AuthorsHandler) UpdateForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Author")
	}
	author, err := h.DB.AuthorByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Author")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.AuthorFormView, views.AuthorForm{Title: "Update Author", Author: *author, Update: true})
}

func (h *AuthorsHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Author")
	}
	if err := parseForm(r); err != nil {
		return err
	}
	res := authorForm.Validate(r.PostForm)
	author := authorFromForm(res)
	author.ID = id
	if !res.Valid() {
		return h.Views.Render(w, http.StatusOK, views.AuthorFormView, views.AuthorForm{Title: "Update Author", Author: author, Errors: res.Errors, Update: true})
	}

	err = h.DB.ReplaceAuthor(r.Context(), id, &author)
	if isNotFound(err) {
		return notFound("Author")
	}
	if err != nil {
		return err
	}
	return redirect(w, r, author.URL())
}
