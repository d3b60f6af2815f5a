package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/validation"
	"github.com/kevinaaaquil/locallibrary/views"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const bookListURL = "/catalog/books"

type BooksHandler struct {
	DB    Catalog
	Views Renderer
	// Covers is nil when cover images are disabled.
	Covers         CoverStore
	MaxUploadBytes int64
	Log            *zap.Logger
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) error {
	var (
		books   []models.Book
		authors []models.Author
	)
	err := fetch(r.Context(),
		func(ctx context.Context) (err error) {
			books, err = h.DB.AllBooks(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			authors, err = h.DB.AllAuthors(ctx)
			return err
		},
	)
	if err != nil {
		return err
	}
	attachAuthors(books, authors)
	return h.Views.Render(w, http.StatusOK, views.BookListView, views.BookList{Title: "Book List", Books: books})
}

// withInstances loads a book, resolved, and its copies.
func (h *BooksHandler) withInstances(ctx context.Context, id primitive.ObjectID) (*models.Book, []models.BookInstance, error) {
	var (
		book      *models.Book
		instances []models.BookInstance
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			book, err = h.DB.BookByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			instances, err = h.DB.InstancesByBook(ctx, id)
			return err
		},
	)
	if err != nil {
		return nil, nil, err
	}
	if err := resolveBook(ctx, h.DB, book); err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

func (h *BooksHandler) Detail(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book")
	}
	book, instances, err := h.withInstances(r.Context(), id)
	if isNotFound(err) {
		return notFound("Book")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.BookDetailView, views.BookDetail{Title: "Book Detail", Book: *book, Instances: instances})
}

// renderForm loads the author and genre choices and shows the book form.
func (h *BooksHandler) renderForm(ctx context.Context, w http.ResponseWriter, title string, book models.Book, errs validation.Errors, update bool) error {
	var (
		authors []models.Author
		genres  []models.Genre
	)
	err := fetch(ctx,
		func(ctx context.Context) (err error) {
			authors, err = h.DB.AllAuthors(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			genres, err = h.DB.AllGenres(ctx)
			return err
		},
	)
	if err != nil {
		return err
	}

	options := make([]views.GenreOption, len(genres))
	for i, g := range genres {
		options[i] = views.GenreOption{Genre: g, Checked: book.HasGenre(g.ID)}
	}
	return h.Views.Render(w, http.StatusOK, views.BookFormView, views.BookForm{
		Title:         title,
		Book:          book,
		Authors:       authors,
		Genres:        options,
		Errors:        errs,
		Update:        update,
		CoversEnabled: h.Covers != nil,
	})
}

func (h *BooksHandler) CreateForm(w http.ResponseWriter, r *http.Request) error {
	return h.renderForm(r.Context(), w, "Create Book", models.Book{}, nil, false)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) error {
	h.limitBody(w, r)
	if err := parseForm(r); err != nil {
		return err
	}
	res := bookForm.Validate(r.PostForm)
	cover := h.coverFile(r, res)
	book := bookFromForm(res)
	if !res.Valid() {
		return h.renderForm(r.Context(), w, "Create Book", book, res.Errors, false)
	}

	if cover != nil {
		key, err := h.uploadCover(r.Context(), cover)
		if err != nil {
			return err
		}
		book.CoverKey = key
	}
	id, err := h.DB.InsertBook(r.Context(), &book)
	if err != nil {
		h.dropCover(r.Context(), book.CoverKey)
		return err
	}
	book.ID = id
	return redirect(w, r, book.URL())
}

func (h *BooksHandler) DeleteForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return redirect(w, r, bookListURL)
	}
	book, instances, err := h.withInstances(r.Context(), id)
	if isNotFound(err) {
		return redirect(w, r, bookListURL)
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.BookDeleteView, views.BookDelete{Title: "Delete Book", Book: *book, Instances: instances})
}

// Delete removes a book with no remaining copies, together with its cover.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return redirect(w, r, bookListURL)
	}
	book, instances, err := h.withInstances(r.Context(), id)
	if isNotFound(err) {
		return redirect(w, r, bookListURL)
	}
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		return h.Views.Render(w, http.StatusOK, views.BookDeleteView, views.BookDelete{Title: "Delete Book", Book: *book, Instances: instances})
	}

	if err := h.DB.DeleteBook(r.Context(), id); err != nil && !isNotFound(err) {
		return err
	}
	h.dropCover(r.Context(), book.CoverKey)
	return redirect(w, r, bookListURL)
}

func (h *BooksHandler) UpdateForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book")
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Book")
	}
	if err != nil {
		return err
	}
	return h.renderForm(r.Context(), w, "Update Book", *book, nil, true)
}

// Update replaces every field of the book. The stored cover is kept unless a
// new one is uploaded.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book")
	}
	existing, err := h.DB.BookByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Book")
	}
	if err != nil {
		return err
	}

	h.limitBody(w, r)
	if err := parseForm(r); err != nil {
		return err
	}
	res := bookForm.Validate(r.PostForm)
	cover := h.coverFile(r, res)
	book := bookFromForm(res)
	book.ID = id
	book.CoverKey = existing.CoverKey
	if !res.Valid() {
		return h.renderForm(r.Context(), w, "Update Book", book, res.Errors, true)
	}

	if cover != nil {
		key, err := h.uploadCover(r.Context(), cover)
		if err != nil {
			return err
		}
		book.CoverKey = key
	}
	err = h.DB.ReplaceBook(r.Context(), id, &book)
	if err != nil {
		if book.CoverKey != existing.CoverKey {
			h.dropCover(r.Context(), book.CoverKey)
		}
		if isNotFound(err) {
			return notFound("Book")
		}
		return err
	}
	if book.CoverKey != existing.CoverKey {
		h.dropCover(r.Context(), existing.CoverKey)
	}
	return redirect(w, r, book.URL())
}

// Cover streams the book's cover image.
func (h *BooksHandler) Cover(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book")
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Book")
	}
	if err != nil {
		return err
	}
	if book.CoverKey == "" || h.Covers == nil {
		return notFound("Cover")
	}

	body, contentType, err := h.Covers.GetObject(r.Context(), book.CoverKey)
	if err != nil {
		return err
	}
	defer body.Close()
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		h.Log.Warn("stream cover", zap.String("key", book.CoverKey), zap.Error(err))
	}
	return nil
}

func (h *BooksHandler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
}

// coverFile returns the submitted cover image, if any. A file that is not an
// image is recorded as a validation failure on "cover".
func (h *BooksHandler) coverFile(r *http.Request, res *validation.Result) *multipart.FileHeader {
	if h.Covers == nil || r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["cover"]
	if len(files) == 0 || files[0].Size == 0 {
		return nil
	}
	if !strings.HasPrefix(files[0].Header.Get("Content-Type"), "image/") {
		res.AddError("cover", "Cover must be an image")
		return nil
	}
	return files[0]
}

func (h *BooksHandler) uploadCover(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.Covers.Upload(ctx, fh.Filename, f, fh.Header.Get("Content-Type"))
}

// dropCover removes an object that is no longer referenced. Failures only
// leave an orphan behind, so they are logged and not returned.
func (h *BooksHandler) dropCover(ctx context.Context, key string) {
	if key == "" || h.Covers == nil {
		return
	}
	if err := h.Covers.Delete(ctx, key); err != nil {
		h.Log.Warn("delete cover", zap.String("key", key), zap.Error(err))
	}
}
