package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleData() map[string]any {
	born := time.Date(1920, 1, 2, 0, 0, 0, 0, time.UTC)
	due := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	author := models.Author{ID: primitive.NewObjectID(), FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &born}
	genre := models.Genre{ID: primitive.NewObjectID(), Name: "Science Fiction"}
	book := models.Book{
		ID: primitive.NewObjectID(), Title: "Foundation", Summary: "Psychohistory.", ISBN: "9780553293357",
		CoverKey: "covers/foundation.jpg", AuthorID: author.ID, GenreIDs: []primitive.ObjectID{genre.ID}, Author: &author, Genres: []models.Genre{genre},
	}
	instance := models.BookInstance{ID: primitive.NewObjectID(), BookID: book.ID, Imprint: "Bantam, 1991", Status: models.StatusLoaned, DueBack: &due, Book: &book}
	errs := validation.Errors{{Field: "title", Message: "Title cannot be empty"}}

	return map[string]any{
		IndexView:          Index{Title: "Home", BookCount: 1, AuthorCount: 1},
		ErrorView:          ErrorPage{Title: "Error", Status: 404, Message: "Book not found"},
		AuthorListView:     AuthorList{Title: "Authors", Authors: []models.Author{author}},
		AuthorDetailView:   AuthorDetail{Title: "Author", Author: author, Books: []models.Book{book}},
		AuthorFormView:     AuthorForm{Title: "Create Author", Author: author, Errors: errs},
		AuthorDeleteView:   AuthorDelete{Title: "Delete Author", Author: author, Books: []models.Book{book}},
		GenreListView:      GenreList{Title: "Genres", Genres: []models.Genre{genre}},
		GenreDetailView:    GenreDetail{Title: "Genre", Genre: genre, Books: []models.Book{book}},
		GenreFormView:      GenreForm{Title: "Create Genre", Genre: genre},
		GenreDeleteView:    GenreDelete{Title: "Delete Genre", Genre: genre},
		BookListView:       BookList{Title: "Books", Books: []models.Book{book}},
		BookDetailView:     BookDetail{Title: "Book", Book: book, Instances: []models.BookInstance{instance}},
		BookFormView:       BookForm{Title: "Create Book", Book: book, Authors: []models.Author{author}, Genres: []GenreOption{{Genre: genre, Checked: true}}, Errors: errs, CoversEnabled: true},
		BookDeleteView:     BookDelete{Title: "Delete Book", Book: book, Instances: []models.BookInstance{instance}},
		InstanceListView:   InstanceList{Title: "Copies", Instances: []models.BookInstance{instance}},
		InstanceDetailView: InstanceDetail{Title: "Copy", Instance: instance},
		InstanceFormView:   InstanceForm{Title: "Create Copy", Instance: instance, Books: []models.Book{book}, Statuses: models.Statuses},
		InstanceDeleteView: InstanceDelete{Title: "Delete Copy", Instance: instance},
	}
}

func TestRenderEveryView(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	data := sampleData()
	require.Len(t, data, len(pageNames))
	for _, name := range pageNames {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Render(rec, http.StatusOK, name, data[name]))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "<title>")
		})
	}
}

func TestRenderContent(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	data := sampleData()

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, BookDetailView, data[BookDetailView]))
	body := rec.Body.String()
	assert.Contains(t, body, "Asimov, Isaac")
	assert.Contains(t, body, "Science Fiction")
	assert.Contains(t, body, "January 15th, 2020")
	assert.Contains(t, body, "/cover")

	rec = httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, BookFormView, data[BookFormView]))
	body = rec.Body.String()
	assert.Contains(t, body, "Title cannot be empty")
	assert.Contains(t, body, " selected")
	assert.Contains(t, body, " checked")
	assert.Contains(t, body, `enctype="multipart/form-data"`)

	rec = httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, InstanceFormView, data[InstanceFormView]))
	assert.Contains(t, rec.Body.String(), `value="2020-01-15"`)
}

func TestRenderDoesNotDoubleEscapeStoredValues(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	// Stored values are already escaped by the form pipeline.
	author := models.Author{ID: primitive.NewObjectID(), FirstName: "Flann", FamilyName: "O&#39;Brien"}
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, AuthorListView, AuthorList{Title: "Authors", Authors: []models.Author{author}}))

	body := rec.Body.String()
	assert.Contains(t, body, "O&#39;Brien, Flann")
	assert.NotContains(t, body, "&amp;#39;")
}

func TestRenderStatusAndUnknownView(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusNotFound, ErrorView, ErrorPage{Title: "Error", Status: 404, Message: "Genre not found"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Genre not found")

	assert.Error(t, r.Render(httptest.NewRecorder(), http.StatusOK, "missing", nil))
}

func TestIndexShowsInlineError(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, IndexView, Index{Title: "Home", Error: "could not load catalog counts"}))
	assert.Contains(t, rec.Body.String(), "could not load catalog counts")
	assert.NotContains(t, rec.Body.String(), "Copies available")
}
