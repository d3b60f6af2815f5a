// Package handlers serves the catalog's HTML pages and form submissions.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog is the record store behind every handler. store.DB and
// memstore.Store both satisfy it. Lookups by id return store.ErrNotFound
// when nothing matches.
type Catalog interface {
	AllAuthors(ctx context.Context) ([]models.Author, error)
	AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
	InsertAuthor(ctx context.Context, author *models.Author) (primitive.ObjectID, error)
	ReplaceAuthor(ctx context.Context, id primitive.ObjectID, author *models.Author) error
	DeleteAuthor(ctx context.Context, id primitive.ObjectID) error
	CountAuthors(ctx context.Context) (int64, error)

	AllGenres(ctx context.Context) ([]models.Genre, error)
	GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
	GenresByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Genre, error)
	GenreByName(ctx context.Context, name string) (*models.Genre, error)
	InsertGenre(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error)
	ReplaceGenre(ctx context.Context, id primitive.ObjectID, genre *models.Genre) error
	DeleteGenre(ctx context.Context, id primitive.ObjectID) error
	CountGenres(ctx context.Context) (int64, error)

	AllBooks(ctx context.Context) ([]models.Book, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	BooksByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Book, error)
	BooksByGenre(ctx context.Context, genreID primitive.ObjectID) ([]models.Book, error)
	InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	ReplaceBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error
	DeleteBook(ctx context.Context, id primitive.ObjectID) error
	CountBooks(ctx context.Context) (int64, error)

	AllBookInstances(ctx context.Context) ([]models.BookInstance, error)
	BookInstanceByID(ctx context.Context, id primitive.ObjectID) (*models.BookInstance, error)
	InstancesByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error)
	InsertBookInstance(ctx context.Context, bi *models.BookInstance) (primitive.ObjectID, error)
	ReplaceBookInstance(ctx context.Context, id primitive.ObjectID, bi *models.BookInstance) error
	DeleteBookInstance(ctx context.Context, id primitive.ObjectID) error
	// CountBookInstances counts every copy when status is empty.
	CountBookInstances(ctx context.Context, status string) (int64, error)

	Ping(ctx context.Context) error
}

// Renderer writes a named view with its page data. views.Renderer is the
// production implementation.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// CoverStore keeps Book cover images. service.S3Service implements it.
type CoverStore interface {
	Upload(ctx context.Context, originalFilename string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, string, error)
}
