package handlers

import (
	"context"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// fetch runs independent lookups concurrently and waits for all of them.
// The first failure cancels the others and is returned; callers must not use
// any partial results in that case.
func fetch(ctx context.Context, lookups ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, lookup := range lookups {
		lookup := lookup
		g.Go(func() error { return lookup(ctx) })
	}
	return g.Wait()
}

// resolveBook fills in the Author and Genres a Book references. A dangling
// author reference leaves Author nil rather than failing the page.
func resolveBook(ctx context.Context, db Catalog, book *models.Book) error {
	var (
		author *models.Author
		genres []models.Genre
	)
	err := fetch(ctx,
		func(ctx context.Context) error {
			a, err := db.AuthorByID(ctx, book.AuthorID)
			if isNotFound(err) {
				return nil
			}
			author = a
			return err
		},
		func(ctx context.Context) (err error) {
			genres, err = db.GenresByIDs(ctx, book.GenreIDs)
			return err
		},
	)
	if err != nil {
		return err
	}
	book.Author, book.Genres = author, genres
	return nil
}

// attachAuthors sets each Book's Author from the given author list.
func attachAuthors(books []models.Book, authors []models.Author) {
	byID := make(map[primitive.ObjectID]*models.Author, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}
	for i := range books {
		books[i].Author = byID[books[i].AuthorID]
	}
}

// attachBooks sets each BookInstance's Book from the given book list.
func attachBooks(instances []models.BookInstance, books []models.Book) {
	byID := make(map[primitive.ObjectID]*models.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}
	for i := range instances {
		instances[i].Book = byID[instances[i].BookID]
	}
}
