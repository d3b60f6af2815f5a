package store

import (
	"context"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AllBooks returns books in natural storage order.
func (db *DB) AllBooks(ctx context.Context) ([]models.Book, error) {
	return findAll[models.Book](ctx, db.Books(), bson.M{})
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	return findByID[models.Book](ctx, db.Books(), id)
}

func (db *DB) BooksByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Book, error) {
	return findAll[models.Book](ctx, db.Books(), bson.M{"author": authorID})
}

// BooksByGenre matches books whose genre list contains genreID.
func (db *DB) BooksByGenre(ctx context.Context, genreID primitive.ObjectID) ([]models.Book, error) {
	return findAll[models.Book](ctx, db.Books(), bson.M{"genre": genreID})
}

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	if book.GenreIDs == nil {
		book.GenreIDs = []primitive.ObjectID{}
	}
	id, err := insert(ctx, db.Books(), book)
	if err != nil {
		return id, err
	}
	db.log.Info("Book created", zap.String("id", id.Hex()), zap.String("title", book.Title))
	return id, nil
}

func (db *DB) ReplaceBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error {
	book.ID = id
	if book.GenreIDs == nil {
		book.GenreIDs = []primitive.ObjectID{}
	}
	return replace(ctx, db.Books(), id, book)
}

func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	if err := remove(ctx, db.Books(), id); err != nil {
		return err
	}
	db.log.Info("Book deleted", zap.String("id", id.Hex()))
	return nil
}

func (db *DB) CountBooks(ctx context.Context) (int64, error) {
	return db.Books().CountDocuments(ctx, bson.M{})
}
