package store

import (
	"context"
	"errors"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (db *DB) AllGenres(ctx context.Context) ([]models.Genre, error) {
	return findAll[models.Genre](ctx, db.Genres(), bson.M{}, byName("name"))
}

func (db *DB) GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	return findByID[models.Genre](ctx, db.Genres(), id)
}

// GenresByIDs resolves a Book's genre references, sorted by name. Ids that no
// longer resolve are skipped.
func (db *DB) GenresByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Genre, error) {
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}
	return findAll[models.Genre](ctx, db.Genres(), bson.M{"_id": bson.M{"$in": ids}}, byName("name"))
}

// GenreByName finds a genre by exact, case-sensitive name.
func (db *DB) GenreByName(ctx context.Context, name string) (*models.Genre, error) {
	var g models.Genre
	err := db.Genres().FindOne(ctx, bson.M{"name": name}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (db *DB) InsertGenre(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	id, err := insert(ctx, db.Genres(), genre)
	if err != nil {
		return id, err
	}
	db.log.Info("Genre created", zap.String("id", id.Hex()), zap.String("name", genre.Name))
	return id, nil
}

func (db *DB) ReplaceGenre(ctx context.Context, id primitive.ObjectID, genre *models.Genre) error {
	genre.ID = id
	return replace(ctx, db.Genres(), id, genre)
}

func (db *DB) DeleteGenre(ctx context.Context, id primitive.ObjectID) error {
	if err := remove(ctx, db.Genres(), id); err != nil {
		return err
	}
	db.log.Info("Genre deleted", zap.String("id", id.Hex()))
	return nil
}

func (db *DB) CountGenres(ctx context.Context) (int64, error) {
	return db.Genres().CountDocuments(ctx, bson.M{})
}
