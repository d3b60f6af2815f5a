package store

import (
	"context"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AllAuthors returns every author sorted by family name, then first name.
func (db *DB) AllAuthors(ctx context.Context) ([]models.Author, error) {
	sort := options.Find().SetSort(bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}})
	return findAll[models.Author](ctx, db.Authors(), bson.M{}, sort)
}

func (db *DB) AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	return findByID[models.Author](ctx, db.Authors(), id)
}

func (db *DB) InsertAuthor(ctx context.Context, author *models.Author) (primitive.ObjectID, error) {
	id, err := insert(ctx, db.Authors(), author)
	if err != nil {
		return id, err
	}
	db.log.Info("Author created", zap.String("id", id.Hex()))
	return id, nil
}

func (db *DB) ReplaceAuthor(ctx context.Context, id primitive.ObjectID, author *models.Author) error {
	author.ID = id
	return replace(ctx, db.Authors(), id, author)
}

func (db *DB) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	if err := remove(ctx, db.Authors(), id); err != nil {
		return err
	}
	db.log.Info("Author deleted", zap.String("id", id.Hex()))
	return nil
}

func (db *DB) CountAuthors(ctx context.Context) (int64, error) {
	return db.Authors().CountDocuments(ctx, bson.M{})
}
