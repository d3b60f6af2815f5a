package store

import (
	"context"

	"github.com/kevinaaaquil/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (db *DB) AllBookInstances(ctx context.Context) ([]models.BookInstance, error) {
	return findAll[models.BookInstance](ctx, db.BookInstances(), bson.M{})
}

func (db *DB) BookInstanceByID(ctx context.Context, id primitive.ObjectID) (*models.BookInstance, error) {
	return findByID[models.BookInstance](ctx, db.BookInstances(), id)
}

func (db *DB) InstancesByBook(ctx context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error) {
	return findAll[models.BookInstance](ctx, db.BookInstances(), bson.M{"book": bookID})
}

func (db *DB) InsertBookInstance(ctx context.Context, bi *models.BookInstance) (primitive.ObjectID, error) {
	id, err := insert(ctx, db.BookInstances(), bi)
	if err != nil {
		return id, err
	}
	db.log.Info("BookInstance created", zap.String("id", id.Hex()), zap.String("book", bi.BookID.Hex()))
	return id, nil
}

func (db *DB) ReplaceBookInstance(ctx context.Context, id primitive.ObjectID, bi *models.BookInstance) error {
	bi.ID = id
	return replace(ctx, db.BookInstances(), id, bi)
}

func (db *DB) DeleteBookInstance(ctx context.Context, id primitive.ObjectID) error {
	if err := remove(ctx, db.BookInstances(), id); err != nil {
		return err
	}
	db.log.Info("BookInstance deleted", zap.String("id", id.Hex()))
	return nil
}

// CountBookInstances counts copies with the given status, or all copies when
// status is empty.
func (db *DB) CountBookInstances(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return db.BookInstances().CountDocuments(ctx, filter)
}
