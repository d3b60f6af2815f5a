package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book references its Author and Genres by id. Author and Genres are only
// filled in by handlers that resolve those references; they are never stored.
type Book struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Title    string               `bson:"title"`
	Summary  string               `bson:"summary"`
	ISBN     string               `bson:"isbn"`
	AuthorID primitive.ObjectID   `bson:"author"`
	GenreIDs []primitive.ObjectID `bson:"genre"`
	CoverKey string               `bson:"coverKey,omitempty"` // object key in the cover bucket

	Author *Author `bson:"-"`
	Genres []Genre `bson:"-"`
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID.Hex()
}

func (b Book) CoverURL() string {
	if b.CoverKey == "" {
		return ""
	}
	return b.URL() + "/cover"
}

// HasGenre reports whether id is among the Book's genre references.
func (b Book) HasGenre(id primitive.ObjectID) bool {
	for _, g := range b.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}
