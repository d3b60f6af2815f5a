package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID.Hex()
}
