package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxNameLength bounds Author first and family names.
const MaxNameLength = 100

// DateLayout is the machine-sortable form used for date inputs and edit forms.
const DateLayout = "2006-01-02"

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty"`
}

// Name is the catalog display name, family name first.
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID.Hex()
}

func (a Author) DateOfBirthFormatted() string {
	return formatDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return formatDate(a.DateOfDeath)
}

// Lifespan renders "birth - death" with either side blank when unknown.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
