package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthorDisplayFields(t *testing.T) {
	id := primitive.NewObjectID()
	a := Author{ID: id, FirstName: "Ursula", FamilyName: "Le Guin", DateOfBirth: date(1929, time.October, 21)}

	assert.Equal(t, "Le Guin, Ursula", a.Name())
	assert.Equal(t, "/catalog/author/"+id.Hex(), a.URL())
	assert.Equal(t, "1929-10-21", a.DateOfBirthFormatted())
	assert.Equal(t, "", a.DateOfDeathFormatted())
	assert.Equal(t, "1929-10-21 - ", a.Lifespan())

	assert.Equal(t, "", Author{}.Lifespan())
}

func TestBookHelpers(t *testing.T) {
	g1, g2 := primitive.NewObjectID(), primitive.NewObjectID()
	b := Book{ID: primitive.NewObjectID(), GenreIDs: []primitive.ObjectID{g1}}

	assert.True(t, b.HasGenre(g1))
	assert.False(t, b.HasGenre(g2))
	assert.Equal(t, "", b.CoverURL())

	b.CoverKey = "covers/x.png"
	assert.Equal(t, b.URL()+"/cover", b.CoverURL())
}

func TestDueBackFormatting(t *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 31: "31st"}
	for day, want := range cases {
		assert.Equal(t, want, ordinal(day))
	}

	bi := BookInstance{DueBack: date(2020, time.January, 15)}
	assert.Equal(t, "January 15th, 2020", bi.DueBackFormatted())
	assert.Equal(t, "2020-01-15", bi.DueBackForUpdate())

	empty := BookInstance{}
	assert.Equal(t, "", empty.DueBackFormatted())
	assert.Equal(t, "", empty.DueBackForUpdate())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("available"))
	assert.False(t, IsValidStatus(""))
	assert.Equal(t, StatusMaintenance, DefaultStatus)
}
