package handlers

import (
	"regexp"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	firstNameChars  = regexp.MustCompile(`^[A-Za-z' -]*$`)
	familyNameChars = regexp.MustCompile(`^[A-Za-z' ]*$`)
)

func optionalDate(field, message string) *validation.Chain {
	return validation.Field(field).Optional().
		ISODate(message).
		Sanitize(validation.MonthDayYear).
		ToDate()
}

var authorForm = validation.NewSchema(
	validation.Field("first_name").Trim().
		NotEmpty("First name cannot be blank.").
		MaxLength(models.MaxNameLength, "First name must be at most 100 characters.").
		Matches(firstNameChars, "First name contains invalid character(s)").
		Escape(),
	validation.Field("family_name").Trim().
		NotEmpty("Last name cannot be blank.").
		MaxLength(models.MaxNameLength, "Last name must be at most 100 characters.").
		Matches(familyNameChars, "Last name contains invalid character(s)").
		Escape(),
	optionalDate("date_of_birth", "Invalid date of birth"),
	optionalDate("date_of_death", "Invalid date of death"),
)

var genreForm = validation.NewSchema(
	validation.Field("name").Trim().NotEmpty("Genre name required").Escape(),
)

var bookForm = validation.NewSchema(
	validation.Field("title").Trim().NotEmpty("Title cannot be empty").Escape(),
	validation.Field("author").Trim().
		NotEmpty("Author cannot be empty").
		ObjectID("Author is not valid").
		Escape(),
	validation.Field("summary").Trim().NotEmpty("Summary cannot be empty").Escape(),
	validation.Field("isbn").Trim().NotEmpty("ISBN cannot be empty").Escape(),
	validation.Field("genre").Trim().ObjectID("Genre is not valid").Escape(),
).List("genre")

var instanceForm = validation.NewSchema(
	validation.Field("book").Trim().
		NotEmpty("Book must not be empty").
		ObjectID("Book is not valid").
		Escape(),
	validation.Field("imprint").Trim().NotEmpty("Imprint must not be empty").Escape(),
	validation.Field("status").Trim().
		NotEmpty("Status must not be empty").
		OneOf("Status is not valid", models.Statuses...).
		Escape(),
	optionalDate("due_back", "Invalid Date"),
)

// The *FromForm builders assemble a record from a validation result whether
// or not it passed, so a rejected form can be shown again with its input.

func authorFromForm(res *validation.Result) models.Author {
	return models.Author{
		FirstName:   res.Get("first_name"),
		FamilyName:  res.Get("family_name"),
		DateOfBirth: res.Date("date_of_birth"),
		DateOfDeath: res.Date("date_of_death"),
	}
}

func genreFromForm(res *validation.Result) models.Genre {
	return models.Genre{Name: res.Get("name")}
}

func bookFromForm(res *validation.Result) models.Book {
	book := models.Book{
		Title:    res.Get("title"),
		Summary:  res.Get("summary"),
		ISBN:     res.Get("isbn"),
		AuthorID: objectIDOrNil(res.Get("author")),
		GenreIDs: []primitive.ObjectID{},
	}
	for _, v := range res.List("genre") {
		if id := objectIDOrNil(v); !id.IsZero() {
			book.GenreIDs = append(book.GenreIDs, id)
		}
	}
	return book
}

func instanceFromForm(res *validation.Result) models.BookInstance {
	return models.BookInstance{
		BookID:  objectIDOrNil(res.Get("book")),
		Imprint: res.Get("imprint"),
		Status:  res.Get("status"),
		DueBack: res.Date("due_back"),
	}
}

func objectIDOrNil(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
