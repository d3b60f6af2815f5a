package views

import (
	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/validation"
)

// View names, one template file each.
const (
	IndexView          = "index"
	ErrorView          = "error"
	AuthorListView     = "author_list"
	AuthorDetailView   = "author_detail"
	AuthorFormView     = "author_form"
	AuthorDeleteView   = "author_delete"
	GenreListView      = "genre_list"
	GenreDetailView    = "genre_detail"
	GenreFormView      = "genre_form"
	GenreDeleteView    = "genre_delete"
	BookListView       = "book_list"
	BookDetailView     = "book_detail"
	BookFormView       = "book_form"
	BookDeleteView     = "book_delete"
	InstanceListView   = "bookinstance_list"
	InstanceDetailView = "bookinstance_detail"
	InstanceFormView   = "bookinstance_form"
	InstanceDeleteView = "bookinstance_delete"
)

type Index struct {
	Title          string
	BookCount      int64
	InstanceCount  int64
	AvailableCount int64
	AuthorCount    int64
	GenreCount     int64
	Error          string
}

type ErrorPage struct {
	Title   string
	Status  int
	Message string
}

type AuthorList struct {
	Title   string
	Authors []models.Author
}

type AuthorDetail struct {
	Title  string
	Author models.Author
	Books  []models.Book
}

type AuthorForm struct {
	Title  string
	Author models.Author
	Errors validation.Errors
	Update bool
}

// AuthorDelete is the confirmation page. Deletion is offered only when Books is empty.
type AuthorDelete struct {
	Title  string
	Author models.Author
	Books  []models.Book
}

type GenreList struct {
	Title  string
	Genres []models.Genre
}

type GenreDetail struct {
	Title  string
	Genre  models.Genre
	Books  []models.Book
}

type GenreForm struct {
	Title  string
	Genre  models.Genre
	Errors validation.Errors
	Update bool
}

type GenreDelete struct {
	Title string
	Genre models.Genre
	Books []models.Book
}

// BookList rows carry their resolved Author.
type BookList struct {
	Title string
	Books []models.Book
}

type BookDetail struct {
	Title     string
	Book      models.Book
	Instances []models.BookInstance
}

// GenreOption is a genre checkbox on the book form.
type GenreOption struct {
	models.Genre
	Checked bool
}

type BookForm struct {
	Title         string
	Book          models.Book
	Authors       []models.Author
	Genres        []GenreOption
	Errors        validation.Errors
	Update        bool
	CoversEnabled bool
}

type BookDelete struct {
	Title     string
	Book      models.Book
	Instances []models.BookInstance
}

// InstanceList rows carry their resolved Book.
type InstanceList struct {
	Title     string
	Instances []models.BookInstance
}

type InstanceDetail struct {
	Title    string
	Instance models.BookInstance
}

type InstanceForm struct {
	Title    string
	Instance models.BookInstance
	Books    []models.Book
	Statuses []string
	Errors   validation.Errors
	Update   bool
}

type InstanceDelete struct {
	Title    string
	Instance models.BookInstance
}
