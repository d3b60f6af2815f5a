package handlers

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/validation"
	"github.com/kevinaaaquil/locallibrary/views"
)

const instanceListURL = "/catalog/bookinstances"

type BookInstancesHandler struct {
	DB    Catalog
	Views Renderer
	// Now stamps due_back when a submission leaves it out. Defaults to time.Now.
	Now func() time.Time
}

func (h *BookInstancesHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *BookInstancesHandler) List(w http.ResponseWriter, r *http.Request) error {
	var (
		instances []models.BookInstance
		books     []models.Book
	)
	err := fetch(r.Context(),
		func(ctx context.Context) (err error) {
			instances, err = h.DB.AllBookInstances(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			books, err = h.DB.AllBooks(ctx)
			return err
		},
	)
	if err != nil {
		return err
	}
	attachBooks(instances, books)
	return h.Views.Render(w, http.StatusOK, views.InstanceListView, views.InstanceList{Title: "Book Instance List", Instances: instances})
}

// load fetches the instance named in the path with its Book resolved. A
// dangling book reference leaves Book nil.
func (h *BookInstancesHandler) load(r *http.Request) (*models.BookInstance, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, err
	}
	bi, err := h.DB.BookInstanceByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	book, err := h.DB.BookByID(r.Context(), bi.BookID)
	switch {
	case err == nil:
		bi.Book = book
	case !isNotFound(err):
		return nil, err
	}
	return bi, nil
}

func (h *BookInstancesHandler) Detail(w http.ResponseWriter, r *http.Request) error {
	bi, err := h.load(r)
	if isNotFound(err) {
		return notFound("Book copy")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.InstanceDetailView, views.InstanceDetail{Title: "Book Instance Detail", Instance: *bi})
}

// renderForm shows the instance form with the book choices sorted by title.
func (h *BookInstancesHandler) renderForm(ctx context.Context, w http.ResponseWriter, title string, bi models.BookInstance, errs validation.Errors, update bool) error {
	books, err := h.DB.AllBooks(ctx)
	if err != nil {
		return err
	}
	slices.SortStableFunc(books, func(a, b models.Book) int { return strings.Compare(a.Title, b.Title) })
	return h.Views.Render(w, http.StatusOK, views.InstanceFormView, views.InstanceForm{
		Title:    title,
		Instance: bi,
		Books:    books,
		Statuses: models.Statuses,
		Errors:   errs,
		Update:   update,
	})
}

func (h *BookInstancesHandler) CreateForm(w http.ResponseWriter, r *http.Request) error {
	return h.renderForm(r.Context(), w, "Create BookInstance", models.BookInstance{Status: models.DefaultStatus}, nil, false)
}

func (h *BookInstancesHandler) Create(w http.ResponseWriter, r *http.Request) error {
	if err := parseForm(r); err != nil {
		return err
	}
	res := instanceForm.Validate(r.PostForm)
	bi := instanceFromForm(res)
	if !res.Valid() {
		return h.renderForm(r.Context(), w, "Create BookInstance", bi, res.Errors, false)
	}

	if bi.DueBack == nil {
		now := h.now()
		bi.DueBack = &now
	}
	id, err := h.DB.InsertBookInstance(r.Context(), &bi)
	if err != nil {
		return err
	}
	bi.ID = id
	return redirect(w, r, bi.URL())
}

func (h *BookInstancesHandler) DeleteForm(w http.ResponseWriter, r *http.Request) error {
	bi, err := h.load(r)
	if isNotFound(err) {
		return notFound("Book copy")
	}
	if err != nil {
		return err
	}
	return h.Views.Render(w, http.StatusOK, views.InstanceDeleteView, views.InstanceDelete{Title: "Delete BookInstance", Instance: *bi})
}

// Delete needs no guard: nothing references a copy.
func (h *BookInstancesHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return redirect(w, r, instanceListURL)
	}
	if err := h.DB.DeleteBookInstance(r.Context(), id); err != nil && !isNotFound(err) {
		return err
	}
	return redirect(w, r, instanceListURL)
}

func (h *BookInstancesHandler) UpdateForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book copy")
	}
	bi, err := h.DB.BookInstanceByID(r.Context(), id)
	if isNotFound(err) {
		return notFound("Book copy")
	}
	if err != nil {
		return err
	}
	return h.renderForm(r.Context(), w, "Update BookInstance", *bi, nil, true)
}

func (h *BookInstancesHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return notFound("Book copy")
	}
	if err := parseForm(r); err != nil {
		return err
	}
	res := instanceForm.Validate(r.PostForm)
	bi := instanceFromForm(res)
	bi.ID = id
	if !res.Valid() {
		return h.renderForm(r.Context(), w, "Update BookInstance", bi, res.Errors, true)
	}

	if bi.DueBack == nil {
		now := h.now()
		bi.DueBack = &now
	}
	err = h.DB.ReplaceBookInstance(r.Context(), id, &bi)
	if isNotFound(err) {
		return notFound("Book copy")
	}
	if err != nil {
		return err
	}
	return redirect(w, r, bi.URL())
}
