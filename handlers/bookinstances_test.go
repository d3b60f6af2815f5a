package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/kevinaaaquil/locallibrary/models"
	"github.com/kevinaaaquil/locallibrary/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instanceValues(book models.Book, status, dueBack string) url.Values {
	return url.Values{
		"book":     {book.ID.Hex()},
		"imprint":  {"Ace, 1969"},
		"status":   {status},
		"due_back": {dueBack},
	}
}

func TestInstanceCreateDefaultsDueBackToNow(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)

	before := time.Now()
	rec := env.post("/catalog/bookinstance/create", instanceValues(book, models.StatusAvailable, ""))
	after := time.Now()

	require.Equal(t, http.StatusFound, rec.Code)
	all, err := env.db.AllBookInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, all[0].URL(), rec.Header().Get("Location"))
	require.NotNil(t, all[0].DueBack)
	assert.False(t, all[0].DueBack.Before(before))
	assert.False(t, all[0].DueBack.After(after))
}

func TestInstanceCreateWithDueBack(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)

	rec := env.post("/catalog/bookinstance/create", instanceValues(book, models.StatusLoaned, "2020-01-15"))

	require.Equal(t, http.StatusFound, rec.Code)
	all, _ := env.db.AllBookInstances(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "2020-01-15", all[0].DueBackForUpdate())
	assert.Equal(t, "January 15th, 2020", all[0].DueBackFormatted())
}

func TestInstanceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)
	values := instanceValues(book, "Lost", "2020-02-30")
	values.Set("imprint", " ")

	rec := env.post("/catalog/bookinstance/create", values)

	assert.Equal(t, http.StatusOK, rec.Code)
	form := env.views.last(t).data.(views.InstanceForm)
	assert.Equal(t, []string{"Status is not valid"}, form.Errors.For("status"))
	assert.Equal(t, []string{"Imprint must not be empty"}, form.Errors.For("imprint"))
	assert.Equal(t, []string{"Invalid Date"}, form.Errors.For("due_back"))
	assert.Equal(t, book.ID, form.Instance.BookID)
	assert.Equal(t, models.Statuses, form.Statuses)
	n, _ := env.db.CountBookInstances(context.Background(), "")
	assert.Zero(t, n)
}

func TestInstanceCreateFormSortsBooks(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	env.seedBook(t, "The Dispossessed", author.ID)
	env.seedBook(t, "Earthsea", author.ID)

	require.Equal(t, http.StatusOK, env.get("/catalog/bookinstance/create").Code)
	form := env.views.last(t).data.(views.InstanceForm)
	require.Len(t, form.Books, 2)
	assert.Equal(t, "Earthsea", form.Books[0].Title)
	assert.Equal(t, models.DefaultStatus, form.Instance.Status)
}

func TestInstanceListAndDetail(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)
	instance := env.seedInstance(t, book.ID, models.StatusMaintenance)

	require.Equal(t, http.StatusOK, env.get("/catalog/bookinstances").Code)
	list := env.views.last(t).data.(views.InstanceList)
	require.Len(t, list.Instances, 1)
	require.NotNil(t, list.Instances[0].Book)
	assert.Equal(t, "Earthsea", list.Instances[0].Book.Title)

	require.Equal(t, http.StatusOK, env.get(instance.URL()).Code)
	detail := env.views.last(t).data.(views.InstanceDetail)
	require.NotNil(t, detail.Instance.Book)
	assert.Equal(t, book.ID, detail.Instance.Book.ID)

	assert.Equal(t, http.StatusNotFound, env.get("/catalog/bookinstance/000000000000000000000000").Code)
}

func TestInstanceDelete(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)
	instance := env.seedInstance(t, book.ID, models.StatusAvailable)

	require.Equal(t, http.StatusOK, env.get(instance.URL()+"/delete").Code)
	assert.Equal(t, views.InstanceDeleteView, env.views.last(t).name)

	rec := env.post(instance.URL()+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog/bookinstances", rec.Header().Get("Location"))
	n, _ := env.db.CountBookInstances(context.Background(), "")
	assert.Zero(t, n)

	assert.Equal(t, http.StatusNotFound, env.get(instance.URL()+"/delete").Code)
	assert.Equal(t, http.StatusFound, env.post(instance.URL()+"/delete", url.Values{}).Code)
}

func TestInstanceUpdate(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedAuthor(t, "Ursula", "Le Guin")
	book := env.seedBook(t, "Earthsea", author.ID)
	instance := env.seedInstance(t, book.ID, models.StatusMaintenance)

	require.Equal(t, http.StatusOK, env.get(instance.URL()+"/update").Code)
	assert.True(t, env.views.last(t).data.(views.InstanceForm).Update)

	rec := env.post(instance.URL()+"/update", instanceValues(book, models.StatusReserved, "2021-03-02"))
	require.Equal(t, http.StatusFound, rec.Code)
	got, err := env.db.BookInstanceByID(context.Background(), instance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, got.Status)
	assert.Equal(t, "March 2nd, 2021", got.DueBackFormatted())

	missing := "/catalog/bookinstance/000000000000000000000000/update"
	assert.Equal(t, http.StatusNotFound, env.get(missing).Code)
	assert.Equal(t, http.StatusNotFound, env.post(missing, instanceValues(book, models.StatusReserved, "")).Code)
}

func TestInstanceNowOverride(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := &BookInstancesHandler{Now: func() time.Time { return fixed }}
	assert.Equal(t, fixed, h.now())
	assert.WithinDuration(t, time.Now(), (&BookInstancesHandler{}).now(), time.Second)
}
