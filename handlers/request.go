package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxFormMemory bounds multipart parts kept in memory; larger files spill to disk.
const maxFormMemory = 1 << 20

// pathID reads the {id} route parameter. A malformed id cannot match any
// record, so it is reported as store.ErrNotFound.
func pathID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return id, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func redirect(w http.ResponseWriter, r *http.Request, url string) error {
	http.Redirect(w, r, url, http.StatusFound)
	return nil
}

// parseForm accepts url-encoded and multipart bodies; either way the fields
// end up in r.PostForm.
func parseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "upload too large", Err: err}
		}
		return badRequest("malformed form submission", err)
	}
	return nil
}
