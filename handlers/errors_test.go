package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kevinaaaquil/locallibrary/store"
	"github.com/kevinaaaquil/locallibrary/views"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestErrorHandlerStatus(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "http error", err: notFound("Book"), wantStatus: http.StatusNotFound, wantMessage: "Book not found"},
		{name: "wrapped http error", err: fmt.Errorf("load: %w", badRequest("bad form", nil)), wantStatus: http.StatusBadRequest, wantMessage: "bad form"},
		{name: "bare not found", err: fmt.Errorf("lookup: %w", store.ErrNotFound), wantStatus: http.StatusNotFound, wantMessage: "not found"},
		{name: "anything else", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError, wantMessage: serverErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := &recordingRenderer{}
			h := &ErrorHandler{Views: rr, Log: zap.NewNop()}
			rec := httptest.NewRecorder()

			h.Wrap(func(w http.ResponseWriter, r *http.Request) error { return tt.err })(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			page := rr.last(t)
			assert.Equal(t, views.ErrorView, page.name)
			assert.Equal(t, views.ErrorPage{Title: "Error", Status: tt.wantStatus, Message: tt.wantMessage}, page.data)
		})
	}
}

func TestErrorHandlerPassesThroughSuccess(t *testing.T) {
	rr := &recordingRenderer{}
	h := &ErrorHandler{Views: rr, Log: zap.NewNop()}
	rec := httptest.NewRecorder()

	h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusTeapot)
		return nil
	})(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rr.calls)
}

func TestHTTPErrorUnwraps(t *testing.T) {
	err := notFound("Author")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, "404 Author not found: store: record not found", err.Error())
}

func TestFetchRunsAllAndReportsFailure(t *testing.T) {
	var ran atomic.Int32
	ok := func(context.Context) error { ran.Add(1); return nil }

	assert.NoError(t, fetch(context.Background(), ok, ok, ok))
	assert.Equal(t, int32(3), ran.Load())

	boom := errors.New("boom")
	err := fetch(context.Background(), ok, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}
