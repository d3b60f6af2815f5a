package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kevinaaaquil/locallibrary/store"
	"github.com/kevinaaaquil/locallibrary/views"
	"go.uber.org/zap"
)

const serverErrorMessage = "the server encountered a problem and could not process your request"

// HTTPError carries the status a failure should be reported with.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func notFound(what string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: what + " not found", Err: store.ErrNotFound}
}

func badRequest(message string, err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Err: err}
}

// HandlerFunc is a handler that hands its failure back instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandler renders failures returned by HandlerFuncs on the error page.
type ErrorHandler struct {
	Views Renderer
	Log   *zap.Logger
}

func (h *ErrorHandler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

// Handle maps err to a status and renders it. Internal details are only logged.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, serverErrorMessage
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		status, message = httpErr.Status, httpErr.Message
	case errors.Is(err, store.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	}

	fields := []zap.Field{zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err)}
	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed", fields...)
	} else {
		h.Log.Debug("request rejected", fields...)
	}

	page := views.ErrorPage{Title: "Error", Status: status, Message: message}
	if rerr := h.Views.Render(w, status, views.ErrorView, page); rerr != nil {
		h.Log.Error("render error page", zap.Error(rerr))
		http.Error(w, message, status)
	}
}
