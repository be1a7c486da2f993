// Package handling turns service results into HTTP responses.
package handling

import (
	"errors"
	"net/http"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/render"
)

type errorBody struct {
	Error string `json:"error"`
}

// StatusFor maps service errors to HTTP statuses. Anything not recognised,
// ledger and wallet failures included, is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, lib.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, lib.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lib.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// HandleError logs err and writes {"error": err.Error()} with the mapped status.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter, r *http.Request) {
	HandleErrorStatus(err, StatusFor(err), msg, logger, w, r)
}

// HandleErrorStatus is HandleError with a fixed status.
func HandleErrorStatus(err error, status int, msg string, logger *gecho.Logger, w http.ResponseWriter, r *http.Request) {
	fields := []any{
		"",
		gecho.Field("error", err.Error()),
		gecho.Field("msg", msg),
		gecho.Field("status", status),
		gecho.Field("path", r.URL.Path),
		gecho.WithCallerSkip(3),
	}
	if status >= http.StatusInternalServerError {
		fields[0] = "Request failed"
		logger.Error(fields...)
	} else {
		fields[0] = "Request rejected"
		logger.Warn(fields...)
	}

	Respond(w, r, status, errorBody{Error: err.Error()})
}

// Respond writes v as JSON with status.
func Respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
