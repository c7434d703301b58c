package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/core"
	applog "github.com/tibame201020/asset-frontend-app-sub000/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeRawJSON writes a pre-marshaled body, used by the report cache.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto HTTP statuses: validation
// failures are the client's fault, missing rows are 404, anything else is a
// 500 with the detail kept out of the response body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "record not found")
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			applog.FieldError, err.Error(),
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidDirection,
		core.ErrInvalidFrequency,
		core.ErrEmptyCategory,
		core.ErrEmptyName,
		core.ErrEmptyTitle,
		core.ErrZeroDate,
		core.ErrEndBeforeStart,
		core.ErrCrossDaySpan,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
