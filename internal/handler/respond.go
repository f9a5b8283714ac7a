package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cvforge/cvforge-go/internal/model"
)

// errorBody is the JSON error shape: a message plus an optional per-field
// error list.
type errorBody struct {
	Message string             `json:"message"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func errorResponse(msg string) errorBody {
	return errorBody{Message: msg}
}

func fieldErrorResponse(msg string, fields []model.FieldError) errorBody {
	return errorBody{Message: msg, Errors: fields}
}

// decodeBody decodes a JSON request body capped at limit bytes, writing the
// error response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}

	return true
}
