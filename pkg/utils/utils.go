package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Err wraps an error into a slog attribute for structured logging.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// RespondWithJSON serializes payload and writes it with the given status code.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondWithErrorJSON writes an error response shaped {"error": detail}.
// detail may be a plain string or a structured value; either way the body
// is a JSON object with a single "error" key.
func RespondWithErrorJSON(w http.ResponseWriter, statusCode int, detail interface{}) {
	RespondWithJSON(w, statusCode, map[string]interface{}{"error": detail})
}
