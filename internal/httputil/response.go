// Package httputil provides JSON request/response helpers shared by the HTTP
// layer and middleware.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
	"github.com/ckonkol1/plant-tracker/internal/logging"
)

// ProblemDetails is the RFC 7807 style error body emitted for every failed
// request.
type ProblemDetails struct {
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError classifies err and writes the matching problem body. This is the
// single place where domain errors become HTTP responses; handlers and layers
// below never format error bodies themselves.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := apperrors.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = apperrors.Internal("An unexpected error occurred.", err)
	}

	traceID := logging.GetTraceID(r.Context())
	extensions := map[string]any{
		"traceId": traceID,
		"error":   err.Error(),
	}
	for k, v := range serviceErr.Details {
		extensions[k] = v
	}

	body := ProblemDetails{
		Title:      serviceErr.Title(),
		Status:     serviceErr.HTTPStatus,
		Detail:     serviceErr.Message,
		Extensions: extensions,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(serviceErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeJSON decodes a request body into v, rejecting unknown fields and
// trailing garbage.
func DecodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.BadArgument("The submitted data is malformed or does not match the expected structure.").
			WithDetails("parse_error", err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperrors.BadArgument("Request body must contain a single JSON object.")
	}
	return nil
}

// Unauthorized writes a 401 problem body with an optional detail message.
func Unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	if detail == "" {
		detail = "Authentication required"
	}
	WriteError(w, r, apperrors.Unauthorized(detail))
}
