package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
	"github.com/ckonkol1/plant-tracker/internal/logging"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["id"] != "abc" {
		t.Fatalf("got %v", body)
	}
}

func TestWriteErrorServiceError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/plants/x", nil)
	req = req.WithContext(logging.WithTraceID(req.Context(), "trace-1"))

	rec := httptest.NewRecorder()
	WriteError(rec, req, apperrors.NotFound("Plant Id: %s was not found", "x"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("got %q", ct)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatal(err)
	}
	if problem.Title != "Resource Not Found" || problem.Status != http.StatusNotFound {
		t.Fatalf("unexpected problem: %+v", problem)
	}
	if problem.Extensions["traceId"] != "trace-1" {
		t.Fatalf("traceId missing: %v", problem.Extensions)
	}
	if problem.Extensions["error"] == "" {
		t.Fatalf("error extension missing: %v", problem.Extensions)
	}
}

func TestWriteErrorWrapsUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rec.Code)
	}
	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatal(err)
	}
	if problem.Title != "Internal Server Error Occurred" {
		t.Fatalf("got %q", problem.Title)
	}
}

func TestWriteErrorCarriesValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.Validation("One or more fields failed validation.", map[string][]string{
		"commonName": {"Common Name is required."},
	})
	WriteError(rec, httptest.NewRequest(http.MethodPut, "/v1/plants", nil), err)

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatal(err)
	}
	fields, ok := problem.Extensions["fields"].(map[string]any)
	if !ok {
		t.Fatalf("fields extension missing: %v", problem.Extensions)
	}
	if _, ok := fields["commonName"]; !ok {
		t.Fatalf("commonName violations missing: %v", fields)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var p payload
	if err := DecodeJSON(strings.NewReader(`{"name":"Rose"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Rose" {
		t.Fatalf("got %q", p.Name)
	}

	cases := map[string]string{
		"malformed":     `{name`,
		"unknown field": `{"nickname":"Rosie"}`,
		"trailing junk": `{"name":"Rose"}{"name":"Briar"}`,
		"not an object": `"Rose"`,
		"wrong type":    `{"name":7}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(strings.NewReader(body), &p)
			svcErr := apperrors.GetServiceError(err)
			if svcErr == nil || svcErr.Code != apperrors.CodeBadArgument {
				t.Fatalf("expected bad-argument, got %v", err)
			}
		})
	}
}
