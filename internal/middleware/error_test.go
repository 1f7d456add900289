package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithError(rec, http.StatusNotFound, "Product not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Product not found" {
		t.Errorf("error = %q, want %q", body["error"], "Product not found")
	}
}

func TestRespondWithValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithValidationErrors(rec, []ValidationError{
		{Field: "Name", Message: "Must be at least 2"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "Validation failed" {
		t.Errorf("error = %q, want %q", body.Error, "Validation failed")
	}
	if len(body.Details) != 1 || body.Details[0].Field != "Name" {
		t.Errorf("details = %+v, want the Name field error", body.Details)
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, want %q", body["error"], "Internal server error")
	}
}
