package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/findrival/internal/usecase"
)

func TestWriteSuccess_BareBody(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(rec.Body.Len()) {
		t.Fatalf("expected Content-Length %d, got %q", rec.Body.Len(), got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["status"].(string); got != "ok" {
		t.Fatalf("expected status=ok, got %v", body["status"])
	}
	if _, ok := body["apiVersion"]; ok {
		t.Fatalf("did not expect an envelope on success responses")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: Team abc not found", usecase.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "NOT_FOUND" {
		t.Fatalf("expected error status NOT_FOUND, got %v", errorObj["status"])
	}
	if got, _ := errorObj["message"].(string); got != "resource not found: Team abc not found" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestWriteError_ValidationItems(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, newValidationError("query",
		fieldViolation{Location: "lng", Message: "field required"},
		fieldViolation{Location: "lat", Message: "field required"},
	))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var body googleErrorEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if len(body.Error.Errors) != 2 {
		t.Fatalf("expected 2 error items, got %d", len(body.Error.Errors))
	}
	if body.Error.Errors[0].Location != "lng" || body.Error.Errors[0].LocationType != "query" {
		t.Fatalf("unexpected first item %+v", body.Error.Errors[0])
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, status: http.StatusUnprocessableEntity, code: "INVALID_ARGUMENT"},
		{name: "query failed", err: fmt.Errorf("%w: bad point", usecase.ErrQueryFailed), status: http.StatusBadRequest, code: "FAILED_PRECONDITION"},
		{name: "not found", err: usecase.ErrNotFound, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "forbidden", err: usecase.ErrForbidden, status: http.StatusForbidden, code: "PERMISSION_DENIED"},
		{name: "dependency", err: usecase.ErrDependencyUnavailable, status: http.StatusServiceUnavailable, code: "UNAVAILABLE"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(context.Background(), tc.err)
			if got.HTTPStatus != tc.status || got.Status != tc.code {
				t.Fatalf("expected %d/%s, got %d/%s", tc.status, tc.code, got.HTTPStatus, got.Status)
			}
		})
	}
}
