package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/footmate/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["status"] != "success" || body["message"] != "Successfully done" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
}

func TestWriteSuccess_OmitsNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, nil)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if _, ok := body["data"]; ok {
		t.Fatalf("did not expect data key, got %v", body)
	}
}

func TestWriteError_MapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: fmt.Errorf("%w: bad payload", usecase.ErrValidationFailed), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "bad request", err: fmt.Errorf("%w: nope", usecase.ErrBadRequest), wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "unauthorized", err: fmt.Errorf("%w: token", usecase.ErrUnauthorized), wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "forbidden", err: fmt.Errorf("%w: role", usecase.ErrForbidden), wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "not found", err: fmt.Errorf("%w: card", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "conflict", err: fmt.Errorf("%w: dup", usecase.ErrConflict), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "unavailable", err: fmt.Errorf("%w: smtp", usecase.ErrDependencyUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: "SERVICE_UNAVAILABLE"},
		{name: "unclassified", err: errors.New("pq: connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var body errorEnvelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.Code != tc.wantCode || body.HTTPCode != tc.wantStatus {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed"))

	var body errorEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Message != "Internal Server Error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
}
