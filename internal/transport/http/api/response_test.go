package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry/internal/platform/apperr"
)

func TestFailErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: apperr.Validation("bad input"), wantStatus: http.StatusBadRequest, wantCode: "validation_error"},
		{name: "authorization", err: apperr.Authorization("cutoff passed"), wantStatus: http.StatusForbidden, wantCode: "forbidden"},
		{name: "conflict", err: apperr.Conflict("duplicate"), wantStatus: http.StatusConflict, wantCode: "conflict"},
		{name: "not found", err: apperr.NotFound("missing"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "unknown masked", err: errors.New("pq: connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FailError(rec, tc.err, "req-1")

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			var envelope Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if envelope.Success {
				t.Fatal("expected success=false")
			}
			if envelope.Error == nil || envelope.Error.Code != tc.wantCode {
				t.Fatalf("error = %+v, want code %q", envelope.Error, tc.wantCode)
			}
			if envelope.RequestID != "req-1" {
				t.Fatalf("requestId = %q", envelope.RequestID)
			}
		})
	}
}

func TestFailErrorMasksInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, errors.New("secret database detail"), "req-2")

	var envelope Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("message = %q, internal details must not leak", envelope.Error.Message)
	}
}
