package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging_GeneratesID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	WithRequestLogging(zap.New(core))(next).ServeHTTP(rr, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", seen, err)
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response %s = %q; want %q", RequestIDHeader, got, seen)
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) {
		t.Errorf("logged status = %v; want %d", fields["status"], http.StatusCreated)
	}
	if fields["path"] != "/api/accounts" {
		t.Errorf("logged path = %v; want /api/accounts", fields["path"])
	}
	if fields["bytes"] != int64(2) {
		t.Errorf("logged bytes = %v; want 2", fields["bytes"])
	}
}

func TestWithRequestLogging_ReusesIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	WithRequestLogging(nil)(next).ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("response %s = %q; want abc-123", RequestIDHeader, got)
	}
}

func TestGetRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestIDFromContext(req.Context()); got != "" {
		t.Errorf("GetRequestIDFromContext = %q; want empty", got)
	}
}
