package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	if !strings.HasPrefix(a, "req_") {
		t.Errorf("request ID %q should carry the req_ prefix", a)
	}
	if a == b {
		t.Error("request IDs must be unique")
	}
}

func TestMiddleware_InjectsRequestID(t *testing.T) {
	m := NewMiddleware(nil)

	var captured string
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records", nil))

	if captured == "" {
		t.Error("handler should see a request ID in context")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418 passed through", rec.Code)
	}
	if got := m.GetMetrics().TotalRequests; got != 1 {
		t.Errorf("TotalRequests = %d, want 1", got)
	}
}

func TestGetRequestID_MissingReturnsEmpty(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID on bare context = %q, want empty", got)
	}
}
