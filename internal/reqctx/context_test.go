package reqctx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNew_GeneratesRequestIDWhenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?limit=1", nil)

	rc := New(req)

	if _, err := uuid.Parse(rc.RequestID); err != nil {
		t.Fatalf("RequestID = %q, want UUID: %v", rc.RequestID, err)
	}
	if got := req.Header.Get(HeaderRequestID); got != rc.RequestID {
		t.Errorf("request header = %q, want %q", got, rc.RequestID)
	}
	if rc.Method != http.MethodGet {
		t.Errorf("Method = %q, want %q", rc.Method, http.MethodGet)
	}
	if rc.URI != "/api/v1/users?limit=1" {
		t.Errorf("URI = %q, want %q", rc.URI, "/api/v1/users?limit=1")
	}
}

func TestNew_ReusesInboundRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "inbound-123")

	rc := New(req)

	if rc.RequestID != "inbound-123" {
		t.Errorf("RequestID = %q, want %q", rc.RequestID, "inbound-123")
	}
}

func TestNew_ReplacesOversizedRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", maxRequestIDLength+1))

	rc := New(req)

	if len(rc.RequestID) > maxRequestIDLength {
		t.Errorf("RequestID length = %d, want <= %d", len(rc.RequestID), maxRequestIDLength)
	}
}

func TestNew_HeaderIsSnapshot(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")

	rc := New(req)
	req.Header.Set("Authorization", "Bearer changed")

	if got := rc.Header.Get("Authorization"); got != "Bearer abc" {
		t.Errorf("snapshot Authorization = %q, want %q", got, "Bearer abc")
	}
}

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no RequestContext in empty context")
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}

	ctx := WithRequestContext(context.Background(), &RequestContext{RequestID: "req-1"})

	rc, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected RequestContext in context")
	}
	if rc.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want %q", rc.RequestID, "req-1")
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want %q", got, "req-1")
	}
}
