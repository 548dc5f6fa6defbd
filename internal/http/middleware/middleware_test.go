package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-data-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndRecordsMetrics(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/api/sleeper/league/1", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rec.ProviderCalls("http") != 0 {
		t.Fatalf("expected provider metrics untouched")
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected generated request id")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/health?foo=bar", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming id, got %s", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %s", got)
	}
	logs := buf.String()
	if !strings.Contains(logs, "request_id=abc-123") || !strings.Contains(logs, "client_ip=198.51.100.1") {
		t.Fatalf("expected request fields in logs, got %s", logs)
	}
}

func TestRoutePatternUsesChiPattern(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return LoggingMiddleware(logger, metrics.NewRecorder(), next)
	})
	var got string
	router.Get("/league/{leagueId}", func(w http.ResponseWriter, r *http.Request) {
		got = routePattern(r)
	})

	testutil.Serve(router, http.MethodGet, "/league/42", nil)

	if got != "/league/{leagueId}" {
		t.Fatalf("expected route pattern, got %q", got)
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Fatalf("expected %s, got %s", unmatchedRoute, got)
	}
}

func TestLoggingMiddlewareLogsRouteStatusAndBytes(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return LoggingMiddleware(logger, nil, next)
	})
	router.Get("/players/{sport}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	testutil.Serve(router, http.MethodGet, "/players/nfl", nil)

	logs := buf.String()
	for _, want := range []string{"level=INFO", "route=/players/{sport}", "status_code=200", "bytes=5"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("expected %q in %s", want, logs)
		}
	}
}

func TestLoggingMiddlewareWarnsOnServerErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	testutil.Serve(LoggingMiddleware(logger, rec, next), http.MethodGet, "/league/1", nil)

	logs := buf.String()
	if !strings.Contains(logs, "level=WARN") || !strings.Contains(logs, "status_code=502") {
		t.Fatalf("expected warning access line, got %s", logs)
	}
	if !strings.Contains(logs, "route="+unmatchedRoute) {
		t.Fatalf("expected unmatched route outside a router, got %s", logs)
	}
}

func TestAccessLevel(t *testing.T) {
	cases := map[int]slog.Level{
		http.StatusOK:                  slog.LevelInfo,
		http.StatusNotFound:            slog.LevelInfo,
		http.StatusInternalServerError: slog.LevelWarn,
		http.StatusBadGateway:          slog.LevelWarn,
	}
	for status, want := range cases {
		if got := accessLevel(status); got != want {
			t.Fatalf("status %d: expected %s, got %s", status, want, got)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	//lint:ignore SA1012 exercising nil context guard
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.ServeHTTP(rr, req)
	}
}
