package api

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"elearn-backend/internal/api/middleware"

	"github.com/prometheus/client_golang/prometheus"
)

type hijackableWriter struct {
	http.ResponseWriter
	hijacked bool
	err      error
}

func (h *hijackableWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, h.err
}

// The wired chain is instrument -> logging -> handler, so a WebSocket upgrade
// has to reach the base connection through both recorders.
func TestInstrumentedChainPreservesHijacker(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry(), ":0", nil)

	expectedErr := errors.New("hijack invoked")
	base := &hijackableWriter{
		ResponseWriter: httptest.NewRecorder(),
		err:            expectedErr,
	}

	handlerCalled := false
	inner := middleware.Logging()(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatalf("response writer should implement http.Hijacker")
		}
		if _, _, err := hj.Hijack(); !errors.Is(err, expectedErr) {
			t.Fatalf("unexpected hijack error: %v", err)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	m.instrument(http.HandlerFunc(inner)).ServeHTTP(base, req)

	if !handlerCalled {
		t.Fatal("inner handler was not invoked")
	}
	if !base.hijacked {
		t.Fatal("underlying Hijack was not called")
	}
}

func TestInstrumentRecordsFinalStatus(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry(), ":0", nil)

	handler := m.instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status not forwarded, got %d", rec.Code)
	}
}
