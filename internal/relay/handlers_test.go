package relay

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/config"
	"github.com/disasternet/relay/internal/mesh"
)

func newTestServer(t *testing.T, backendURL string) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second

	disabledLogger := zerolog.Nop()
	gw := mesh.NewClient(backendURL, time.Second)
	server := NewServer(gw, &cfg, &disabledLogger)
	return server.Handler
}

func TestSendPassthroughIsByteForByte(t *testing.T) {
	const fixtureAck = `{"status":"sent","id":"3f2c","delivered":true}`
	var forwarded []byte

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/send" {
			t.Errorf("unexpected backend request %s %s", r.Method, r.URL.Path)
		}
		forwarded, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixtureAck))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	payload := `{"type":"SOS","text":"trapped at 5th and main"}`
	req := httptest.NewRequest(http.MethodPost, "/api/send", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Body.String() != fixtureAck {
		t.Errorf("response body not byte-for-byte equal:\nwant %q\ngot  %q", fixtureAck, resp.Body.String())
	}
	if string(forwarded) != payload {
		t.Errorf("request body modified in flight:\nwant %q\ngot  %q", payload, forwarded)
	}
}

func TestPeersPassthrough(t *testing.T) {
	const fixture = `{"10.0.0.5":{"tcp_port":7000}}`

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/peers" {
			t.Errorf("unexpected backend path %s", r.URL.Path)
		}
		w.Write([]byte(fixture))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/peers", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != fixture {
		t.Errorf("expected verbatim body %q, got %q", fixture, resp.Body.String())
	}
}

func TestBackendStatusPropagates(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"error","message":"chat room not initialized"}`))
	}))
	defer backend.Close()

	handler := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Errorf("expected backend's 503 to propagate, got %d", resp.Code)
	}
}

func TestUnreachableBackendFailsLoudly(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // unreachable from here on

	handler := newTestServer(t, backend.URL)

	for _, path := range []string{"/api/peers", "/api/messages"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadGateway {
			t.Errorf("%s: expected 502 for unreachable backend, got %d", path, resp.Code)
		}
	}
}

func TestHealthDoesNotProbeBackend(t *testing.T) {
	// No backend at all; health must still answer.
	handler := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", resp.Code)
	}
}

func TestRootServesBuiltInClient(t *testing.T) {
	handler := newTestServer(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from /, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}
