package gatewaysim

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/disasternet/relay/internal/store"
)

func newTestGateway(t *testing.T) (*Gateway, http.Handler) {
	t.Helper()

	disabledLogger := zerolog.Nop()
	g := New("node-a", store.NewMemoryLog(), 15*time.Second, &disabledLogger)
	return g, g.routes()
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestSendThenMessages(t *testing.T) {
	_, handler := newTestGateway(t)

	resp := do(handler, http.MethodPost, "/send", `{"type":"CHAT","text":"water at shelter 3"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("send: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var ack struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Status != "sent" || ack.ID == "" {
		t.Errorf("unexpected ack: %+v", ack)
	}

	resp = do(handler, http.MethodGet, "/messages", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("messages: expected 200, got %d", resp.Code)
	}

	var lines []string
	if err := json.Unmarshal(resp.Body.Bytes(), &lines); err != nil {
		t.Fatalf("messages response is not an array: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 message, got %d", len(lines))
	}
	if want := "[UI]: water at shelter 3"; !bytes.Contains([]byte(lines[0]), []byte(want)) {
		t.Errorf("formatted line %q missing %q", lines[0], want)
	}
}

func TestSendRejectsEmptyText(t *testing.T) {
	_, handler := newTestGateway(t)

	for _, body := range []string{`{"type":"CHAT","text":""}`, `{"type":"CHAT","text":"   "}`} {
		resp := do(handler, http.MethodPost, "/send", body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, resp.Code)
		}
	}

	resp := do(handler, http.MethodGet, "/messages", "")
	var lines []string
	json.Unmarshal(resp.Body.Bytes(), &lines)
	if len(lines) != 0 {
		t.Errorf("empty sends must not be stored, got %v", lines)
	}
}

func TestSendDefaultsType(t *testing.T) {
	g, handler := newTestGateway(t)

	resp := do(handler, http.MethodPost, "/send", `{"text":"no type given"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	msgs, err := g.msgs.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Kind != "CHAT" {
		t.Errorf("expected default CHAT kind, got %+v", msgs)
	}
}

func TestAnnounceAndPeers(t *testing.T) {
	_, handler := newTestGateway(t)

	resp := do(handler, http.MethodPost, "/announce", `{"id":"node-b","meta":{"tcp_port":7000}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("announce: expected 200, got %d", resp.Code)
	}

	resp = do(handler, http.MethodGet, "/peers", "")
	var snap map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("peers response is not an object: %v", err)
	}
	if len(snap) != 1 {
		t.Fatalf("expected 1 peer, got %d", len(snap))
	}
	if string(snap["node-b"]) != `{"tcp_port":7000}` {
		t.Errorf("peer metadata modified: %s", snap["node-b"])
	}
}

func TestClearMessages(t *testing.T) {
	_, handler := newTestGateway(t)

	do(handler, http.MethodPost, "/send", `{"type":"CHAT","text":"soon gone"}`)
	resp := do(handler, http.MethodPost, "/clear-messages", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", resp.Code)
	}

	resp = do(handler, http.MethodGet, "/messages", "")
	var lines []string
	json.Unmarshal(resp.Body.Bytes(), &lines)
	if len(lines) != 0 {
		t.Errorf("expected empty log after clear, got %v", lines)
	}
}

func TestHealthReportsLeader(t *testing.T) {
	_, handler := newTestGateway(t)

	do(handler, http.MethodPost, "/announce", `{"id":"node-z"}`)

	resp := do(handler, http.MethodGet, "/health", "")
	var health struct {
		Status string `json:"status"`
		SelfID string `json:"self_id"`
		Leader string `json:"leader"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &health); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if health.Status != "healthy" || health.SelfID != "node-a" {
		t.Errorf("unexpected health: %+v", health)
	}
	if health.Leader != "node-z" {
		t.Errorf("expected node-z to lead, got %q", health.Leader)
	}
}
