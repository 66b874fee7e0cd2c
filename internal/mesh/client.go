package mesh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBadShape marks a response whose body decoded but was not the shape the
// contract promises (e.g. a non-array message list). Callers distinguish it
// from transport failures so they can render an explicit fallback state
// instead of keeping stale data.
var ErrBadShape = errors.New("unexpected response shape")

// Client talks to the backend gateway over its two-and-a-half HTTP
// operations: list peers, list messages, send.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a gateway client for the given base URL. A zero timeout
// disables the per-request deadline.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Peers fetches the current peer snapshot.
func (c *Client) Peers(ctx context.Context) (PeerSnapshot, error) {
	body, err := c.get(ctx, "/peers")
	if err != nil {
		return nil, err
	}

	var snap PeerSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("%w: peers is not an object", ErrBadShape)
	}
	return snap, nil
}

// Messages fetches the full known message list.
func (c *Client) Messages(ctx context.Context) (MessageList, error) {
	body, err := c.get(ctx, "/messages")
	if err != nil {
		return nil, err
	}

	var list MessageList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: messages is not an array", ErrBadShape)
	}
	return list, nil
}

// Send submits an outbound message and returns the gateway's acknowledgment
// body uninspected.
func (c *Client) Send(ctx context.Context, msg Outbound) (json.RawMessage, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode outbound: %w", err)
	}
	ack, _, err := c.RawSend(ctx, body)
	return ack, err
}

// RawPeers returns the gateway's /peers response body and status verbatim.
func (c *Client) RawPeers(ctx context.Context) ([]byte, int, error) {
	return c.rawGet(ctx, "/peers")
}

// RawMessages returns the gateway's /messages response body and status verbatim.
func (c *Client) RawMessages(ctx context.Context) ([]byte, int, error) {
	return c.rawGet(ctx, "/messages")
}

// RawSend forwards an already-encoded request body to /send and returns the
// gateway's response body and status verbatim.
func (c *Client) RawSend(ctx context.Context, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/send", bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("post %s/send: %w", c.base, err)
	}
	defer resp.Body.Close()

	ack, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read send response: %w", err)
	}
	return ack, resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, status, err := c.rawGet(ctx, path)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("get %s%s: status %d", c.base, path, status)
	}
	return body, nil
}

func (c *Client) rawGet(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("get %s%s: %w", c.base, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
