package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
)

// MessageArcChanged is the only notification kind the watcher acts on.
const MessageArcChanged = "arc-changed"

// ErrClosed is returned by Channel.Next once the channel was closed
// normally. Any other error from Next is a transport failure.
var ErrClosed = errors.New("watcher: channel closed")

// Message is a change notification.
type Message struct {
	Type    string             `json:"type"`
	ArcData *manifest.Manifest `json:"arcData,omitempty"`
}

// Channel is an open real-time notification channel.
type Channel interface {
	Next(ctx context.Context) (Message, error)
	Close() error
}

// Transport reaches the data source.
type Transport interface {
	// Dial opens a real-time channel.
	Dial(ctx context.Context) (Channel, error)
	// Fetch returns the current manifest snapshot in its JSON form.
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPTransport talks to an arcdocs server: notifications over the /ws
// WebSocket and snapshots from /api/arc.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
	Dialer  *websocket.Dialer
}

// NewHTTPTransport creates a transport for the server at baseURL.
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
		Dialer:  websocket.DefaultDialer,
	}
}

// Dial connects to the notification WebSocket.
func (t *HTTPTransport) Dial(ctx context.Context) (Channel, error) {
	wsURL := "ws" + strings.TrimPrefix(t.BaseURL, "http") + "/ws"
	conn, _, err := t.Dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", wsURL, err)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	return &wsChannel{conn: conn, stop: stop}, nil
}

// Fetch downloads the current snapshot. Non-2xx responses are errors.
func (t *HTTPTransport) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"/api/arc", nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching snapshot: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}

type wsChannel struct {
	conn *websocket.Conn
	stop func() bool
}

// Next blocks until a well-formed message arrives. Malformed payloads are
// skipped.
func (c *wsChannel) Next(ctx context.Context) (Message, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) ||
				websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return Message{}, fmt.Errorf("%w: %v", ErrClosed, err)
			}
			return Message{}, err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		return msg, nil
	}
}

func (c *wsChannel) Close() error {
	c.stop()
	return c.conn.Close()
}
