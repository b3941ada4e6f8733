// Package relay talks to the socket.io calendar relay used by the calendar
// built-ins. The connection is opened on first use and reused afterwards.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
	"github.com/AndrewRoe34/quick-sched-sub000/internal/ctxlog"
)

// Client is a lazily connected socket.io client.
type Client struct {
	settings config.RelaySettings

	mu   sync.Mutex
	sock *socket.Socket
}

// New validates the relay address; it does not connect.
func New(s config.RelaySettings) (*Client, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relay URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("relay URL %q needs a scheme and a host", s.URL)
	}
	if s.Namespace == "" {
		s.Namespace = "/"
	}
	return &Client{settings: s}, nil
}

func (c *Client) connect(ctx context.Context) (*socket.Socket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sock != nil && c.sock.Connected() {
		return c.sock, nil
	}

	logger := ctxlog.FromContext(ctx).With("relay", c.settings.URL, "namespace", c.settings.Namespace)
	parsed, _ := url.Parse(c.settings.URL)

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	io := socket.NewManager(baseURL, opts).Socket(c.settings.Namespace, opts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Relay connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})
	io.Connect()

	waitCtx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("relay connection failed: %w", err)
		}
	case <-waitCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s connecting to relay %s", c.settings.Timeout, c.settings.URL)
	}
	c.sock = io
	return io, nil
}

// Emit sends an event without waiting for an answer.
func (c *Client) Emit(ctx context.Context, event string, payload any) error {
	io, err := c.connect(ctx)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Emitting relay event.", "event", event)
	return io.Emit(event, payload)
}

// Request emits event and waits for the first reply event, returning its
// payload re-encoded as JSON.
func (c *Client) Request(ctx context.Context, event, reply string, payload any) (json.RawMessage, error) {
	io, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Emitting relay request.", "event", event, "reply", reply)
	return awaitReply(ctx, io, reply, c.settings.Timeout, func() error {
		if err := io.Emit(event, payload); err != nil {
			return fmt.Errorf("failed to emit %s: %w", event, err)
		}
		return nil
	})
}

// replySource is the part of a socket awaitReply needs.
type replySource interface {
	Once(types.EventName, ...types.Listener) error
	RemoveListener(types.EventName, types.Listener) bool
}

// awaitReply registers a one-time listener for reply, calls send and waits
// for the reply. The listener is removed again when the wait gives up.
func awaitReply(ctx context.Context, em replySource, reply string, timeout time.Duration, send func() error) (json.RawMessage, error) {
	type result struct {
		data json.RawMessage
		err  error
	}
	done := make(chan result, 1)
	var listener types.Listener = func(data ...any) {
		res := result{data: json.RawMessage("null")}
		if len(data) > 0 {
			res.data, res.err = json.Marshal(data[0])
		}
		select {
		case done <- res:
		default:
		}
	}
	name := types.EventName(reply)
	if err := em.Once(name, listener); err != nil {
		return nil, fmt.Errorf("failed to listen for %s: %w", reply, err)
	}

	if err := send(); err != nil {
		em.RemoveListener(name, listener)
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case <-waitCtx.Done():
		em.RemoveListener(name, listener)
		return nil, fmt.Errorf("timed out after %s waiting for relay event %q", timeout, reply)
	case res := <-done:
		return res.data, res.err
	}
}

// Close drops the connection if one was opened.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sock != nil {
		c.sock.Disconnect()
		c.sock = nil
	}
}
