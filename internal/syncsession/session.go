// Package syncsession runs the single background sync: it opens the
// server's progress channel, streams progress to the caller and returns
// once the server reports completion.
package syncsession

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"gist/feedsync/pkg/logger"
	"gist/feedsync/pkg/network"
)

const defaultTimeout = 10 * time.Minute

var (
	ErrAlreadySyncing = errors.New("sync already in progress")
	// ErrClosedEarly means the server closed the channel without reporting done.
	ErrClosedEarly = errors.New("sync channel closed before done")
	ErrTimeout     = errors.New("sync timed out")
)

// message is one server frame: either {"progress": p} or {"status": "done"}.
type message struct {
	Progress *float64 `json:"progress,omitempty"`
	Status   string   `json:"status,omitempty"`
}

// Manager guards a single in-flight sync session.
type Manager struct {
	syncURL       string
	origin        string
	clientFactory *network.ClientFactory
	timeout       time.Duration

	mu        sync.Mutex
	isSyncing bool
}

// NewManager returns a manager for the channel at syncURL (ws or wss).
// origin is sent as the Origin header; a zero timeout uses the default.
func NewManager(syncURL, origin string, clientFactory *network.ClientFactory, timeout time.Duration) (*Manager, error) {
	u, err := url.Parse(syncURL)
	if err != nil {
		return nil, fmt.Errorf("parse sync url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("sync url %q: scheme must be ws or wss", syncURL)
	}
	if clientFactory == nil {
		clientFactory = network.NewClientFactory(nil, nil)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Manager{syncURL: syncURL, origin: origin, clientFactory: clientFactory, timeout: timeout}, nil
}

// DeriveURL maps an http(s) base URL to the ws(s) sync endpoint on the same host.
func DeriveURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	u.Path = "/sync"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// InProgress reports whether a session is currently open.
func (m *Manager) InProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isSyncing
}

// Run opens the channel and blocks until the server reports done (nil),
// the channel fails, ctx is cancelled or the timeout elapses. onProgress
// is called from the calling goroutine for every progress frame.
func (m *Manager) Run(ctx context.Context, onProgress func(float64)) error {
	m.mu.Lock()
	if m.isSyncing {
		m.mu.Unlock()
		return ErrAlreadySyncing
	}
	m.isSyncing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.isSyncing = false
		m.mu.Unlock()
	}()

	sessionID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	logger.Info("sync started", "module", "syncsession", "action", "sync", "resource", "session", "result", "ok", "session_id", sessionID)

	conn, err := m.dial(ctx)
	if err != nil {
		logger.Warn("sync dial failed", "module", "syncsession", "action", "dial", "resource", "session", "result", "failed", "session_id", sessionID, "error", err)
		return m.wrapCtxErr(ctx, fmt.Errorf("open sync channel: %w", err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	frames := 0
	for {
		var msg message
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
				netErr    net.Error
			)
			switch {
			case ctx.Err() != nil:
				err = m.wrapCtxErr(ctx, err)
			case errors.As(err, &netErr) && netErr.Timeout():
				err = fmt.Errorf("%w after %s", ErrTimeout, m.timeout)
			case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
				logger.Debug("sync frame ignored", "module", "syncsession", "action", "receive", "resource", "session", "result", "skipped", "session_id", sessionID, "error", err)
				continue
			case errors.Is(err, io.EOF):
				err = ErrClosedEarly
			default:
				err = fmt.Errorf("receive sync frame: %w", err)
			}
			logger.Warn("sync failed", "module", "syncsession", "action", "sync", "resource", "session", "result", "failed", "session_id", sessionID, "frames", frames, "error", err)
			return err
		}
		frames++

		if msg.Status == "done" {
			logger.Info("sync done", "module", "syncsession", "action", "sync", "resource", "session", "result", "ok", "session_id", sessionID, "frames", frames)
			return nil
		}
		if msg.Progress != nil && onProgress != nil {
			onProgress(*msg.Progress)
		}
	}
}

func (m *Manager) wrapCtxErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, m.timeout)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (m *Manager) dial(ctx context.Context) (*websocket.Conn, error) {
	config, err := websocket.NewConfig(m.syncURL, m.origin)
	if err != nil {
		return nil, err
	}

	host := config.Location.Host
	if config.Location.Port() == "" {
		port := "80"
		if config.Location.Scheme == "wss" {
			port = "443"
		}
		host = net.JoinHostPort(config.Location.Hostname(), port)
	}

	raw, err := m.clientFactory.DialContext(ctx, "tcp", host)
	if err != nil {
		return nil, err
	}
	if config.Location.Scheme == "wss" {
		tlsConn := tls.Client(raw, &tls.Config{ServerName: config.Location.Hostname()})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			raw.Close()
			return nil, err
		}
		raw = tlsConn
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = raw.SetDeadline(deadline)
	}
	conn, err := websocket.NewClient(config, raw)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return conn, nil
}
