package syncsession_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"gist/feedsync/internal/syncsession"
)

func newSyncServer(t *testing.T, handler func(ws *websocket.Conn)) string {
	t.Helper()
	server := httptest.NewServer(websocket.Handler(handler))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/sync"
}

func newManager(t *testing.T, syncURL string, timeout time.Duration) *syncsession.Manager {
	t.Helper()
	m, err := syncsession.NewManager(syncURL, "http://localhost", nil, timeout)
	require.NoError(t, err)
	return m
}

type progressRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (r *progressRecorder) record(p float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, p)
}

func TestRun_ProgressThenDone(t *testing.T) {
	url := newSyncServer(t, func(ws *websocket.Conn) {
		_ = websocket.JSON.Send(ws, map[string]any{"progress": 0.25})
		_ = websocket.JSON.Send(ws, map[string]any{"progress": 0.5})
		_ = websocket.JSON.Send(ws, map[string]any{"status": "done"})
		var discard []byte
		_ = websocket.Message.Receive(ws, &discard)
	})
	m := newManager(t, url, time.Second)

	var rec progressRecorder
	err := m.Run(context.Background(), rec.record)
	require.NoError(t, err)
	require.Equal(t, []float64{0.25, 0.5}, rec.values)
	require.False(t, m.InProgress())
}

func TestRun_SkipsMalformedFrames(t *testing.T) {
	url := newSyncServer(t, func(ws *websocket.Conn) {
		_ = websocket.Message.Send(ws, "not json")
		_ = websocket.Message.Send(ws, `{"progress":"half"}`)
		_ = websocket.Message.Send(ws, `{"status":"working"}`)
		_ = websocket.Message.Send(ws, `{"progress":0.9}`)
		_ = websocket.Message.Send(ws, `{"status":"done"}`)
	})
	m := newManager(t, url, time.Second)

	var rec progressRecorder
	require.NoError(t, m.Run(context.Background(), rec.record))
	require.Equal(t, []float64{0.9}, rec.values)
}

func TestRun_ClosedBeforeDone(t *testing.T) {
	url := newSyncServer(t, func(ws *websocket.Conn) {
		_ = websocket.JSON.Send(ws, map[string]any{"progress": 0.1})
	})
	m := newManager(t, url, time.Second)

	err := m.Run(context.Background(), nil)
	require.ErrorIs(t, err, syncsession.ErrClosedEarly)
	require.False(t, m.InProgress())
}

func TestRun_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	url := newSyncServer(t, func(ws *websocket.Conn) {
		<-release
	})
	m := newManager(t, url, 100*time.Millisecond)

	err := m.Run(context.Background(), nil)
	require.ErrorIs(t, err, syncsession.ErrTimeout)
}

func TestRun_Cancelled(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	url := newSyncServer(t, func(ws *websocket.Conn) {
		<-release
	})
	m := newManager(t, url, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	err := m.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	url := newSyncServer(t, func(ws *websocket.Conn) {
		<-release
		_ = websocket.JSON.Send(ws, map[string]any{"status": "done"})
	})
	m := newManager(t, url, 5*time.Second)

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background(), nil) }()

	require.Eventually(t, m.InProgress, time.Second, 10*time.Millisecond)
	require.ErrorIs(t, m.Run(context.Background(), nil), syncsession.ErrAlreadySyncing)

	close(release)
	require.NoError(t, <-done)
	require.False(t, m.InProgress())
}

func TestRun_DialFailure(t *testing.T) {
	m := newManager(t, "ws://127.0.0.1:1/sync", time.Second)
	err := m.Run(context.Background(), nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, syncsession.ErrAlreadySyncing))
	require.False(t, m.InProgress())
}

func TestNewManager_RejectsHTTPScheme(t *testing.T) {
	_, err := syncsession.NewManager("http://localhost/sync", "http://localhost", nil, 0)
	require.Error(t, err)
}

func TestDeriveURL(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{base: "http://localhost:8000", want: "ws://localhost:8000/sync"},
		{base: "https://feeds.example.com/api/?x=1", want: "wss://feeds.example.com/sync"},
		{base: "ftp://feeds.example.com", wantErr: true},
	}

	for _, tt := range tests {
		got, err := syncsession.DeriveURL(tt.base)
		if tt.wantErr {
			require.Error(t, err, tt.base)
			continue
		}
		require.NoError(t, err, tt.base)
		require.Equal(t, tt.want, got)
	}
}
