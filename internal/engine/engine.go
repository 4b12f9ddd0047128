//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
// Package engine owns the live snapshot. Messages are applied one at a time
// on the Run goroutine; effects run concurrently and report back as
// messages, so every state change goes through state.Update.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"gist/feedsync/internal/api"
	"gist/feedsync/internal/state"
	"gist/feedsync/internal/syncsession"
	"gist/feedsync/pkg/logger"
	"gist/feedsync/pkg/snowflake"
)

const (
	defaultMaxInFlight = 8
	queueSize          = 64
)

var ErrStopped = errors.New("engine stopped")

// Syncer runs one sync session to completion.
type Syncer interface {
	Run(ctx context.Context, onProgress func(float64)) error
}

// Dispatcher is the write side used by the HTTP layer and the scheduler.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg state.Msg) error
	Snapshot() state.Snapshot
}

type Options struct {
	// TimeZone is an IANA name; empty means the process local zone.
	TimeZone string
	// MaxInFlight bounds concurrent HTTP effects. The sync session is not counted.
	MaxInFlight int64
}

type Engine struct {
	client api.Client
	syncer Syncer
	sem    *semaphore.Weighted

	msgs    chan state.Msg
	done    chan struct{}
	wg      sync.WaitGroup
	initial []state.Effect

	mu       sync.RWMutex
	snapshot state.Snapshot
	version  uint64
}

func New(client api.Client, syncer Syncer, opts Options) *Engine {
	maxInFlight := opts.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	snapshot, initial := state.Init(opts.TimeZone)
	return &Engine{
		client:   client,
		syncer:   syncer,
		sem:      semaphore.NewWeighted(maxInFlight),
		msgs:     make(chan state.Msg, queueSize),
		done:     make(chan struct{}),
		initial:  initial,
		snapshot: snapshot,
	}
}

// Snapshot returns the current snapshot. It is a value; slices inside it
// are never mutated after publication.
func (e *Engine) Snapshot() state.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Version increments on every applied message.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// Dispatch queues msg for the Run loop.
func (e *Engine) Dispatch(ctx context.Context, msg state.Msg) error {
	select {
	case <-e.done:
		return ErrStopped
	default:
	}
	select {
	case e.msgs <- msg:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the initial fetches and applies messages until ctx is done.
// It waits for in-flight effects before returning.
func (e *Engine) Run(ctx context.Context) error {
	logger.Info("engine started", "module", "engine", "action", "start", "resource", "snapshot", "result", "ok")
	defer func() {
		close(e.done)
		e.wg.Wait()
		logger.Info("engine stopped", "module", "engine", "action", "stop", "resource", "snapshot", "result", "ok")
	}()

	e.execute(ctx, e.initial)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-e.msgs:
			e.apply(ctx, msg)
		}
	}
}

func (e *Engine) apply(ctx context.Context, msg state.Msg) {
	e.mu.Lock()
	next, effects := state.Update(e.snapshot, msg)
	e.snapshot = next
	e.version++
	e.mu.Unlock()

	logger.Debug("message applied", "module", "engine", "action", "update", "resource", "snapshot", "result", "ok", "msg", fmt.Sprintf("%T", msg), "effects", len(effects))
	e.execute(ctx, effects)
}

func (e *Engine) execute(ctx context.Context, effects []state.Effect) {
	for _, eff := range effects {
		id := snowflake.NextID()
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.perform(ctx, id, eff)
		}()
	}
}

// post feeds a result back into the loop. Results produced after shutdown
// are dropped.
func (e *Engine) post(ctx context.Context, msg state.Msg) {
	select {
	case e.msgs <- msg:
	case <-ctx.Done():
	}
}

func (e *Engine) perform(ctx context.Context, id int64, eff state.Effect) {
	switch eff := eff.(type) {
	case state.Navigate:
		e.post(ctx, state.Navigated{Route: eff.Route})
		return
	case state.ResolveZone:
		e.post(ctx, resolveZone(eff.Name))
		return
	case state.OpenSync:
		e.runSync(ctx, id)
		return
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer e.sem.Release(1)

	start := time.Now()
	msg, err := e.request(ctx, eff)
	if msg == nil {
		return
	}
	if err != nil {
		logger.Warn("effect failed", "module", "engine", "action", "effect", "resource", fmt.Sprintf("%T", eff), "result", "failed", "effect_id", id, "error", err)
	} else {
		logger.Debug("effect done", "module", "engine", "action", "effect", "resource", fmt.Sprintf("%T", eff), "result", "ok", "effect_id", id, "duration_ms", time.Since(start).Milliseconds())
	}
	e.post(ctx, msg)
}

// request performs one HTTP effect and maps its outcome to a message. The
// error is returned alongside for logging only.
func (e *Engine) request(ctx context.Context, eff state.Effect) (state.Msg, error) {
	switch eff := eff.(type) {
	case state.FetchEntries:
		entries, err := e.client.ListEntries(ctx)
		if err != nil {
			return state.EntriesFetchFailed{Err: err}, err
		}
		return state.EntriesFetched{Entries: entries}, nil
	case state.FetchFeeds:
		feeds, err := e.client.ListFeeds(ctx)
		if err != nil {
			return state.FeedsFetchFailed{Err: err}, err
		}
		return state.FeedsFetched{Feeds: feeds}, nil
	case state.CreateFeed:
		feed, err := e.client.AddFeed(ctx, eff.Link)
		if err != nil {
			return state.AddFeedFailed{Err: err}, err
		}
		return state.AddFeedConfirmed{Feed: feed}, nil
	case state.SaveFeed:
		updated, err := e.client.UpdateFeed(ctx, eff.Original, eff.Edited)
		if err != nil {
			return state.EditFailed{Err: err}, err
		}
		return state.EditConfirmed{Original: eff.Original, Updated: updated}, nil
	case state.UpdateEntry:
		updated, err := e.client.UpdateEntry(ctx, eff.Entry, eff.Patch)
		if err != nil {
			return state.EntryUpdateFailed{Err: err}, err
		}
		return state.EntryUpdateConfirmed{Original: eff.Entry, Updated: updated}, nil
	default:
		logger.Warn("unknown effect", "module", "engine", "action", "effect", "resource", fmt.Sprintf("%T", eff), "result", "skipped")
		return nil, nil
	}
}

func (e *Engine) runSync(ctx context.Context, id int64) {
	err := e.syncer.Run(ctx, func(p float64) {
		e.post(ctx, state.SyncProgress{Progress: p})
	})
	switch {
	case err == nil:
		e.post(ctx, state.SyncDone{})
	case errors.Is(err, syncsession.ErrAlreadySyncing):
		// the running session will report for both requests
		logger.Warn("sync already running", "module", "engine", "action", "sync", "resource", "session", "result", "skipped", "effect_id", id)
	case ctx.Err() != nil:
		// shutting down
	default:
		e.post(ctx, state.SyncFailed{Err: err})
	}
}

func resolveZone(name string) state.Msg {
	if name == "" {
		return state.ZoneResolved{Location: time.Local}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return state.ZoneFailed{Err: err}
	}
	return state.ZoneResolved{Location: loc}
}
