// Package scheduler triggers background syncs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"gist/feedsync/internal/state"
	"gist/feedsync/pkg/logger"
)

const dispatchTimeout = 5 * time.Second

// Dispatcher accepts messages for the engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg state.Msg) error
}

type Scheduler struct {
	dispatcher Dispatcher
	cron       *cron.Cron
	spec       string
	entryID    cron.EntryID

	mu      sync.Mutex
	running bool
}

// New parses spec (standard five fields or descriptors such as "@every 1h")
// and schedules a RequestSync for each tick. loc may be nil for local time.
func New(dispatcher Dispatcher, spec string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithLocation(loc)),
		spec:       spec,
	}
	id, err := s.cron.AddFunc(spec, s.tick)
	if err != nil {
		return nil, fmt.Errorf("parse auto sync schedule %q: %w", spec, err)
	}
	s.entryID = id
	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	logger.Info("scheduler started", "module", "scheduler", "action", "start", "resource", "sync", "result", "ok", "schedule", s.spec, "next", s.Next())
}

// Stop halts the schedule and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "stop", "resource", "sync", "result", "ok")
}

// Next is the time of the next scheduled sync, zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := s.dispatcher.Dispatch(ctx, state.RequestSync{}); err != nil {
		logger.Warn("scheduled sync not dispatched", "module", "scheduler", "action", "dispatch", "resource", "sync", "result", "failed", "error", err)
		return
	}
	logger.Info("scheduled sync dispatched", "module", "scheduler", "action", "dispatch", "resource", "sync", "result", "ok")
}
