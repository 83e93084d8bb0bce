// Package refresh runs the redraw task on a fixed period.
package refresh

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Ticker is the part of time.Ticker the scheduler uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

// Task is one redraw.  An error is logged and the schedule continues.
type Task func(ctx context.Context) error

var ErrRunning = errors.New("refresh: already running")

// Scheduler calls Task once at start and then every Interval until stopped.
// Runs never overlap: a slow task delays the next tick instead.
type Scheduler struct {
	Interval  time.Duration
	Task      Task
	NewTicker func(time.Duration) Ticker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a scheduler on the real clock.
func New(interval time.Duration, task Task) *Scheduler {
	return &Scheduler{Interval: interval, Task: task, NewTicker: NewTimeTicker}
}

// Start begins the schedule in a goroutine.  It returns after the first run
// has been started, not finished.  Once the schedule has ended, through Stop
// or the context, Start may be called again.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return ErrRunning
	}
	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	ticker := newTicker(s.Interval)
	go s.loop(ctx, ticker, s.done)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer s.finish(done)
	defer ticker.Stop()
	s.run(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			s.run(ctx)
		}
	}
}

// finish marks the schedule ended so Start may be called again, unless Stop
// has already done so.
func (s *Scheduler) finish(done chan struct{}) {
	s.mu.Lock()
	if s.done == done {
		s.cancel()
		s.cancel, s.done = nil, nil
	}
	s.mu.Unlock()
	close(done)
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.Task(ctx); err != nil {
		log.Printf("refresh: %v", err)
	}
}

// Stop cancels the schedule and waits for a run in progress to return.
// It is safe to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the schedule ends, either by Stop or by the context
// passed to Start being cancelled.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}
