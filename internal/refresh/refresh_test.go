package refresh

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { close(f.stopped) }

func waitRun(t *testing.T, runs <-chan int, want int) {
	t.Helper()
	select {
	case got := <-runs:
		if got != want {
			t.Fatalf("run %d, want %d", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run %d did not happen", want)
	}
}

func TestSchedulerRunsOnTicks(t *testing.T) {
	ticker := newFakeTicker()
	runs := make(chan int)
	n := 0
	s := &Scheduler{
		Interval: time.Minute,
		Task: func(ctx context.Context) error {
			n++
			runs <- n
			return nil
		},
		NewTicker: func(d time.Duration) Ticker {
			if d != time.Minute {
				t.Errorf("ticker interval = %v, want 1m", d)
			}
			return ticker
		},
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitRun(t, runs, 1)
	ticker.c <- time.Now()
	waitRun(t, runs, 2)
	ticker.c <- time.Now()
	waitRun(t, runs, 3)

	s.Stop()
	select {
	case <-ticker.stopped:
	default:
		t.Fatal("ticker not stopped")
	}
	s.Stop()
}

func TestSchedulerKeepsGoingAfterError(t *testing.T) {
	ticker := newFakeTicker()
	runs := make(chan int)
	n := 0
	s := &Scheduler{
		Interval: time.Second,
		Task: func(ctx context.Context) error {
			n++
			runs <- n
			return errors.New("weather down")
		},
		NewTicker: func(time.Duration) Ticker { return ticker },
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	waitRun(t, runs, 1)
	ticker.c <- time.Now()
	waitRun(t, runs, 2)
}

func TestSchedulerStartTwice(t *testing.T) {
	ticker := newFakeTicker()
	s := &Scheduler{
		Interval:  time.Second,
		Task:      func(ctx context.Context) error { return nil },
		NewTicker: func(time.Duration) Ticker { return ticker },
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	if err := s.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Start err = %v, want ErrRunning", err)
	}
}

func TestSchedulerContextCancel(t *testing.T) {
	ticker := newFakeTicker()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		Interval:  time.Second,
		Task:      func(ctx context.Context) error { return nil },
		NewTicker: func(time.Duration) Ticker { return ticker },
	}
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	finished := make(chan struct{})
	go func() {
		s.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}

func TestSchedulerRestartAfterContextCancel(t *testing.T) {
	runs := make(chan int, 4)
	n := 0
	s := &Scheduler{
		Interval: time.Second,
		Task: func(ctx context.Context) error {
			n++
			runs <- n
			return nil
		},
		NewTicker: func(time.Duration) Ticker { return newFakeTicker() },
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	waitRun(t, runs, 1)
	cancel()
	s.Wait()

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start after context cancel = %v, want nil", err)
	}
	waitRun(t, runs, 2)
	s.Stop()
}
