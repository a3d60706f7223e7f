package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 3 * * *", false},    // 3 AM daily
		{"*/15 * * * *", false}, // every 15 minutes
		{"0 12 * * 1-5", false}, // noon weekdays
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseCron(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCron(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}

func TestDaemon_NextRun(t *testing.T) {
	d, err := NewDaemon("0 3 * * *", func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	next := d.NextRun(now)

	want := time.Date(2025, 6, 16, 3, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("NextRun = %s, want %s", next, want)
	}
}

func TestNewDaemon_InvalidCron(t *testing.T) {
	if _, err := NewDaemon("bogus", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestDaemon_OverlapSuppression(t *testing.T) {
	blocker := make(chan struct{})
	var calls atomic.Int32

	d, err := NewDaemon("* * * * *", func(ctx context.Context) error {
		calls.Add(1)
		<-blocker
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	d.fire(ctx)
	d.fire(ctx) // must be skipped while the first is in flight

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("job ran %d times, want 1", got)
	}
	if !d.Running() {
		t.Error("daemon should report a run in flight")
	}

	close(blocker)
	deadline = time.Now().Add(time.Second)
	for d.Running() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if d.Running() {
		t.Error("daemon should be idle after the job returns")
	}
}

func TestDaemon_RunStopsOnCancel(t *testing.T) {
	d, err := NewDaemon("0 3 * * *", func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
}
