// Package schedule runs cleanup invocations on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the work one scheduled tick performs
type Job func(ctx context.Context) error

// ParseCron parses a standard five-field cron expression
func ParseCron(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	return parser.Parse(expr)
}

// Daemon triggers a job on a cron schedule. Ticks never overlap: if a
// run is still in flight when the next tick fires, that tick is
// skipped and logged.
type Daemon struct {
	sched   cron.Schedule
	expr    string
	job     Job
	running bool
	lastRun time.Time
	mu      sync.Mutex
}

// NewDaemon creates a Daemon for the given cron expression
func NewDaemon(expr string, job Job) (*Daemon, error) {
	sched, err := ParseCron(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return &Daemon{sched: sched, expr: expr, job: job}, nil
}

// NextRun returns the next scheduled tick after now
func (d *Daemon) NextRun(now time.Time) time.Time {
	return d.sched.Next(now)
}

// Run blocks, firing the job on schedule until the context is cancelled
func (d *Daemon) Run(ctx context.Context) error {
	log.Printf("[daemon] schedule %q, next run at %s", d.expr, d.NextRun(time.Now()).Format(time.RFC3339))

	for {
		next := d.NextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			d.fire(ctx)
		}
	}
}

func (d *Daemon) fire(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		log.Printf("[daemon] previous run still in progress, skipping tick")
		return
	}
	d.running = true
	d.mu.Unlock()

	go func() {
		defer func() {
			d.mu.Lock()
			d.running = false
			d.lastRun = time.Now()
			d.mu.Unlock()
		}()

		if err := d.job(ctx); err != nil {
			log.Printf("[daemon] run failed: %v", err)
		}
	}()
}

// Running reports whether a job is currently in flight
func (d *Daemon) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// LastRun returns when the last completed run finished
func (d *Daemon) LastRun() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRun
}
