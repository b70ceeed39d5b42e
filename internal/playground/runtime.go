package playground

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned when a Runtime is no longer running.
var ErrStopped = errors.New("playground: runtime stopped")

// Runtime drives a Playground from a single goroutine. Commands and timer
// expirations are delivered to the loop over channels, so the playground
// never needs a lock.
type Runtime struct {
	pg       *Playground
	logger   *log.Logger
	onChange func(Snapshot)

	calls   chan func()
	expired chan firedTimer
	done    chan struct{}

	// Loop-owned.
	timers  map[uint64]*time.Timer
	nextID  uint64
	pending int
	waiters []chan struct{}
}

type firedTimer struct {
	id     uint64
	expiry Expiry
}

// NewRuntime wraps a playground. A nil logger discards log output.
func NewRuntime(pg *Playground, logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runtime{
		pg:      pg,
		logger:  logger,
		calls:   make(chan func()),
		expired: make(chan firedTimer),
		done:    make(chan struct{}),
		timers:  make(map[uint64]*time.Timer),
	}
}

// OnChange registers a callback invoked on the loop goroutine after every
// command or applied expiry. Must be called before Run.
func (r *Runtime) OnChange(fn func(Snapshot)) {
	r.onChange = fn
}

// Run processes commands and expirations until ctx is cancelled.
// Pending timers are stopped on return.
func (r *Runtime) Run(ctx context.Context) error {
	defer func() {
		for _, t := range r.timers {
			t.Stop()
		}
		for _, w := range r.waiters {
			close(w)
		}
		close(r.done)
	}()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("runtime stopping", "pending", r.pending)
			return nil

		case fn := <-r.calls:
			fn()

		case fired := <-r.expired:
			delete(r.timers, fired.id)
			r.pending--
			e := fired.expiry
			if r.pg.Expire(e) {
				r.logger.Info("effect expired", "effect", e.Effect, "generation", e.Generation)
				r.notify(r.pg.Snapshot())
			} else {
				r.logger.Debug("stale expiry ignored", "effect", e.Effect, "generation", e.Generation)
			}
			r.releaseWaiters()
		}
	}
}

// Submit executes a command on the loop and schedules its expiries.
func (r *Runtime) Submit(ctx context.Context, raw string) (Result, error) {
	var res Result
	err := r.do(ctx, func() {
		res = r.pg.Execute(raw)
		r.logger.Info("command executed", "command", raw, "rule", res.Rule)
		for _, e := range res.Expiries {
			r.schedule(e)
		}
		r.notify(res.Snapshot)
	})
	return res, err
}

// Snapshot returns the current playground snapshot.
func (r *Runtime) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.do(ctx, func() {
		snap = r.pg.Snapshot()
	})
	return snap, err
}

// Wait blocks until no expiry is pending.
func (r *Runtime) Wait(ctx context.Context) error {
	ch := make(chan struct{})
	if err := r.do(ctx, func() {
		r.waiters = append(r.waiters, ch)
		r.releaseWaiters()
	}); err != nil {
		return err
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of scheduled expiries that have not fired.
func (r *Runtime) Pending(ctx context.Context) (int, error) {
	var n int
	err := r.do(ctx, func() {
		n = r.pending
	})
	return n, err
}

func (r *Runtime) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	call := func() {
		fn()
		close(finished)
	}

	select {
	case r.calls <- call:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

// schedule arms a one-shot timer that posts the expiry back to the loop.
func (r *Runtime) schedule(e Expiry) {
	r.pending++
	r.nextID++
	fired := firedTimer{id: r.nextID, expiry: e}
	r.logger.Debug("effect scheduled", "effect", e.Effect, "generation", e.Generation, "after", e.After)

	r.timers[fired.id] = time.AfterFunc(e.After, func() {
		select {
		case r.expired <- fired:
		case <-r.done:
		}
	})
}

func (r *Runtime) releaseWaiters() {
	if r.pending > 0 {
		return
	}
	for _, w := range r.waiters {
		close(w)
	}
	r.waiters = nil
}

func (r *Runtime) notify(snap Snapshot) {
	if r.onChange != nil {
		r.onChange(snap)
	}
}
