package task

import (
	"context"
	"log/slog"
	"sync"
)

// Runner supervises one-shot background tasks spawned by request handlers.
// Tasks are tracked by a WaitGroup so shutdown can drain them instead of
// dropping work mid-flight, and panics are recovered and logged because no
// caller is left to observe them.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{ctx: ctx, cancel: cancel}
}

// Go launches fn on its own goroutine. The context handed to fn is the
// runner's own, detached from any request lifecycle.
func (r *Runner) Go(name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				slog.Error("Background task panicked", "task", name, "panic", p)
			}
		}()
		slog.Debug("Background task starting", "task", name)
		fn(r.ctx)
		slog.Debug("Background task finished", "task", name)
	}()
}

// Stop cancels the runner context and waits for in-flight tasks.
func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}

// Wait blocks until all spawned tasks finish without cancelling them.
func (r *Runner) Wait() {
	r.wg.Wait()
}
