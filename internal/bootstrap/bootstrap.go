// Package bootstrap runs a command's main loop with graceful
// shutdown, so an interrupted quiz session still flushes its attempt
// log and closes its database connection.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"
)

// shutdownTimeout bounds how long shutdown hooks may run after an
// interrupt.
const shutdownTimeout = 10 * time.Second

// App drives a run function and a set of shutdown hooks.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

// New creates a new App.
func New() *App {
	return &App{}
}

// AddShutdownHook registers a function to call during graceful
// shutdown. Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes the run function with signal handling. On OS interrupt
// the registered shutdown hooks run in LIFO order under a bounded
// context. If run returns before a signal, its error is returned and
// hooks are skipped.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return a.shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
