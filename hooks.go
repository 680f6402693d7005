package nvram

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MaxExitHooks is the number of hooks an ExitHooks accepts.
const MaxExitHooks = 32

// HookFunc is run when an ExitHooks fires.
type HookFunc func(ctx context.Context) error

// ExitHooks is an explicit replacement for process exit handlers.
//
// Hooks run in reverse registration order, at most once. Run ties firing to
// the normal return of a function, so a panic skips every hook.
type ExitHooks struct {
	mu    sync.Mutex
	hooks []HookFunc
	fired bool
}

// NewExitHooks returns an empty registry.
func NewExitHooks() *ExitHooks {
	return &ExitHooks{}
}

// Register adds fn. It fails once the hooks have fired or the registry is full.
func (h *ExitHooks) Register(fn HookFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: nil hook", ErrHookRegistration)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.fired {
		return fmt.Errorf("%w: hooks already fired", ErrHookRegistration)
	}
	if len(h.hooks) >= MaxExitHooks {
		return fmt.Errorf("%w: limit of %d hooks reached", ErrHookRegistration, MaxExitHooks)
	}
	h.hooks = append(h.hooks, fn)
	return nil
}

// Len returns the number of registered hooks.
func (h *ExitHooks) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hooks)
}

// Fire runs every hook, last registered first. Later calls do nothing.
// All hooks run even if some fail; their errors are joined.
func (h *ExitHooks) Fire(ctx context.Context) error {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		return nil
	}
	h.fired = true
	hooks := h.hooks
	h.hooks = nil
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run calls fn and then fires the hooks. If fn panics the panic propagates
// and no hook runs.
func (h *ExitHooks) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	return errors.Join(err, h.Fire(ctx))
}
