package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/metrics"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/sony/gobreaker"
)

// DispatcherConfig tunes how hooks are isolated from the ledger.
type DispatcherConfig struct {
	// Timeout bounds a single hook run.
	Timeout time.Duration
	// MaxFailures is the number of consecutive failures that opens a hook's breaker.
	MaxFailures uint32
	// OpenTimeout is how long an open breaker rejects runs before probing again.
	OpenTimeout time.Duration
}

// HookDispatcher runs post-commit hooks. Each hook gets its own deadline and
// its own circuit breaker; a failing or tripped hook is logged and counted.
type HookDispatcher struct {
	hooks    []portssvc.LedgerHook
	breakers map[string]*gobreaker.CircuitBreaker
	timeout  time.Duration
	metrics  *metrics.Metrics
}

// NewHookDispatcher creates a dispatcher for hooks.
func NewHookDispatcher(cfg DispatcherConfig, m *metrics.Metrics, hooks ...portssvc.LedgerHook) *HookDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	d := &HookDispatcher{
		hooks:    hooks,
		breakers: make(map[string]*gobreaker.CircuitBreaker, len(hooks)),
		timeout:  cfg.Timeout,
		metrics:  m,
	}
	for _, hook := range hooks {
		name := hook.Name()
		maxFailures := cfg.MaxFailures
		d.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "hook-" + name,
			MaxRequests: 1,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(_ string, from gobreaker.State, to gobreaker.State) {
				slog.Warn("Post-commit hook circuit breaker changed state",
					slog.String("hook", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}
	return d
}

var (
	_ portssvc.LedgerEventDispatcher = (*HookDispatcher)(nil)
	_ portssvc.HookStatusReporter    = (*HookDispatcher)(nil)
)

// Dispatch runs every hook for every event, in order. The caller's
// cancellation does not stop hooks, only the per-hook timeout does.
func (d *HookDispatcher) Dispatch(ctx context.Context, events ...domain.LedgerEvent) {
	base := context.WithoutCancel(ctx)
	for _, event := range events {
		for _, hook := range d.hooks {
			d.run(base, hook, event)
		}
	}
}

func (d *HookDispatcher) run(ctx context.Context, hook portssvc.LedgerHook, event domain.LedgerEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	name := hook.Name()

	hookCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.breakers[name].Execute(func() (any, error) {
		return nil, safeHandle(hookCtx, hook, event)
	})
	if err == nil {
		return
	}

	d.metrics.SideEffectFailed(name)
	attrs := []any{
		slog.String("hook", name),
		slog.String("event_type", string(event.Type)),
		slog.String("event_id", event.EventID),
		slog.String("aggregate_id", event.AggregateID()),
		slog.String("error", err.Error()),
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.Warn("Post-commit hook skipped, circuit breaker open", attrs...)
		return
	}
	logger.Warn("Post-commit hook failed; ledger change stays committed", attrs...)
}

// safeHandle turns a panicking hook into an error.
func safeHandle(ctx context.Context, hook portssvc.LedgerHook, event domain.LedgerEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("hook %s panicked: %v", hook.Name(), p)
		}
	}()
	return hook.Handle(ctx, event)
}

// HookStates returns the breaker state of every hook by name.
func (d *HookDispatcher) HookStates() map[string]string {
	states := make(map[string]string, len(d.breakers))
	for name, cb := range d.breakers {
		states[name] = cb.State().String()
	}
	return states
}
