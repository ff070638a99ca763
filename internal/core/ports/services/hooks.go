package services

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// LedgerHook reacts to a ledger transition after its transaction committed.
// An error is reported and counted but never undoes the transition.
type LedgerHook interface {
	Name() string
	Handle(ctx context.Context, event domain.LedgerEvent) error
}

// LedgerEventDispatcher runs the registered hooks for events whose transaction
// has committed. It never reports hook failures to the caller.
type LedgerEventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.LedgerEvent)
}

// HookStatusReporter exposes the circuit breaker state of each hook.
type HookStatusReporter interface {
	HookStates() map[string]string
}
