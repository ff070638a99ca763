package events

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
)

// HookName identifies the event publishing hook in logs and metrics.
const HookName = "ledger_events"

// PublishHook forwards every committed ledger event to a Publisher.
type PublishHook struct {
	publisher Publisher
}

// NewPublishHook wraps publisher as a post-commit hook.
func NewPublishHook(publisher Publisher) *PublishHook {
	return &PublishHook{publisher: publisher}
}

var _ portssvc.LedgerHook = (*PublishHook)(nil)

func (h *PublishHook) Name() string { return HookName }

func (h *PublishHook) Handle(ctx context.Context, event domain.LedgerEvent) error {
	return h.publisher.Publish(ctx, event)
}
