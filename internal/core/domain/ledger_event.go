package domain

import "time"

// LedgerEventType names a committed ledger state transition.
type LedgerEventType string

const (
	EventEntryPosted      LedgerEventType = "ledger.entry.posted"
	EventEntryReversed    LedgerEventType = "ledger.entry.reversed"
	EventVoucherApproved  LedgerEventType = "ledger.voucher.approved"
	EventVoucherCancelled LedgerEventType = "ledger.voucher.cancelled"
)

// LedgerEvent describes a committed transition, handed to post-commit hooks.
// Entry is the entry that changed state; Reversal is set for reversals; Voucher
// is set for voucher transitions.
type LedgerEvent struct {
	EventID    string          `json:"eventID"`
	Type       LedgerEventType `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	ActorID    string          `json:"actorID"`
	Reason     string          `json:"reason,omitempty"`
	Entry      *JournalEntry   `json:"entry,omitempty"`
	Reversal   *JournalEntry   `json:"reversal,omitempty"`
	Voucher    *Voucher        `json:"voucher,omitempty"`
}

// AggregateID is the id events are keyed by downstream.
func (e LedgerEvent) AggregateID() string {
	switch {
	case e.Voucher != nil:
		return e.Voucher.VoucherID
	case e.Entry != nil:
		return e.Entry.EntryID
	default:
		return e.EventID
	}
}
