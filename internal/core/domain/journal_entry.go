package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryStatusDraft    EntryStatus = "draft"
	EntryStatusPosted   EntryStatus = "posted"
	EntryStatusReversed EntryStatus = "reversed"
)

// Source document types recorded on entries that were not keyed in by hand.
const (
	SourceDocumentReversal = "reversal"
	SourceDocumentVoucher  = "accounting_voucher"
)

const (
	// DefaultEntryType prefixes entry numbers of manually created entries.
	DefaultEntryType = "JE"
	// VoucherEntryType prefixes entry numbers of entries generated by voucher approval.
	VoucherEntryType = "VC"

	reversalNumberPrefix = "CANC-"
)

// JournalEntry is a balanced double-entry transaction composed of lines.
type JournalEntry struct {
	EntryID            string             `json:"entryID"`
	EntryNumber        string             `json:"entryNumber"`
	EntryType          string             `json:"entryType"`
	EntryDate          time.Time          `json:"entryDate"`
	FiscalPeriodID     string             `json:"fiscalPeriodID"`
	Reference          string             `json:"reference"`
	Description        string             `json:"description"`
	ThirdPartyID       *string            `json:"thirdPartyID,omitempty"`
	Status             EntryStatus        `json:"status"`
	TotalDebit         decimal.Decimal    `json:"totalDebit"`
	TotalCredit        decimal.Decimal    `json:"totalCredit"`
	IsAdjustment       bool               `json:"isAdjustment"`
	IsRecurring        bool               `json:"isRecurring"`
	SourceDocumentType *string            `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   *string            `json:"sourceDocumentID,omitempty"`
	ReversalEntryID    *string            `json:"reversalEntryID,omitempty"` // set on the original once reversed
	ReversalReason     *string            `json:"reversalReason,omitempty"`
	PostedBy           *string            `json:"postedBy,omitempty"`
	PostedAt           *time.Time         `json:"postedAt,omitempty"`
	Lines              []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// RecalculateTotals derives TotalDebit and TotalCredit from the lines.
func (e *JournalEntry) RecalculateTotals() {
	e.TotalDebit, e.TotalCredit = SumLines(e.Lines)
}

// IsBalanced reports whether the stored totals agree within tolerance.
func (e JournalEntry) IsBalanced() bool {
	return accounting.IsBalanced(e.TotalDebit, e.TotalCredit)
}

// CanEdit reports whether header and lines may still change.
func (e JournalEntry) CanEdit() bool { return e.Status == EntryStatusDraft }

// CanDelete reports whether the entry may be removed.
func (e JournalEntry) CanDelete() bool { return e.Status == EntryStatusDraft }

// CanPost reports whether the entry may be posted.
func (e JournalEntry) CanPost() bool { return e.Status == EntryStatusDraft }

// CanReverse reports whether the entry may be reversed.
func (e JournalEntry) CanReverse() bool { return e.Status == EntryStatusPosted }

// IsReversal reports whether the entry compensates another entry.
func (e JournalEntry) IsReversal() bool {
	return e.SourceDocumentType != nil && *e.SourceDocumentType == SourceDocumentReversal
}

// BuildReversal returns the compensating entry for a posted entry: a new,
// already-posted entry numbered CANC-<original> in the same fiscal period whose
// lines carry the original amounts with debit and credit swapped, in the
// original line order.
func (e JournalEntry) BuildReversal(now time.Time, actorID, reason string) JournalEntry {
	reversalID := uuid.NewString()
	sourceType := SourceDocumentReversal
	sourceID := e.EntryID
	postedBy := actorID
	postedAt := now

	description := fmt.Sprintf("Reversal of %s", e.EntryNumber)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	lines := make([]JournalEntryLine, len(e.Lines))
	for i, line := range e.Lines {
		swapped := line.Swapped()
		swapped.LineID = uuid.NewString()
		swapped.EntryID = reversalID
		swapped.AuditFields = NewAuditFields(now, actorID)
		lines[i] = swapped
	}

	reversal := JournalEntry{
		EntryID:            reversalID,
		EntryNumber:        ReversalEntryNumber(e.EntryNumber),
		EntryType:          e.EntryType,
		EntryDate:          now,
		FiscalPeriodID:     e.FiscalPeriodID,
		Reference:          e.EntryNumber,
		Description:        description,
		ThirdPartyID:       e.ThirdPartyID,
		Status:             EntryStatusPosted,
		IsAdjustment:       e.IsAdjustment,
		SourceDocumentType: &sourceType,
		SourceDocumentID:   &sourceID,
		PostedBy:           &postedBy,
		PostedAt:           &postedAt,
		Lines:              lines,
		AuditFields:        NewAuditFields(now, actorID),
	}
	reversal.RecalculateTotals()
	return reversal
}

// FormatEntryNumber renders {TYPE}-{YYYY}-{NNNNN}.
func FormatEntryNumber(entryType string, year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%05d", entryType, year, seq)
}

// ReversalEntryNumber renders CANC-{original}.
func ReversalEntryNumber(original string) string {
	return reversalNumberPrefix + original
}

// EntrySequenceScope names the counter entry numbers of one type and year draw from.
func EntrySequenceScope(entryType string, year int) string {
	return fmt.Sprintf("entry:%s:%04d", entryType, year)
}

// EntryFilter narrows journal entry listings.
type EntryFilter struct {
	Status             *EntryStatus
	FiscalPeriodID     *string
	SourceDocumentType *string
}
