package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherStatus is the lifecycle state of an accounting voucher.
type VoucherStatus string

const (
	VoucherStatusDraft     VoucherStatus = "DRAFT"
	VoucherStatusValidated VoucherStatus = "VALIDATED"
	VoucherStatusApproved  VoucherStatus = "APPROVED"
	VoucherStatusCancelled VoucherStatus = "CANCELLED"
)

// VoucherLine is one debit or credit movement of a voucher.
type VoucherLine struct {
	LineID       string          `json:"lineID"`
	VoucherID    string          `json:"voucherID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	OrderNumber  int             `json:"orderNumber"`
}

// Validate applies the debit xor credit rule.
func (l VoucherLine) Validate() error {
	if strings.TrimSpace(l.AccountID) == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrInvalidLine)
	}
	if err := accounting.ValidateLineAmounts(l.DebitAmount, l.CreditAmount); err != nil {
		return fmt.Errorf("%w: account %s: %v", apperrors.ErrInvalidLine, l.AccountID, err)
	}
	return nil
}

// Voucher is a pre-ledger business document that, once approved, generates
// exactly one posted journal entry.
type Voucher struct {
	VoucherID              string          `json:"voucherID"`
	VoucherNumber          string          `json:"voucherNumber"`
	VoucherTypeID          string          `json:"voucherTypeID"`
	VoucherDate            time.Time       `json:"voucherDate"`
	Description            string          `json:"description"`
	FiscalPeriodID         string          `json:"fiscalPeriodID"`
	CurrencyID             string          `json:"currencyID"`
	ExchangeRate           decimal.Decimal `json:"exchangeRate"`
	TotalDebit             decimal.Decimal `json:"totalDebit"`
	TotalCredit            decimal.Decimal `json:"totalCredit"`
	TotalAmount            decimal.Decimal `json:"totalAmount"`
	Status                 VoucherStatus   `json:"status"`
	JournalEntryID         *string         `json:"journalEntryID,omitempty"`
	ReversalJournalEntryID *string         `json:"reversalJournalEntryID,omitempty"`
	ApprovedBy             *string         `json:"approvedBy,omitempty"`
	ApprovedAt             *time.Time      `json:"approvedAt,omitempty"`
	CancelledBy            *string         `json:"cancelledBy,omitempty"`
	CancelledAt            *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason     *string         `json:"cancellationReason,omitempty"`
	Lines                  []VoucherLine   `json:"lines,omitempty"`
	AuditFields
}

// RecalculateTotals derives the totals from the lines. TotalAmount mirrors the debit side.
func (v *Voucher) RecalculateTotals() {
	debit, credit := decimal.Zero, decimal.Zero
	for _, line := range v.Lines {
		debit = debit.Add(line.DebitAmount)
		credit = credit.Add(line.CreditAmount)
	}
	v.TotalDebit = debit
	v.TotalCredit = credit
	v.TotalAmount = debit
}

// Validate checks that the voucher has lines, each line is well formed and
// the lines balance. Totals are recomputed first.
func (v *Voucher) Validate() error {
	if len(v.Lines) == 0 {
		return fmt.Errorf("%w: voucher must have at least one line", apperrors.ErrValidation)
	}
	for i, line := range v.Lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	v.RecalculateTotals()
	if !accounting.IsBalanced(v.TotalDebit, v.TotalCredit) {
		return fmt.Errorf("%w: debit %s, credit %s", apperrors.ErrUnbalancedVoucher, v.TotalDebit, v.TotalCredit)
	}
	return nil
}

// CanEdit reports whether the voucher is still mutable.
func (v Voucher) CanEdit() bool { return v.Status == VoucherStatusDraft }

// CanValidate reports whether the voucher may move to VALIDATED.
func (v Voucher) CanValidate() bool { return v.Status == VoucherStatusDraft }

// CanApprove reports whether the voucher may be approved.
func (v Voucher) CanApprove() bool {
	return v.Status == VoucherStatusDraft || v.Status == VoucherStatusValidated
}

// CanCancel reports whether the voucher may be cancelled. Cancellation is final.
func (v Voucher) CanCancel() bool { return v.Status != VoucherStatusCancelled }

// CanDelete reports whether the voucher may be removed.
func (v Voucher) CanDelete() bool { return v.Status == VoucherStatusDraft }

// HasJournalEntry reports whether approval already produced an entry.
func (v Voucher) HasJournalEntry() bool {
	return v.JournalEntryID != nil && *v.JournalEntryID != ""
}

// ToJournalEntry builds the draft entry that approval posts. Lines keep the
// voucher's order.
func (v Voucher) ToJournalEntry(now time.Time, actorID string) JournalEntry {
	entryID := uuid.NewString()
	sourceType := SourceDocumentVoucher
	sourceID := v.VoucherID
	audit := NewAuditFields(now, actorID)

	lines := make([]JournalEntryLine, len(v.Lines))
	for i, vl := range v.Lines {
		lines[i] = JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    vl.AccountID,
			Description:  vl.Description,
			DebitAmount:  vl.DebitAmount,
			CreditAmount: vl.CreditAmount,
			OrderNumber:  i + 1,
			AuditFields:  audit,
		}
	}

	entry := JournalEntry{
		EntryID:            entryID,
		EntryType:          VoucherEntryType,
		EntryDate:          v.VoucherDate,
		FiscalPeriodID:     v.FiscalPeriodID,
		Reference:          v.VoucherNumber,
		Description:        v.Description,
		Status:             EntryStatusDraft,
		SourceDocumentType: &sourceType,
		SourceDocumentID:   &sourceID,
		Lines:              lines,
		AuditFields:        audit,
	}
	entry.RecalculateTotals()
	return entry
}

// FormatVoucherNumber renders CV{YYYY}{MM}-{NNNN}.
func FormatVoucherNumber(year int, month time.Month, seq int64) string {
	return fmt.Sprintf("CV%04d%02d-%04d", year, int(month), seq)
}

// VoucherSequenceScope names the counter voucher numbers of one month draw from.
func VoucherSequenceScope(year int, month time.Month) string {
	return fmt.Sprintf("voucher:%04d%02d", year, int(month))
}

// VoucherFilter narrows voucher listings.
type VoucherFilter struct {
	Status         *VoucherStatus
	FiscalPeriodID *string
}
