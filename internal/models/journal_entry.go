package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	EntryID            string          `db:"entry_id"`
	EntryNumber        string          `db:"entry_number"`
	EntryType          string          `db:"entry_type"`
	EntryDate          time.Time       `db:"entry_date"`
	FiscalPeriodID     string          `db:"fiscal_period_id"`
	Reference          string          `db:"reference"`
	Description        string          `db:"description"`
	ThirdPartyID       *string         `db:"third_party_id"`
	Status             string          `db:"status"`
	TotalDebit         decimal.Decimal `db:"total_debit"`
	TotalCredit        decimal.Decimal `db:"total_credit"`
	IsAdjustment       bool            `db:"is_adjustment"`
	IsRecurring        bool            `db:"is_recurring"`
	SourceDocumentType *string         `db:"source_document_type"`
	SourceDocumentID   *string         `db:"source_document_id"`
	ReversalEntryID    *string         `db:"reversal_entry_id"`
	ReversalReason     *string         `db:"reversal_reason"`
	PostedBy           *string         `db:"posted_by"`
	PostedAt           *time.Time      `db:"posted_at"`
	AuditFields
}

// JournalEntryLine is the row shape of the journal_entry_lines table.
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	ThirdPartyID *string         `db:"third_party_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	OrderNumber  int             `db:"order_number"`
	AuditFields
}
