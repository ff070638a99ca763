package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is the row shape of the bank_transactions table.
type BankTransaction struct {
	BankTransactionID string          `db:"bank_transaction_id"`
	EntryID           string          `db:"entry_id"`
	LineID            string          `db:"line_id"`
	AccountID         string          `db:"account_id"`
	Amount            decimal.Decimal `db:"amount"`
	Direction         string          `db:"direction"`
	Status            string          `db:"status"`
	Description       string          `db:"description"`
	TransactionDate   time.Time       `db:"transaction_date"`
	VoidReason        *string         `db:"void_reason"`
	VoidedBy          *string         `db:"voided_by"`
	VoidedAt          *time.Time      `db:"voided_at"`
	AuditFields
}
