package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the row shape of the accounting_vouchers table.
type Voucher struct {
	VoucherID              string          `db:"voucher_id"`
	VoucherNumber          string          `db:"voucher_number"`
	VoucherTypeID          string          `db:"voucher_type_id"`
	VoucherDate            time.Time       `db:"voucher_date"`
	Description            string          `db:"description"`
	FiscalPeriodID         string          `db:"fiscal_period_id"`
	CurrencyID             string          `db:"currency_id"`
	ExchangeRate           decimal.Decimal `db:"exchange_rate"`
	TotalDebit             decimal.Decimal `db:"total_debit"`
	TotalCredit            decimal.Decimal `db:"total_credit"`
	TotalAmount            decimal.Decimal `db:"total_amount"`
	Status                 string          `db:"status"`
	JournalEntryID         *string         `db:"journal_entry_id"`
	ReversalJournalEntryID *string         `db:"reversal_journal_entry_id"`
	ApprovedBy             *string         `db:"approved_by"`
	ApprovedAt             *time.Time      `db:"approved_at"`
	CancelledBy            *string         `db:"cancelled_by"`
	CancelledAt            *time.Time      `db:"cancelled_at"`
	CancellationReason     *string         `db:"cancellation_reason"`
	AuditFields
}

// VoucherLine is the row shape of the accounting_voucher_lines table.
type VoucherLine struct {
	LineID       string          `db:"line_id"`
	VoucherID    string          `db:"voucher_id"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	OrderNumber  int             `db:"order_number"`
}
