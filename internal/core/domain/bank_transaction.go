package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionDirection tells whether money entered or left the bank account.
type BankTransactionDirection string

const (
	BankDeposit    BankTransactionDirection = "deposit"
	BankWithdrawal BankTransactionDirection = "withdrawal"
)

// BankTransactionStatus is the lifecycle state of a bank transaction.
type BankTransactionStatus string

const (
	BankTransactionActive BankTransactionStatus = "active"
	BankTransactionVoid   BankTransactionStatus = "void"
)

// BankTransaction mirrors a posted ledger line that touched a bank account.
type BankTransaction struct {
	BankTransactionID string                   `json:"bankTransactionID"`
	EntryID           string                   `json:"entryID"`
	LineID            string                   `json:"lineID"`
	AccountID         string                   `json:"accountID"`
	Amount            decimal.Decimal          `json:"amount"`
	Direction         BankTransactionDirection `json:"direction"`
	Status            BankTransactionStatus    `json:"status"`
	Description       string                   `json:"description"`
	TransactionDate   time.Time                `json:"transactionDate"`
	VoidReason        *string                  `json:"voidReason,omitempty"`
	VoidedBy          *string                  `json:"voidedBy,omitempty"`
	VoidedAt          *time.Time               `json:"voidedAt,omitempty"`
	AuditFields
}

// NewBankTransactionFromLine maps a bank line to a bank transaction:
// debits to the bank are deposits, credits are withdrawals.
func NewBankTransactionFromLine(id string, entry JournalEntry, line JournalEntryLine, now time.Time, actorID string) BankTransaction {
	direction := BankWithdrawal
	if line.IsDebit() {
		direction = BankDeposit
	}
	description := line.Description
	if description == "" {
		description = entry.Description
	}
	return BankTransaction{
		BankTransactionID: id,
		EntryID:           entry.EntryID,
		LineID:            line.LineID,
		AccountID:         line.AccountID,
		Amount:            line.Amount(),
		Direction:         direction,
		Status:            BankTransactionActive,
		Description:       description,
		TransactionDate:   entry.EntryDate,
		AuditFields:       NewAuditFields(now, actorID),
	}
}
