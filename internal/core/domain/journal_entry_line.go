package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// JournalEntryLine is one debit or credit movement against a single account.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	ThirdPartyID *string         `json:"thirdPartyID,omitempty"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	OrderNumber  int             `json:"orderNumber"`
	AuditFields
}

// Validate checks that exactly one of debit and credit is positive.
func (l JournalEntryLine) Validate() error {
	if strings.TrimSpace(l.AccountID) == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrInvalidLine)
	}
	if err := accounting.ValidateLineAmounts(l.DebitAmount, l.CreditAmount); err != nil {
		return fmt.Errorf("%w: account %s: %v", apperrors.ErrInvalidLine, l.AccountID, err)
	}
	return nil
}

// IsDebit reports whether the line moves money on the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// Swapped returns a copy with debit and credit exchanged.
func (l JournalEntryLine) Swapped() JournalEntryLine {
	out := l
	out.DebitAmount, out.CreditAmount = l.CreditAmount, l.DebitAmount
	return out
}

// ValidateLines validates every line and reports the first failure with its position.
func ValidateLines(lines []JournalEntryLine) error {
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// SumLines returns total debits and total credits across lines.
func SumLines(lines []JournalEntryLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		debit = debit.Add(line.DebitAmount)
		credit = credit.Add(line.CreditAmount)
	}
	return debit, credit
}

// Renumber assigns a dense 1..N order to lines in their current slice order.
func Renumber(lines []JournalEntryLine) []JournalEntryLine {
	for i := range lines {
		lines[i].OrderNumber = i + 1
	}
	return lines
}
