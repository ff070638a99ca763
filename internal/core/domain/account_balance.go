package domain

import (
	"sort"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountBalance is the derived running total of debits and credits for one
// account within one fiscal period. It can always be rebuilt from posted lines.
type AccountBalance struct {
	AccountID      string          `json:"accountID"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	DebitBalance   decimal.Decimal `json:"debitBalance"`
	CreditBalance  decimal.Decimal `json:"creditBalance"`
	// BalanceType is the account's normal side, empty when the account is unknown.
	BalanceType accounting.BalanceType `json:"balanceType,omitempty"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// Net returns debit minus credit.
func (b AccountBalance) Net() decimal.Decimal {
	return b.DebitBalance.Sub(b.CreditBalance)
}

// NetFor returns the balance seen from the account's normal side.
func (b AccountBalance) NetFor(balanceType accounting.BalanceType) (decimal.Decimal, error) {
	return accounting.SignedNet(balanceType, b.DebitBalance, b.CreditBalance)
}

// BalanceDelta is one signed increment to apply to an AccountBalance row.
type BalanceDelta struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// DeltasFromLines collapses lines into one delta per account, sorted by account
// id so concurrent postings lock balance rows in the same order.
// sign is +1 for apply and -1 for unapply.
func DeltasFromLines(lines []JournalEntryLine, sign int64) []BalanceDelta {
	factor := decimal.NewFromInt(sign)
	index := make(map[string]int, len(lines))
	deltas := make([]BalanceDelta, 0, len(lines))
	for _, line := range lines {
		i, ok := index[line.AccountID]
		if !ok {
			index[line.AccountID] = len(deltas)
			deltas = append(deltas, BalanceDelta{AccountID: line.AccountID, Debit: decimal.Zero, Credit: decimal.Zero})
			i = len(deltas) - 1
		}
		deltas[i].Debit = deltas[i].Debit.Add(line.DebitAmount.Mul(factor))
		deltas[i].Credit = deltas[i].Credit.Add(line.CreditAmount.Mul(factor))
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].AccountID < deltas[j].AccountID })
	return deltas
}
