package domain

import "github.com/SscSPs/ledger_backoffice/internal/utils/accounting"

// Account is the read-only chart-of-accounts view the ledger needs.
// Accounts are maintained elsewhere; the ledger only looks them up.
type Account struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	BalanceType   accounting.BalanceType `json:"balanceType"` // debit or credit normal
	IsBankAccount bool                   `json:"isBankAccount"`
	IsActive      bool                   `json:"isActive"`
}
