package dto

import (
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse is the API shape of a derived balance row.
type AccountBalanceResponse struct {
	AccountID      string          `json:"accountID"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	DebitBalance   decimal.Decimal `json:"debitBalance"`
	CreditBalance  decimal.Decimal `json:"creditBalance"`
	Net            decimal.Decimal `json:"net"`
	BalanceType    string          `json:"balanceType,omitempty"`
	// NormalBalance is the balance seen from the account's normal side:
	// debit minus credit for debit accounts, credit minus debit otherwise.
	NormalBalance *decimal.Decimal `json:"normalBalance,omitempty"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ListAccountBalancesResponse wraps all balances of a fiscal period.
type ListAccountBalancesResponse struct {
	Balances []AccountBalanceResponse `json:"balances"`
}

// RebuildBalancesResponse reports how many balance rows a rebuild produced.
type RebuildBalancesResponse struct {
	FiscalPeriodID string `json:"fiscalPeriodID"`
	Rows           int64  `json:"rows"`
}

// ToAccountBalanceResponse converts a domain balance to its response DTO.
func ToAccountBalanceResponse(b domain.AccountBalance) AccountBalanceResponse {
	resp := AccountBalanceResponse{
		AccountID:      b.AccountID,
		FiscalPeriodID: b.FiscalPeriodID,
		DebitBalance:   b.DebitBalance,
		CreditBalance:  b.CreditBalance,
		Net:            b.Net(),
		BalanceType:    string(b.BalanceType),
		UpdatedAt:      b.UpdatedAt,
	}
	if normal, err := b.NetFor(b.BalanceType); err == nil {
		resp.NormalBalance = &normal
	}
	return resp
}

// ToListAccountBalancesResponse converts a slice of domain balances.
func ToListAccountBalancesResponse(balances []domain.AccountBalance) ListAccountBalancesResponse {
	list := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		list[i] = ToAccountBalanceResponse(b)
	}
	return ListAccountBalancesResponse{Balances: list}
}

// BankTransactionResponse is the API shape of a bank transaction.
type BankTransactionResponse struct {
	BankTransactionID string          `json:"bankTransactionID"`
	EntryID           string          `json:"entryID"`
	AccountID         string          `json:"accountID"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         string          `json:"direction"`
	Status            string          `json:"status"`
	Description       string          `json:"description"`
	TransactionDate   time.Time       `json:"transactionDate"`
	VoidReason        *string         `json:"voidReason,omitempty"`
	VoidedAt          *time.Time      `json:"voidedAt,omitempty"`
}

// ToBankTransactionResponses converts a slice of domain bank transactions.
func ToBankTransactionResponses(txs []domain.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = BankTransactionResponse{
			BankTransactionID: t.BankTransactionID,
			EntryID:           t.EntryID,
			AccountID:         t.AccountID,
			Amount:            t.Amount,
			Direction:         string(t.Direction),
			Status:            string(t.Status),
			Description:       t.Description,
			TransactionDate:   t.TransactionDate,
			VoidReason:        t.VoidReason,
			VoidedAt:          t.VoidedAt,
		}
	}
	return out
}
