package services

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// BalanceProjector maintains per-account, per-period debit and credit totals.
// Apply and Unapply must run inside the transaction that changes the entry state.
type BalanceProjector interface {
	Apply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error
	Unapply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error
}

// BalanceReaderSvc defines read operations for derived balances.
type BalanceReaderSvc interface {
	GetBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error)
	ListPeriodBalances(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error)
}

// BalanceMaintenanceSvc rebuilds derived balances from the ledger.
type BalanceMaintenanceSvc interface {
	RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string) (int64, error)
}

// BalanceSvcFacade combines all balance service interfaces.
type BalanceSvcFacade interface {
	BalanceProjector
	BalanceReaderSvc
	BalanceMaintenanceSvc
}
