package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// AccountBalanceReader defines read operations for derived balances.
type AccountBalanceReader interface {
	FindBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error)
	ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error)
}

// AccountBalanceWriter defines write operations for derived balances.
type AccountBalanceWriter interface {
	// ApplyDeltas upsert-increments one balance row per delta.
	ApplyDeltas(ctx context.Context, fiscalPeriodID string, deltas []domain.BalanceDelta, updatedAt time.Time) error

	// RebuildPeriodBalances replaces the balances of a period with totals derived
	// from the lines of its posted, non-reversal entries and returns the row count.
	RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string, updatedAt time.Time) (int64, error)
}

// AccountBalanceRepositoryFacade combines all balance repository interfaces.
type AccountBalanceRepositoryFacade interface {
	AccountBalanceReader
	AccountBalanceWriter
}
