package repositories

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// FiscalPeriodReader looks up fiscal periods maintained elsewhere.
type FiscalPeriodReader interface {
	FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)
}

// AccountReader looks up chart-of-accounts entries maintained elsewhere.
type AccountReader interface {
	// FindAccountsByIDs returns the accounts found, keyed by id. Missing ids are simply absent.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}
