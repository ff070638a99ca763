package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// BankTransactionRepositoryFacade persists bank transactions derived from bank lines.
type BankTransactionRepositoryFacade interface {
	SaveBankTransactions(ctx context.Context, txs []domain.BankTransaction) error
	// VoidByEntry voids every active bank transaction of the entry and returns them.
	VoidByEntry(ctx context.Context, entryID string, voidedBy string, reason string, voidedAt time.Time) ([]domain.BankTransaction, error)
	ListByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error)
}
