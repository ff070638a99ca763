package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_backoffice/internal/models"
	"github.com/SscSPs/ledger_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankTransactionColumns = `
	bank_transaction_id, entry_id, line_id, account_id, amount, direction, status, description,
	transaction_date, void_reason, voided_by, voided_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

func scanBankTransactions(rows pgx.Rows) ([]domain.BankTransaction, error) {
	defer rows.Close()
	out := []domain.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		err := rows.Scan(
			&m.BankTransactionID,
			&m.EntryID,
			&m.LineID,
			&m.AccountID,
			&m.Amount,
			&m.Direction,
			&m.Status,
			&m.Description,
			&m.TransactionDate,
			&m.VoidReason,
			&m.VoidedBy,
			&m.VoidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, mapping.ToDomainBankTransaction(m))
	}
	return out, rows.Err()
}

// SaveBankTransactions inserts bank transactions. A line that already produced
// one is skipped, which makes re-running the side effect harmless.
func (r *PgxBankTransactionRepository) SaveBankTransactions(ctx context.Context, txs []domain.BankTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range txs {
		m := mapping.ToModelBankTransaction(t)
		batch.Queue(`INSERT INTO bank_transactions (`+bankTransactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (line_id) DO NOTHING;`,
			m.BankTransactionID, m.EntryID, m.LineID, m.AccountID, m.Amount, m.Direction, m.Status, m.Description,
			m.TransactionDate, m.VoidReason, m.VoidedBy, m.VoidedAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}
	if err := r.querier(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to insert bank transactions", err)
	}
	return nil
}

// VoidByEntry voids every active bank transaction of the entry and returns the voided rows.
func (r *PgxBankTransactionRepository) VoidByEntry(ctx context.Context, entryID string, voidedBy string, reason string, voidedAt time.Time) ([]domain.BankTransaction, error) {
	query := `
		UPDATE bank_transactions
		SET status = $2, void_reason = $3, voided_by = $4, voided_at = $5, last_updated_at = $5, last_updated_by = $4
		WHERE entry_id = $1 AND status = $6
		RETURNING ` + bankTransactionColumns + `;`
	rows, err := r.querier(ctx).Query(ctx, query, entryID, string(domain.BankTransactionVoid), reason, voidedBy, voidedAt, string(domain.BankTransactionActive))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to void bank transactions of entry "+entryID, err)
	}
	txs, err := scanBankTransactions(rows)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan voided bank transactions of entry "+entryID, err)
	}
	return txs, nil
}

// ListByEntry retrieves the bank transactions of an entry.
func (r *PgxBankTransactionRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE entry_id = $1 ORDER BY created_at, bank_transaction_id;`
	rows, err := r.querier(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query bank transactions of entry "+entryID, err)
	}
	txs, err := scanBankTransactions(rows)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan bank transactions of entry "+entryID, err)
	}
	return txs, nil
}
