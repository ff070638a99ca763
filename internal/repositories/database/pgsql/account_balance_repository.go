package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountBalanceRepository struct {
	BaseRepository
}

func newPgxAccountBalanceRepository(pool *pgxpool.Pool) portsrepo.AccountBalanceRepositoryFacade {
	return &PgxAccountBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountBalanceRepositoryFacade = (*PgxAccountBalanceRepository)(nil)

const balanceColumns = `b.account_id, b.fiscal_period_id, b.debit_balance, b.credit_balance, COALESCE(a.balance_type, ''), b.updated_at`

const balanceFrom = ` FROM account_balances b LEFT JOIN accounts a ON a.account_id = b.account_id`

func scanBalance(row pgx.Row) (domain.AccountBalance, error) {
	var b domain.AccountBalance
	var balanceType string
	err := row.Scan(&b.AccountID, &b.FiscalPeriodID, &b.DebitBalance, &b.CreditBalance, &balanceType, &b.UpdatedAt)
	b.BalanceType = accounting.BalanceType(balanceType)
	return b, err
}

// FindBalance retrieves the balance row of one account in one period.
func (r *PgxAccountBalanceRepository) FindBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + balanceFrom + ` WHERE b.account_id = $1 AND b.fiscal_period_id = $2;`
	b, err := scanBalance(r.querier(ctx).QueryRow(ctx, query, accountID, fiscalPeriodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account balance", accountID+"/"+fiscalPeriodID)
		}
		return nil, apperrors.NewPersistenceError("failed to find balance for account "+accountID, err)
	}
	return &b, nil
}

// ListBalancesByPeriod retrieves every balance row of a period ordered by account.
func (r *PgxAccountBalanceRepository) ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + balanceFrom + ` WHERE b.fiscal_period_id = $1 ORDER BY b.account_id;`
	rows, err := r.querier(ctx).Query(ctx, query, fiscalPeriodID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query balances for period "+fiscalPeriodID, err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan balance row for period "+fiscalPeriodID, err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating balance rows for period "+fiscalPeriodID, err)
	}
	return balances, nil
}

// ApplyDeltas upsert-increments one row per delta. The increment happens inside
// the statement so concurrent appliers never lose an update, and nothing clamps
// the result at zero.
func (r *PgxAccountBalanceRepository) ApplyDeltas(ctx context.Context, fiscalPeriodID string, deltas []domain.BalanceDelta, updatedAt time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	query := `
		INSERT INTO account_balances (account_id, fiscal_period_id, debit_balance, credit_balance, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, fiscal_period_id) DO UPDATE
		SET debit_balance = account_balances.debit_balance + EXCLUDED.debit_balance,
		    credit_balance = account_balances.credit_balance + EXCLUDED.credit_balance,
		    updated_at = EXCLUDED.updated_at;`

	batch := &pgx.Batch{}
	for _, d := range deltas {
		batch.Queue(query, d.AccountID, fiscalPeriodID, d.Debit, d.Credit, updatedAt)
	}
	if err := r.querier(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to apply balance deltas for period "+fiscalPeriodID, err)
	}
	return nil
}

// RebuildPeriodBalances recomputes every balance row of the period from the lines
// of posted entries. Reversal entries are skipped: reversing an entry already
// moves the original out of the posted set.
func (r *PgxAccountBalanceRepository) RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string, updatedAt time.Time) (int64, error) {
	q := r.querier(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM account_balances WHERE fiscal_period_id = $1;`, fiscalPeriodID); err != nil {
		return 0, apperrors.NewPersistenceError("failed to clear balances for period "+fiscalPeriodID, err)
	}

	query := `
		INSERT INTO account_balances (account_id, fiscal_period_id, debit_balance, credit_balance, updated_at)
		SELECT l.account_id, e.fiscal_period_id, SUM(l.debit_amount), SUM(l.credit_amount), $3
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.fiscal_period_id = $1
		  AND e.status = $2
		  AND (e.source_document_type IS NULL OR e.source_document_type <> $4)
		GROUP BY l.account_id, e.fiscal_period_id;`
	cmdTag, err := q.Exec(ctx, query, fiscalPeriodID, string(domain.EntryStatusPosted), updatedAt, domain.SourceDocumentReversal)
	if err != nil {
		return 0, apperrors.NewPersistenceError("failed to rebuild balances for period "+fiscalPeriodID, err)
	}
	return cmdTag.RowsAffected(), nil
}
