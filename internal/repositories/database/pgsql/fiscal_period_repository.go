package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodReader {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodReader = (*PgxFiscalPeriodRepository)(nil)

// FindPeriodByID retrieves a fiscal period. Inside a transaction the row is
// share-locked so the period cannot close while a posting lands in it.
func (r *PgxFiscalPeriodRepository) FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT fiscal_period_id, name, start_date, end_date, status, is_closed
		FROM fiscal_periods
		WHERE fiscal_period_id = $1`
	if inTx(ctx) {
		query += ` FOR SHARE`
	}

	var p domain.FiscalPeriod
	var status string
	err := r.querier(ctx).QueryRow(ctx, query, fiscalPeriodID).Scan(
		&p.FiscalPeriodID,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&status,
		&p.IsClosed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("fiscal period", fiscalPeriodID)
		}
		return nil, apperrors.NewPersistenceError("failed to find fiscal period "+fiscalPeriodID, err)
	}
	p.Status = domain.FiscalPeriodStatus(status)
	return &p, nil
}
