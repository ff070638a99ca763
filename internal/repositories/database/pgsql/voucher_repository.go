package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_backoffice/internal/models"
	"github.com/SscSPs/ledger_backoffice/internal/utils/mapping"
	"github.com/SscSPs/ledger_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const voucherColumns = `
	voucher_id, voucher_number, voucher_type_id, voucher_date, description, fiscal_period_id,
	currency_id, exchange_rate, total_debit, total_credit, total_amount, status,
	journal_entry_id, reversal_journal_entry_id, approved_by, approved_at,
	cancelled_by, cancelled_at, cancellation_reason,
	created_at, created_by, last_updated_at, last_updated_by`

const voucherLineColumns = `
	line_id, voucher_id, account_id, description, debit_amount, credit_amount, order_number`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for accounting vouchers.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

func scanVoucher(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.VoucherNumber,
		&m.VoucherTypeID,
		&m.VoucherDate,
		&m.Description,
		&m.FiscalPeriodID,
		&m.CurrencyID,
		&m.ExchangeRate,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.TotalAmount,
		&m.Status,
		&m.JournalEntryID,
		&m.ReversalJournalEntryID,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.CancelledBy,
		&m.CancelledAt,
		&m.CancellationReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueVoucherLines(batch *pgx.Batch, lines []domain.VoucherLine) {
	for _, line := range lines {
		m := mapping.ToModelVoucherLine(line)
		batch.Queue(`INSERT INTO accounting_voucher_lines (`+voucherLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			m.LineID, m.VoucherID, m.AccountID, m.Description, m.DebitAmount, m.CreditAmount, m.OrderNumber)
	}
}

// SaveVoucher inserts the voucher header and its lines.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	q := r.querier(ctx)
	m := mapping.ToModelVoucher(voucher)

	query := `INSERT INTO accounting_vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err := q.Exec(ctx, query,
		m.VoucherID,
		m.VoucherNumber,
		m.VoucherTypeID,
		m.VoucherDate,
		m.Description,
		m.FiscalPeriodID,
		m.CurrencyID,
		m.ExchangeRate,
		m.TotalDebit,
		m.TotalCredit,
		m.TotalAmount,
		m.Status,
		m.JournalEntryID,
		m.ReversalJournalEntryID,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CancelledBy,
		m.CancelledAt,
		m.CancellationReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to insert voucher "+m.VoucherNumber, err)
	}

	batch := &pgx.Batch{}
	queueVoucherLines(batch, voucher.Lines)
	if batch.Len() == 0 {
		return nil
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to insert lines for voucher "+m.VoucherNumber, err)
	}
	return nil
}

func (r *PgxVoucherRepository) findVoucher(ctx context.Context, voucherID string, forUpdate bool) (*domain.Voucher, error) {
	q := r.querier(ctx)
	query := `SELECT ` + voucherColumns + ` FROM accounting_vouchers WHERE voucher_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanVoucher(q.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("voucher", voucherID)
		}
		return nil, apperrors.NewPersistenceError("failed to find voucher by ID "+voucherID, err)
	}
	voucher := mapping.ToDomainVoucher(m)

	rows, err := q.Query(ctx, `SELECT `+voucherLineColumns+` FROM accounting_voucher_lines WHERE voucher_id = $1 ORDER BY order_number, line_id;`, voucherID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query lines for voucher "+voucherID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.VoucherLine
		if err := rows.Scan(&l.LineID, &l.VoucherID, &l.AccountID, &l.Description, &l.DebitAmount, &l.CreditAmount, &l.OrderNumber); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan line row for voucher "+voucherID, err)
		}
		voucher.Lines = append(voucher.Lines, mapping.ToDomainVoucherLine(l))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating line rows for voucher "+voucherID, err)
	}
	return &voucher, nil
}

// FindVoucherByID retrieves a voucher with its lines.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, voucherID, false)
}

// FindVoucherByIDForUpdate retrieves a voucher with its lines and locks the header row.
func (r *PgxVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	if !inTx(ctx) {
		return nil, apperrors.NewPersistenceError("row lock on voucher "+voucherID+" requested outside a transaction", errors.New("no transaction in context"))
	}
	return r.findVoucher(ctx, voucherID, true)
}

// ListVouchers retrieves a paginated list of voucher headers ordered by voucher_date DESC, created_at DESC.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.FiscalPeriodID != nil {
		args = append(args, *filter.FiscalPeriodID)
		conditions = append(conditions, "fiscal_period_id = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastDate, lastCreatedAt, lastID)
		n := len(args)
		conditions = append(conditions, "(voucher_date, created_at, voucher_id) < ($"+strconv.Itoa(n-2)+", $"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+")")
	}

	query := `SELECT ` + voucherColumns + ` FROM accounting_vouchers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY voucher_date DESC, created_at DESC, voucher_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewPersistenceError("failed to query vouchers", err)
	}
	defer rows.Close()

	results := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, apperrors.NewPersistenceError("failed to scan voucher row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewPersistenceError("error iterating voucher rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.VoucherDate, last.CreatedAt, last.VoucherID)
		nextTokenVal = &token
		results = results[:limit]
	}

	vouchers := make([]domain.Voucher, len(results))
	for i, m := range results {
		vouchers[i] = mapping.ToDomainVoucher(m)
	}
	return vouchers, nextTokenVal, nil
}

// UpdateVoucher rewrites the header of a draft voucher and replaces its lines.
func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	batch := &pgx.Batch{}
	batch.Queue(`
		UPDATE accounting_vouchers
		SET voucher_type_id = $2, voucher_date = $3, description = $4, fiscal_period_id = $5, currency_id = $6,
		    exchange_rate = $7, total_debit = $8, total_credit = $9, total_amount = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE voucher_id = $1;`,
		m.VoucherID, m.VoucherTypeID, m.VoucherDate, m.Description, m.FiscalPeriodID, m.CurrencyID,
		m.ExchangeRate, m.TotalDebit, m.TotalCredit, m.TotalAmount, m.LastUpdatedAt, m.LastUpdatedBy)
	batch.Queue(`DELETE FROM accounting_voucher_lines WHERE voucher_id = $1;`, m.VoucherID)
	queueVoucherLines(batch, voucher.Lines)

	if err := r.querier(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to update voucher "+m.VoucherID, err)
	}
	return nil
}

// UpdateVoucherStatus sets the status of a voucher.
func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, updatedBy string, updatedAt time.Time) error {
	cmdTag, err := r.querier(ctx).Exec(ctx, `
		UPDATE accounting_vouchers SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1;`, voucherID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update status of voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher", voucherID)
	}
	return nil
}

// MarkVoucherApproved links the generated entry. The journal_entry_id IS NULL
// guard makes a second approval affect zero rows.
func (r *PgxVoucherRepository) MarkVoucherApproved(ctx context.Context, voucherID string, journalEntryID string, approvedBy string, approvedAt time.Time) error {
	cmdTag, err := r.querier(ctx).Exec(ctx, `
		UPDATE accounting_vouchers
		SET status = $2, journal_entry_id = $3, approved_by = $4, approved_at = $5,
		    last_updated_at = $5, last_updated_by = $4
		WHERE voucher_id = $1 AND journal_entry_id IS NULL AND status IN ($6, $7);`,
		voucherID, string(domain.VoucherStatusApproved), journalEntryID, approvedBy, approvedAt,
		string(domain.VoucherStatusDraft), string(domain.VoucherStatusValidated))
	if err != nil {
		return mapWriteError("failed to approve voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "voucher "+voucherID+" was already approved or cancelled", apperrors.ErrInvalidState)
	}
	return nil
}

// MarkVoucherCancelled cancels the voucher and records the reversal entry, if any.
func (r *PgxVoucherRepository) MarkVoucherCancelled(ctx context.Context, voucherID string, reversalEntryID *string, reason string, cancelledBy string, cancelledAt time.Time) error {
	cmdTag, err := r.querier(ctx).Exec(ctx, `
		UPDATE accounting_vouchers
		SET status = $2, reversal_journal_entry_id = $3, cancellation_reason = $4, cancelled_by = $5, cancelled_at = $6,
		    last_updated_at = $6, last_updated_by = $5
		WHERE voucher_id = $1 AND status <> $2;`,
		voucherID, string(domain.VoucherStatusCancelled), reversalEntryID, reason, cancelledBy, cancelledAt)
	if err != nil {
		return mapWriteError("failed to cancel voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "voucher "+voucherID+" is already cancelled", apperrors.ErrInvalidState)
	}
	return nil
}

// DeleteVoucher removes a draft voucher; lines cascade.
func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string) error {
	cmdTag, err := r.querier(ctx).Exec(ctx, `DELETE FROM accounting_vouchers WHERE voucher_id = $1 AND status = $2;`,
		voucherID, string(domain.VoucherStatusDraft))
	if err != nil {
		return mapWriteError("failed to delete voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "voucher "+voucherID+" cannot be deleted", apperrors.ErrInvalidState)
	}
	return nil
}
