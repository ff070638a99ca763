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
	"github.com/shopspring/decimal"
)

const entryColumns = `
	entry_id, entry_number, entry_type, entry_date, fiscal_period_id, reference, description,
	third_party_id, status, total_debit, total_credit, is_adjustment, is_recurring,
	source_document_type, source_document_id, reversal_entry_id, reversal_reason,
	posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, entry_id, account_id, third_party_id, description, debit_amount, credit_amount,
	order_number, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_entry_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries and their lines.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryFacade
var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryType,
		&m.EntryDate,
		&m.FiscalPeriodID,
		&m.Reference,
		&m.Description,
		&m.ThirdPartyID,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsAdjustment,
		&m.IsRecurring,
		&m.SourceDocumentType,
		&m.SourceDocumentID,
		&m.ReversalEntryID,
		&m.ReversalReason,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var l models.JournalEntryLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.AccountID,
		&l.ThirdPartyID,
		&l.Description,
		&l.DebitAmount,
		&l.CreditAmount,
		&l.OrderNumber,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

func queueLineInsert(batch *pgx.Batch, line domain.JournalEntryLine) {
	m := mapping.ToModelJournalEntryLine(line)
	batch.Queue(insertLineQuery,
		m.LineID,
		m.EntryID,
		m.AccountID,
		m.ThirdPartyID,
		m.Description,
		m.DebitAmount,
		m.CreditAmount,
		m.OrderNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// SaveEntry inserts the entry header and queues every line into one batch.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	q := r.querier(ctx)
	m := mapping.ToModelJournalEntry(entry)

	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err := q.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryType,
		m.EntryDate,
		m.FiscalPeriodID,
		m.Reference,
		m.Description,
		m.ThirdPartyID,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.IsAdjustment,
		m.IsRecurring,
		m.SourceDocumentType,
		m.SourceDocumentID,
		m.ReversalEntryID,
		m.ReversalReason,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to insert journal entry "+m.EntryNumber, err)
	}

	if len(entry.Lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		queueLineInsert(batch, line)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to insert lines for journal entry "+m.EntryNumber, err)
	}
	return nil
}

func (r *PgxJournalEntryRepository) findEntry(ctx context.Context, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanEntry(r.querier(ctx).QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry", entryID)
		}
		return nil, apperrors.NewPersistenceError("failed to find journal entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, entryID, false)
}

// FindEntryByIDForUpdate retrieves an entry with its lines and locks the header row.
func (r *PgxJournalEntryRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !inTx(ctx) {
		return nil, apperrors.NewPersistenceError("row lock on journal entry "+entryID+" requested outside a transaction", errors.New("no transaction in context"))
	}
	return r.findEntry(ctx, entryID, true)
}

// ListEntries retrieves a paginated list of entry headers using token-based pagination.
// Ordering is entry_date DESC, created_at DESC, entry_id DESC; the token points at the last row returned.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
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
	if filter.SourceDocumentType != nil {
		args = append(args, *filter.SourceDocumentType)
		conditions = append(conditions, "source_document_type = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		args = append(args, lastDate, lastCreatedAt, lastID)
		n := len(args)
		conditions = append(conditions, "(entry_date, created_at, entry_id) < ($"+strconv.Itoa(n-2)+", $"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+")")
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewPersistenceError("failed to query journal entries", err)
	}
	defer rows.Close()

	results := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewPersistenceError("failed to scan journal entry row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewPersistenceError("error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = results[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// UpdateEntryHeader rewrites the editable header columns of an entry.
func (r *PgxJournalEntryRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, fiscal_period_id = $3, reference = $4, description = $5, third_party_id = $6,
		    is_adjustment = $7, is_recurring = $8, total_debit = $9, total_credit = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE entry_id = $1;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.FiscalPeriodID,
		m.Reference,
		m.Description,
		m.ThirdPartyID,
		m.IsAdjustment,
		m.IsRecurring,
		m.TotalDebit,
		m.TotalCredit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to update journal entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry", m.EntryID)
	}
	return nil
}

// UpdateEntryTotals stores recomputed totals.
func (r *PgxJournalEntryRepository) UpdateEntryTotals(ctx context.Context, entryID string, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET total_debit = $2, total_credit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, entryID, totalDebit, totalCredit, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update totals of journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry", entryID)
	}
	return nil
}

// MarkEntryPosted moves a draft entry to posted. The status guard in the WHERE
// clause makes a concurrent second post affect zero rows.
func (r *PgxJournalEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_by = $3, posted_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = $5;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, entryID, string(domain.EntryStatusPosted), postedBy, postedAt, string(domain.EntryStatusDraft))
	if err != nil {
		return apperrors.NewPersistenceError("failed to post journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is not a draft", apperrors.ErrInvalidState)
	}
	return nil
}

// MarkEntryReversed moves a posted entry to reversed and links the reversal entry.
func (r *PgxJournalEntryRepository) MarkEntryReversed(ctx context.Context, entryID string, reversalEntryID string, reason string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, reversal_entry_id = $3, reversal_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1 AND status = $7;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, entryID, string(domain.EntryStatusReversed), reversalEntryID, reason, updatedAt, updatedBy, string(domain.EntryStatusPosted))
	if err != nil {
		return mapWriteError("failed to reverse journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is not posted", apperrors.ErrInvalidState)
	}
	return nil
}

// DeleteEntry removes a draft entry; its lines go with it through ON DELETE CASCADE.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = $1 AND status = $2;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query, entryID, string(domain.EntryStatusDraft))
	if err != nil {
		return mapWriteError("failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "journal entry "+entryID+" cannot be deleted", apperrors.ErrInvalidState)
	}
	return nil
}

// FindLinesByEntryID retrieves the lines of an entry ordered by order_number.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY order_number, line_id;`
	rows, err := r.querier(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalEntryLine{}
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan line row for journal entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating line rows for journal entry "+entryID, err)
	}
	return mapping.ToDomainJournalEntryLineSlice(lines), nil
}

// ReplaceLines deletes every line of the entry and inserts the given ones in one batch.
func (r *PgxJournalEntryRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID)
	for _, line := range lines {
		queueLineInsert(batch, line)
	}
	if err := r.querier(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError("failed to replace lines of journal entry "+entryID, err)
	}
	return nil
}

// SaveLine inserts a single line.
func (r *PgxJournalEntryRepository) SaveLine(ctx context.Context, line domain.JournalEntryLine) error {
	m := mapping.ToModelJournalEntryLine(line)
	_, err := r.querier(ctx).Exec(ctx, insertLineQuery,
		m.LineID,
		m.EntryID,
		m.AccountID,
		m.ThirdPartyID,
		m.Description,
		m.DebitAmount,
		m.CreditAmount,
		m.OrderNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to insert line "+m.LineID, err)
	}
	return nil
}

// UpdateLine rewrites the mutable columns of a line.
func (r *PgxJournalEntryRepository) UpdateLine(ctx context.Context, line domain.JournalEntryLine) error {
	m := mapping.ToModelJournalEntryLine(line)
	query := `
		UPDATE journal_entry_lines
		SET account_id = $3, third_party_id = $4, description = $5, debit_amount = $6, credit_amount = $7,
		    order_number = $8, last_updated_at = $9, last_updated_by = $10
		WHERE entry_id = $1 AND line_id = $2;`
	cmdTag, err := r.querier(ctx).Exec(ctx, query,
		m.EntryID,
		m.LineID,
		m.AccountID,
		m.ThirdPartyID,
		m.Description,
		m.DebitAmount,
		m.CreditAmount,
		m.OrderNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError("failed to update line "+m.LineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry line", m.LineID)
	}
	return nil
}

// DeleteLine removes a single line.
func (r *PgxJournalEntryRepository) DeleteLine(ctx context.Context, entryID string, lineID string) error {
	cmdTag, err := r.querier(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1 AND line_id = $2;`, entryID, lineID)
	if err != nil {
		return apperrors.NewPersistenceError("failed to delete line "+lineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry line", lineID)
	}
	return nil
}

// UpdateLineOrder stores the order_number of each given line in one batch.
func (r *PgxJournalEntryRepository) UpdateLineOrder(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			UPDATE journal_entry_lines
			SET order_number = $3, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND line_id = $2;`,
			entryID, line.LineID, line.OrderNumber, line.LastUpdatedAt, line.LastUpdatedBy)
	}
	if err := r.querier(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewPersistenceError("failed to reorder lines of journal entry "+entryID, err)
	}
	return nil
}
