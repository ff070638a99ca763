package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue increments the counter of scope in a single upsert. The row lock
// taken by the upsert serializes concurrent callers until their transaction ends,
// so two transactions never observe the same value.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, scope string) (int64, error) {
	query := `
		INSERT INTO document_sequences (scope, last_value)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;`
	var value int64
	if err := r.querier(ctx).QueryRow(ctx, query, scope).Scan(&value); err != nil {
		return 0, apperrors.NewPersistenceError("failed to advance sequence "+scope, err)
	}
	return value, nil
}
