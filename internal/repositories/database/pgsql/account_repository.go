package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountReader {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

// FindAccountsByIDs retrieves the accounts matching the given ids.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}

	query := `
		SELECT account_id, code, name, balance_type, is_bank_account, is_active
		FROM accounts
		WHERE account_id = ANY($1);`
	rows, err := r.querier(ctx).Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query accounts by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acc domain.Account
		var balanceType string
		if err := rows.Scan(&acc.AccountID, &acc.Code, &acc.Name, &balanceType, &acc.IsBankAccount, &acc.IsActive); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan account row", err)
		}
		acc.BalanceType = accounting.BalanceType(balanceType)
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("error iterating account rows", err)
	}
	return accounts, nil
}
