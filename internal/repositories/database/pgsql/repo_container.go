package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:           newPgxTxManager(dbPool),
		JournalEntryRepo:    newPgxJournalEntryRepository(dbPool),
		VoucherRepo:         newPgxVoucherRepository(dbPool),
		SequenceRepo:        newPgxSequenceRepository(dbPool),
		AccountBalanceRepo:  newPgxAccountBalanceRepository(dbPool),
		FiscalPeriodRepo:    newPgxFiscalPeriodRepository(dbPool),
		AccountRepo:         newPgxAccountRepository(dbPool),
		BankTransactionRepo: newPgxBankTransactionRepository(dbPool),
	}
}
