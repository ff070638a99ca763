package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager           TxManager
	JournalEntryRepo    JournalEntryRepositoryFacade
	VoucherRepo         VoucherRepositoryFacade
	SequenceRepo        SequenceRepository
	AccountBalanceRepo  AccountBalanceRepositoryFacade
	FiscalPeriodRepo    FiscalPeriodReader
	AccountRepo         AccountReader
	BankTransactionRepo BankTransactionRepositoryFacade
}
