package services

import (
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/metrics"
	"github.com/SscSPs/ledger_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The bank hook is always registered; extraHooks (for example the event publisher) run after it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics, extraHooks ...portssvc.LedgerHook) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Bank transactions are a side effect, so they are built first and handed to the dispatcher
	container.BankTransaction = NewBankTransactionService(repos.TxManager, repos.AccountRepo, repos.BankTransactionRepo,
		WithMetrics(m))

	hooks := append([]portssvc.LedgerHook{NewBankSideEffectHook(container.BankTransaction)}, extraHooks...)
	dispatcher := NewHookDispatcher(DispatcherConfig{
		Timeout:     cfg.BankNotifierTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}, m, hooks...)
	container.Hooks = dispatcher

	opts := []ServiceOption{WithMetrics(m), WithDispatcher(dispatcher)}

	container.Balance = NewBalanceService(repos.TxManager, repos.AccountBalanceRepo, repos.FiscalPeriodRepo, opts...)
	container.JournalEntry = NewJournalEntryService(repos.TxManager, repos.JournalEntryRepo, repos.FiscalPeriodRepo,
		repos.SequenceRepo, container.Balance, opts...)
	container.Voucher = NewVoucherService(repos.TxManager, repos.VoucherRepo, repos.FiscalPeriodRepo,
		repos.SequenceRepo, container.JournalEntry, opts...)

	return container
}
