package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
)

// --- Fake TxManager ---
// Runs fn inline and remembers how each unit of work ended.
type fakeTxManager struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

var _ portsrepo.TxManager = (*fakeTxManager)(nil)

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rollbacks++
	} else {
		f.commits++
	}
	return err
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntryTotals(ctx context.Context, entryID string, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, totalDebit, totalCredit, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) MarkEntryReversed(ctx context.Context, entryID string, reversalEntryID string, reason string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, reversalEntryID, reason, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalEntryRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entryID, lines)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) SaveLine(ctx context.Context, line domain.JournalEntryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateLine(ctx context.Context, line domain.JournalEntryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteLine(ctx context.Context, entryID string, lineID string) error {
	args := m.Called(ctx, entryID, lineID)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateLineOrder(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entryID, lines)
	return args.Error(0)
}

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var vouchers []domain.Voucher
	if args.Get(0) != nil {
		vouchers = args.Get(0).([]domain.Voucher)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return vouchers, token, args.Error(2)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, voucherID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) MarkVoucherApproved(ctx context.Context, voucherID string, journalEntryID string, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, voucherID, journalEntryID, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) MarkVoucherCancelled(ctx context.Context, voucherID string, reversalEntryID *string, reason string, cancelledBy string, cancelledAt time.Time) error {
	args := m.Called(ctx, voucherID, reversalEntryID, reason, cancelledBy, cancelledAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string) error {
	args := m.Called(ctx, voucherID)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, scope string) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodReader = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock AccountBalanceRepository ---
type MockAccountBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.AccountBalanceRepositoryFacade = (*MockAccountBalanceRepository)(nil)

func (m *MockAccountBalanceRepository) FindBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockAccountBalanceRepository) ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockAccountBalanceRepository) ApplyDeltas(ctx context.Context, fiscalPeriodID string, deltas []domain.BalanceDelta, updatedAt time.Time) error {
	args := m.Called(ctx, fiscalPeriodID, deltas, updatedAt)
	return args.Error(0)
}

func (m *MockAccountBalanceRepository) RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, fiscalPeriodID, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) SaveBankTransactions(ctx context.Context, txs []domain.BankTransaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) VoidByEntry(ctx context.Context, entryID string, voidedBy string, reason string, voidedAt time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entryID, voidedBy, reason, voidedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

// --- Mock BalanceProjector ---
type MockBalanceProjector struct {
	mock.Mock
}

var _ portssvc.BalanceProjector = (*MockBalanceProjector)(nil)

func (m *MockBalanceProjector) Apply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	args := m.Called(ctx, lines, fiscalPeriodID)
	return args.Error(0)
}

func (m *MockBalanceProjector) Unapply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	args := m.Called(ctx, lines, fiscalPeriodID)
	return args.Error(0)
}

// --- Mock BankSideEffectNotifier ---
type MockBankNotifier struct {
	mock.Mock
}

var _ portssvc.BankSideEffectNotifier = (*MockBankNotifier)(nil)

func (m *MockBankNotifier) HasBankAccountLines(ctx context.Context, lines []domain.JournalEntryLine) (bool, error) {
	args := m.Called(ctx, lines)
	return args.Bool(0), args.Error(1)
}

func (m *MockBankNotifier) ProcessForBankTransactions(ctx context.Context, entry domain.JournalEntry, actorID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entry, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankNotifier) VoidBankTransactionsByEntry(ctx context.Context, entryID string, actorID string, reason string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entryID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

// --- Recording dispatcher ---
type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
}

var _ portssvc.LedgerEventDispatcher = (*recordingDispatcher)(nil)

func (d *recordingDispatcher) Dispatch(_ context.Context, events ...domain.LedgerEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *recordingDispatcher) types() []domain.LedgerEventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.LedgerEventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

// --- Stub hook ---
type stubHook struct {
	name  string
	calls int
	fn    func(ctx context.Context, event domain.LedgerEvent) error
}

var _ portssvc.LedgerHook = (*stubHook)(nil)

func (h *stubHook) Name() string { return h.name }

func (h *stubHook) Handle(ctx context.Context, event domain.LedgerEvent) error {
	h.calls++
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, event)
}

// --- fixtures ---

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func debitLine(accountID, value string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, DebitAmount: amount(value), CreditAmount: decimal.Zero}
}

func creditLine(accountID, value string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, DebitAmount: decimal.Zero, CreditAmount: amount(value)}
}

func openPeriod(id string) *domain.FiscalPeriod {
	return &domain.FiscalPeriod{FiscalPeriodID: id, Name: "2024-03", Status: domain.FiscalPeriodOpen}
}

func closedPeriod(id string) *domain.FiscalPeriod {
	return &domain.FiscalPeriod{FiscalPeriodID: id, Name: "2023-12", Status: domain.FiscalPeriodClosed, IsClosed: true}
}
