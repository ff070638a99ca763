package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed bearer token for userID.
func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID))
}
func (m *MockJournalEntryService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, req, actorID))
}
func (m *MockJournalEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, req, actorID))
}
func (m *MockJournalEntryService) PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, actorID))
}
func (m *MockJournalEntryService) ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, reason)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).(*domain.JournalEntry), args.Error(2)
}
func (m *MockJournalEntryService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	return m.Called(ctx, entryID, actorID).Error(0)
}
func (m *MockJournalEntryService) AddLine(ctx context.Context, entryID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, req, actorID))
}
func (m *MockJournalEntryService) UpdateLine(ctx context.Context, entryID string, lineID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, lineID, req, actorID))
}
func (m *MockJournalEntryService) DeleteLine(ctx context.Context, entryID string, lineID string, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, lineID, actorID))
}
func (m *MockJournalEntryService) ReorderLines(ctx context.Context, entryID string, lineIDs []string, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, lineIDs, actorID))
}
func (m *MockJournalEntryService) GenerateEntryNumber(ctx context.Context, entryType string, date time.Time) (string, error) {
	args := m.Called(ctx, entryType, date)
	return args.String(0), args.Error(1)
}
func (m *MockJournalEntryService) CreateEntryInTx(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entry, actorID))
}
func (m *MockJournalEntryService) PostEntryInTx(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, entryID, actorID))
}
func (m *MockJournalEntryService) ReverseEntryInTx(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, reason)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).(*domain.JournalEntry), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- Mock BankTransactionReader ---
type MockBankTransactionReader struct {
	mock.Mock
}

func (m *MockBankTransactionReader) ListBankTransactionsByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

var _ portssvc.BankTransactionReaderSvc = (*MockBankTransactionReader)(nil)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) voucherResult(args mock.Arguments) (*domain.Voucher, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID))
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}
func (m *MockVoucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actorID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, req, actorID))
}
func (m *MockVoucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actorID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, req, actorID))
}
func (m *MockVoucherService) ValidateVoucher(ctx context.Context, voucherID string, actorID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, actorID))
}
func (m *MockVoucherService) ApproveVoucher(ctx context.Context, voucherID string, actorID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, actorID))
}
func (m *MockVoucherService) CancelVoucher(ctx context.Context, voucherID string, reason string, actorID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, voucherID, reason, actorID))
}
func (m *MockVoucherService) DeleteVoucher(ctx context.Context, voucherID string, actorID string) error {
	return m.Called(ctx, voucherID, actorID).Error(0)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Apply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	return m.Called(ctx, lines, fiscalPeriodID).Error(0)
}
func (m *MockBalanceService) Unapply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	return m.Called(ctx, lines, fiscalPeriodID).Error(0)
}
func (m *MockBalanceService) GetBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}
func (m *MockBalanceService) ListPeriodBalances(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}
func (m *MockBalanceService) RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string) (int64, error) {
	args := m.Called(ctx, fiscalPeriodID)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)
