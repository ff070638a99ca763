package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	balanceRepo *MockAccountBalanceRepository
	periodRepo  *MockFiscalPeriodRepository
	tx          *fakeTxManager
	service     portssvc.BalanceSvcFacade

	ctx      context.Context
	now      time.Time
	periodID string
	cash     string
	revenue  string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.balanceRepo = new(MockAccountBalanceRepository)
	suite.periodRepo = new(MockFiscalPeriodRepository)
	suite.tx = &fakeTxManager{}
	suite.ctx = context.Background()
	suite.now = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	suite.periodID = uuid.NewString()
	// fixed ids keep the delta order predictable
	suite.cash = "a-cash"
	suite.revenue = "b-revenue"

	suite.service = services.NewBalanceService(suite.tx, suite.balanceRepo, suite.periodRepo,
		services.WithClock(func() time.Time { return suite.now }))
}

func (suite *BalanceServiceTestSuite) TestApply_AggregatesPerAccount() {
	lines := []domain.JournalEntryLine{
		creditLine(suite.revenue, "150"),
		debitLine(suite.cash, "100"),
		debitLine(suite.cash, "50"),
	}
	suite.balanceRepo.On("ApplyDeltas", mock.Anything, suite.periodID, mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
		return len(deltas) == 2 &&
			deltas[0].AccountID == suite.cash && deltas[0].Debit.Equal(amount("150")) && deltas[0].Credit.IsZero() &&
			deltas[1].AccountID == suite.revenue && deltas[1].Credit.Equal(amount("150")) && deltas[1].Debit.IsZero()
	}), suite.now).Return(nil).Once()

	suite.Require().NoError(suite.service.Apply(suite.ctx, lines, suite.periodID))
	suite.balanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestUnapply_SubtractsWithoutClamping() {
	lines := []domain.JournalEntryLine{debitLine(suite.cash, "500"), creditLine(suite.revenue, "500")}
	suite.balanceRepo.On("ApplyDeltas", mock.Anything, suite.periodID, mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
		return len(deltas) == 2 &&
			deltas[0].Debit.Equal(amount("-500")) &&
			deltas[1].Credit.Equal(amount("-500"))
	}), suite.now).Return(nil).Once()

	suite.Require().NoError(suite.service.Unapply(suite.ctx, lines, suite.periodID))
	suite.balanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestApply_NoLinesIsNoop() {
	suite.NoError(suite.service.Apply(suite.ctx, nil, suite.periodID))
	suite.balanceRepo.AssertNotCalled(suite.T(), "ApplyDeltas", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestRebuildPeriodBalances() {
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(closedPeriod(suite.periodID), nil).Once()
	suite.balanceRepo.On("RebuildPeriodBalances", mock.Anything, suite.periodID, suite.now).Return(int64(3), nil).Once()

	rows, err := suite.service.RebuildPeriodBalances(suite.ctx, suite.periodID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), rows)
	suite.Equal(1, suite.tx.commits)
	suite.balanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestListPeriodBalances_UnknownPeriod() {
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).
		Return(nil, apperrors.NewNotFoundError("fiscal period", suite.periodID)).Once()

	_, err := suite.service.ListPeriodBalances(suite.ctx, suite.periodID)

	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	suite.balanceRepo.AssertNotCalled(suite.T(), "ListBalancesByPeriod", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalance_NotFound() {
	suite.balanceRepo.On("FindBalance", mock.Anything, suite.cash, suite.periodID).
		Return(nil, apperrors.NewNotFoundError("account balance", suite.cash)).Once()

	_, err := suite.service.GetBalance(suite.ctx, suite.cash, suite.periodID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
