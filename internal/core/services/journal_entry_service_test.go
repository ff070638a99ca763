package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/core/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
)

type JournalEntryServiceTestSuite struct {
	suite.Suite
	entryRepo  *MockJournalEntryRepository
	periodRepo *MockFiscalPeriodRepository
	seqRepo    *MockSequenceRepository
	projector  *MockBalanceProjector
	tx         *fakeTxManager
	dispatcher *recordingDispatcher
	service    portssvc.JournalEntrySvcFacade

	ctx      context.Context
	now      time.Time
	periodID string
	userID   string
	cash     string
	revenue  string
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.entryRepo = new(MockJournalEntryRepository)
	suite.periodRepo = new(MockFiscalPeriodRepository)
	suite.seqRepo = new(MockSequenceRepository)
	suite.projector = new(MockBalanceProjector)
	suite.tx = &fakeTxManager{}
	suite.dispatcher = &recordingDispatcher{}

	suite.ctx = context.Background()
	suite.now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	suite.periodID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cash = uuid.NewString()
	suite.revenue = uuid.NewString()

	suite.service = services.NewJournalEntryService(suite.tx, suite.entryRepo, suite.periodRepo, suite.seqRepo, suite.projector,
		services.WithDispatcher(suite.dispatcher),
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *JournalEntryServiceTestSuite) assertMocks() {
	suite.entryRepo.AssertExpectations(suite.T())
	suite.periodRepo.AssertExpectations(suite.T())
	suite.seqRepo.AssertExpectations(suite.T())
	suite.projector.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) entryWith(status domain.EntryStatus, lines ...domain.JournalEntryLine) *domain.JournalEntry {
	entryID := uuid.NewString()
	for i := range lines {
		if lines[i].LineID == "" {
			lines[i].LineID = uuid.NewString()
		}
		lines[i].EntryID = entryID
		lines[i].OrderNumber = i + 1
	}
	entry := &domain.JournalEntry{
		EntryID:        entryID,
		EntryNumber:    "JE-2024-00001",
		EntryType:      domain.DefaultEntryType,
		EntryDate:      suite.now,
		FiscalPeriodID: suite.periodID,
		Description:    "March sales",
		Status:         status,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(suite.now, suite.userID),
	}
	entry.RecalculateTotals()
	return entry
}

func (suite *JournalEntryServiceTestSuite) createRequest(lines ...dto.JournalEntryLineRequest) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:      suite.now,
		FiscalPeriodID: suite.periodID,
		Description:    "March sales",
		Lines:          lines,
	}
}

func lineReq(accountID, debit, credit string) dto.JournalEntryLineRequest {
	return dto.JournalEntryLineRequest{AccountID: accountID, DebitAmount: amount(debit), CreditAmount: amount(credit)}
}

// --- Create ---

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_Success() {
	req := suite.createRequest(lineReq(suite.cash, "100", "0"), lineReq(suite.revenue, "0", "100"))
	req.Status = "posted"

	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.seqRepo.On("NextValue", mock.Anything, "entry:JE:2024").Return(int64(7), nil).Once()
	suite.entryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryNumber == "JE-2024-00007" &&
			e.Status == domain.EntryStatusDraft &&
			len(e.Lines) == 2 &&
			e.Lines[0].EntryID == e.EntryID &&
			e.Lines[1].OrderNumber == 2
	})).Return(nil).Once()

	created, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("JE-2024-00007", created.EntryNumber)
	suite.Equal(domain.EntryStatusDraft, created.Status)
	suite.True(created.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(created.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Equal(suite.now, created.CreatedAt)
	suite.Empty(suite.dispatcher.types())
	suite.Equal(1, suite.tx.commits)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_UnbalancedDraftIsAccepted() {
	req := suite.createRequest(lineReq(suite.cash, "100", "0"), lineReq(suite.revenue, "0", "50"))
	req.EntryNumber = "MAN-001"

	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	created, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("MAN-001", created.EntryNumber)
	suite.False(created.IsBalanced())
	suite.seqRepo.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_InvalidLine() {
	testCases := []struct {
		name string
		line dto.JournalEntryLineRequest
	}{
		{"both sides", lineReq(suite.cash, "10", "10")},
		{"neither side", lineReq(suite.cash, "0", "0")},
		{"negative", lineReq(suite.cash, "-5", "0")},
		{"beyond stored scale", lineReq(suite.cash, "10.00005", "0")},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.createRequest(tc.line, lineReq(suite.revenue, "0", "10"))

			_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrInvalidLine)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.periodRepo.AssertNotCalled(suite.T(), "FindPeriodByID", mock.Anything, mock.Anything)
	suite.entryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_UnknownPeriod() {
	req := suite.createRequest(lineReq(suite.cash, "100", "0"), lineReq(suite.revenue, "0", "100"))
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).
		Return(nil, apperrors.NewNotFoundError("fiscal period", suite.periodID)).Once()

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	suite.Equal(1, suite.tx.rollbacks)
	suite.entryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestCreateEntry_RejectsReversalSource() {
	req := suite.createRequest(lineReq(suite.cash, "100", "0"))
	source := domain.SourceDocumentReversal
	req.SourceDocumentType = &source

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.tx.commits + suite.tx.rollbacks)
}

// --- Post ---

func (suite *JournalEntryServiceTestSuite) TestPostEntry_Success() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "500"), creditLine(suite.revenue, "500"))
	lines := entry.Lines

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("MarkEntryPosted", mock.Anything, entry.EntryID, suite.userID, suite.now).Return(nil).Once()
	suite.projector.On("Apply", mock.Anything, lines, suite.periodID).Return(nil).Once()

	posted, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusPosted, posted.Status)
	suite.Require().NotNil(posted.PostedBy)
	suite.Equal(suite.userID, *posted.PostedBy)
	suite.Equal(suite.now, *posted.PostedAt)
	suite.Equal([]domain.LedgerEventType{domain.EventEntryPosted}, suite.dispatcher.types())
	suite.Equal(entry.EntryID, suite.dispatcher.events[0].Entry.EntryID)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_WithinTolerance() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "100.00"), creditLine(suite.revenue, "100.01"))

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("MarkEntryPosted", mock.Anything, entry.EntryID, suite.userID, suite.now).Return(nil).Once()
	suite.projector.On("Apply", mock.Anything, mock.Anything, suite.periodID).Return(nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.NoError(err)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_Unbalanced() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "300"), creditLine(suite.revenue, "250"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	posted, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.Nil(posted)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.Equal(domain.EntryStatusDraft, entry.Status)
	suite.Equal(1, suite.tx.rollbacks)
	suite.Empty(suite.dispatcher.types())
	suite.entryRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.projector.AssertNotCalled(suite.T(), "Apply", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_ClosedPeriod() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(closedPeriod(suite.periodID), nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrClosedPeriod)
	suite.entryRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_AlreadyPosted() {
	entry := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.periodRepo.AssertNotCalled(suite.T(), "FindPeriodByID", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_NoLines() {
	entry := suite.entryWith(domain.EntryStatusDraft)
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_ProjectionFailureRollsBack() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	dbErr := apperrors.NewPersistenceError("failed to apply balance deltas", context.DeadlineExceeded)

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("MarkEntryPosted", mock.Anything, entry.EntryID, suite.userID, suite.now).Return(nil).Once()
	suite.projector.On("Apply", mock.Anything, mock.Anything, suite.periodID).Return(dbErr).Once()

	_, err := suite.service.PostEntry(suite.ctx, entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.Equal(1, suite.tx.rollbacks)
	suite.Empty(suite.dispatcher.types())
}

func (suite *JournalEntryServiceTestSuite) TestPostEntry_RequiresActor() {
	_, err := suite.service.PostEntry(suite.ctx, uuid.NewString(), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.entryRepo.AssertNotCalled(suite.T(), "FindEntryByIDForUpdate", mock.Anything, mock.Anything)
}

// --- Reverse ---

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_Success() {
	entry := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "500"), creditLine(suite.revenue, "500"))
	originalLines := append([]domain.JournalEntryLine(nil), entry.Lines...)
	reason := "duplicate"

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(r domain.JournalEntry) bool {
		return r.EntryNumber == "CANC-JE-2024-00001" &&
			r.Status == domain.EntryStatusPosted &&
			r.IsReversal() &&
			*r.SourceDocumentID == entry.EntryID &&
			r.FiscalPeriodID == suite.periodID &&
			r.Lines[0].CreditAmount.Equal(amount("500")) &&
			r.Lines[1].DebitAmount.Equal(amount("500"))
	})).Return(nil).Once()
	suite.entryRepo.On("MarkEntryReversed", mock.Anything, entry.EntryID, mock.AnythingOfType("string"), reason, suite.userID, suite.now).Return(nil).Once()
	suite.projector.On("Unapply", mock.Anything, originalLines, suite.periodID).Return(nil).Once()

	original, reversal, err := suite.service.ReverseEntry(suite.ctx, entry.EntryID, suite.userID, reason)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryStatusReversed, original.Status)
	suite.Require().NotNil(original.ReversalEntryID)
	suite.Equal(reversal.EntryID, *original.ReversalEntryID)
	suite.Equal(reason, *original.ReversalReason)
	suite.Equal(suite.cash, reversal.Lines[0].AccountID)
	suite.True(reversal.Lines[0].CreditAmount.Equal(amount("500")))
	suite.True(reversal.Lines[0].DebitAmount.IsZero())
	suite.True(reversal.IsBalanced())
	suite.Equal([]domain.LedgerEventType{domain.EventEntryReversed}, suite.dispatcher.types())
	suite.Equal(reason, suite.dispatcher.events[0].Reason)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_RequiresReason() {
	_, _, err := suite.service.ReverseEntry(suite.ctx, uuid.NewString(), suite.userID, "   ")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.entryRepo.AssertNotCalled(suite.T(), "FindEntryByIDForUpdate", mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_Draft() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, _, err := suite.service.ReverseEntry(suite.ctx, entry.EntryID, suite.userID, "oops")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.projector.AssertNotCalled(suite.T(), "Unapply", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestReverseEntry_ReversalCannotBeReversed() {
	entry := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	source := domain.SourceDocumentReversal
	entry.SourceDocumentType = &source
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, _, err := suite.service.ReverseEntry(suite.ctx, entry.EntryID, suite.userID, "again")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.entryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

// --- Update / delete ---

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_ReplacesLines() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	req := dto.UpdateJournalEntryRequest{
		EntryDate:      suite.now,
		FiscalPeriodID: suite.periodID,
		Description:    "corrected",
		Lines:          []dto.JournalEntryLineRequest{lineReq(suite.cash, "25", "0"), lineReq(suite.revenue, "0", "25")},
	}

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.periodRepo.On("FindPeriodByID", mock.Anything, suite.periodID).Return(openPeriod(suite.periodID), nil).Once()
	suite.entryRepo.On("ReplaceLines", mock.Anything, entry.EntryID, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 2 && lines[0].DebitAmount.Equal(amount("25"))
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateEntryHeader", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(suite.ctx, entry.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("corrected", updated.Description)
	suite.True(updated.TotalDebit.Equal(amount("25")))
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestUpdateEntry_PostedIsImmutable() {
	entry := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateEntry(suite.ctx, entry.EntryID, dto.UpdateJournalEntryRequest{
		EntryDate: suite.now, FiscalPeriodID: suite.periodID,
		Lines: []dto.JournalEntryLineRequest{lineReq(suite.cash, "1", "0")},
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.entryRepo.AssertNotCalled(suite.T(), "ReplaceLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestDeleteEntry() {
	draft := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"))
	posted := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, draft.EntryID).Return(draft, nil).Once()
	suite.entryRepo.On("DeleteEntry", mock.Anything, draft.EntryID).Return(nil).Once()
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, posted.EntryID).Return(posted, nil).Once()

	suite.NoError(suite.service.DeleteEntry(suite.ctx, draft.EntryID, suite.userID))
	suite.ErrorIs(suite.service.DeleteEntry(suite.ctx, posted.EntryID, suite.userID), apperrors.ErrInvalidState)
	suite.entryRepo.AssertNumberOfCalls(suite.T(), "DeleteEntry", 1)
	suite.assertMocks()
}

// --- Lines ---

func (suite *JournalEntryServiceTestSuite) TestAddLine_InsertsAtPosition() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	first, second := entry.Lines[0].LineID, entry.Lines[1].LineID
	position := 1
	req := dto.UpsertJournalEntryLineRequest{JournalEntryLineRequest: lineReq(suite.cash, "5", "0"), OrderNumber: &position}

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.entryRepo.On("SaveLine", mock.Anything, mock.MatchedBy(func(l domain.JournalEntryLine) bool {
		return l.OrderNumber == 1 && l.EntryID == entry.EntryID && l.DebitAmount.Equal(amount("5"))
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateLineOrder", mock.Anything, entry.EntryID, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 3 && lines[1].LineID == first && lines[1].OrderNumber == 2 && lines[2].LineID == second
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateEntryTotals", mock.Anything, entry.EntryID, mock.Anything, mock.Anything, suite.userID, suite.now).Return(nil).Once()

	updated, err := suite.service.AddLine(suite.ctx, entry.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(updated.Lines, 3)
	suite.True(updated.TotalDebit.Equal(amount("15")))
	suite.True(updated.TotalCredit.Equal(amount("10")))
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestAddLine_AppendsWithoutReorder() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"))
	req := dto.UpsertJournalEntryLineRequest{JournalEntryLineRequest: lineReq(suite.revenue, "0", "10")}

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.entryRepo.On("SaveLine", mock.Anything, mock.MatchedBy(func(l domain.JournalEntryLine) bool {
		return l.OrderNumber == 2
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateEntryTotals", mock.Anything, entry.EntryID, mock.Anything, mock.Anything, suite.userID, suite.now).Return(nil).Once()

	updated, err := suite.service.AddLine(suite.ctx, entry.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.IsBalanced())
	suite.entryRepo.AssertNotCalled(suite.T(), "UpdateLineOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalEntryServiceTestSuite) TestAddLine_PostedEntry() {
	entry := suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.AddLine(suite.ctx, entry.EntryID, dto.UpsertJournalEntryLineRequest{
		JournalEntryLineRequest: lineReq(suite.cash, "1", "0"),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *JournalEntryServiceTestSuite) TestDeleteLine_Renumbers() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "4"), creditLine(suite.revenue, "6"))
	removed, second, third := entry.Lines[0].LineID, entry.Lines[1].LineID, entry.Lines[2].LineID

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.entryRepo.On("DeleteLine", mock.Anything, entry.EntryID, removed).Return(nil).Once()
	suite.entryRepo.On("UpdateLineOrder", mock.Anything, entry.EntryID, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 2 && lines[0].LineID == second && lines[0].OrderNumber == 1 && lines[1].LineID == third && lines[1].OrderNumber == 2
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateEntryTotals", mock.Anything, entry.EntryID, mock.Anything, mock.Anything, suite.userID, suite.now).Return(nil).Once()

	updated, err := suite.service.DeleteLine(suite.ctx, entry.EntryID, removed, suite.userID)

	suite.Require().NoError(err)
	suite.Len(updated.Lines, 2)
	suite.True(updated.TotalDebit.IsZero())
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestUpdateLine_UnknownLine() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.UpdateLine(suite.ctx, entry.EntryID, uuid.NewString(), dto.UpsertJournalEntryLineRequest{
		JournalEntryLineRequest: lineReq(suite.cash, "1", "0"),
	}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalEntryServiceTestSuite) TestReorderLines() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	first, second := entry.Lines[0].LineID, entry.Lines[1].LineID

	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.entryRepo.On("UpdateLineOrder", mock.Anything, entry.EntryID, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return lines[0].LineID == second && lines[0].OrderNumber == 1 && lines[1].LineID == first
	})).Return(nil).Once()
	suite.entryRepo.On("UpdateEntryTotals", mock.Anything, entry.EntryID, mock.Anything, mock.Anything, suite.userID, suite.now).Return(nil).Once()

	updated, err := suite.service.ReorderLines(suite.ctx, entry.EntryID, []string{second, first}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(second, updated.Lines[0].LineID)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestReorderLines_RejectsPartialList() {
	entry := suite.entryWith(domain.EntryStatusDraft, debitLine(suite.cash, "10"), creditLine(suite.revenue, "10"))
	suite.entryRepo.On("FindEntryByIDForUpdate", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReorderLines(suite.ctx, entry.EntryID, []string{entry.Lines[0].LineID, entry.Lines[0].LineID}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(1, suite.tx.rollbacks)
	suite.entryRepo.AssertNotCalled(suite.T(), "UpdateEntryTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *JournalEntryServiceTestSuite) TestListEntries_AppliesFilterAndLimit() {
	status := "posted"
	token := "next"
	entries := []domain.JournalEntry{*suite.entryWith(domain.EntryStatusPosted, debitLine(suite.cash, "1"))}
	suite.entryRepo.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Status != nil && *f.Status == domain.EntryStatusPosted
	}), 100, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := suite.service.ListEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 500, Status: &status})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Equal(&token, resp.NextToken)
	suite.assertMocks()
}

func (suite *JournalEntryServiceTestSuite) TestGenerateEntryNumber() {
	suite.seqRepo.On("NextValue", mock.Anything, "entry:ADJ:2025").Return(int64(12), nil).Once()

	number, err := suite.service.GenerateEntryNumber(suite.ctx, "adj", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal("ADJ-2025-00012", number)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
