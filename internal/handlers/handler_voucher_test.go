package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/handlers"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VoucherHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockVoucherService *MockVoucherService
	userID             string
}

func (suite *VoucherHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))

	suite.mockVoucherService = new(MockVoucherService)
	suite.userID = uuid.NewString()

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterVoucherRoutes(v1, suite.mockVoucherService)
}

func (suite *VoucherHandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	raw := []byte{}
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleVoucher(status domain.VoucherStatus) *domain.Voucher {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Voucher{
		VoucherID:      uuid.NewString(),
		VoucherNumber:  "CV202403-0001",
		VoucherTypeID:  "cash-receipt",
		VoucherDate:    now,
		FiscalPeriodID: "fp-2024-03",
		CurrencyID:     "COP",
		ExchangeRate:   decimal.NewFromInt(1),
		TotalDebit:     decimal.NewFromInt(250),
		TotalCredit:    decimal.NewFromInt(250),
		TotalAmount:    decimal.NewFromInt(250),
		Status:         status,
		Lines: []domain.VoucherLine{
			{LineID: "vl1", AccountID: "cash", DebitAmount: decimal.NewFromInt(250), CreditAmount: decimal.Zero, OrderNumber: 1},
			{LineID: "vl2", AccountID: "revenue", DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(250), OrderNumber: 2},
		},
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "u1", LastUpdatedAt: now, LastUpdatedBy: "u1"},
	}
}

func createVoucherBody() gin.H {
	return gin.H{
		"voucherTypeID":  "cash-receipt",
		"voucherDate":    "2024-03-15T00:00:00Z",
		"fiscalPeriodID": "fp-2024-03",
		"currencyID":     "COP",
		"lines": []gin.H{
			{"accountID": "cash", "debitAmount": "250", "creditAmount": "0"},
			{"accountID": "revenue", "debitAmount": "0", "creditAmount": "250"},
		},
	}
}

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_Success() {
	voucher := sampleVoucher(domain.VoucherStatusDraft)
	suite.mockVoucherService.On("CreateVoucher", mock.Anything,
		mock.MatchedBy(func(req dto.CreateVoucherRequest) bool {
			return req.CurrencyID == "COP" && req.ExchangeRate == nil && len(req.Lines) == 2
		}),
		suite.userID,
	).Return(voucher, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers", createVoucherBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.VoucherResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CV202403-0001", resp.VoucherNumber)
	suite.Equal(domain.VoucherStatusDraft, resp.Status)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(250)))
}

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_Unbalanced() {
	suite.mockVoucherService.On("CreateVoucher", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: debit 250 credit 200", apperrors.ErrUnbalancedVoucher)).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers", createVoucherBody())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_MissingCurrency() {
	body := createVoucherBody()
	delete(body, "currencyID")

	w := suite.do(http.MethodPost, "/api/v1/vouchers", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherHandlerTestSuite) TestApproveVoucher_Success() {
	voucher := sampleVoucher(domain.VoucherStatusApproved)
	entryID := uuid.NewString()
	voucher.JournalEntryID = &entryID
	suite.mockVoucherService.On("ApproveVoucher", mock.Anything, voucher.VoucherID, suite.userID).Return(voucher, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/"+voucher.VoucherID+"/approve", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.VoucherStatusApproved, resp.Status)
	suite.Require().NotNil(resp.JournalEntryID)
	suite.Equal(entryID, *resp.JournalEntryID)
}

func (suite *VoucherHandlerTestSuite) TestApproveVoucher_SecondApprovalConflicts() {
	suite.mockVoucherService.On("ApproveVoucher", mock.Anything, "v1", suite.userID).
		Return(nil, fmt.Errorf("%w: voucher already has a journal entry", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/v1/approve", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already has a journal entry")
}

func (suite *VoucherHandlerTestSuite) TestValidateVoucher() {
	voucher := sampleVoucher(domain.VoucherStatusValidated)
	suite.mockVoucherService.On("ValidateVoucher", mock.Anything, voucher.VoucherID, suite.userID).Return(voucher, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/"+voucher.VoucherID+"/validate", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), string(domain.VoucherStatusValidated))
}

func (suite *VoucherHandlerTestSuite) TestCancelVoucher() {
	voucher := sampleVoucher(domain.VoucherStatusCancelled)
	reason := "customer returned goods"
	voucher.CancellationReason = &reason
	suite.mockVoucherService.On("CancelVoucher", mock.Anything, voucher.VoucherID, reason, suite.userID).Return(voucher, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/"+voucher.VoucherID+"/cancel", gin.H{"reason": reason})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.VoucherStatusCancelled, resp.Status)
	suite.Require().NotNil(resp.CancellationReason)
	suite.Equal(reason, *resp.CancellationReason)
}

func (suite *VoucherHandlerTestSuite) TestCancelVoucher_ReasonRequired() {
	w := suite.do(http.MethodPost, "/api/v1/vouchers/v1/cancel", gin.H{"reason": ""})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "CancelVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherHandlerTestSuite) TestGetUpdateDelete() {
	voucher := sampleVoucher(domain.VoucherStatusDraft)
	suite.mockVoucherService.On("GetVoucher", mock.Anything, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherService.On("UpdateVoucher", mock.Anything, voucher.VoucherID, mock.AnythingOfType("dto.UpdateVoucherRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: only draft vouchers can be edited", apperrors.ErrInvalidState)).Once()
	suite.mockVoucherService.On("DeleteVoucher", mock.Anything, voucher.VoucherID, suite.userID).Return(nil).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/vouchers/"+voucher.VoucherID, nil).Code)
	suite.Equal(http.StatusConflict, suite.do(http.MethodPut, "/api/v1/vouchers/"+voucher.VoucherID, createVoucherBody()).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/vouchers/"+voucher.VoucherID, nil).Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestListVouchers() {
	suite.mockVoucherService.On("ListVouchers", mock.Anything,
		mock.MatchedBy(func(p dto.ListVouchersParams) bool {
			return p.Limit == 20 && p.Status != nil && *p.Status == "APPROVED"
		}),
	).Return(&dto.ListVouchersResponse{Vouchers: []dto.VoucherResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vouchers?status=APPROVED", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func TestVoucherHandler(t *testing.T) {
	suite.Run(t, new(VoucherHandlerTestSuite))
}
