package dto

import (
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherLineRequest is one line of a voucher create or update request.
type VoucherLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description" binding:"max=500"`
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"decimalgte0"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"decimalgte0"`
}

// CreateVoucherRequest defines the payload for creating a draft voucher.
type CreateVoucherRequest struct {
	VoucherNumber  string               `json:"voucherNumber,omitempty" binding:"omitempty,max=50"`
	VoucherTypeID  string               `json:"voucherTypeID" binding:"required"`
	VoucherDate    time.Time            `json:"voucherDate" binding:"required"`
	Description    string               `json:"description" binding:"max=500"`
	FiscalPeriodID string               `json:"fiscalPeriodID" binding:"required"`
	CurrencyID     string               `json:"currencyID" binding:"required"`
	ExchangeRate   *decimal.Decimal     `json:"exchangeRate,omitempty"`
	Lines          []VoucherLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateVoucherRequest replaces the header and lines of a draft voucher.
type UpdateVoucherRequest struct {
	VoucherTypeID  string               `json:"voucherTypeID" binding:"required"`
	VoucherDate    time.Time            `json:"voucherDate" binding:"required"`
	Description    string               `json:"description" binding:"max=500"`
	FiscalPeriodID string               `json:"fiscalPeriodID" binding:"required"`
	CurrencyID     string               `json:"currencyID" binding:"required"`
	ExchangeRate   *decimal.Decimal     `json:"exchangeRate,omitempty"`
	Lines          []VoucherLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CancelVoucherRequest carries the mandatory cancellation reason.
type CancelVoucherRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Limit          int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken      *string `form:"nextToken"`
	Status         *string `form:"status" binding:"omitempty,oneof=DRAFT VALIDATED APPROVED CANCELLED"`
	FiscalPeriodID *string `form:"fiscalPeriodID"`
}

// VoucherLineResponse is the API shape of a voucher line.
type VoucherLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	OrderNumber  int             `json:"orderNumber"`
}

// VoucherResponse is the API shape of a voucher.
type VoucherResponse struct {
	VoucherID              string                `json:"voucherID"`
	VoucherNumber          string                `json:"voucherNumber"`
	VoucherTypeID          string                `json:"voucherTypeID"`
	VoucherDate            time.Time             `json:"voucherDate"`
	Description            string                `json:"description"`
	FiscalPeriodID         string                `json:"fiscalPeriodID"`
	CurrencyID             string                `json:"currencyID"`
	ExchangeRate           decimal.Decimal       `json:"exchangeRate"`
	TotalDebit             decimal.Decimal       `json:"totalDebit"`
	TotalCredit            decimal.Decimal       `json:"totalCredit"`
	TotalAmount            decimal.Decimal       `json:"totalAmount"`
	Status                 domain.VoucherStatus  `json:"status"`
	JournalEntryID         *string               `json:"journalEntryID,omitempty"`
	ReversalJournalEntryID *string               `json:"reversalJournalEntryID,omitempty"`
	ApprovedBy             *string               `json:"approvedBy,omitempty"`
	ApprovedAt             *time.Time            `json:"approvedAt,omitempty"`
	CancelledBy            *string               `json:"cancelledBy,omitempty"`
	CancelledAt            *time.Time            `json:"cancelledAt,omitempty"`
	CancellationReason     *string               `json:"cancellationReason,omitempty"`
	CreatedAt              time.Time             `json:"createdAt"`
	CreatedBy              string                `json:"createdBy"`
	Lines                  []VoucherLineResponse `json:"lines"`
}

// ListVouchersResponse wraps a page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToVoucherResponse converts a domain voucher to its response DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	lines := make([]VoucherLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = VoucherLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			OrderNumber:  l.OrderNumber,
		}
	}
	return VoucherResponse{
		VoucherID:              v.VoucherID,
		VoucherNumber:          v.VoucherNumber,
		VoucherTypeID:          v.VoucherTypeID,
		VoucherDate:            v.VoucherDate,
		Description:            v.Description,
		FiscalPeriodID:         v.FiscalPeriodID,
		CurrencyID:             v.CurrencyID,
		ExchangeRate:           v.ExchangeRate,
		TotalDebit:             v.TotalDebit,
		TotalCredit:            v.TotalCredit,
		TotalAmount:            v.TotalAmount,
		Status:                 v.Status,
		JournalEntryID:         v.JournalEntryID,
		ReversalJournalEntryID: v.ReversalJournalEntryID,
		ApprovedBy:             v.ApprovedBy,
		ApprovedAt:             v.ApprovedAt,
		CancelledBy:            v.CancelledBy,
		CancelledAt:            v.CancelledAt,
		CancellationReason:     v.CancellationReason,
		CreatedAt:              v.CreatedAt,
		CreatedBy:              v.CreatedBy,
		Lines:                  lines,
	}
}

// ToListVouchersResponse converts a page of domain vouchers.
func ToListVouchersResponse(vouchers []domain.Voucher, nextToken *string) ListVouchersResponse {
	list := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		list[i] = ToVoucherResponse(&vouchers[i])
	}
	return ListVouchersResponse{Vouchers: list, NextToken: nextToken}
}
