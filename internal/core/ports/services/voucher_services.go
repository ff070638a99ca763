package services

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers.
type VoucherReaderSvc interface {
	GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the voucher lifecycle operations.
type VoucherWriterSvc interface {
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actorID string) (*domain.Voucher, error)
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actorID string) (*domain.Voucher, error)
	// ValidateVoucher re-checks a draft voucher and moves it to VALIDATED.
	ValidateVoucher(ctx context.Context, voucherID string, actorID string) (*domain.Voucher, error)
	// ApproveVoucher creates and posts the voucher's journal entry exactly once.
	ApproveVoucher(ctx context.Context, voucherID string, actorID string) (*domain.Voucher, error)
	// CancelVoucher cancels the voucher, reversing its entry when one was posted.
	CancelVoucher(ctx context.Context, voucherID string, reason string, actorID string) (*domain.Voucher, error)
	DeleteVoucher(ctx context.Context, voucherID string, actorID string) error
}

// VoucherSvcFacade combines all voucher service interfaces.
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
