package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// VoucherReader defines read operations for vouchers.
type VoucherReader interface {
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
	// FindVoucherByIDForUpdate locks the voucher row until the surrounding transaction ends.
	FindVoucherByIDForUpdate(ctx context.Context, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error)
}

// VoucherWriter defines write operations for vouchers.
type VoucherWriter interface {
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error
	// UpdateVoucher rewrites the header and replaces all lines.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error
	UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, updatedBy string, updatedAt time.Time) error
	MarkVoucherApproved(ctx context.Context, voucherID string, journalEntryID string, approvedBy string, approvedAt time.Time) error
	MarkVoucherCancelled(ctx context.Context, voucherID string, reversalEntryID *string, reason string, cancelledBy string, cancelledAt time.Time) error
	DeleteVoucher(ctx context.Context, voucherID string) error
}

// VoucherRepositoryFacade combines all voucher repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
