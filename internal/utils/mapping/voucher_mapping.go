package mapping

import (
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/models"
)

// ToModelVoucher converts a domain Voucher header to its row model.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:              d.VoucherID,
		VoucherNumber:          d.VoucherNumber,
		VoucherTypeID:          d.VoucherTypeID,
		VoucherDate:            d.VoucherDate,
		Description:            d.Description,
		FiscalPeriodID:         d.FiscalPeriodID,
		CurrencyID:             d.CurrencyID,
		ExchangeRate:           d.ExchangeRate,
		TotalDebit:             d.TotalDebit,
		TotalCredit:            d.TotalCredit,
		TotalAmount:            d.TotalAmount,
		Status:                 string(d.Status),
		JournalEntryID:         d.JournalEntryID,
		ReversalJournalEntryID: d.ReversalJournalEntryID,
		ApprovedBy:             d.ApprovedBy,
		ApprovedAt:             ToDBTimePtr(d.ApprovedAt),
		CancelledBy:            d.CancelledBy,
		CancelledAt:            ToDBTimePtr(d.CancelledAt),
		CancellationReason:     d.CancellationReason,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a row model to a domain Voucher without lines.
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:              m.VoucherID,
		VoucherNumber:          m.VoucherNumber,
		VoucherTypeID:          m.VoucherTypeID,
		VoucherDate:            m.VoucherDate,
		Description:            m.Description,
		FiscalPeriodID:         m.FiscalPeriodID,
		CurrencyID:             m.CurrencyID,
		ExchangeRate:           m.ExchangeRate,
		TotalDebit:             m.TotalDebit,
		TotalCredit:            m.TotalCredit,
		TotalAmount:            m.TotalAmount,
		Status:                 domain.VoucherStatus(m.Status),
		JournalEntryID:         m.JournalEntryID,
		ReversalJournalEntryID: m.ReversalJournalEntryID,
		ApprovedBy:             m.ApprovedBy,
		ApprovedAt:             m.ApprovedAt,
		CancelledBy:            m.CancelledBy,
		CancelledAt:            m.CancelledAt,
		CancellationReason:     m.CancellationReason,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherLine converts a domain voucher line to its row model.
func ToModelVoucherLine(d domain.VoucherLine) models.VoucherLine {
	return models.VoucherLine{
		LineID:       d.LineID,
		VoucherID:    d.VoucherID,
		AccountID:    d.AccountID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		OrderNumber:  d.OrderNumber,
	}
}

// ToDomainVoucherLine converts a row model to a domain voucher line.
func ToDomainVoucherLine(m models.VoucherLine) domain.VoucherLine {
	return domain.VoucherLine{
		LineID:       m.LineID,
		VoucherID:    m.VoucherID,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		OrderNumber:  m.OrderNumber,
	}
}
