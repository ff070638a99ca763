package mapping

import (
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/models"
)

// ToModelBankTransaction converts a domain BankTransaction to its row model.
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID: d.BankTransactionID,
		EntryID:           d.EntryID,
		LineID:            d.LineID,
		AccountID:         d.AccountID,
		Amount:            d.Amount,
		Direction:         string(d.Direction),
		Status:            string(d.Status),
		Description:       d.Description,
		TransactionDate:   d.TransactionDate,
		VoidReason:        d.VoidReason,
		VoidedBy:          d.VoidedBy,
		VoidedAt:          ToDBTimePtr(d.VoidedAt),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a row model to a domain BankTransaction.
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: m.BankTransactionID,
		EntryID:           m.EntryID,
		LineID:            m.LineID,
		AccountID:         m.AccountID,
		Amount:            m.Amount,
		Direction:         domain.BankTransactionDirection(m.Direction),
		Status:            domain.BankTransactionStatus(m.Status),
		Description:       m.Description,
		TransactionDate:   m.TransactionDate,
		VoidReason:        m.VoidReason,
		VoidedBy:          m.VoidedBy,
		VoidedAt:          m.VoidedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
