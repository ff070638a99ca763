package mapping

import (
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its row model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:            d.EntryID,
		EntryNumber:        d.EntryNumber,
		EntryType:          d.EntryType,
		EntryDate:          d.EntryDate,
		FiscalPeriodID:     d.FiscalPeriodID,
		Reference:          d.Reference,
		Description:        d.Description,
		ThirdPartyID:       d.ThirdPartyID,
		Status:             string(d.Status),
		TotalDebit:         d.TotalDebit,
		TotalCredit:        d.TotalCredit,
		IsAdjustment:       d.IsAdjustment,
		IsRecurring:        d.IsRecurring,
		SourceDocumentType: d.SourceDocumentType,
		SourceDocumentID:   d.SourceDocumentID,
		ReversalEntryID:    d.ReversalEntryID,
		ReversalReason:     d.ReversalReason,
		PostedBy:           d.PostedBy,
		PostedAt:           ToDBTimePtr(d.PostedAt),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a row model to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:            m.EntryID,
		EntryNumber:        m.EntryNumber,
		EntryType:          m.EntryType,
		EntryDate:          m.EntryDate,
		FiscalPeriodID:     m.FiscalPeriodID,
		Reference:          m.Reference,
		Description:        m.Description,
		ThirdPartyID:       m.ThirdPartyID,
		Status:             domain.EntryStatus(m.Status),
		TotalDebit:         m.TotalDebit,
		TotalCredit:        m.TotalCredit,
		IsAdjustment:       m.IsAdjustment,
		IsRecurring:        m.IsRecurring,
		SourceDocumentType: m.SourceDocumentType,
		SourceDocumentID:   m.SourceDocumentID,
		ReversalEntryID:    m.ReversalEntryID,
		ReversalReason:     m.ReversalReason,
		PostedBy:           m.PostedBy,
		PostedAt:           m.PostedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to its row model.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		ThirdPartyID: d.ThirdPartyID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		OrderNumber:  d.OrderNumber,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a row model to a domain line.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		ThirdPartyID: m.ThirdPartyID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		OrderNumber:  m.OrderNumber,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntryLineSlice converts a slice of line row models.
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	if ms == nil {
		return nil
	}
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}
