package dto

import (
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryLineRequest is one line of a create or update request.
type JournalEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	ThirdPartyID *string         `json:"thirdPartyID,omitempty"`
	Description  string          `json:"description" binding:"max=500"`
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"decimalgte0"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"decimalgte0"`
}

// CreateJournalEntryRequest defines the payload for creating a draft journal entry.
type CreateJournalEntryRequest struct {
	EntryNumber        string                    `json:"entryNumber,omitempty" binding:"omitempty,max=50"`
	EntryType          string                    `json:"entryType,omitempty" binding:"omitempty,alphanum,max=10"`
	EntryDate          time.Time                 `json:"entryDate" binding:"required"`
	FiscalPeriodID     string                    `json:"fiscalPeriodID" binding:"required"`
	Reference          string                    `json:"reference" binding:"max=100"`
	Description        string                    `json:"description" binding:"max=500"`
	ThirdPartyID       *string                   `json:"thirdPartyID,omitempty"`
	IsAdjustment       bool                      `json:"isAdjustment"`
	IsRecurring        bool                      `json:"isRecurring"`
	SourceDocumentType *string                   `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   *string                   `json:"sourceDocumentID,omitempty"`
	Status             string                    `json:"status,omitempty"` // ignored, new entries are always drafts
	Lines              []JournalEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest replaces the header and all lines of a draft entry.
type UpdateJournalEntryRequest struct {
	EntryDate      time.Time                 `json:"entryDate" binding:"required"`
	FiscalPeriodID string                    `json:"fiscalPeriodID" binding:"required"`
	Reference      string                    `json:"reference" binding:"max=100"`
	Description    string                    `json:"description" binding:"max=500"`
	ThirdPartyID   *string                   `json:"thirdPartyID,omitempty"`
	IsAdjustment   bool                      `json:"isAdjustment"`
	IsRecurring    bool                      `json:"isRecurring"`
	Lines          []JournalEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseJournalEntryRequest carries the mandatory audit reason of a reversal.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// UpsertJournalEntryLineRequest adds or changes a single line of a draft entry.
// OrderNumber defaults to the end of the entry on create and is kept on update when omitted.
type UpsertJournalEntryLineRequest struct {
	JournalEntryLineRequest
	OrderNumber *int `json:"orderNumber,omitempty" binding:"omitempty,min=1"`
}

// ReorderJournalEntryLinesRequest optionally lists every line id in the desired order.
// An empty list renumbers the lines densely in their current order.
type ReorderJournalEntryLinesRequest struct {
	LineIDs []string `json:"lineIDs"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit              int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken          *string `form:"nextToken"`
	Status             *string `form:"status" binding:"omitempty,oneof=draft posted reversed"`
	FiscalPeriodID     *string `form:"fiscalPeriodID"`
	SourceDocumentType *string `form:"sourceDocumentType"`
}

// JournalEntryLineResponse is the API shape of a line.
type JournalEntryLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	ThirdPartyID *string         `json:"thirdPartyID,omitempty"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	OrderNumber  int             `json:"orderNumber"`
}

// JournalEntryResponse is the API shape of an entry.
type JournalEntryResponse struct {
	EntryID            string                     `json:"entryID"`
	EntryNumber        string                     `json:"entryNumber"`
	EntryDate          time.Time                  `json:"entryDate"`
	FiscalPeriodID     string                     `json:"fiscalPeriodID"`
	Reference          string                     `json:"reference"`
	Description        string                     `json:"description"`
	ThirdPartyID       *string                    `json:"thirdPartyID,omitempty"`
	Status             domain.EntryStatus         `json:"status"`
	TotalDebit         decimal.Decimal            `json:"totalDebit"`
	TotalCredit        decimal.Decimal            `json:"totalCredit"`
	IsAdjustment       bool                       `json:"isAdjustment"`
	IsRecurring        bool                       `json:"isRecurring"`
	SourceDocumentType *string                    `json:"sourceDocumentType,omitempty"`
	SourceDocumentID   *string                    `json:"sourceDocumentID,omitempty"`
	ReversalEntryID    *string                    `json:"reversalEntryID,omitempty"`
	ReversalReason     *string                    `json:"reversalReason,omitempty"`
	PostedBy           *string                    `json:"postedBy,omitempty"`
	PostedAt           *time.Time                 `json:"postedAt,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	CreatedBy          string                     `json:"createdBy"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy      string                     `json:"lastUpdatedBy"`
	Lines              []JournalEntryLineResponse `json:"lines"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ReverseJournalEntryResponse returns both sides of a reversal.
type ReverseJournalEntryResponse struct {
	Original JournalEntryResponse `json:"original"`
	Reversal JournalEntryResponse `json:"reversal"`
}

// ToJournalEntryLineResponse converts a domain line to its response DTO.
func ToJournalEntryLineResponse(l domain.JournalEntryLine) JournalEntryLineResponse {
	return JournalEntryLineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		ThirdPartyID: l.ThirdPartyID,
		Description:  l.Description,
		DebitAmount:  l.DebitAmount,
		CreditAmount: l.CreditAmount,
		OrderNumber:  l.OrderNumber,
	}
}

// ToJournalEntryResponse converts a domain entry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToJournalEntryLineResponse(l)
	}
	return JournalEntryResponse{
		EntryID:            e.EntryID,
		EntryNumber:        e.EntryNumber,
		EntryDate:          e.EntryDate,
		FiscalPeriodID:     e.FiscalPeriodID,
		Reference:          e.Reference,
		Description:        e.Description,
		ThirdPartyID:       e.ThirdPartyID,
		Status:             e.Status,
		TotalDebit:         e.TotalDebit,
		TotalCredit:        e.TotalCredit,
		IsAdjustment:       e.IsAdjustment,
		IsRecurring:        e.IsRecurring,
		SourceDocumentType: e.SourceDocumentType,
		SourceDocumentID:   e.SourceDocumentID,
		ReversalEntryID:    e.ReversalEntryID,
		ReversalReason:     e.ReversalReason,
		PostedBy:           e.PostedBy,
		PostedAt:           e.PostedAt,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
		LastUpdatedAt:      e.LastUpdatedAt,
		LastUpdatedBy:      e.LastUpdatedBy,
		Lines:              lines,
	}
}

// ToListJournalEntriesResponse converts a page of domain entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	list := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		list[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{Entries: list, NextToken: nextToken}
}
