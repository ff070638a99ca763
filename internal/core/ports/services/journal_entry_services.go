package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries.
type JournalEntryReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalEntryWriterSvc defines the entry lifecycle operations.
type JournalEntryWriterSvc interface {
	// CreateEntry persists a new draft entry and its lines.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the header and lines of a draft entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// PostEntry moves a balanced draft entry to posted and applies its balances.
	PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)

	// ReverseEntry creates the compensating entry of a posted entry and marks it reversed.
	// It returns the original (now reversed) and the new reversal entry.
	ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, *domain.JournalEntry, error)

	// DeleteEntry removes a draft entry and its lines.
	DeleteEntry(ctx context.Context, entryID string, actorID string) error
}

// JournalEntryLineSvc defines operations on single lines of a draft entry.
type JournalEntryLineSvc interface {
	AddLine(ctx context.Context, entryID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error)
	UpdateLine(ctx context.Context, entryID string, lineID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error)
	DeleteLine(ctx context.Context, entryID string, lineID string, actorID string) (*domain.JournalEntry, error)
	ReorderLines(ctx context.Context, entryID string, lineIDs []string, actorID string) (*domain.JournalEntry, error)
}

// EntryNumberGenerator hands out entry numbers.
type EntryNumberGenerator interface {
	// GenerateEntryNumber returns the next {TYPE}-{YYYY}-{NNNNN} number for the type and the year of date.
	GenerateEntryNumber(ctx context.Context, entryType string, date time.Time) (string, error)
}

// JournalEntryTxSvc exposes the entry workflow steps to callers that already
// run inside WithinTransaction. These steps do not dispatch post-commit hooks;
// the caller dispatches once its own transaction has committed.
type JournalEntryTxSvc interface {
	CreateEntryInTx(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.JournalEntry, error)
	PostEntryInTx(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)
	ReverseEntryInTx(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, *domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all journal entry service interfaces.
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalEntryLineSvc
	EntryNumberGenerator
	JournalEntryTxSvc
}
