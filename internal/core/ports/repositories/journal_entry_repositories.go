package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry and its lines ordered by order_number.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIDForUpdate is FindEntryByID with the header row locked until the
	// surrounding transaction ends. It must be called inside WithinTransaction.
	FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries (without lines) newest first.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry headers.
type JournalEntryWriter interface {
	// SaveEntry inserts the header and all of its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryHeader rewrites the editable header columns and totals.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryTotals stores recomputed totals.
	UpdateEntryTotals(ctx context.Context, entryID string, totalDebit, totalCredit decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// MarkEntryPosted moves a draft entry to posted.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// MarkEntryReversed moves a posted entry to reversed and links its reversal.
	MarkEntryReversed(ctx context.Context, entryID string, reversalEntryID string, reason string, updatedBy string, updatedAt time.Time) error

	// DeleteEntry removes an entry; lines cascade.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalEntryLineReader defines read operations for entry lines.
type JournalEntryLineReader interface {
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)
}

// JournalEntryLineWriter defines write operations for entry lines.
type JournalEntryLineWriter interface {
	// ReplaceLines deletes every line of the entry and inserts the given ones.
	ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error
	SaveLine(ctx context.Context, line domain.JournalEntryLine) error
	UpdateLine(ctx context.Context, line domain.JournalEntryLine) error
	DeleteLine(ctx context.Context, entryID string, lineID string) error
	// UpdateLineOrder stores the order_number of each given line.
	UpdateLineOrder(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error
}

// JournalEntryRepositoryFacade combines all journal entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalEntryLineReader
	JournalEntryLineWriter
}
