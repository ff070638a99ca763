package services

import (
	"context"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
)

// BankSideEffectNotifier mirrors bank account movements of posted entries.
// Callers treat every error as non-fatal to the ledger operation.
type BankSideEffectNotifier interface {
	HasBankAccountLines(ctx context.Context, lines []domain.JournalEntryLine) (bool, error)
	ProcessForBankTransactions(ctx context.Context, entry domain.JournalEntry, actorID string) ([]domain.BankTransaction, error)
	VoidBankTransactionsByEntry(ctx context.Context, entryID string, actorID string, reason string) ([]domain.BankTransaction, error)
}

// BankTransactionReaderSvc defines read operations for bank transactions.
type BankTransactionReaderSvc interface {
	ListBankTransactionsByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error)
}

// BankTransactionSvcFacade combines all bank transaction service interfaces.
type BankTransactionSvcFacade interface {
	BankSideEffectNotifier
	BankTransactionReaderSvc
}
