package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
)

// bankTransactionService mirrors posted bank account lines as bank transactions.
type bankTransactionService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	bankRepo    portsrepo.BankTransactionRepositoryFacade
}

// NewBankTransactionService creates a new BankTransactionService.
func NewBankTransactionService(
	txManager portsrepo.TxManager,
	accountRepo portsrepo.AccountReader,
	bankRepo portsrepo.BankTransactionRepositoryFacade,
	opts ...ServiceOption,
) portssvc.BankTransactionSvcFacade {
	return &bankTransactionService{
		BaseService: newBaseService(txManager, opts...),
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
	}
}

var _ portssvc.BankTransactionSvcFacade = (*bankTransactionService)(nil)

// HasBankAccountLines reports whether any line touches a bank account.
func (s *bankTransactionService) HasBankAccountLines(ctx context.Context, lines []domain.JournalEntryLine) (bool, error) {
	bankAccounts, err := s.bankAccounts(ctx, lines)
	if err != nil {
		return false, err
	}
	return len(bankAccounts) > 0, nil
}

// ProcessForBankTransactions records one bank transaction per bank line of a
// posted entry. Lines already mirrored are skipped by the store.
func (s *bankTransactionService) ProcessForBankTransactions(ctx context.Context, entry domain.JournalEntry, actorID string) ([]domain.BankTransaction, error) {
	bankAccounts, err := s.bankAccounts(ctx, entry.Lines)
	if err != nil {
		return nil, err
	}
	if len(bankAccounts) == 0 {
		return nil, nil
	}

	now := s.now()
	var txs []domain.BankTransaction
	for _, line := range entry.Lines {
		if _, ok := bankAccounts[line.AccountID]; !ok {
			continue
		}
		txs = append(txs, domain.NewBankTransactionFromLine(uuid.NewString(), entry, line, now, actorID))
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		return s.bankRepo.SaveBankTransactions(txCtx, txs)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record bank transactions", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	s.LogInfo(ctx, "Bank transactions recorded", slog.String("entry_id", entry.EntryID), slog.Int("count", len(txs)))
	return txs, nil
}

// VoidBankTransactionsByEntry voids the active bank transactions of an entry.
func (s *bankTransactionService) VoidBankTransactionsByEntry(ctx context.Context, entryID string, actorID string, reason string) ([]domain.BankTransaction, error) {
	var voided []domain.BankTransaction
	err := s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		voided, txErr = s.bankRepo.VoidByEntry(txCtx, entryID, actorID, strings.TrimSpace(reason), s.now())
		return txErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void bank transactions", slog.String("entry_id", entryID))
		return nil, err
	}
	if len(voided) > 0 {
		s.LogInfo(ctx, "Bank transactions voided", slog.String("entry_id", entryID), slog.Int("count", len(voided)))
	}
	return voided, nil
}

// ListBankTransactionsByEntry returns the bank transactions mirrored from an entry.
func (s *bankTransactionService) ListBankTransactionsByEntry(ctx context.Context, entryID string) ([]domain.BankTransaction, error) {
	txs, err := s.bankRepo.ListByEntry(ctx, entryID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list bank transactions", slog.String("entry_id", entryID))
		return nil, err
	}
	return txs, nil
}

func (s *bankTransactionService) bankAccounts(ctx context.Context, lines []domain.JournalEntryLine) (map[string]domain.Account, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	bank := make(map[string]domain.Account)
	for id, account := range accounts {
		if account.IsBankAccount {
			bank[id] = account
		}
	}
	return bank, nil
}

// BankSideEffectHook feeds committed ledger transitions to the bank notifier.
type BankSideEffectHook struct {
	notifier portssvc.BankSideEffectNotifier
}

// BankHookName identifies the bank hook in logs and metrics.
const BankHookName = "bank_transactions"

// NewBankSideEffectHook creates the post-commit hook around a notifier.
func NewBankSideEffectHook(notifier portssvc.BankSideEffectNotifier) *BankSideEffectHook {
	return &BankSideEffectHook{notifier: notifier}
}

var _ portssvc.LedgerHook = (*BankSideEffectHook)(nil)

func (h *BankSideEffectHook) Name() string { return BankHookName }

// Handle records bank transactions for posted entries and voids them for reversed ones.
func (h *BankSideEffectHook) Handle(ctx context.Context, event domain.LedgerEvent) error {
	if event.Entry == nil {
		return nil
	}
	switch event.Type {
	case domain.EventEntryPosted:
		hasBank, err := h.notifier.HasBankAccountLines(ctx, event.Entry.Lines)
		if err != nil || !hasBank {
			return err
		}
		_, err = h.notifier.ProcessForBankTransactions(ctx, *event.Entry, event.ActorID)
		return err
	case domain.EventEntryReversed:
		_, err := h.notifier.VoidBankTransactionsByEntry(ctx, event.Entry.EntryID, event.ActorID, event.Reason)
		return err
	default:
		return nil
	}
}
