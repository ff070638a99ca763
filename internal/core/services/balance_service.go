package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
)

type balanceService struct {
	BaseService
	balanceRepo portsrepo.AccountBalanceRepositoryFacade
	periodRepo  portsrepo.FiscalPeriodReader
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(
	txManager portsrepo.TxManager,
	balanceRepo portsrepo.AccountBalanceRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodReader,
	opts ...ServiceOption,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService: newBaseService(txManager, opts...),
		balanceRepo: balanceRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// Apply adds the lines' debits and credits to their account balances.
func (s *balanceService) Apply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	return s.project(ctx, lines, fiscalPeriodID, 1)
}

// Unapply subtracts the lines' debits and credits. Balances may go negative.
func (s *balanceService) Unapply(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string) error {
	return s.project(ctx, lines, fiscalPeriodID, -1)
}

func (s *balanceService) project(ctx context.Context, lines []domain.JournalEntryLine, fiscalPeriodID string, sign int64) error {
	if len(lines) == 0 {
		return nil
	}
	deltas := domain.DeltasFromLines(lines, sign)
	if err := s.balanceRepo.ApplyDeltas(ctx, fiscalPeriodID, deltas, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to project account balances",
			slog.String("fiscal_period_id", fiscalPeriodID),
			slog.Int("accounts", len(deltas)),
			slog.Int64("sign", sign))
		return err
	}
	s.LogDebug(ctx, "Account balances projected",
		slog.String("fiscal_period_id", fiscalPeriodID),
		slog.Int("accounts", len(deltas)),
		slog.Int64("sign", sign))
	return nil
}

// GetBalance returns the balance row of an account in a period.
func (s *balanceService) GetBalance(ctx context.Context, accountID string, fiscalPeriodID string) (*domain.AccountBalance, error) {
	balance, err := s.balanceRepo.FindBalance(ctx, accountID, fiscalPeriodID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get account balance",
			slog.String("account_id", accountID), slog.String("fiscal_period_id", fiscalPeriodID))
		return nil, err
	}
	return balance, nil
}

// ListPeriodBalances returns every balance row of a period.
func (s *balanceService) ListPeriodBalances(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	if _, err := lookupPeriod(ctx, s.periodRepo, fiscalPeriodID, false); err != nil {
		s.logFailure(ctx, err, "Failed to list account balances", slog.String("fiscal_period_id", fiscalPeriodID))
		return nil, err
	}
	balances, err := s.balanceRepo.ListBalancesByPeriod(ctx, fiscalPeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account balances", slog.String("fiscal_period_id", fiscalPeriodID))
		return nil, err
	}
	return balances, nil
}

// RebuildPeriodBalances recomputes a period's balances from its posted entries.
func (s *balanceService) RebuildPeriodBalances(ctx context.Context, fiscalPeriodID string) (rows int64, err error) {
	defer s.Metrics.ObserveOperation("rebuild_balances", time.Now(), &err)

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, txErr := lookupPeriod(txCtx, s.periodRepo, fiscalPeriodID, false); txErr != nil {
			return txErr
		}
		var txErr error
		rows, txErr = s.balanceRepo.RebuildPeriodBalances(txCtx, fiscalPeriodID, s.now())
		return txErr
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to rebuild account balances", slog.String("fiscal_period_id", fiscalPeriodID))
		return 0, err
	}
	s.LogInfo(ctx, "Account balances rebuilt", slog.String("fiscal_period_id", fiscalPeriodID), slog.Int64("rows", rows))
	return rows, nil
}
