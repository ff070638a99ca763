package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/metrics"
	"github.com/SscSPs/ledger_backoffice/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager  portsrepo.TxManager
	Dispatcher portssvc.LedgerEventDispatcher
	Metrics    *metrics.Metrics
	Clock      func() time.Time
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithDispatcher sets the post-commit hook dispatcher.
func WithDispatcher(d portssvc.LedgerEventDispatcher) ServiceOption {
	return func(b *BaseService) { b.Dispatcher = d }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(b *BaseService) { b.Metrics = m }
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) { b.Clock = clock }
}

func newBaseService(txManager portsrepo.TxManager, opts ...ServiceOption) BaseService {
	b := BaseService{TxManager: txManager}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs expected business rejections at warn and everything else at error.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isClientError(err) {
		args := append([]any{slog.String("error", err.Error())}, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// dispatch hands committed events to the hooks.
func (s *BaseService) dispatch(ctx context.Context, events ...domain.LedgerEvent) {
	if s.Dispatcher == nil || len(events) == 0 {
		return
	}
	s.Dispatcher.Dispatch(ctx, events...)
}

func (s *BaseService) newEvent(eventType domain.LedgerEventType, actorID string) domain.LedgerEvent {
	return domain.LedgerEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: s.now(),
		ActorID:    actorID,
	}
}

func requireActor(actorID string) error {
	if actorID == "" {
		return fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}
	return nil
}

// lookupPeriod resolves a fiscal period. A missing period is ErrInvalidPeriod;
// when forPosting is set a closed period is ErrClosedPeriod.
func lookupPeriod(ctx context.Context, repo portsrepo.FiscalPeriodReader, fiscalPeriodID string, forPosting bool) (*domain.FiscalPeriod, error) {
	if fiscalPeriodID == "" {
		return nil, fmt.Errorf("%w: fiscal period id is required", apperrors.ErrInvalidPeriod)
	}
	period, err := repo.FindPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: fiscal period %s does not exist", apperrors.ErrInvalidPeriod, fiscalPeriodID)
		}
		return nil, err
	}
	if forPosting && !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: fiscal period %s (%s) does not accept postings", apperrors.ErrClosedPeriod, period.Name, period.FiscalPeriodID)
	}
	return period, nil
}

func isClientError(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation,
		apperrors.ErrNotFound,
		apperrors.ErrInvalidState,
		apperrors.ErrUnbalancedEntry,
		apperrors.ErrUnbalancedVoucher,
		apperrors.ErrInvalidPeriod,
		apperrors.ErrClosedPeriod,
		apperrors.ErrDuplicate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
