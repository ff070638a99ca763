package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/utils/accounting"
	"github.com/SscSPs/ledger_backoffice/internal/utils/pagination"
)

// voucherService manages accounting vouchers and turns approved ones into posted entries.
type voucherService struct {
	BaseService
	voucherRepo  portsrepo.VoucherRepositoryFacade
	periodRepo   portsrepo.FiscalPeriodReader
	sequenceRepo portsrepo.SequenceRepository
	entries      portssvc.JournalEntrySvcFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(
	txManager portsrepo.TxManager,
	voucherRepo portsrepo.VoucherRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodReader,
	sequenceRepo portsrepo.SequenceRepository,
	entries portssvc.JournalEntrySvcFacade,
	opts ...ServiceOption,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		BaseService:  newBaseService(txManager, opts...),
		voucherRepo:  voucherRepo,
		periodRepo:   periodRepo,
		sequenceRepo: sequenceRepo,
		entries:      entries,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// GetVoucher retrieves a voucher with its lines.
func (s *voucherService) GetVoucher(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	return voucher, nil
}

// ListVouchers returns a page of vouchers, newest first.
func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	filter := domain.VoucherFilter{FiscalPeriodID: params.FiscalPeriodID}
	if params.Status != nil {
		status := domain.VoucherStatus(*params.Status)
		filter.Status = &status
	}
	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list vouchers")
		return nil, err
	}
	resp := dto.ToListVouchersResponse(vouchers, nextToken)
	return &resp, nil
}

// CreateVoucher stores a balanced draft voucher.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actorID string) (created *domain.Voucher, err error) {
	defer s.Metrics.ObserveOperation("create_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	now := s.now()
	voucher := domain.Voucher{
		VoucherID:      uuid.NewString(),
		VoucherNumber:  strings.TrimSpace(req.VoucherNumber),
		VoucherTypeID:  req.VoucherTypeID,
		VoucherDate:    req.VoucherDate,
		Description:    req.Description,
		FiscalPeriodID: req.FiscalPeriodID,
		CurrencyID:     req.CurrencyID,
		Status:         domain.VoucherStatusDraft,
		AuditFields:    domain.NewAuditFields(now, actorID),
	}
	voucher.ExchangeRate, err = exchangeRateOrDefault(req.ExchangeRate)
	if err != nil {
		return nil, err
	}
	voucher.Lines = voucherLinesFromRequests(voucher.VoucherID, req.Lines)
	if err = checkVoucher(&voucher); err != nil {
		s.logFailure(ctx, err, "Rejected voucher")
		return nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, txErr := lookupPeriod(txCtx, s.periodRepo, voucher.FiscalPeriodID, false); txErr != nil {
			return txErr
		}
		if voucher.VoucherNumber == "" {
			date := voucher.VoucherDate
			seq, txErr := s.sequenceRepo.NextValue(txCtx, domain.VoucherSequenceScope(date.Year(), date.Month()))
			if txErr != nil {
				return txErr
			}
			voucher.VoucherNumber = domain.FormatVoucherNumber(date.Year(), date.Month(), seq)
		}
		return s.voucherRepo.SaveVoucher(txCtx, voucher)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create voucher", slog.String("fiscal_period_id", req.FiscalPeriodID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("voucher_number", voucher.VoucherNumber),
		slog.String("total_amount", voucher.TotalAmount.String()))
	return &voucher, nil
}

// UpdateVoucher replaces the header and lines of a draft voucher.
func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actorID string) (updated *domain.Voucher, err error) {
	defer s.Metrics.ObserveOperation("update_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}
	rate, err := exchangeRateOrDefault(req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		voucher, txErr := s.voucherRepo.FindVoucherByIDForUpdate(txCtx, voucherID)
		if txErr != nil {
			return txErr
		}
		if !voucher.CanEdit() {
			return fmt.Errorf("%w: voucher %s is %s, only drafts can be edited", apperrors.ErrInvalidState, voucher.VoucherNumber, voucher.Status)
		}

		voucher.VoucherTypeID = req.VoucherTypeID
		voucher.VoucherDate = req.VoucherDate
		voucher.Description = req.Description
		voucher.FiscalPeriodID = req.FiscalPeriodID
		voucher.CurrencyID = req.CurrencyID
		voucher.ExchangeRate = rate
		voucher.Lines = voucherLinesFromRequests(voucher.VoucherID, req.Lines)
		if txErr = checkVoucher(voucher); txErr != nil {
			return txErr
		}
		if _, txErr = lookupPeriod(txCtx, s.periodRepo, voucher.FiscalPeriodID, false); txErr != nil {
			return txErr
		}
		voucher.Touch(s.now(), actorID)
		if txErr = s.voucherRepo.UpdateVoucher(txCtx, *voucher); txErr != nil {
			return txErr
		}
		updated = voucher
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	s.LogInfo(ctx, "Voucher updated", slog.String("voucher_id", voucherID))
	return updated, nil
}

// ValidateVoucher re-checks a draft voucher and moves it to VALIDATED.
func (s *voucherService) ValidateVoucher(ctx context.Context, voucherID string, actorID string) (validated *domain.Voucher, err error) {
	defer s.Metrics.ObserveOperation("validate_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		voucher, txErr := s.voucherRepo.FindVoucherByIDForUpdate(txCtx, voucherID)
		if txErr != nil {
			return txErr
		}
		if !voucher.CanValidate() {
			return fmt.Errorf("%w: voucher %s is %s, only drafts can be validated", apperrors.ErrInvalidState, voucher.VoucherNumber, voucher.Status)
		}
		if txErr = checkVoucher(voucher); txErr != nil {
			return txErr
		}
		if _, txErr = lookupPeriod(txCtx, s.periodRepo, voucher.FiscalPeriodID, false); txErr != nil {
			return txErr
		}

		now := s.now()
		if txErr = s.voucherRepo.UpdateVoucherStatus(txCtx, voucher.VoucherID, domain.VoucherStatusValidated, actorID, now); txErr != nil {
			return txErr
		}
		voucher.Status = domain.VoucherStatusValidated
		voucher.Touch(now, actorID)
		validated = voucher
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to validate voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	s.LogInfo(ctx, "Voucher validated", slog.String("voucher_id", voucherID))
	return validated, nil
}

// ApproveVoucher creates and posts the voucher's journal entry and marks the
// voucher approved, all in one transaction. A voucher that already has an
// entry is rejected.
func (s *voucherService) ApproveVoucher(ctx context.Context, voucherID string, actorID string) (approved *domain.Voucher, err error) {
	defer s.Metrics.ObserveOperation("approve_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	var posted *domain.JournalEntry
	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		voucher, txErr := s.voucherRepo.FindVoucherByIDForUpdate(txCtx, voucherID)
		if txErr != nil {
			return txErr
		}
		if voucher.HasJournalEntry() {
			return fmt.Errorf("%w: voucher %s already generated entry %s", apperrors.ErrInvalidState, voucher.VoucherNumber, *voucher.JournalEntryID)
		}
		if !voucher.CanApprove() {
			return fmt.Errorf("%w: voucher %s is %s and cannot be approved", apperrors.ErrInvalidState, voucher.VoucherNumber, voucher.Status)
		}
		if txErr = checkVoucher(voucher); txErr != nil {
			return txErr
		}

		now := s.now()
		created, txErr := s.entries.CreateEntryInTx(txCtx, voucher.ToJournalEntry(now, actorID), actorID)
		if txErr != nil {
			return txErr
		}
		posted, txErr = s.entries.PostEntryInTx(txCtx, created.EntryID, actorID)
		if txErr != nil {
			return txErr
		}
		if txErr = s.voucherRepo.MarkVoucherApproved(txCtx, voucher.VoucherID, posted.EntryID, actorID, now); txErr != nil {
			return txErr
		}

		voucher.Status = domain.VoucherStatusApproved
		voucher.JournalEntryID = &posted.EntryID
		voucher.ApprovedBy = &actorID
		voucher.ApprovedAt = &now
		voucher.Touch(now, actorID)
		approved = voucher
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to approve voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.Metrics.EntryCreated()
	s.Metrics.EntryPosted()
	s.Metrics.VoucherApproved()
	s.LogInfo(ctx, "Voucher approved",
		slog.String("voucher_id", approved.VoucherID),
		slog.String("voucher_number", approved.VoucherNumber),
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.EntryNumber))

	entryEvent := s.newEvent(domain.EventEntryPosted, actorID)
	entryEvent.Entry = posted
	voucherEvent := s.newEvent(domain.EventVoucherApproved, actorID)
	voucherEvent.Voucher = approved
	voucherEvent.Entry = posted
	s.dispatch(ctx, entryEvent, voucherEvent)
	return approved, nil
}

// CancelVoucher cancels a voucher. If its entry is still posted it is reversed
// in the same transaction and the reversal is linked to the voucher.
func (s *voucherService) CancelVoucher(ctx context.Context, voucherID string, reason string, actorID string) (cancelled *domain.Voucher, err error) {
	defer s.Metrics.ObserveOperation("cancel_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		err = fmt.Errorf("%w: a cancellation reason is required", apperrors.ErrValidation)
		return nil, err
	}

	var original, reversal *domain.JournalEntry
	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		voucher, txErr := s.voucherRepo.FindVoucherByIDForUpdate(txCtx, voucherID)
		if txErr != nil {
			return txErr
		}
		if !voucher.CanCancel() {
			return fmt.Errorf("%w: voucher %s is already cancelled", apperrors.ErrInvalidState, voucher.VoucherNumber)
		}

		var reversalID *string
		if voucher.HasJournalEntry() {
			entry, txErr := s.entries.GetEntry(txCtx, *voucher.JournalEntryID)
			if txErr != nil {
				return txErr
			}
			switch entry.Status {
			case domain.EntryStatusReversed:
				reversalID = entry.ReversalEntryID
			default:
				original, reversal, txErr = s.entries.ReverseEntryInTx(txCtx, entry.EntryID, actorID, reason)
				if txErr != nil {
					return txErr
				}
				reversalID = &reversal.EntryID
			}
		}

		now := s.now()
		if txErr = s.voucherRepo.MarkVoucherCancelled(txCtx, voucher.VoucherID, reversalID, reason, actorID, now); txErr != nil {
			return txErr
		}
		voucher.Status = domain.VoucherStatusCancelled
		voucher.ReversalJournalEntryID = reversalID
		voucher.CancelledBy = &actorID
		voucher.CancelledAt = &now
		voucher.CancellationReason = &reason
		voucher.Touch(now, actorID)
		cancelled = voucher
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to cancel voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.Metrics.VoucherCancelled()
	s.LogInfo(ctx, "Voucher cancelled",
		slog.String("voucher_id", cancelled.VoucherID),
		slog.String("voucher_number", cancelled.VoucherNumber),
		slog.Bool("entry_reversed", reversal != nil))

	var events []domain.LedgerEvent
	if reversal != nil {
		s.Metrics.EntryReversed()
		entryEvent := s.newEvent(domain.EventEntryReversed, actorID)
		entryEvent.Entry = original
		entryEvent.Reversal = reversal
		entryEvent.Reason = reason
		events = append(events, entryEvent)
	}
	voucherEvent := s.newEvent(domain.EventVoucherCancelled, actorID)
	voucherEvent.Voucher = cancelled
	voucherEvent.Reason = reason
	events = append(events, voucherEvent)
	s.dispatch(ctx, events...)
	return cancelled, nil
}

// DeleteVoucher removes a draft voucher.
func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, actorID string) (err error) {
	defer s.Metrics.ObserveOperation("delete_voucher", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return err
	}
	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		voucher, txErr := s.voucherRepo.FindVoucherByIDForUpdate(txCtx, voucherID)
		if txErr != nil {
			return txErr
		}
		if !voucher.CanDelete() {
			return fmt.Errorf("%w: voucher %s is %s, only drafts can be deleted", apperrors.ErrInvalidState, voucher.VoucherNumber, voucher.Status)
		}
		return s.voucherRepo.DeleteVoucher(txCtx, voucherID)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete voucher", slog.String("voucher_id", voucherID))
		return err
	}
	s.LogInfo(ctx, "Voucher deleted", slog.String("voucher_id", voucherID), slog.String("deleted_by", actorID))
	return nil
}

func checkVoucher(v *domain.Voucher) error {
	if v.VoucherDate.IsZero() {
		return fmt.Errorf("%w: voucher date is required", apperrors.ErrValidation)
	}
	return v.Validate()
}

func exchangeRateOrDefault(rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate == nil || rate.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrValidation, rate)
	}
	if !accounting.HasScale(*rate, accounting.ExchangeRateScale) {
		return decimal.Zero, fmt.Errorf("%w: exchange rate allows at most %d decimal places, got %s", apperrors.ErrValidation, accounting.ExchangeRateScale, rate)
	}
	return *rate, nil
}

func voucherLinesFromRequests(voucherID string, reqs []dto.VoucherLineRequest) []domain.VoucherLine {
	lines := make([]domain.VoucherLine, len(reqs))
	for i, req := range reqs {
		lines[i] = domain.VoucherLine{
			LineID:       uuid.NewString(),
			VoucherID:    voucherID,
			AccountID:    strings.TrimSpace(req.AccountID),
			Description:  req.Description,
			DebitAmount:  req.DebitAmount,
			CreditAmount: req.CreditAmount,
			OrderNumber:  i + 1,
		}
	}
	return lines
}
