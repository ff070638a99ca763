package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_backoffice/internal/apperrors"
	"github.com/SscSPs/ledger_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_backoffice/internal/core/ports/services"
	"github.com/SscSPs/ledger_backoffice/internal/dto"
	"github.com/SscSPs/ledger_backoffice/internal/utils/pagination"
)

// journalEntryService owns the entry lifecycle: draft editing, posting and reversal.
type journalEntryService struct {
	BaseService
	entryRepo    portsrepo.JournalEntryRepositoryFacade
	periodRepo   portsrepo.FiscalPeriodReader
	sequenceRepo portsrepo.SequenceRepository
	projector    portssvc.BalanceProjector
}

// NewJournalEntryService creates a new JournalEntryService.
func NewJournalEntryService(
	txManager portsrepo.TxManager,
	entryRepo portsrepo.JournalEntryRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodReader,
	sequenceRepo portsrepo.SequenceRepository,
	projector portssvc.BalanceProjector,
	opts ...ServiceOption,
) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		BaseService:  newBaseService(txManager, opts...),
		entryRepo:    entryRepo,
		periodRepo:   periodRepo,
		sequenceRepo: sequenceRepo,
		projector:    projector,
	}
}

// Ensure journalEntryService implements the portssvc.JournalEntrySvcFacade interface
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// GetEntry retrieves an entry with its lines.
func (s *journalEntryService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// ListEntries returns a page of entries, newest first.
func (s *journalEntryService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := domain.EntryFilter{
		FiscalPeriodID:     params.FiscalPeriodID,
		SourceDocumentType: params.SourceDocumentType,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}

// GenerateEntryNumber draws the next number of the type's yearly sequence.
func (s *journalEntryService) GenerateEntryNumber(ctx context.Context, entryType string, date time.Time) (string, error) {
	entryType = normalizeEntryType(entryType)
	seq, err := s.sequenceRepo.NextValue(ctx, domain.EntrySequenceScope(entryType, date.Year()))
	if err != nil {
		return "", err
	}
	return domain.FormatEntryNumber(entryType, date.Year(), seq), nil
}

// CreateEntry persists a new draft entry.
func (s *journalEntryService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (created *domain.JournalEntry, err error) {
	defer s.Metrics.ObserveOperation("create_entry", time.Now(), &err)
	logger := s.GetLogger(ctx)

	if err = requireActor(actorID); err != nil {
		return nil, err
	}
	if req.SourceDocumentType != nil && *req.SourceDocumentType == domain.SourceDocumentReversal {
		err = fmt.Errorf("%w: reversal entries are created by reversing a posted entry", apperrors.ErrValidation)
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryNumber:        strings.TrimSpace(req.EntryNumber),
		EntryType:          req.EntryType,
		EntryDate:          req.EntryDate,
		FiscalPeriodID:     req.FiscalPeriodID,
		Reference:          req.Reference,
		Description:        req.Description,
		ThirdPartyID:       req.ThirdPartyID,
		IsAdjustment:       req.IsAdjustment,
		IsRecurring:        req.IsRecurring,
		SourceDocumentType: req.SourceDocumentType,
		SourceDocumentID:   req.SourceDocumentID,
		Lines:              linesFromRequests(req.Lines),
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.CreateEntryInTx(txCtx, entry, actorID)
		return txErr
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create journal entry", slog.String("fiscal_period_id", req.FiscalPeriodID))
		return nil, err
	}

	s.Metrics.EntryCreated()
	logger.Info("Journal entry created",
		slog.String("entry_id", created.EntryID),
		slog.String("entry_number", created.EntryNumber),
		slog.Int("lines", len(created.Lines)))
	return created, nil
}

// CreateEntryInTx validates and stores entry as a draft. Status, ids and totals
// supplied by the caller are overwritten.
func (s *journalEntryService) CreateEntryInTx(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.JournalEntry, error) {
	if entry.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if len(entry.Lines) == 0 {
		return nil, fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	}
	if err := domain.ValidateLines(entry.Lines); err != nil {
		return nil, err
	}
	if _, err := lookupPeriod(ctx, s.periodRepo, entry.FiscalPeriodID, false); err != nil {
		return nil, err
	}

	now := s.now()
	entry.EntryType = normalizeEntryType(entry.EntryType)
	if entry.EntryNumber == "" {
		number, err := s.GenerateEntryNumber(ctx, entry.EntryType, entry.EntryDate)
		if err != nil {
			return nil, err
		}
		entry.EntryNumber = number
	}
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	entry.Status = domain.EntryStatusDraft
	entry.PostedBy, entry.PostedAt = nil, nil
	entry.ReversalEntryID, entry.ReversalReason = nil, nil
	entry.AuditFields = domain.NewAuditFields(now, actorID)
	entry.Lines = s.stampLines(entry.EntryID, entry.Lines, now, actorID)
	entry.RecalculateTotals()

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry replaces the header and lines of a draft entry.
func (s *journalEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (updated *domain.JournalEntry, err error) {
	defer s.Metrics.ObserveOperation("update_entry", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	lines := linesFromRequests(req.Lines)
	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, txErr := s.entryRepo.FindEntryByIDForUpdate(txCtx, entryID)
		if txErr != nil {
			return txErr
		}
		if !entry.CanEdit() {
			return fmt.Errorf("%w: entry %s is %s, only drafts can be edited", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
		}
		if txErr = domain.ValidateLines(lines); txErr != nil {
			return txErr
		}
		if _, txErr = lookupPeriod(txCtx, s.periodRepo, req.FiscalPeriodID, false); txErr != nil {
			return txErr
		}

		now := s.now()
		entry.EntryDate = req.EntryDate
		entry.FiscalPeriodID = req.FiscalPeriodID
		entry.Reference = req.Reference
		entry.Description = req.Description
		entry.ThirdPartyID = req.ThirdPartyID
		entry.IsAdjustment = req.IsAdjustment
		entry.IsRecurring = req.IsRecurring
		entry.Lines = s.stampLines(entry.EntryID, lines, now, actorID)
		entry.RecalculateTotals()
		entry.Touch(now, actorID)

		if txErr = s.entryRepo.ReplaceLines(txCtx, entry.EntryID, entry.Lines); txErr != nil {
			return txErr
		}
		if txErr = s.entryRepo.UpdateEntryHeader(txCtx, *entry); txErr != nil {
			return txErr
		}
		updated = entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID), slog.Int("lines", len(updated.Lines)))
	return updated, nil
}

// PostEntry posts a draft entry and, once committed, notifies the hooks.
func (s *journalEntryService) PostEntry(ctx context.Context, entryID string, actorID string) (posted *domain.JournalEntry, err error) {
	defer s.Metrics.ObserveOperation("post_entry", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		posted, txErr = s.PostEntryInTx(txCtx, entryID, actorID)
		return txErr
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.Metrics.EntryPosted()
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.EntryNumber),
		slog.String("total_debit", posted.TotalDebit.String()))

	event := s.newEvent(domain.EventEntryPosted, actorID)
	event.Entry = posted
	s.dispatch(ctx, event)
	return posted, nil
}

// PostEntryInTx locks the entry, checks it and moves it to posted, applying its
// lines to the account balances in the caller's transaction.
func (s *journalEntryService) PostEntryInTx(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByIDForUpdate(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.CanPost() {
		return nil, fmt.Errorf("%w: entry %s is %s, only drafts can be posted", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
	}
	if len(entry.Lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no lines", apperrors.ErrValidation, entry.EntryNumber)
	}
	if err = domain.ValidateLines(entry.Lines); err != nil {
		return nil, err
	}
	entry.RecalculateTotals()
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: entry %s debit %s, credit %s", apperrors.ErrUnbalancedEntry, entry.EntryNumber, entry.TotalDebit, entry.TotalCredit)
	}
	if _, err = lookupPeriod(ctx, s.periodRepo, entry.FiscalPeriodID, true); err != nil {
		return nil, err
	}

	now := s.now()
	if err = s.entryRepo.MarkEntryPosted(ctx, entry.EntryID, actorID, now); err != nil {
		return nil, err
	}
	if err = s.projector.Apply(ctx, entry.Lines, entry.FiscalPeriodID); err != nil {
		return nil, err
	}

	entry.Status = domain.EntryStatusPosted
	entry.PostedBy = &actorID
	entry.PostedAt = &now
	entry.Touch(now, actorID)
	return entry, nil
}

// ReverseEntry reverses a posted entry and, once committed, notifies the hooks.
func (s *journalEntryService) ReverseEntry(ctx context.Context, entryID string, actorID string, reason string) (original *domain.JournalEntry, reversal *domain.JournalEntry, err error) {
	defer s.Metrics.ObserveOperation("reverse_entry", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		original, reversal, txErr = s.ReverseEntryInTx(txCtx, entryID, actorID, reason)
		return txErr
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, nil, err
	}

	s.Metrics.EntryReversed()
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_entry_number", reversal.EntryNumber))

	event := s.newEvent(domain.EventEntryReversed, actorID)
	event.Entry = original
	event.Reversal = reversal
	event.Reason = reason
	s.dispatch(ctx, event)
	return original, reversal, nil
}

// ReverseEntryInTx stores the compensating entry, marks the original reversed
// and takes the original's lines back out of the account balances.
func (s *journalEntryService) ReverseEntryInTx(ctx context.Context, entryID string, actorID string, reason string) (*domain.JournalEntry, *domain.JournalEntry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, nil, fmt.Errorf("%w: a reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.entryRepo.FindEntryByIDForUpdate(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	if original.IsReversal() {
		return nil, nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrInvalidState, original.EntryNumber)
	}
	if !original.CanReverse() {
		return nil, nil, fmt.Errorf("%w: entry %s is %s, only posted entries can be reversed", apperrors.ErrInvalidState, original.EntryNumber, original.Status)
	}
	if _, err = lookupPeriod(ctx, s.periodRepo, original.FiscalPeriodID, true); err != nil {
		return nil, nil, err
	}

	now := s.now()
	reversal := original.BuildReversal(now, actorID, reason)
	if err = s.entryRepo.SaveEntry(ctx, reversal); err != nil {
		return nil, nil, err
	}
	if err = s.entryRepo.MarkEntryReversed(ctx, original.EntryID, reversal.EntryID, reason, actorID, now); err != nil {
		return nil, nil, err
	}
	if err = s.projector.Unapply(ctx, original.Lines, original.FiscalPeriodID); err != nil {
		return nil, nil, err
	}

	original.Status = domain.EntryStatusReversed
	original.ReversalEntryID = &reversal.EntryID
	original.ReversalReason = &reason
	original.Touch(now, actorID)
	return original, &reversal, nil
}

// DeleteEntry removes a draft entry.
func (s *journalEntryService) DeleteEntry(ctx context.Context, entryID string, actorID string) (err error) {
	defer s.Metrics.ObserveOperation("delete_entry", time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, txErr := s.entryRepo.FindEntryByIDForUpdate(txCtx, entryID)
		if txErr != nil {
			return txErr
		}
		if !entry.CanDelete() {
			return fmt.Errorf("%w: entry %s is %s, only drafts can be deleted", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
		}
		return s.entryRepo.DeleteEntry(txCtx, entryID)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", actorID))
	return nil
}

// AddLine inserts a line at OrderNumber, or appends it.
func (s *journalEntryService) AddLine(ctx context.Context, entryID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error) {
	return s.mutateDraft(ctx, entryID, actorID, "add_line", func(txCtx context.Context, entry *domain.JournalEntry, now time.Time) error {
		line := lineFromRequest(req.JournalEntryLineRequest)
		if err := line.Validate(); err != nil {
			return err
		}
		line.LineID = uuid.NewString()
		line.EntryID = entry.EntryID
		line.AuditFields = domain.NewAuditFields(now, actorID)

		pos := len(entry.Lines)
		if req.OrderNumber != nil && *req.OrderNumber >= 1 && *req.OrderNumber-1 < pos {
			pos = *req.OrderNumber - 1
		}
		lines := make([]domain.JournalEntryLine, 0, len(entry.Lines)+1)
		lines = append(lines, entry.Lines[:pos]...)
		lines = append(lines, line)
		lines = append(lines, entry.Lines[pos:]...)
		entry.Lines = domain.Renumber(lines)

		if err := s.entryRepo.SaveLine(txCtx, entry.Lines[pos]); err != nil {
			return err
		}
		if pos == len(entry.Lines)-1 {
			return nil
		}
		return s.entryRepo.UpdateLineOrder(txCtx, entry.EntryID, entry.Lines)
	})
}

// UpdateLine changes one line and optionally moves it.
func (s *journalEntryService) UpdateLine(ctx context.Context, entryID string, lineID string, req dto.UpsertJournalEntryLineRequest, actorID string) (*domain.JournalEntry, error) {
	return s.mutateDraft(ctx, entryID, actorID, "update_line", func(txCtx context.Context, entry *domain.JournalEntry, now time.Time) error {
		idx := indexOfLine(entry.Lines, lineID)
		if idx < 0 {
			return apperrors.NewNotFoundError("journal entry line", lineID)
		}

		changed := lineFromRequest(req.JournalEntryLineRequest)
		if err := changed.Validate(); err != nil {
			return err
		}
		line := entry.Lines[idx]
		line.AccountID = changed.AccountID
		line.ThirdPartyID = changed.ThirdPartyID
		line.Description = changed.Description
		line.DebitAmount = changed.DebitAmount
		line.CreditAmount = changed.CreditAmount
		line.Touch(now, actorID)
		entry.Lines[idx] = line

		if err := s.entryRepo.UpdateLine(txCtx, line); err != nil {
			return err
		}
		if req.OrderNumber == nil || *req.OrderNumber == line.OrderNumber {
			return nil
		}

		target := *req.OrderNumber - 1
		if target < 0 {
			target = 0
		}
		if target >= len(entry.Lines) {
			target = len(entry.Lines) - 1
		}
		rest := append(append([]domain.JournalEntryLine{}, entry.Lines[:idx]...), entry.Lines[idx+1:]...)
		moved := make([]domain.JournalEntryLine, 0, len(entry.Lines))
		moved = append(moved, rest[:target]...)
		moved = append(moved, line)
		moved = append(moved, rest[target:]...)
		entry.Lines = domain.Renumber(moved)
		return s.entryRepo.UpdateLineOrder(txCtx, entry.EntryID, entry.Lines)
	})
}

// DeleteLine removes one line and closes the gap in the ordering.
func (s *journalEntryService) DeleteLine(ctx context.Context, entryID string, lineID string, actorID string) (*domain.JournalEntry, error) {
	return s.mutateDraft(ctx, entryID, actorID, "delete_line", func(txCtx context.Context, entry *domain.JournalEntry, _ time.Time) error {
		idx := indexOfLine(entry.Lines, lineID)
		if idx < 0 {
			return apperrors.NewNotFoundError("journal entry line", lineID)
		}
		if err := s.entryRepo.DeleteLine(txCtx, entry.EntryID, lineID); err != nil {
			return err
		}
		entry.Lines = domain.Renumber(append(entry.Lines[:idx], entry.Lines[idx+1:]...))
		if idx == len(entry.Lines) {
			return nil
		}
		return s.entryRepo.UpdateLineOrder(txCtx, entry.EntryID, entry.Lines)
	})
}

// ReorderLines applies lineIDs as the new order. lineIDs must name every line
// exactly once; an empty list renumbers the current order densely.
func (s *journalEntryService) ReorderLines(ctx context.Context, entryID string, lineIDs []string, actorID string) (*domain.JournalEntry, error) {
	return s.mutateDraft(ctx, entryID, actorID, "reorder_lines", func(txCtx context.Context, entry *domain.JournalEntry, _ time.Time) error {
		if len(lineIDs) == 0 {
			entry.Lines = domain.Renumber(entry.Lines)
			return s.entryRepo.UpdateLineOrder(txCtx, entry.EntryID, entry.Lines)
		}
		if len(lineIDs) != len(entry.Lines) {
			return fmt.Errorf("%w: expected %d line ids, got %d", apperrors.ErrValidation, len(entry.Lines), len(lineIDs))
		}

		byID := make(map[string]domain.JournalEntryLine, len(entry.Lines))
		for _, line := range entry.Lines {
			byID[line.LineID] = line
		}
		ordered := make([]domain.JournalEntryLine, 0, len(lineIDs))
		for _, id := range lineIDs {
			line, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: line %s is unknown or listed twice", apperrors.ErrValidation, id)
			}
			delete(byID, id)
			ordered = append(ordered, line)
		}
		entry.Lines = domain.Renumber(ordered)
		return s.entryRepo.UpdateLineOrder(txCtx, entry.EntryID, entry.Lines)
	})
}

// mutateDraft runs fn against a locked draft entry and stores the recomputed totals.
func (s *journalEntryService) mutateDraft(
	ctx context.Context,
	entryID string,
	actorID string,
	operation string,
	fn func(txCtx context.Context, entry *domain.JournalEntry, now time.Time) error,
) (result *domain.JournalEntry, err error) {
	defer s.Metrics.ObserveOperation(operation, time.Now(), &err)
	if err = requireActor(actorID); err != nil {
		return nil, err
	}

	err = s.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, txErr := s.entryRepo.FindEntryByIDForUpdate(txCtx, entryID)
		if txErr != nil {
			return txErr
		}
		if !entry.CanEdit() {
			return fmt.Errorf("%w: entry %s is %s, only draft lines can change", apperrors.ErrInvalidState, entry.EntryNumber, entry.Status)
		}

		now := s.now()
		if txErr = fn(txCtx, entry, now); txErr != nil {
			return txErr
		}
		entry.RecalculateTotals()
		entry.Touch(now, actorID)
		if txErr = s.entryRepo.UpdateEntryTotals(txCtx, entry.EntryID, entry.TotalDebit, entry.TotalCredit, actorID, now); txErr != nil {
			return txErr
		}
		result = entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to change journal entry lines",
			slog.String("entry_id", entryID), slog.String("operation", operation))
		return nil, err
	}

	s.LogDebug(ctx, "Journal entry lines changed",
		slog.String("entry_id", entryID),
		slog.String("operation", operation),
		slog.Int("lines", len(result.Lines)))
	return result, nil
}

func (s *journalEntryService) stampLines(entryID string, lines []domain.JournalEntryLine, now time.Time, actorID string) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, line := range lines {
		if line.LineID == "" {
			line.LineID = uuid.NewString()
		}
		line.EntryID = entryID
		line.AuditFields = domain.NewAuditFields(now, actorID)
		out[i] = line
	}
	return domain.Renumber(out)
}

func lineFromRequest(req dto.JournalEntryLineRequest) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountID:    strings.TrimSpace(req.AccountID),
		ThirdPartyID: req.ThirdPartyID,
		Description:  req.Description,
		DebitAmount:  req.DebitAmount,
		CreditAmount: req.CreditAmount,
	}
}

func linesFromRequests(reqs []dto.JournalEntryLineRequest) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqs))
	for i, req := range reqs {
		lines[i] = lineFromRequest(req)
	}
	return lines
}

func indexOfLine(lines []domain.JournalEntryLine, lineID string) int {
	for i, line := range lines {
		if line.LineID == lineID {
			return i
		}
	}
	return -1
}

func normalizeEntryType(entryType string) string {
	entryType = strings.ToUpper(strings.TrimSpace(entryType))
	if entryType == "" {
		return domain.DefaultEntryType
	}
	return entryType
}
