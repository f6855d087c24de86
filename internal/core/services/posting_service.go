package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/generalbooks/general_ledger_app/internal/apperrors"
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// maxPostRetries bounds the internal retries when two posts in the same
// workplace race for the next journal number. The unique constraint on
// (workplace_id, journal_number) detects the loser, which simply retries
// with a fresh number.
const maxPostRetries = 3

// postingService orchestrates validation, atomic posting and reversals.
type postingService struct {
	BaseService
	accountSvc portssvc.AccountSvcFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewPostingService creates a new posting service.
func NewPostingService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountSvc: accountSvc,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildEntry constructs a domain entry with fresh IDs from a create request.
func buildEntry(workplaceID string, req dto.CreateJournalEntryRequest, creatorUserID string, now time.Time) domain.JournalEntry {
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	entry := domain.JournalEntry{
		EntryID:       entryID,
		WorkplaceID:   workplaceID,
		EntryDate:     req.Date,
		ReferenceType: req.ReferenceType,
		Description:   req.Description,
		Status:        domain.Draft,
		Lines:         buildLines(entryID, req.Lines, audit),
		AuditFields:   audit,
	}
	return entry
}

func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, audit domain.AuditFields) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lineReq := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			AuditFields: audit,
		}
	}
	return lines
}

// validateForPosting fetches the referenced accounts and runs the validator.
// Structural violations surface as a ValidationError; a structurally sound
// but unbalanced entry surfaces as an UnbalancedEntryError carrying both
// totals so the caller can display the discrepancy.
func (s *postingService) validateForPosting(ctx context.Context, entry *domain.JournalEntry) error {
	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]struct{}, len(entry.Lines))
	for _, line := range entry.Lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accountsByID, err := s.accountSvc.GetAccountsByIDs(ctx, entry.WorkplaceID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation", slog.String("workplace_id", entry.WorkplaceID))
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	result := ValidateEntry(*entry, accountsByID)
	if len(result.Violations) > 0 {
		violations := make([]apperrors.FieldViolation, len(result.Violations))
		for i, v := range result.Violations {
			violations[i] = apperrors.FieldViolation{Field: v.Field, Message: v.Message}
		}
		return &apperrors.ValidationError{Violations: violations}
	}
	if !result.IsBalanced {
		return &apperrors.UnbalancedEntryError{
			TotalDebit:  result.TotalDebit,
			TotalCredit: result.TotalCredit,
		}
	}
	return nil
}

// postWithRetry drives the atomic post through the bounded conflict retry.
func (s *postingService) postWithRetry(ctx context.Context, post func() (int64, error)) (int64, error) {
	var lastErr error
	for attempt := 0; attempt < maxPostRetries; attempt++ {
		number, err := post()
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return 0, err
		}
		lastErr = err
		s.LogDebug(ctx, "Journal number conflict, retrying post", slog.Int("attempt", attempt+1))
	}
	return 0, fmt.Errorf("posting failed after %d attempts: %w", maxPostRetries, lastErr)
}

// CreateEntry validates and posts a new entry, or saves it as a draft.
func (s *postingService) CreateEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, creatorUserID string, asDraft bool) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entry := buildEntry(workplaceID, req, creatorUserID, now)

	if asDraft {
		// Drafts may be unbalanced; they are validated again at post time.
		if err := s.ledgerRepo.SaveDraft(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to save draft entry", slog.String("workplace_id", workplaceID))
			return nil, err
		}
		s.LogInfo(ctx, "Draft entry saved", slog.String("entry_id", entry.EntryID))
		return &entry, nil
	}

	if err := s.validateForPosting(ctx, &entry); err != nil {
		return nil, err
	}

	entry.Status = domain.Posted
	number, err := s.postWithRetry(ctx, func() (int64, error) {
		return s.ledgerRepo.PostEntry(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	entry.JournalNumber = number

	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entry.EntryID), slog.Int64("journal_number", number))
	return &entry, nil
}

// GetEntry retrieves an entry with its lines.
func (s *postingService) GetEntry(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ValidateDraft runs the validator against a stored entry without mutating it.
func (s *postingService) ValidateDraft(ctx context.Context, workplaceID, entryID string) (*domain.ValidationResult, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountsByID, err := s.accountSvc.GetAccountsByIDs(ctx, workplaceID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	result := ValidateEntry(*entry, accountsByID)
	return &result, nil
}

// UpdateDraftEntry edits a draft entry. Posted entries are immutable.
func (s *postingService) UpdateDraftEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.ReferenceType != nil {
		entry.ReferenceType = *req.ReferenceType
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		audit := domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		entry.Lines = buildLines(entry.EntryID, *req.Lines, audit)
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.ledgerRepo.UpdateDraft(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraftEntry removes a draft entry. Posted entries are immutable.
func (s *postingService) DeleteDraftEntry(ctx context.Context, workplaceID, entryID, userID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, entry.Status)
	}
	if err := s.ledgerRepo.DeleteDraft(ctx, workplaceID, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostEntry transitions a balanced draft to POSTED. An unbalanced draft is
// rejected and stays in DRAFT for later correction.
func (s *postingService) PostEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is already %s", apperrors.ErrImmutable, entryID, entry.Status)
	}

	if err := s.validateForPosting(ctx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	number, err := s.postWithRetry(ctx, func() (int64, error) {
		return s.ledgerRepo.PostEntry(ctx, *entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post draft entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.JournalNumber = number

	s.LogInfo(ctx, "Draft entry posted", slog.String("entry_id", entryID), slog.Int64("journal_number", number))
	return entry, nil
}

// ReverseEntry creates and posts a new entry that mirrors the original with
// debit and credit swapped, then marks the original REVERSED. The original's
// lines are never edited or deleted.
func (s *postingService) ReverseEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error) {
	original, err := s.ledgerRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Original entry not found for reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if original.Status == domain.Draft {
		return nil, fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrConflict)
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrConflict, entryID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: cannot reverse a reversing entry", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		WorkplaceID:     workplaceID,
		EntryDate:       original.EntryDate,
		ReferenceType:   "Reversal",
		Description:     fmt.Sprintf("Reversal of entry #%d: %s", original.JournalNumber, original.Description),
		Status:          domain.Posted,
		OriginalEntryID: &original.EntryID,
		AuditFields:     audit,
	}

	reversal.Lines = make([]domain.JournalLine, len(original.Lines))
	for i, origLine := range original.Lines {
		reversal.Lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   origLine.AccountID,
			Description: origLine.Description,
			Debit:       origLine.Credit,
			Credit:      origLine.Debit,
			AuditFields: audit,
		}
	}

	number, err := s.postWithRetry(ctx, func() (int64, error) {
		return s.ledgerRepo.PostReversal(ctx, reversal, original.EntryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post reversing entry", slog.String("original_entry_id", entryID))
		return nil, err
	}
	reversal.JournalNumber = number

	s.LogInfo(ctx, "Entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversing_entry_id", reversalID),
		slog.Int64("journal_number", number))
	return &reversal, nil
}
