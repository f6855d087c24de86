package services

import (
	"context"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// PostingSvcFacade defines the posting engine's operations: draft lifecycle,
// validation, posting and reversal.
type PostingSvcFacade interface {
	// CreateEntry validates and posts a new entry in one call. With asDraft
	// set it saves the entry as an editable draft instead (no journal number,
	// balance not enforced yet).
	CreateEntry(ctx context.Context, workplaceID string, req dto.CreateJournalEntryRequest, creatorUserID string, asDraft bool) (*domain.JournalEntry, error)

	// UpdateDraftEntry edits a draft. Posted entries fail with ErrImmutable.
	UpdateDraftEntry(ctx context.Context, workplaceID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry removes a draft. Posted entries fail with ErrImmutable.
	DeleteDraftEntry(ctx context.Context, workplaceID, entryID, userID string) error

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)

	// ValidateDraft runs the validator against a stored draft without
	// mutating anything; safe to call repeatedly from an edit screen.
	ValidateDraft(ctx context.Context, workplaceID, entryID string) (*domain.ValidationResult, error)

	// PostEntry transitions a balanced draft to POSTED, assigning its journal
	// number. Unbalanced drafts fail with UnbalancedEntryError and stay DRAFT.
	PostEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry mirroring the original with debit/credit
	// swapped and marks the original REVERSED. The original is never edited.
	ReverseEntry(ctx context.Context, workplaceID, entryID, userID string) (*domain.JournalEntry, error)
}
