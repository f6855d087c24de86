package repositories

import (
	"context"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
)

// LedgerRepositoryFacade defines persistence for journal entries and their lines.
// Posted data is append-only: once an entry is written as POSTED, its lines are
// never updated or removed. Corrections go through reversal entries.
type LedgerRepositoryFacade interface {
	// SaveDraft inserts a new DRAFT entry with its lines.
	SaveDraft(ctx context.Context, entry domain.JournalEntry) error

	// UpdateDraft replaces a DRAFT entry's header and lines. Returns
	// ErrImmutable if the stored entry is no longer a draft.
	UpdateDraft(ctx context.Context, entry domain.JournalEntry) error

	// DeleteDraft removes a DRAFT entry entirely. Returns ErrImmutable for
	// posted entries.
	DeleteDraft(ctx context.Context, workplaceID, entryID string) error

	// FindEntryByID retrieves an entry with its lines in original order.
	FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error)

	// PostEntry atomically assigns the next journal number for the workplace,
	// marks the entry POSTED and writes the header plus all lines in one
	// transaction. Returns the assigned number. A journal number race with a
	// concurrent post surfaces as ErrConflict; callers retry.
	PostEntry(ctx context.Context, entry domain.JournalEntry) (int64, error)

	// PostReversal posts the reversing entry and marks the original entry
	// REVERSED in the same transaction. The original's lines are untouched.
	PostReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string) (int64, error)

	// ListEntries returns entries (with lines) whose entry date falls in
	// [from, to], optionally filtered by status, ordered by
	// (entry_date, journal_number, entry_id) with cursor pagination. The
	// entry ID tiebreaker keeps the key unique for drafts, which share
	// journal number zero.
	ListEntries(ctx context.Context, workplaceID string, from, to time.Time, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// LinesForAccount returns the account's posted lines ordered by
	// (entry_date, journal_number, position), the authoritative sequence for
	// running balance computation. Nil bounds leave that side open.
	LinesForAccount(ctx context.Context, workplaceID, accountID string, from, to *time.Time) ([]domain.LedgerLine, error)
}
