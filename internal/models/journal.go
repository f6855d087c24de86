package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// JournalEntry represents a journal entry header row as stored.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	WorkplaceID      string      `db:"workplace_id"`
	JournalNumber    int64       `db:"journal_number"` // NULL until posted; unique per workplace
	EntryDate        time.Time   `db:"entry_date"`
	ReferenceType    string      `db:"reference_type"`
	Description      string      `db:"description"`
	Status           EntryStatus `db:"status"`
	OriginalEntryID  *string     `db:"original_entry_id"`  // Nullable
	ReversingEntryID *string     `db:"reversing_entry_id"` // Nullable
	AuditFields
}

// JournalLine represents a journal line row as stored.
// Amounts use a precise decimal type; exactly one of Debit/Credit is nonzero.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Position    int             `db:"position"` // Preserves the entry's line order
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AuditFields
}
