package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	// Reversed marks a posted entry that has been negated by a reversing
	// entry. Its lines remain in the ledger and still count toward every
	// balance; the reversing entry's mirrored lines cancel them out.
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single financial event composed of multiple lines.
// An entry is freely editable while in DRAFT; once posted it is immutable and
// corrections happen only through reversing entries.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`          // Primary Key (UUID)
	WorkplaceID      string      `json:"workplaceID"`      // Tenant scope (NOT NULL)
	JournalNumber    int64       `json:"journalNumber"`    // Sequential per workplace; 0 until posted
	EntryDate        time.Time   `json:"entryDate"`        // Date the event occurred
	ReferenceType    string      `json:"referenceType"`    // Free-form provenance tag (e.g. "Invoice", "Manual")
	Description      string      `json:"description"`      // User description
	Status           EntryStatus `json:"status"`           // DRAFT, POSTED or REVERSED
	OriginalEntryID  *string     `json:"originalEntryID"`  // Set on reversing entries, points to the entry being reversed
	ReversingEntryID *string     `json:"reversingEntryID"` // Set on reversed entries, points to the reversal
	Lines            []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine represents a single line item within an entry, affecting one
// account. Exactly one of Debit and Credit is nonzero.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	EntryID     string          `json:"entryID"`   // FK -> JournalEntry.entryID (NOT NULL)
	AccountID   string          `json:"accountID"` // FK -> Account.accountID (NOT NULL)
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
	AuditFields
}

// IsReversal reports whether the entry was created to reverse another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}

// Totals sums the debit and credit sides over all lines.
func (e *JournalEntry) Totals() (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range e.Lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced recomputes the balance check from the entry's lines. Reports
// never trust a stored flag; they call this against stored lines so the
// listing self-verifies ledger integrity.
func (e *JournalEntry) IsBalanced() bool {
	totalDebit, totalCredit := e.Totals()
	return totalDebit.Equal(totalCredit)
}
