package dto

import (
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines a single line of a submitted entry.
// Exactly one of debit and credit must be nonzero; the validator reports
// structural problems per line rather than failing on the first.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the payload for submitting a journal entry.
type CreateJournalEntryRequest struct {
	Date          time.Time                  `json:"date" binding:"required"`
	ReferenceType string                     `json:"referenceType"`
	Description   string                     `json:"description" binding:"required"`
	Lines         []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest defines the payload for editing a draft entry.
// Nil fields are left unchanged; replacing lines replaces the whole set.
type UpdateJournalEntryRequest struct {
	Date          *time.Time                  `json:"date"`
	ReferenceType *string                     `json:"referenceType"`
	Description   *string                     `json:"description"`
	Lines         *[]CreateJournalLineRequest `json:"lines" binding:"omitempty,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
// The balance fields are recomputed from the lines on every read.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	JournalNumber    int64                 `json:"journalNumber,omitempty"`
	Date             time.Time             `json:"date"`
	ReferenceType    string                `json:"referenceType,omitempty"`
	Description      string                `json:"description"`
	Status           domain.EntryStatus    `json:"status"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	IsBalanced       bool                  `json:"isBalanced"`
	TotalDebit       decimal.Decimal       `json:"totalDebit"`
	TotalCredit      decimal.Decimal       `json:"totalCredit"`
	Lines            []JournalLineResponse `json:"lines"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ListEntriesParams holds the filters for listing journal entries.
type ListEntriesParams struct {
	FromDate  time.Time
	ToDate    time.Time
	Status    *domain.EntryStatus
	Limit     int
	NextToken *string
}

// ListEntriesResponse is the paginated listing result.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its response form.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
	}
}

// ToJournalEntryResponse converts a domain entry, recomputing the balance
// fields from its lines.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	totalDebit, totalCredit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToJournalLineResponse(&e.Lines[i])
	}
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		JournalNumber:    e.JournalNumber,
		Date:             e.EntryDate,
		ReferenceType:    e.ReferenceType,
		Description:      e.Description,
		Status:           e.Status,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		IsBalanced:       totalDebit.Equal(totalCredit),
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}
