package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
)

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{Debit: decimal.NewFromInt(300)},
			{Debit: decimal.NewFromInt(200)},
			{Credit: decimal.NewFromInt(450)},
		},
	}

	totalDebit, totalCredit := entry.Totals()
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(500)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(450)))
}

func TestJournalEntry_Totals_NoLines(t *testing.T) {
	entry := domain.JournalEntry{}

	totalDebit, totalCredit := entry.Totals()
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	balanced := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{Debit: decimal.RequireFromString("99.99")},
			{Credit: decimal.RequireFromString("99.99")},
		},
	}
	assert.True(t, balanced.IsBalanced())

	unbalanced := domain.JournalEntry{
		Lines: []domain.JournalLine{
			{Debit: decimal.RequireFromString("100.00")},
			{Credit: decimal.RequireFromString("99.99")},
		},
	}
	assert.False(t, unbalanced.IsBalanced())
}

func TestJournalEntry_IsReversal(t *testing.T) {
	originalID := "original-entry"

	plain := domain.JournalEntry{}
	assert.False(t, plain.IsReversal())

	reversal := domain.JournalEntry{OriginalEntryID: &originalID}
	assert.True(t, reversal.IsReversal())
}

func TestEntryStatus_Values(t *testing.T) {
	assert.Equal(t, domain.EntryStatus("DRAFT"), domain.Draft)
	assert.Equal(t, domain.EntryStatus("POSTED"), domain.Posted)
	assert.Equal(t, domain.EntryStatus("REVERSED"), domain.Reversed)
}
