package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/generalbooks/general_ledger_app/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.UTC)
	token := pagination.EncodeToken(entryDate, 42, "entry-42")

	decodedDate, journalNumber, entryID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, decodedDate.Equal(entryDate))
	assert.Equal(t, int64(42), journalNumber)
	assert.Equal(t, "entry-42", entryID)
}

func TestEncodeToken_SameDateDraftsGetDistinctCursors(t *testing.T) {
	// Drafts share journal number zero; the entry ID must keep their cursor
	// keys distinct so a page boundary between them loses no rows.
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	first := pagination.EncodeToken(entryDate, 0, "draft-a")
	second := pagination.EncodeToken(entryDate, 0, "draft-b")

	assert.NotEqual(t, first, second)

	_, _, entryID, err := pagination.DecodeToken(first)
	require.NoError(t, err)
	assert.Equal(t, "draft-a", entryID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")
}

func TestDecodeToken_MissingParts(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2024-03-15T10:30:00Z|7"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}

func TestDecodeToken_EmptyEntryID(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2024-03-15T10:30:00Z|7|"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry ID")
}

func TestDecodeToken_BadJournalNumber(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2024-03-15T10:30:00Z|forty-two|entry-1"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "journal number")
}

func TestDecodeToken_BadDate(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|7|entry-1"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date")
}
