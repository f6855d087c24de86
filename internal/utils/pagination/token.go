package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates a base64 cursor from an entry date, journal number and
// entry ID. Drafts all carry journal number zero, so the entry ID is the
// tiebreaker that keeps the ordering key unique per row and the cursor
// deterministic across identical listings.
func EncodeToken(entryDate time.Time, journalNumber int64, entryID string) string {
	tokenStr := fmt.Sprintf("%s|%d|%s", entryDate.Format(timeFormat), journalNumber, entryID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor back into the entry date, journal number and
// entry ID.
func DecodeToken(token string) (time.Time, int64, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return time.Time{}, 0, "", fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, "", fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	journalNumber, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, "", fmt.Errorf("invalid pagination token format (journal number parse): %w", err)
	}

	if parts[2] == "" {
		return time.Time{}, 0, "", fmt.Errorf("invalid pagination token format (empty entry ID)")
	}

	return entryDate, journalNumber, parts[2], nil
}
