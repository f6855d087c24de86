package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/apperrors"
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	"github.com/generalbooks/general_ledger_app/internal/models"
	"github.com/generalbooks/general_ledger_app/internal/utils/mapping"
	"github.com/generalbooks/general_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, workplace_id, journal_number, entry_date, reference_type, description, status, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, position, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// nextJournalNumber assigns the next per-workplace number inside the insert
// itself. The unique index on (workplace_id, journal_number) catches the loser
// of a concurrent race; callers map that to ErrConflict and retry.
const nextJournalNumber = `(SELECT COALESCE(MAX(journal_number), 0) + 1 FROM journal_entries WHERE workplace_id = $2)`

func queueLines(batch *pgx.Batch, entry domain.JournalEntry) {
	for i, line := range entry.Lines {
		modelLine := mapping.ToModelJournalLine(line)
		modelLine.Position = i
		batch.Queue(insertLineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Position,
			modelLine.Description,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
}

// SaveDraft inserts a new DRAFT entry with its lines. Drafts carry no journal
// number; it is assigned at post time.
func (r *PgxLedgerRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, workplace_id, entry_date, reference_type, description, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.WorkplaceID,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, modelEntry.EntryID)
		}
		return fmt.Errorf("failed to insert draft entry %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLines(batch, entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for draft %s: %w", modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDraft replaces a DRAFT entry's header and lines. The status filter on
// the UPDATE guarantees a posted entry is never touched.
func (r *PgxLedgerRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $3,
		    reference_type = $4,
		    description = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE workplace_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelEntry.WorkplaceID,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.Description,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft entry %s: %w", modelEntry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftMissingError(ctx, modelEntry.WorkplaceID, modelEntry.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for draft %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLines(batch, entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for draft %s: %w", modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDraft removes a DRAFT entry and its lines.
func (r *PgxLedgerRepository) DeleteDraft(ctx context.Context, workplaceID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// The status filter protects posted entries; lines go second so a refused
	// header delete leaves them untouched.
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM journal_entries
		WHERE workplace_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`, workplaceID, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete draft entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.draftMissingError(ctx, workplaceID, entryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for draft %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// draftMissingError distinguishes a missing entry from a posted one after a
// zero-row draft mutation.
func (r *PgxLedgerRepository) draftMissingError(ctx context.Context, workplaceID, entryID string) error {
	var status models.EntryStatus
	err := r.Pool.QueryRow(ctx, `
		SELECT status FROM journal_entries WHERE workplace_id = $1 AND entry_id = $2;
	`, workplaceID, entryID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("entry " + entryID + " not found")
	}
	if err != nil {
		return fmt.Errorf("failed to check status of entry %s: %w", entryID, err)
	}
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, status)
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var journalNumber sql.NullInt64
	var originalID, reversingID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.WorkplaceID,
		&journalNumber,
		&m.EntryDate,
		&m.ReferenceType,
		&m.Description,
		&m.Status,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if journalNumber.Valid {
		m.JournalNumber = journalNumber.Int64
	}
	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	return m, nil
}

// FindEntryByID retrieves an entry with its lines in original order.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, workplaceID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, workplaceID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	linesByEntry, err := findLinesByEntryIDs(ctx, r.Pool, []string{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(m)
	entry.Lines = linesByEntry[entryID]
	return &entry, nil
}

// PostEntry atomically assigns the next journal number and writes the entry as
// POSTED. The same statement serves both a fresh post and posting an existing
// draft: the conflict target is the entry ID, and the DO UPDATE only fires
// while the stored row is still a draft.
func (r *PgxLedgerRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (entry_id, workplace_id, journal_number, entry_date, reference_type, description, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, ` + nextJournalNumber + `, $3, $4, $5, 'POSTED', $6, $7, $8, $9)
		ON CONFLICT (entry_id) DO UPDATE
		SET journal_number = EXCLUDED.journal_number,
		    entry_date = EXCLUDED.entry_date,
		    reference_type = EXCLUDED.reference_type,
		    description = EXCLUDED.description,
		    status = 'POSTED',
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		WHERE journal_entries.status = 'DRAFT'
		RETURNING journal_number;
	`
	var journalNumber int64
	err = tx.QueryRow(ctx, query,
		modelEntry.EntryID,
		modelEntry.WorkplaceID,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.Description,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	).Scan(&journalNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The stored row exists but is no longer a draft.
			return 0, fmt.Errorf("%w: entry %s is already posted", apperrors.ErrImmutable, modelEntry.EntryID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, fmt.Errorf("%w: journal number race in workplace %s", apperrors.ErrConflict, modelEntry.WorkplaceID)
		}
		return 0, fmt.Errorf("failed to post entry %s: %w", modelEntry.EntryID, err)
	}

	// Replace any draft lines with the posted set.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return 0, fmt.Errorf("failed to clear lines for entry %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLines(batch, entry)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to insert lines for entry %s: %w", modelEntry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return journalNumber, nil
}

// PostReversal posts the reversing entry and flips the original to REVERSED in
// the same transaction. The original's lines are untouched.
func (r *PgxLedgerRepository) PostReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelJournalEntry(reversal)
	query := `
		INSERT INTO journal_entries (entry_id, workplace_id, journal_number, entry_date, reference_type, description, status, original_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, ` + nextJournalNumber + `, $3, $4, $5, 'POSTED', $6, $7, $8, $9, $10)
		RETURNING journal_number;
	`
	var journalNumber int64
	err = tx.QueryRow(ctx, query,
		modelEntry.EntryID,
		modelEntry.WorkplaceID,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.Description,
		modelEntry.OriginalEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	).Scan(&journalNumber)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, fmt.Errorf("%w: journal number race in workplace %s", apperrors.ErrConflict, modelEntry.WorkplaceID)
		}
		return 0, fmt.Errorf("failed to insert reversing entry %s: %w", modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLines(batch, reversal)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to insert lines for reversing entry %s: %w", modelEntry.EntryID, err)
	}

	// The status filter loses the race if someone else reversed first.
	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE workplace_id = $1 AND entry_id = $2 AND status = 'POSTED';
	`, modelEntry.WorkplaceID, originalEntryID, modelEntry.EntryID, modelEntry.LastUpdatedAt, modelEntry.LastUpdatedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, fmt.Errorf("%w: entry %s was reversed concurrently", apperrors.ErrConflict, originalEntryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return journalNumber, nil
}

// ListEntries returns entries with lines in [from, to], ordered by
// (entry_date, journal_number, entry_id) with cursor pagination. Drafts all
// sort with journal number zero since none has been assigned yet, so the
// entry ID tiebreaker keeps the keyset unique when a page boundary falls
// among same-date drafts.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, workplaceID string, from, to time.Time, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1 AND entry_date >= $2 AND entry_date <= $3
	`
	args := []interface{}{workplaceID, from, to}

	if status != nil {
		args = append(args, *status)
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastNumber, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastNumber, lastEntryID)
		baseQuery += ` AND (entry_date, COALESCE(journal_number, 0), entry_id) > ($` + strconv.Itoa(len(args)-2) + `, $` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + `
		ORDER BY entry_date, COALESCE(journal_number, 0), entry_id
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.JournalNumber, last.EntryID)
		nextTokenVal = &token
		modelEntries = modelEntries[:limit]
	}

	entryIDs := make([]string, len(modelEntries))
	for i, m := range modelEntries {
		entryIDs[i] = m.EntryID
	}
	linesByEntry, err := findLinesByEntryIDs(ctx, r.Pool, entryIDs)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
		entries[i].Lines = linesByEntry[m.EntryID]
	}
	return entries, nextTokenVal, nil
}

// findLinesByEntryIDs loads lines for a set of entries, keyed by entry ID and
// ordered by position within each entry. Shared with the reporting repository.
func findLinesByEntryIDs(ctx context.Context, pool *pgxpool.Pool, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT line_id, entry_id, account_id, position, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, position;
	`
	rows, err := pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}
	defer rows.Close()

	modelLinesByEntry := make(map[string][]models.JournalLine, len(entryIDs))
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Position,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		modelLinesByEntry[m.EntryID] = append(modelLinesByEntry[m.EntryID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}

	linesByEntry := make(map[string][]domain.JournalLine, len(entryIDs))
	for _, id := range entryIDs {
		linesByEntry[id] = mapping.ToDomainJournalLineSlice(modelLinesByEntry[id])
	}
	return linesByEntry, nil
}

// LinesForAccount returns the account's posted lines with entry metadata in
// (entry_date, journal_number, position) order. Reversed originals still count;
// only drafts are excluded.
func (r *PgxLedgerRepository) LinesForAccount(ctx context.Context, workplaceID, accountID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.position, l.description, l.debit, l.credit,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date, e.journal_number, e.reference_type, e.description
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.workplace_id = $1 AND l.account_id = $2 AND e.status != 'DRAFT'
	`
	args := []interface{}{workplaceID, accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	query += `
		ORDER BY e.entry_date, e.journal_number, l.position;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	ledgerLines := []domain.LedgerLine{}
	for rows.Next() {
		var m models.JournalLine
		var entryDate time.Time
		var journalNumber int64
		var referenceType, entryDescription string
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Position,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entryDate,
			&journalNumber,
			&referenceType,
			&entryDescription,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line row: %w", err)
		}
		ledgerLines = append(ledgerLines, domain.LedgerLine{
			JournalLine:      mapping.ToDomainJournalLine(m),
			EntryDate:        entryDate,
			JournalNumber:    journalNumber,
			ReferenceType:    referenceType,
			EntryDescription: entryDescription,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger line rows: %w", err)
	}
	return ledgerLines, nil
}
