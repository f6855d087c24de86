package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	"github.com/generalbooks/general_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the aggregate report queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetAccountBalances returns per-account debit/credit totals over non-draft
// lines up to asOf. Accounts with no activity appear with zero totals.
func (r *PgxReportingRepository) GetAccountBalances(ctx context.Context, workplaceID string, asOf time.Time, accountType *domain.AccountType) ([]domain.AccountBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(t.total_debit, 0), COALESCE(t.total_credit, 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, SUM(l.debit) AS total_debit, SUM(l.credit) AS total_credit
			FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.workplace_id = $1 AND e.status != 'DRAFT' AND e.entry_date <= $2
			GROUP BY l.account_id
		) t ON t.account_id = a.account_id
		WHERE a.workplace_id = $1
	`
	args := []interface{}{workplaceID, asOf}
	if accountType != nil {
		args = append(args, *accountType)
		query += ` AND a.account_type = $` + strconv.Itoa(len(args))
	}
	query += `
		ORDER BY a.code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	balanceRows := []domain.AccountBalanceRow{}
	for rows.Next() {
		var row domain.AccountBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&row.AccountType,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balanceRows = append(balanceRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balanceRows, nil
}

// GetAccountTotalsBefore returns one account's totals over non-draft lines
// strictly before the given date.
func (r *PgxReportingRepository) GetAccountTotalsBefore(ctx context.Context, workplaceID, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.workplace_id = $1 AND l.account_id = $2 AND e.status != 'DRAFT' AND e.entry_date < $3;
	`
	var totalDebit, totalCredit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, workplaceID, accountID, before).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query totals for account %s: %w", accountID, err)
	}
	return totalDebit, totalCredit, nil
}

// GetCashTotalsBefore returns combined totals over cash-designated accounts
// strictly before the given date.
func (r *PgxReportingRepository) GetCashTotalsBefore(ctx context.Context, workplaceID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.workplace_id = $1 AND a.is_cash AND e.status != 'DRAFT' AND e.entry_date < $2;
	`
	var totalDebit, totalCredit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, workplaceID, before).Scan(&totalDebit, &totalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query cash totals for workplace %s: %w", workplaceID, err)
	}
	return totalDebit, totalCredit, nil
}

// GetExpenseTotals returns per-account totals for expense accounts over
// non-draft lines in [from, to].
func (r *PgxReportingRepository) GetExpenseTotals(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.AccountBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		JOIN journal_lines l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.workplace_id = $1 AND a.account_type = 'EXPENSE'
		  AND e.status != 'DRAFT' AND e.entry_date >= $2 AND e.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense totals for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	totals := []domain.AccountBalanceRow{}
	for rows.Next() {
		var row domain.AccountBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&row.AccountType,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense total row: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense total rows: %w", err)
	}
	return totals, nil
}

// GetCashTouchingEntries returns the non-draft entries in [from, to] with at
// least one line on a cash-designated account, lines included.
func (r *PgxReportingRepository) GetCashTouchingEntries(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1 AND status != 'DRAFT'
		  AND entry_date >= $2 AND entry_date <= $3
		  AND EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN accounts a ON a.account_id = l.account_id
			WHERE l.entry_id = journal_entries.entry_id AND a.is_cash
		  )
		ORDER BY entry_date, journal_number;
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash-touching entries for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	entryIDs := make([]string, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].EntryID
	}
	linesByEntry, err := findLinesByEntryIDs(ctx, r.Pool, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}
