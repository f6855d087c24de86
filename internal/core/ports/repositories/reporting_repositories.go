package repositories

import (
	"context"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade defines the read-only aggregate queries backing
// the reports. Every query counts posted lines only (DRAFT entries are
// invisible; REVERSED originals still count, their reversals cancel them).
type ReportingRepositoryFacade interface {
	// GetAccountBalances returns per-account debit/credit totals over posted
	// lines with entry_date <= asOf, one row per account (zero totals for
	// accounts with no activity), optionally filtered by account type.
	GetAccountBalances(ctx context.Context, workplaceID string, asOf time.Time, accountType *domain.AccountType) ([]domain.AccountBalanceRow, error)

	// GetAccountTotalsBefore returns one account's debit/credit totals over
	// posted lines strictly before the given date (statement opening balance).
	GetAccountTotalsBefore(ctx context.Context, workplaceID, accountID string, before time.Time) (totalDebit, totalCredit decimal.Decimal, err error)

	// GetCashTotalsBefore returns combined debit/credit totals over posted
	// lines of cash-designated accounts strictly before the given date.
	GetCashTotalsBefore(ctx context.Context, workplaceID string, before time.Time) (totalDebit, totalCredit decimal.Decimal, err error)

	// GetExpenseTotals returns per-account debit/credit totals for
	// expense-type accounts over posted lines in [from, to].
	GetExpenseTotals(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.AccountBalanceRow, error)

	// GetCashTouchingEntries returns the posted entries in [from, to] that
	// have at least one line on a cash-designated account, with all lines.
	GetCashTouchingEntries(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.JournalEntry, error)
}
