package services

import (
	"context"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// ReportingSvcFacade defines the read-only aggregation operations. None of
// these mutate state; repeated identical calls against an unchanged ledger
// return identical results.
type ReportingSvcFacade interface {
	AccountBalanceSummary(ctx context.Context, workplaceID string, asOf time.Time, accountType *domain.AccountType, showZeroBalances bool) (*domain.AccountBalanceSummary, error)
	AccountStatement(ctx context.Context, workplaceID, accountID string, from, to time.Time) (*domain.AccountStatement, error)
	CashFlow(ctx context.Context, workplaceID string, from, to time.Time) (*domain.CashFlowStatement, error)
	ExpenseReport(ctx context.Context, workplaceID string, from, to time.Time) (*domain.ExpenseReport, error)
	ListEntries(ctx context.Context, workplaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
