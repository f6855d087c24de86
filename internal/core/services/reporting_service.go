package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
	"github.com/generalbooks/general_ledger_app/internal/utils/accounting"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService derives every report by aggregating posted lines at query
// time. No balances are cached anywhere; rerunning a report against an
// unchanged ledger always yields the same result.
type reportingService struct {
	BaseService
	accountSvc    portssvc.AccountSvcFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountSvc:    accountSvc,
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AccountBalanceSummary groups per-account net balances by account type.
func (s *reportingService) AccountBalanceSummary(ctx context.Context, workplaceID string, asOf time.Time, accountType *domain.AccountType, showZeroBalances bool) (*domain.AccountBalanceSummary, error) {
	rows, err := s.reportingRepo.GetAccountBalances(ctx, workplaceID, asOf, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account balances", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	byType := make(map[domain.AccountType][]domain.AccountBalanceRow)
	for _, row := range rows {
		net, err := accounting.NetBalance(row.TotalDebit, row.TotalCredit, row.AccountType)
		if err != nil {
			return nil, err
		}
		row.NetBalance = net
		if !showZeroBalances && net.IsZero() {
			continue
		}
		byType[row.AccountType] = append(byType[row.AccountType], row)
	}

	summary := &domain.AccountBalanceSummary{AsOf: asOf, GrandTotal: decimal.Zero}
	for _, t := range domain.AccountTypeOrder {
		accounts, ok := byType[t]
		if !ok {
			continue
		}
		sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
		subtotal := decimal.Zero
		for _, row := range accounts {
			subtotal = subtotal.Add(row.NetBalance)
		}
		summary.Groups = append(summary.Groups, domain.AccountBalanceGroup{
			AccountType: t,
			Accounts:    accounts,
			Subtotal:    subtotal,
		})
		summary.GrandTotal = summary.GrandTotal.Add(subtotal)
	}
	return summary, nil
}

// AccountStatement replays one account's posted lines in (entry_date,
// journal_number) order to produce a running balance.
func (s *reportingService) AccountStatement(ctx context.Context, workplaceID, accountID string, from, to time.Time) (*domain.AccountStatement, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		return nil, err
	}

	openDebit, openCredit, err := s.reportingRepo.GetAccountTotalsBefore(ctx, workplaceID, accountID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", accountID))
		return nil, err
	}
	opening, err := accounting.NetBalance(openDebit, openCredit, account.AccountType)
	if err != nil {
		return nil, err
	}

	ledgerLines, err := s.ledgerRepo.LinesForAccount(ctx, workplaceID, accountID, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account lines", slog.String("account_id", accountID))
		return nil, err
	}

	statement := &domain.AccountStatement{
		AccountID:      account.AccountID,
		Code:           account.Code,
		Name:           account.Name,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
		Lines:          make([]domain.StatementLine, 0, len(ledgerLines)),
	}

	running := opening
	for _, line := range ledgerLines {
		effect, err := accounting.SignedEffect(line.JournalLine, account.AccountType)
		if err != nil {
			return nil, err
		}
		running = running.Add(effect)
		statement.Lines = append(statement.Lines, domain.StatementLine{
			LedgerLine: line,
			Effect:     effect,
			Balance:    running,
		})
	}
	statement.ClosingBalance = running
	return statement, nil
}

// CashFlow partitions the period's cash movement into operating, investing
// and financing buckets. Each cash-touching entry's net cash delta is
// apportioned across the categories of its non-cash counter-lines by their
// amount share, so the three buckets always sum exactly to the net cash flow.
func (s *reportingService) CashFlow(ctx context.Context, workplaceID string, from, to time.Time) (*domain.CashFlowStatement, error) {
	beginDebit, beginCredit, err := s.reportingRepo.GetCashTotalsBefore(ctx, workplaceID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute beginning cash", slog.String("workplace_id", workplaceID))
		return nil, err
	}
	// Cash accounts are assets, so their balance is debit minus credit.
	beginningCash := beginDebit.Sub(beginCredit)

	entries, err := s.reportingRepo.GetCashTouchingEntries(ctx, workplaceID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cash-touching entries", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	accountsByID, err := s.accountsForEntries(ctx, workplaceID, entries)
	if err != nil {
		return nil, err
	}

	buckets := map[domain.CashFlowCategory]decimal.Decimal{
		domain.Operating: decimal.Zero,
		domain.Investing: decimal.Zero,
		domain.Financing: decimal.Zero,
	}

	for _, entry := range entries {
		cashDelta := decimal.Zero
		counterByCategory := make(map[domain.CashFlowCategory]decimal.Decimal)
		counterTotal := decimal.Zero

		for _, line := range entry.Lines {
			account, ok := accountsByID[line.AccountID]
			if !ok {
				return nil, fmt.Errorf("account %s referenced by entry %s not found", line.AccountID, entry.EntryID)
			}
			if account.IsCash {
				cashDelta = cashDelta.Add(line.Debit.Sub(line.Credit))
				continue
			}
			amount := accounting.LineAmount(line)
			counterByCategory[account.CashFlowCategory] = counterByCategory[account.CashFlowCategory].Add(amount)
			counterTotal = counterTotal.Add(amount)
		}

		// Cash-to-cash transfers have no counter-lines and net to zero.
		if cashDelta.IsZero() || counterTotal.IsZero() {
			continue
		}

		// The last bucket receives the rounding remainder so the apportioned
		// pieces reassemble to the exact entry delta.
		lastCategory := domain.CashFlowCategory("")
		for _, category := range domain.CashFlowCategoryOrder {
			if counterByCategory[category].IsPositive() {
				lastCategory = category
			}
		}
		assigned := decimal.Zero
		for _, category := range domain.CashFlowCategoryOrder {
			weight := counterByCategory[category]
			if !weight.IsPositive() {
				continue
			}
			var portion decimal.Decimal
			if category == lastCategory {
				portion = cashDelta.Sub(assigned)
			} else {
				portion = cashDelta.Mul(weight).Div(counterTotal).Round(2)
				assigned = assigned.Add(portion)
			}
			buckets[category] = buckets[category].Add(portion)
		}
	}

	netCashFlow := buckets[domain.Operating].Add(buckets[domain.Investing]).Add(buckets[domain.Financing])
	return &domain.CashFlowStatement{
		FromDate:      from,
		ToDate:        to,
		Operating:     buckets[domain.Operating],
		Investing:     buckets[domain.Investing],
		Financing:     buckets[domain.Financing],
		BeginningCash: beginningCash,
		NetCashFlow:   netCashFlow,
		EndingCash:    beginningCash.Add(netCashFlow),
	}, nil
}

// ExpenseReport ranks expense accounts by net spend over the period.
func (s *reportingService) ExpenseReport(ctx context.Context, workplaceID string, from, to time.Time) (*domain.ExpenseReport, error) {
	totals, err := s.reportingRepo.GetExpenseTotals(ctx, workplaceID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense totals", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	report := &domain.ExpenseReport{
		FromDate:      from,
		ToDate:        to,
		TotalExpenses: decimal.Zero,
		Rows:          make([]domain.ExpenseRow, 0, len(totals)),
	}

	for _, row := range totals {
		// Expense accounts are debit-normal.
		amount := row.TotalDebit.Sub(row.TotalCredit)
		if amount.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, domain.ExpenseRow{
			AccountID: row.AccountID,
			Code:      row.Code,
			Name:      row.Name,
			Amount:    amount,
		})
		report.TotalExpenses = report.TotalExpenses.Add(amount)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if !report.Rows[i].Amount.Equal(report.Rows[j].Amount) {
			return report.Rows[i].Amount.GreaterThan(report.Rows[j].Amount)
		}
		return report.Rows[i].Code < report.Rows[j].Code
	})

	for i := range report.Rows {
		if report.TotalExpenses.IsZero() {
			report.Rows[i].Percentage = decimal.Zero
			continue
		}
		report.Rows[i].Percentage = report.Rows[i].Amount.Div(report.TotalExpenses).Mul(oneHundred).Round(2)
	}
	return report, nil
}

// ListEntries returns a paginated chronological listing of journal entries.
func (s *reportingService) ListEntries(ctx context.Context, workplaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, workplaceID, params.FromDate, params.ToDate, params.Status, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("workplace_id", workplaceID))
		return nil, err
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *reportingService) accountsForEntries(ctx context.Context, workplaceID string, entries []domain.JournalEntry) (map[string]domain.Account, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if _, ok := seen[line.AccountID]; !ok {
				seen[line.AccountID] = struct{}{}
				ids = append(ids, line.AccountID)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}
	return s.accountSvc.GetAccountsByIDs(ctx, workplaceID, ids)
}
