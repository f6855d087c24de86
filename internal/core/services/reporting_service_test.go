package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/core/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountBalances(ctx context.Context, workplaceID string, asOf time.Time, accountType *domain.AccountType) ([]domain.AccountBalanceRow, error) {
	args := m.Called(ctx, workplaceID, asOf, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountTotalsBefore(ctx context.Context, workplaceID, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, workplaceID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetCashTotalsBefore(ctx context.Context, workplaceID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, workplaceID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetExpenseTotals(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.AccountBalanceRow, error) {
	args := m.Called(ctx, workplaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetCashTouchingEntries(ctx context.Context, workplaceID string, from, to time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockLedgerRepo    *MockLedgerRepository
	mockAccountSvc    *MockAccountService
	service           portssvc.ReportingSvcFacade
	workplaceID       string
	from              time.Time
	to                time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockLedgerRepo, suite.mockAccountSvc)

	suite.workplaceID = uuid.NewString()
	suite.from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// --- Balance Summary ---

func (suite *ReportingServiceTestSuite) TestAccountBalanceSummary_GroupsAndTotals() {
	ctx := context.Background()
	asOf := suite.to

	rows := []domain.AccountBalanceRow{
		{AccountID: "a1", Code: "1000", Name: "Cash", AccountType: domain.Asset, TotalDebit: d("900"), TotalCredit: d("400")},
		{AccountID: "a2", Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset, TotalDebit: d("100"), TotalCredit: d("100")},
		{AccountID: "r1", Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: d("500")},
	}
	suite.mockReportingRepo.On("GetAccountBalances", ctx, suite.workplaceID, asOf, (*domain.AccountType)(nil)).
		Return(rows, nil).Once()

	summary, err := suite.service.AccountBalanceSummary(ctx, suite.workplaceID, asOf, nil, false)

	suite.Require().NoError(err)
	// The zero-balance receivable is dropped, leaving one row per group.
	suite.Require().Len(summary.Groups, 2)

	assets := summary.Groups[0]
	suite.Equal(domain.Asset, assets.AccountType)
	suite.Require().Len(assets.Accounts, 1)
	suite.True(assets.Accounts[0].NetBalance.Equal(d("500")))
	suite.True(assets.Subtotal.Equal(d("500")))

	revenue := summary.Groups[1]
	suite.Equal(domain.Revenue, revenue.AccountType)
	suite.True(revenue.Subtotal.Equal(d("500")))

	suite.True(summary.GrandTotal.Equal(d("1000")))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalanceSummary_ShowZeroBalances() {
	ctx := context.Background()
	asOf := suite.to

	rows := []domain.AccountBalanceRow{
		{AccountID: "a2", Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset, TotalDebit: d("100"), TotalCredit: d("100")},
	}
	suite.mockReportingRepo.On("GetAccountBalances", ctx, suite.workplaceID, asOf, (*domain.AccountType)(nil)).
		Return(rows, nil).Once()

	summary, err := suite.service.AccountBalanceSummary(ctx, suite.workplaceID, asOf, nil, true)

	suite.Require().NoError(err)
	suite.Require().Len(summary.Groups, 1)
	suite.Require().Len(summary.Groups[0].Accounts, 1)
	suite.True(summary.Groups[0].Accounts[0].NetBalance.IsZero())
	suite.True(summary.GrandTotal.IsZero())
}

// --- Account Statement ---

func (suite *ReportingServiceTestSuite) TestAccountStatement_RunningBalance() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: suite.workplaceID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
		IsCash:      true,
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.workplaceID, account.AccountID).
		Return(account, nil).Once()
	// Activity before the window: 1000 debit, 250 credit -> opening 750
	suite.mockReportingRepo.On("GetAccountTotalsBefore", ctx, suite.workplaceID, account.AccountID, suite.from).
		Return(d("1000"), d("250"), nil).Once()

	lines := []domain.LedgerLine{
		{
			JournalLine:   domain.JournalLine{LineID: uuid.NewString(), AccountID: account.AccountID, Debit: d("300")},
			EntryDate:     suite.from.AddDate(0, 0, 2),
			JournalNumber: 4,
		},
		{
			JournalLine:   domain.JournalLine{LineID: uuid.NewString(), AccountID: account.AccountID, Credit: d("120")},
			EntryDate:     suite.from.AddDate(0, 0, 9),
			JournalNumber: 7,
		},
	}
	suite.mockLedgerRepo.On("LinesForAccount", ctx, suite.workplaceID, account.AccountID, &suite.from, &suite.to).
		Return(lines, nil).Once()

	statement, err := suite.service.AccountStatement(ctx, suite.workplaceID, account.AccountID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(d("750")))
	suite.Require().Len(statement.Lines, 2)
	// Debit-normal account: a debit raises the balance, a credit lowers it.
	suite.True(statement.Lines[0].Effect.Equal(d("300")))
	suite.True(statement.Lines[0].Balance.Equal(d("1050")))
	suite.True(statement.Lines[1].Effect.Equal(d("-120")))
	suite.True(statement.Lines[1].Balance.Equal(d("930")))
	suite.True(statement.ClosingBalance.Equal(d("930")))
}

// --- Cash Flow ---

func (suite *ReportingServiceTestSuite) cashFlowAccounts() (cash, revenue, equipment, equity domain.Account) {
	cash = domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true, IsCash: true}
	revenue = domain.Account{AccountID: uuid.NewString(), Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue, IsActive: true, CashFlowCategory: domain.Operating}
	equipment = domain.Account{AccountID: uuid.NewString(), Code: "1500", Name: "Equipment", AccountType: domain.Asset, IsActive: true, CashFlowCategory: domain.Investing}
	equity = domain.Account{AccountID: uuid.NewString(), Code: "3000", Name: "Owner Equity", AccountType: domain.Equity, IsActive: true, CashFlowCategory: domain.Financing}
	return
}

func (suite *ReportingServiceTestSuite) TestCashFlow_BucketsAndEndingCash() {
	ctx := context.Background()
	cash, revenue, equipment, _ := suite.cashFlowAccounts()

	suite.mockReportingRepo.On("GetCashTotalsBefore", ctx, suite.workplaceID, suite.from).
		Return(d("2000"), d("500"), nil).Once()

	// Entry 1: cash sale, 600 in -> OPERATING +600
	// Entry 2: equipment purchase, 450 out -> INVESTING -450
	entries := []domain.JournalEntry{
		{
			EntryID: "e1", WorkplaceID: suite.workplaceID, Status: domain.Posted, JournalNumber: 1,
			Lines: []domain.JournalLine{
				{AccountID: cash.AccountID, Debit: d("600")},
				{AccountID: revenue.AccountID, Credit: d("600")},
			},
		},
		{
			EntryID: "e2", WorkplaceID: suite.workplaceID, Status: domain.Posted, JournalNumber: 2,
			Lines: []domain.JournalLine{
				{AccountID: equipment.AccountID, Debit: d("450")},
				{AccountID: cash.AccountID, Credit: d("450")},
			},
		},
	}
	suite.mockReportingRepo.On("GetCashTouchingEntries", ctx, suite.workplaceID, suite.from, suite.to).
		Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.workplaceID, mock.Anything).
		Return(map[string]domain.Account{
			cash.AccountID:      cash,
			revenue.AccountID:   revenue,
			equipment.AccountID: equipment,
		}, nil).Once()

	statement, err := suite.service.CashFlow(ctx, suite.workplaceID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(statement.BeginningCash.Equal(d("1500")))
	suite.True(statement.Operating.Equal(d("600")))
	suite.True(statement.Investing.Equal(d("-450")))
	suite.True(statement.Financing.IsZero())
	suite.True(statement.NetCashFlow.Equal(d("150")))
	suite.True(statement.EndingCash.Equal(d("1650")))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_SplitEntryApportionsExactly() {
	ctx := context.Background()
	cash, revenue, _, equity := suite.cashFlowAccounts()

	suite.mockReportingRepo.On("GetCashTotalsBefore", ctx, suite.workplaceID, suite.from).
		Return(decimal.Zero, decimal.Zero, nil).Once()

	// One entry receives 100 cash against a 1/3 vs 2/3 split of counter-lines
	// spanning two categories. The buckets must sum exactly to 100 despite the
	// rounding of the thirds.
	entries := []domain.JournalEntry{
		{
			EntryID: "e1", WorkplaceID: suite.workplaceID, Status: domain.Posted, JournalNumber: 1,
			Lines: []domain.JournalLine{
				{AccountID: cash.AccountID, Debit: d("100")},
				{AccountID: revenue.AccountID, Credit: d("33.34")},
				{AccountID: equity.AccountID, Credit: d("66.66")},
			},
		},
	}
	suite.mockReportingRepo.On("GetCashTouchingEntries", ctx, suite.workplaceID, suite.from, suite.to).
		Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.workplaceID, mock.Anything).
		Return(map[string]domain.Account{
			cash.AccountID:    cash,
			revenue.AccountID: revenue,
			equity.AccountID:  equity,
		}, nil).Once()

	statement, err := suite.service.CashFlow(ctx, suite.workplaceID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(statement.Operating.Equal(d("33.34")))
	suite.True(statement.Financing.Equal(d("66.66")))
	suite.True(statement.Operating.Add(statement.Investing).Add(statement.Financing).Equal(d("100")))
	suite.True(statement.NetCashFlow.Equal(d("100")))
	suite.True(statement.EndingCash.Equal(d("100")))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_ReversalCancelsOriginal() {
	ctx := context.Background()
	cash, revenue, _, _ := suite.cashFlowAccounts()

	suite.mockReportingRepo.On("GetCashTotalsBefore", ctx, suite.workplaceID, suite.from).
		Return(decimal.Zero, decimal.Zero, nil).Once()

	originalID := "e1"
	entries := []domain.JournalEntry{
		{
			EntryID: originalID, WorkplaceID: suite.workplaceID, Status: domain.Reversed, JournalNumber: 1,
			Lines: []domain.JournalLine{
				{AccountID: cash.AccountID, Debit: d("250")},
				{AccountID: revenue.AccountID, Credit: d("250")},
			},
		},
		{
			EntryID: "e2", WorkplaceID: suite.workplaceID, Status: domain.Posted, JournalNumber: 2,
			OriginalEntryID: &originalID,
			Lines: []domain.JournalLine{
				{AccountID: cash.AccountID, Credit: d("250")},
				{AccountID: revenue.AccountID, Debit: d("250")},
			},
		},
	}
	suite.mockReportingRepo.On("GetCashTouchingEntries", ctx, suite.workplaceID, suite.from, suite.to).
		Return(entries, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.workplaceID, mock.Anything).
		Return(map[string]domain.Account{
			cash.AccountID:    cash,
			revenue.AccountID: revenue,
		}, nil).Once()

	statement, err := suite.service.CashFlow(ctx, suite.workplaceID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(statement.Operating.IsZero())
	suite.True(statement.NetCashFlow.IsZero())
	suite.True(statement.EndingCash.IsZero())
}

// --- Expense Report ---

func (suite *ReportingServiceTestSuite) TestExpenseReport_RanksAndPercentages() {
	ctx := context.Background()

	totals := []domain.AccountBalanceRow{
		{AccountID: "x1", Code: "5000", Name: "Rent Expense", AccountType: domain.Expense, TotalDebit: d("300"), TotalCredit: decimal.Zero},
		{AccountID: "x2", Code: "5100", Name: "Utilities Expense", AccountType: domain.Expense, TotalDebit: d("700"), TotalCredit: decimal.Zero},
		{AccountID: "x3", Code: "5200", Name: "Office Supplies", AccountType: domain.Expense, TotalDebit: d("50"), TotalCredit: d("50")},
	}
	suite.mockReportingRepo.On("GetExpenseTotals", ctx, suite.workplaceID, suite.from, suite.to).
		Return(totals, nil).Once()

	report, err := suite.service.ExpenseReport(ctx, suite.workplaceID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalExpenses.Equal(d("1000")))
	// Fully refunded supplies drop out; remainder ranked by amount descending.
	suite.Require().Len(report.Rows, 2)
	suite.Equal("5100", report.Rows[0].Code)
	suite.True(report.Rows[0].Amount.Equal(d("700")))
	suite.True(report.Rows[0].Percentage.Equal(d("70")))
	suite.Equal("5000", report.Rows[1].Code)
	suite.True(report.Rows[1].Percentage.Equal(d("30")))
}

func (suite *ReportingServiceTestSuite) TestExpenseReport_Empty() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetExpenseTotals", ctx, suite.workplaceID, suite.from, suite.to).
		Return([]domain.AccountBalanceRow{}, nil).Once()

	report, err := suite.service.ExpenseReport(ctx, suite.workplaceID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalExpenses.IsZero())
	suite.Empty(report.Rows)
}

// --- List Entries ---

func (suite *ReportingServiceTestSuite) TestListEntries_MapsAndPaginates() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entries := []domain.JournalEntry{
		{
			EntryID:       entryID,
			WorkplaceID:   suite.workplaceID,
			JournalNumber: 3,
			EntryDate:     suite.from.AddDate(0, 0, 5),
			Description:   "Cash sale",
			Status:        domain.Posted,
			Lines: []domain.JournalLine{
				{LineID: uuid.NewString(), EntryID: entryID, AccountID: "a1", Debit: d("80")},
				{LineID: uuid.NewString(), EntryID: entryID, AccountID: "a2", Credit: d("80")},
			},
		},
	}
	params := dto.ListEntriesParams{FromDate: suite.from, ToDate: suite.to, Limit: 1}

	suite.mockLedgerRepo.On("ListEntries", ctx, suite.workplaceID, suite.from, suite.to,
		(*domain.EntryStatus)(nil), 1, (*string)(nil)).
		Return(entries, "token123", nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.workplaceID, params)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(entryID, resp.Entries[0].EntryID)
	suite.True(resp.Entries[0].IsBalanced)
	suite.True(resp.Entries[0].TotalDebit.Equal(d("80")))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token123", *resp.NextToken)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
