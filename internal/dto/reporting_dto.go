package dto

import (
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceRowResponse is one account's row in the balance summary.
type AccountBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

// AccountBalanceGroupResponse groups rows by account type with a subtotal.
type AccountBalanceGroupResponse struct {
	AccountType domain.AccountType          `json:"accountType"`
	Accounts    []AccountBalanceRowResponse `json:"accounts"`
	Subtotal    decimal.Decimal             `json:"subtotal"`
}

// AccountBalanceSummaryResponse is the grouped balance report.
type AccountBalanceSummaryResponse struct {
	AsOf       string                        `json:"asOf"`
	Groups     []AccountBalanceGroupResponse `json:"groups"`
	GrandTotal decimal.Decimal               `json:"grandTotal"`
}

// StatementLineResponse is one annotated transaction in an account statement.
type StatementLineResponse struct {
	EntryDate        string          `json:"entryDate"`
	JournalNumber    int64           `json:"journalNumber"`
	ReferenceType    string          `json:"referenceType,omitempty"`
	EntryDescription string          `json:"entryDescription"`
	LineDescription  string          `json:"lineDescription,omitempty"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Balance          decimal.Decimal `json:"balance"`
}

// AccountStatementResponse is the per-account activity report.
type AccountStatementResponse struct {
	AccountID      string                  `json:"accountID"`
	Code           string                  `json:"code"`
	Name           string                  `json:"name"`
	FromDate       string                  `json:"fromDate"`
	ToDate         string                  `json:"toDate"`
	OpeningBalance decimal.Decimal         `json:"openingBalance"`
	Transactions   []StatementLineResponse `json:"transactions"`
	ClosingBalance decimal.Decimal         `json:"closingBalance"`
}

// CashFlowResponse carries the four cash flow figures plus the bucket split.
type CashFlowResponse struct {
	FromDate      string          `json:"fromDate"`
	ToDate        string          `json:"toDate"`
	Operating     decimal.Decimal `json:"operating"`
	Investing     decimal.Decimal `json:"investing"`
	Financing     decimal.Decimal `json:"financing"`
	BeginningCash decimal.Decimal `json:"beginningCash"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
	EndingCash    decimal.Decimal `json:"endingCash"`
}

// ExpenseRowResponse is one ranked expense account.
type ExpenseRowResponse struct {
	AccountID  string          `json:"accountID"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ExpenseReportResponse ranks expense accounts over a period.
type ExpenseReportResponse struct {
	FromDate      string               `json:"fromDate"`
	ToDate        string               `json:"toDate"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	Expenses      []ExpenseRowResponse `json:"expenses"`
}

const reportDateFormat = "2006-01-02"

// ToAccountBalanceSummaryResponse converts the domain report to its response form.
func ToAccountBalanceSummaryResponse(s *domain.AccountBalanceSummary) AccountBalanceSummaryResponse {
	groups := make([]AccountBalanceGroupResponse, len(s.Groups))
	for i, g := range s.Groups {
		rows := make([]AccountBalanceRowResponse, len(g.Accounts))
		for j, r := range g.Accounts {
			rows[j] = AccountBalanceRowResponse{
				AccountID:   r.AccountID,
				Code:        r.Code,
				Name:        r.Name,
				TotalDebit:  r.TotalDebit,
				TotalCredit: r.TotalCredit,
				NetBalance:  r.NetBalance,
			}
		}
		groups[i] = AccountBalanceGroupResponse{
			AccountType: g.AccountType,
			Accounts:    rows,
			Subtotal:    g.Subtotal,
		}
	}
	return AccountBalanceSummaryResponse{
		AsOf:       s.AsOf.Format(reportDateFormat),
		Groups:     groups,
		GrandTotal: s.GrandTotal,
	}
}

// ToAccountStatementResponse converts the domain statement to its response form.
func ToAccountStatementResponse(s *domain.AccountStatement) AccountStatementResponse {
	txns := make([]StatementLineResponse, len(s.Lines))
	for i, line := range s.Lines {
		txns[i] = StatementLineResponse{
			EntryDate:        line.EntryDate.Format(reportDateFormat),
			JournalNumber:    line.JournalNumber,
			ReferenceType:    line.ReferenceType,
			EntryDescription: line.EntryDescription,
			LineDescription:  line.Description,
			Debit:            line.Debit,
			Credit:           line.Credit,
			Balance:          line.Balance,
		}
	}
	return AccountStatementResponse{
		AccountID:      s.AccountID,
		Code:           s.Code,
		Name:           s.Name,
		FromDate:       s.FromDate.Format(reportDateFormat),
		ToDate:         s.ToDate.Format(reportDateFormat),
		OpeningBalance: s.OpeningBalance,
		Transactions:   txns,
		ClosingBalance: s.ClosingBalance,
	}
}

// ToCashFlowResponse converts the domain statement to its response form.
func ToCashFlowResponse(s *domain.CashFlowStatement) CashFlowResponse {
	return CashFlowResponse{
		FromDate:      s.FromDate.Format(reportDateFormat),
		ToDate:        s.ToDate.Format(reportDateFormat),
		Operating:     s.Operating,
		Investing:     s.Investing,
		Financing:     s.Financing,
		BeginningCash: s.BeginningCash,
		NetCashFlow:   s.NetCashFlow,
		EndingCash:    s.EndingCash,
	}
}

// ToExpenseReportResponse converts the domain report to its response form.
func ToExpenseReportResponse(r *domain.ExpenseReport) ExpenseReportResponse {
	rows := make([]ExpenseRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = ExpenseRowResponse{
			AccountID:  row.AccountID,
			Code:       row.Code,
			Name:       row.Name,
			Amount:     row.Amount,
			Percentage: row.Percentage,
		}
	}
	return ExpenseReportResponse{
		FromDate:      r.FromDate.Format(reportDateFormat),
		ToDate:        r.ToDate.Format(reportDateFormat),
		TotalExpenses: r.TotalExpenses,
		Expenses:      rows,
	}
}
