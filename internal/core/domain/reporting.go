package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a posted journal line annotated with its entry's metadata.
// The (EntryDate, JournalNumber) pair is the authoritative chronological
// ordering for running balance computation.
type LedgerLine struct {
	JournalLine
	EntryDate        time.Time `json:"entryDate"`
	JournalNumber    int64     `json:"journalNumber"`
	ReferenceType    string    `json:"referenceType"`
	EntryDescription string    `json:"entryDescription"`
}

// AccountBalanceRow represents a single account's totals in the balance summary.
type AccountBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetBalance  decimal.Decimal `json:"netBalance"` // Net on the account's normal balance side
}

// AccountBalanceGroup groups balance rows by account type with a subtotal.
type AccountBalanceGroup struct {
	AccountType AccountType         `json:"accountType"`
	Accounts    []AccountBalanceRow `json:"accounts"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
}

// AccountBalanceSummary is the grouped balance report as of a point in time.
type AccountBalanceSummary struct {
	AsOf       time.Time             `json:"asOf"`
	Groups     []AccountBalanceGroup `json:"groups"`
	GrandTotal decimal.Decimal       `json:"grandTotal"`
}

// StatementLine is a ledger line annotated with its signed effect and the
// running balance after applying it.
type StatementLine struct {
	LedgerLine
	Effect  decimal.Decimal `json:"effect"`  // Signed per the account's normal balance side
	Balance decimal.Decimal `json:"balance"` // Running balance after this line
}

// AccountStatement is the per-account activity report over a date range.
type AccountStatement struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	FromDate       time.Time       `json:"fromDate"`
	ToDate         time.Time       `json:"toDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// CashFlowStatement partitions cash movement in a period into the three
// standard buckets.
type CashFlowStatement struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Operating     decimal.Decimal `json:"operating"`
	Investing     decimal.Decimal `json:"investing"`
	Financing     decimal.Decimal `json:"financing"`
	BeginningCash decimal.Decimal `json:"beginningCash"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
	EndingCash    decimal.Decimal `json:"endingCash"`
}

// ExpenseRow is one ranked row of the expense report.
type ExpenseRow struct {
	AccountID  string          `json:"accountID"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"` // Share of total expenses; 0 when the total is 0
}

// ExpenseReport ranks expense accounts by spend over a date range.
type ExpenseReport struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Rows          []ExpenseRow    `json:"rows"`
}
