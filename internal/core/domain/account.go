package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypeOrder is the canonical display order used by grouped reports.
var AccountTypeOrder = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether the account type is one of the five known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// CashFlowCategory classifies an account's activity for the cash flow statement.
// The mapping is configured per account alongside the chart of accounts rather
// than inferred from free-form tags.
type CashFlowCategory string

const (
	Operating CashFlowCategory = "OPERATING"
	Investing CashFlowCategory = "INVESTING"
	Financing CashFlowCategory = "FINANCING"
)

// CashFlowCategoryOrder is the canonical bucket order for the cash flow statement.
var CashFlowCategoryOrder = []CashFlowCategory{Operating, Investing, Financing}

// IsValid reports whether the category is one of the three known buckets.
func (c CashFlowCategory) IsValid() bool {
	switch c {
	case Operating, Investing, Financing:
		return true
	}
	return false
}

// Account represents a ledger account within the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID        string           `json:"accountID"`        // Primary Key (UUID)
	WorkplaceID      string           `json:"workplaceID"`      // Tenant scope (NOT NULL)
	Code             string           `json:"code"`             // Human-sortable code, unique per workplace (e.g. 1010)
	Name             string           `json:"name"`             // User-defined name
	AccountType      AccountType      `json:"accountType"`      // ASSET, LIABILITY, etc.
	ParentAccountID  string           `json:"parentAccountID"`  // Nullable FK -> accounts.account_id (sub-account rollups)
	Description      string           `json:"description"`      // Nullable user description
	IsActive         bool             `json:"isActive"`         // Soft-deactivate flag; accounts referenced by postings are never deleted
	IsCash           bool             `json:"isCash"`           // Cash/bank designation used by the cash flow statement
	CashFlowCategory CashFlowCategory `json:"cashFlowCategory"` // Bucket this account's counter-activity belongs to
	AuditFields
}
