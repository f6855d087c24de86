package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts row as stored.
// Note: ParentAccountID uses string for the nullable foreign key.
type Account struct {
	AccountID        string `db:"account_id"`
	WorkplaceID      string `db:"workplace_id"`
	Code             string `db:"code"`
	Name             string `db:"name"`
	AccountType      AccountType `db:"account_type"`
	ParentAccountID  string `db:"parent_account_id"` // Nullable
	Description      string `db:"description"`
	IsActive         bool   `db:"is_active"`
	IsCash           bool   `db:"is_cash"`
	CashFlowCategory string `db:"cash_flow_category"`
	AuditFields
}
