package domain

import "github.com/shopspring/decimal"

// Violation describes a single field-level validation problem.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a proposed journal entry.
// It carries the computed totals so callers can show the user exactly how
// far off balance the entry is. Producing it has no side effects.
type ValidationResult struct {
	IsBalanced  bool            `json:"isBalanced"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Violations  []Violation     `json:"violations"`
}

// Valid reports whether the entry may transition to POSTED.
func (r ValidationResult) Valid() bool {
	return r.IsBalanced && len(r.Violations) == 0
}
