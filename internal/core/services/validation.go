package services

import (
	"fmt"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateEntry checks a proposed journal entry's structure and balance
// against the chart of accounts. It is a pure function: it mutates nothing
// and is safe to call repeatedly, e.g. for a draft shown in an edit screen.
//
// accountsByID must contain the accounts referenced by the entry's lines;
// missing IDs are reported as violations, not errors.
func ValidateEntry(entry domain.JournalEntry, accountsByID map[string]domain.Account) domain.ValidationResult {
	result := domain.ValidationResult{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	if len(entry.Lines) < 2 {
		result.Violations = append(result.Violations, domain.Violation{
			Field:   "lines",
			Message: "a balanced entry requires at least two lines",
		})
	}

	distinctAccounts := make(map[string]struct{}, len(entry.Lines))
	for i, line := range entry.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		distinctAccounts[line.AccountID] = struct{}{}

		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			result.Violations = append(result.Violations, domain.Violation{
				Field:   field,
				Message: "debit and credit must not be negative",
			})
			continue
		}
		// Storage is NUMERIC(19,4); finer amounts would be silently rounded
		// on insert, so an entry balanced at full precision could be stored
		// unbalanced. Reject them before they reach the ledger.
		if !line.Debit.Equal(line.Debit.Round(4)) || !line.Credit.Equal(line.Credit.Round(4)) {
			result.Violations = append(result.Violations, domain.Violation{
				Field:   field,
				Message: "debit and credit must have at most 4 decimal places",
			})
			continue
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			// Both zero or both nonzero; a line is either a debit or a
			// credit, never both, never neither.
			result.Violations = append(result.Violations, domain.Violation{
				Field:   field,
				Message: "exactly one of debit and credit must be nonzero",
			})
			continue
		}

		account, found := accountsByID[line.AccountID]
		if !found {
			result.Violations = append(result.Violations, domain.Violation{
				Field:   field + ".accountID",
				Message: fmt.Sprintf("unknown account %s", line.AccountID),
			})
		} else if !account.IsActive {
			result.Violations = append(result.Violations, domain.Violation{
				Field:   field + ".accountID",
				Message: fmt.Sprintf("account %s (%s) is inactive", account.Code, account.Name),
			})
		}

		result.TotalDebit = result.TotalDebit.Add(line.Debit)
		result.TotalCredit = result.TotalCredit.Add(line.Credit)
	}

	if len(entry.Lines) >= 2 && len(distinctAccounts) < 2 {
		result.Violations = append(result.Violations, domain.Violation{
			Field:   "lines",
			Message: "entry must touch at least two different accounts",
		})
	}

	// Exact decimal comparison; floating point would produce rounding-induced
	// false imbalance over many lines.
	result.IsBalanced = result.TotalDebit.Equal(result.TotalCredit)

	return result
}
