package accounting

import (
	"fmt"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalSide is the side on which a given account type naturally increases.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// NormalSideFor returns the normal balance side for an account type.
// This mapping is fixed and drives every balance computation:
// ASSET/EXPENSE increase on debit; LIABILITY/EQUITY/REVENUE increase on credit.
func NormalSideFor(accountType domain.AccountType) (NormalSide, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return DebitNormal, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return CreditNormal, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedEffect applies the normal-balance-side rule to a journal line.
// For debit-normal accounts the effect is debit - credit; for credit-normal
// accounts it is credit - debit. This is used in both services and
// repositories to keep balance arithmetic consistent everywhere.
func SignedEffect(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	side, err := NormalSideFor(accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w for account ID %s", err, line.AccountID)
	}
	if side == DebitNormal {
		return line.Debit.Sub(line.Credit), nil
	}
	return line.Credit.Sub(line.Debit), nil
}

// NetBalance computes an account's net balance from its debit and credit
// totals using the normal-balance-side rule.
func NetBalance(totalDebit, totalCredit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	side, err := NormalSideFor(accountType)
	if err != nil {
		return decimal.Zero, err
	}
	if side == DebitNormal {
		return totalDebit.Sub(totalCredit), nil
	}
	return totalCredit.Sub(totalDebit), nil
}

// LineAmount returns the magnitude of a line (whichever side is nonzero).
func LineAmount(line domain.JournalLine) decimal.Decimal {
	if line.Debit.IsZero() {
		return line.Credit
	}
	return line.Debit
}
