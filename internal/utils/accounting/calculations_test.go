package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/generalbooks/general_ledger_app/internal/utils/accounting"
)

func TestNormalSideFor(t *testing.T) {
	testCases := []struct {
		accountType domain.AccountType
		expected    accounting.NormalSide
	}{
		{domain.Asset, accounting.DebitNormal},
		{domain.Expense, accounting.DebitNormal},
		{domain.Liability, accounting.CreditNormal},
		{domain.Equity, accounting.CreditNormal},
		{domain.Revenue, accounting.CreditNormal},
	}
	for _, tc := range testCases {
		side, err := accounting.NormalSideFor(tc.accountType)
		require.NoError(t, err, "account type %s", tc.accountType)
		assert.Equal(t, tc.expected, side, "account type %s", tc.accountType)
	}
}

func TestNormalSideFor_UnknownType(t *testing.T) {
	_, err := accounting.NormalSideFor(domain.AccountType("GOODWILL"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestSignedEffect_DebitNormal(t *testing.T) {
	debitLine := domain.JournalLine{AccountID: "a1", Debit: decimal.NewFromInt(100)}
	creditLine := domain.JournalLine{AccountID: "a1", Credit: decimal.NewFromInt(40)}

	effect, err := accounting.SignedEffect(debitLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, effect.Equal(decimal.NewFromInt(100)))

	effect, err = accounting.SignedEffect(creditLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, effect.Equal(decimal.NewFromInt(-40)))
}

func TestSignedEffect_CreditNormal(t *testing.T) {
	debitLine := domain.JournalLine{AccountID: "r1", Debit: decimal.NewFromInt(100)}
	creditLine := domain.JournalLine{AccountID: "r1", Credit: decimal.NewFromInt(40)}

	effect, err := accounting.SignedEffect(debitLine, domain.Revenue)
	require.NoError(t, err)
	assert.True(t, effect.Equal(decimal.NewFromInt(-100)))

	effect, err = accounting.SignedEffect(creditLine, domain.Revenue)
	require.NoError(t, err)
	assert.True(t, effect.Equal(decimal.NewFromInt(40)))
}

func TestSignedEffect_UnknownTypeNamesAccount(t *testing.T) {
	line := domain.JournalLine{AccountID: "acc-9", Debit: decimal.NewFromInt(1)}
	_, err := accounting.SignedEffect(line, domain.AccountType(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acc-9")
}

func TestNetBalance(t *testing.T) {
	debit := decimal.NewFromInt(900)
	credit := decimal.NewFromInt(250)

	net, err := accounting.NetBalance(debit, credit, domain.Asset)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.NewFromInt(650)))

	net, err = accounting.NetBalance(debit, credit, domain.Liability)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.NewFromInt(-650)))
}

func TestLineAmount(t *testing.T) {
	debitLine := domain.JournalLine{Debit: decimal.NewFromInt(75)}
	creditLine := domain.JournalLine{Credit: decimal.NewFromInt(30)}

	assert.True(t, accounting.LineAmount(debitLine).Equal(decimal.NewFromInt(75)))
	assert.True(t, accounting.LineAmount(creditLine).Equal(decimal.NewFromInt(30)))
}
