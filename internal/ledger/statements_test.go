package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totals(code, name string, nature Nature, debit, credit string) AccountTotals {
	return AccountTotals{
		Account:   Account{Code: code, Name: name, Nature: nature},
		SumDebit:  dec(debit),
		SumCredit: dec(credit),
	}
}

func TestNetBalance_RespectsNature(t *testing.T) {
	debitNormal := totals("1.1.01", "Caja", NatureDebit, "300.00", "120.00")
	assert.True(t, debitNormal.NetBalance().Equal(dec("180.00")))

	creditNormal := totals("2.1.01", "Proveedores", NatureCredit, "300.00", "120.00")
	assert.True(t, creditNormal.NetBalance().Equal(dec("-180.00")))
}

func TestSumBalances_ZeroActivityContributesZero(t *testing.T) {
	group := []AccountTotals{
		totals("1.1.01", "Caja", NatureDebit, "500.00", "200.00"),
		totals("1.1.02", "Bancos", NatureDebit, "0", "0"),
		totals("1.1.03", "CxC", NatureDebit, "100.00", "0"),
	}
	assert.True(t, SumBalances(group).Equal(dec("400.00")))
}

func TestBuildTrialBalance(t *testing.T) {
	tb := BuildTrialBalance([]AccountTotals{
		totals("1.1.01", "Caja", NatureDebit, "900.00", "400.00"),
		totals("1.1.02", "Bancos", NatureDebit, "0", "0"), // no activity, excluded
		totals("2.1.01", "Proveedores", NatureCredit, "100.00", "350.00"),
		totals("3.1", "Capital", NatureCredit, "0", "250.00"),
	})

	require.Len(t, tb.Lines, 3)

	caja := tb.Lines[0]
	assert.Equal(t, "1.1.01", caja.Code)
	assert.True(t, caja.DebtorBal.Equal(dec("500.00")))
	assert.True(t, caja.CreditorBal.IsZero())

	prov := tb.Lines[1]
	assert.True(t, prov.DebtorBal.IsZero())
	assert.True(t, prov.CreditorBal.Equal(dec("250.00")))

	assert.True(t, tb.TotalSumDebit.Equal(dec("1000.00")))
	assert.True(t, tb.TotalSumCredit.Equal(dec("1000.00")))
	assert.True(t, tb.TotalDebtorBal.Equal(dec("500.00")))
	assert.True(t, tb.TotalCreditorBal.Equal(dec("500.00")))
	assert.True(t, tb.Balanced)
}

func TestBuildTrialBalance_DetectsImbalance(t *testing.T) {
	// Unequal sums must clear Balanced.
	tb := BuildTrialBalance([]AccountTotals{
		totals("1.1.01", "Caja", NatureDebit, "100.00", "0"),
		totals("4.1", "Ventas", NatureCredit, "0", "90.00"),
	})
	assert.False(t, tb.Balanced)
}

func TestBuildIncomeStatement(t *testing.T) {
	is := BuildIncomeStatement(dec("1000.00"), dec("600.00"), dec("150.00"))
	assert.True(t, is.GrossProfit.Equal(dec("400.00")))
	assert.True(t, is.NetIncome.Equal(dec("250.00")))
}

func TestBuildBalanceSheet_Tolerance(t *testing.T) {
	// Exact equality must not trip the warning.
	exact := BuildBalanceSheet(dec("1000.00"), dec("400.00"), dec("350.00"), dec("250.00"))
	assert.True(t, exact.Balanced)
	assert.True(t, exact.Equity.Equal(dec("600.00")))

	// One cent off is still within tolerance.
	cent := BuildBalanceSheet(dec("1000.01"), dec("400.00"), dec("350.00"), dec("250.00"))
	assert.True(t, cent.Balanced)

	// Two cents off is a visible warning, but the sheet is still built.
	off := BuildBalanceSheet(dec("1000.02"), dec("400.00"), dec("350.00"), dec("250.00"))
	assert.False(t, off.Balanced)
	assert.True(t, off.Assets.Equal(dec("1000.02")))
}

func TestBuildOpeningBalance(t *testing.T) {
	e := &JournalEntry{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Description: "Asiento de apertura",
		Lines: []EntryLine{
			line("1.1.01", "800.00", "0"),
			line("1.1.04", "200.00", "0"),
			line("2.1.01", "0", "300.00"),
			line("3.1", "0", "700.00"),
		},
	}
	names := map[string]string{
		"1.1.01": "Caja", "1.1.04": "Mercaderías",
		"2.1.01": "Proveedores", "3.1": "Capital",
	}

	ob := BuildOpeningBalance(e, names)

	require.Len(t, ob.Assets, 2)
	assert.Equal(t, "1.1.01", ob.Assets[0].Code)
	assert.Equal(t, "Caja", ob.Assets[0].Name)
	assert.True(t, ob.TotalAssets.Equal(dec("1000.00")))
	require.Len(t, ob.Liabilities, 1)
	assert.True(t, ob.TotalLiabilities.Equal(dec("300.00")))
	require.Len(t, ob.Equity, 1)
	assert.True(t, ob.TotalEquity.Equal(dec("700.00")))
	assert.True(t, ob.Balanced)
	assert.Equal(t, "Asiento de apertura", ob.Description)
}

func TestBuildOpeningBalance_IgnoresResultClasses(t *testing.T) {
	// Revenue and expense lines in the opening entry stay off the sheet,
	// so a sloppy first entry reports an imbalance instead of absorbing it.
	e := &JournalEntry{
		Description: "Apertura con ventas",
		Lines: []EntryLine{
			line("1.1.01", "500.00", "0"),
			line("3.1", "0", "400.00"),
			line("4.1", "0", "100.00"),
		},
	}
	ob := BuildOpeningBalance(e, nil)
	assert.Empty(t, ob.Liabilities)
	assert.True(t, ob.TotalAssets.Equal(dec("500.00")))
	assert.True(t, ob.TotalEquity.Equal(dec("400.00")))
	assert.False(t, ob.Balanced)
}

func TestBuildAccountHistory_RunningBalance(t *testing.T) {
	acct := Account{Code: "1.1.01", Name: "Caja", Nature: NatureDebit}
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	h := BuildAccountHistory(acct, []LedgerMove{
		{Date: day(1), Debit: dec("500.00"), Credit: decimal.Zero},
		{Date: day(2), Debit: decimal.Zero, Credit: dec("120.00")},
		{Date: day(3), Debit: dec("20.00"), Credit: decimal.Zero},
	})

	require.Len(t, h.Moves, 3)
	assert.True(t, h.Moves[0].Balance.Equal(dec("500.00")))
	assert.True(t, h.Moves[1].Balance.Equal(dec("380.00")))
	assert.True(t, h.Moves[2].Balance.Equal(dec("400.00")))
	assert.True(t, h.Final.Equal(dec("400.00")))

	// Credit-normal account: same moves, mirrored balance.
	acct.Nature = NatureCredit
	h = BuildAccountHistory(acct, []LedgerMove{
		{Date: day(1), Debit: dec("500.00"), Credit: decimal.Zero},
	})
	assert.True(t, h.Final.Equal(dec("-500.00")))
}
