package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampuero/contable/internal/inventory"
	"github.com/ampuero/contable/internal/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contable.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustCreateAccount(t *testing.T, s *Store, code, name string, nature ledger.Nature) {
	t.Helper()
	err := s.CreateAccount(context.Background(), &ledger.Account{
		Code: code, Name: name, Type: "DETALLE", Nature: nature,
	})
	require.NoError(t, err)
}

func entry(date time.Time, desc string, lines ...ledger.EntryLine) *ledger.JournalEntry {
	return &ledger.JournalEntry{Date: date, Description: desc, Lines: lines}
}

func debit(code, amount string) ledger.EntryLine {
	return ledger.EntryLine{AccountCode: code, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(code, amount string) ledger.EntryLine {
	return ledger.EntryLine{AccountCode: code, Debit: decimal.Zero, Credit: dec(amount)}
}

var march1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestCreateAccount_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)

	err := s.CreateAccount(ctx, &ledger.Account{
		Code: "1.1.01", Name: "Caja otra vez", Type: "DETALLE", Nature: ledger.NatureDebit,
	})
	assert.ErrorIs(t, err, ledger.ErrDuplicateAccount)

	got, err := s.GetAccountByCode(ctx, "1.1.01")
	require.NoError(t, err)
	assert.Equal(t, "Caja", got.Name)
}

func TestGetAccountByCode_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetAccountByCode(context.Background(), "9.9.99")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestListAccountsByPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, code := range []string{"1.1.02", "1.1.01", "1.2", "2.1.01", "1"} {
		nature, ok := ledger.NatureForClass(ledger.ClassOf(code))
		require.True(t, ok)
		mustCreateAccount(t, s, code, "Cuenta "+code, nature)
	}

	got, err := s.ListAccountsByPrefix(ctx, "1")
	require.NoError(t, err)

	codes := make([]string, len(got))
	for i, a := range got {
		codes[i] = a.Code
	}
	// Lexicographic string order, not numeric.
	assert.Equal(t, []string{"1", "1.1.01", "1.1.02", "1.2"}, codes)

	all, err := s.ListAccountsByPrefix(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSeedStarterChart_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.SeedStarterChart(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	again, err := s.SeedStarterChart(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestDeleteAccount_RefusesWhenReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "3.1", "Capital", ledger.NatureCredit)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Aporte inicial",
		debit("1.1.01", "500.00"), credit("3.1", "500.00"))))

	err := s.DeleteAccount(ctx, "1.1.01")
	assert.ErrorIs(t, err, ledger.ErrAccountReferenced)

	// An untouched account deletes cleanly.
	mustCreateAccount(t, s, "1.1.02", "Bancos", ledger.NatureDebit)
	require.NoError(t, s.DeleteAccount(ctx, "1.1.02"))
	_, err = s.GetAccountByCode(ctx, "1.1.02")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestPostEntry_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "4.1", "Ventas", ledger.NatureCredit)

	e := entry(march1, "Venta al contado",
		debit("1.1.01", "118.00"), credit("4.1", "118.00"))
	require.NoError(t, s.PostEntry(ctx, e))
	require.NotEmpty(t, e.ID)

	got, err := s.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.Committed)
	assert.Equal(t, "Venta al contado", got.Description)
	require.Len(t, got.Lines, 2)
	assert.True(t, got.Lines[0].Debit.Equal(dec("118.00")))
	assert.True(t, got.Lines[1].Credit.Equal(dec("118.00")))
	assert.True(t, got.Date.Equal(march1))
}

func TestPostEntry_ImbalancedLeavesNothingBehind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "4.1", "Ventas", ledger.NatureCredit)

	err := s.PostEntry(ctx, entry(march1, "No cuadra",
		debit("1.1.01", "100.00"), credit("4.1", "99.99")))

	var imb *ledger.ImbalancedEntryError
	require.ErrorAs(t, err, &imb)
	assert.True(t, imb.DebitTotal.Equal(dec("100.00")))
	assert.True(t, imb.CreditTotal.Equal(dec("99.99")))

	entries, err := s.ListEntries(ctx, EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPostEntry_UnknownAccountNoPartialCommit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)

	err := s.PostEntry(ctx, entry(march1, "Cuenta fantasma",
		debit("1.1.01", "50.00"), credit("4.9", "50.00")))

	var unknown *ledger.UnknownAccountError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "4.9", unknown.Code)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	entries, err := s.ListEntries(ctx, EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	bal, err := s.BalanceFor(ctx, "1.1.01")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestPostEntry_EmptyRejected(t *testing.T) {
	s := newTestStore(t)
	err := s.PostEntry(context.Background(), entry(march1, "Vacío"))
	assert.ErrorIs(t, err, ledger.ErrEmptyEntry)
}

func TestBalanceFor_Nature(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "2.1.01", "Proveedores", ledger.NatureCredit)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Préstamo recibido",
		debit("1.1.01", "300.00"), credit("2.1.01", "300.00"))))
	require.NoError(t, s.PostEntry(ctx, entry(march1.AddDate(0, 0, 1), "Pago parcial",
		debit("2.1.01", "120.00"), credit("1.1.01", "120.00"))))

	// Same raw sums, opposite natures.
	caja, err := s.BalanceFor(ctx, "1.1.01")
	require.NoError(t, err)
	assert.True(t, caja.Equal(dec("180.00")))

	prov, err := s.BalanceFor(ctx, "2.1.01")
	require.NoError(t, err)
	assert.True(t, prov.Equal(dec("-180.00")))
}

func TestBalances_IgnoreUncommittedEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "3.1", "Capital", ledger.NatureCredit)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Aporte",
		debit("1.1.01", "200.00"), credit("3.1", "200.00"))))

	// A header that never reached the commit flip. Its lines must stay out
	// of every aggregate, matching the journal listings.
	caja, err := s.GetAccountByCode(ctx, "1.1.01")
	require.NoError(t, err)
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO journal_entries (id, entry_date, description) VALUES ('draft-1', '2024-03-02', 'Draft')`)
	require.NoError(t, err)
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO entry_lines (entry_id, account_id, debit_cents, credit_cents) VALUES ('draft-1', ?, 5000, 0)`,
		caja.ID)
	require.NoError(t, err)

	bal, err := s.BalanceFor(ctx, "1.1.01")
	require.NoError(t, err)
	assert.True(t, bal.Equal(dec("200.00")), "got %s", bal)

	tb, err := s.TrialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, tb.TotalSumDebit.Equal(dec("200.00")))
	assert.True(t, tb.Balanced)
}

func TestListEntries_FilterByAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "4.1", "Ventas", ledger.NatureCredit)
	mustCreateAccount(t, s, "3.1", "Capital", ledger.NatureCredit)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Aporte",
		debit("1.1.01", "1000.00"), credit("3.1", "1000.00"))))
	require.NoError(t, s.PostEntry(ctx, entry(march1.AddDate(0, 0, 1), "Venta",
		debit("1.1.01", "200.00"), credit("4.1", "200.00"))))

	ventas, err := s.ListEntries(ctx, EntryFilter{AccountCode: "4.1"})
	require.NoError(t, err)
	require.Len(t, ventas, 1)
	assert.Equal(t, "Venta", ventas[0].Description)

	caja, err := s.ListEntries(ctx, EntryFilter{AccountCode: "1.1.01"})
	require.NoError(t, err)
	assert.Len(t, caja, 2)
}

func TestAccountHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateAccount(t, s, "1.1.01", "Caja", ledger.NatureDebit)
	mustCreateAccount(t, s, "3.1", "Capital", ledger.NatureCredit)
	mustCreateAccount(t, s, "5.1", "Gastos", ledger.NatureDebit)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Aporte",
		debit("1.1.01", "500.00"), credit("3.1", "500.00"))))
	require.NoError(t, s.PostEntry(ctx, entry(march1.AddDate(0, 0, 5), "Alquiler",
		debit("5.1", "120.00"), credit("1.1.01", "120.00"))))

	h, err := s.AccountHistory(ctx, "1.1.01")
	require.NoError(t, err)
	require.Len(t, h.Moves, 2)
	assert.True(t, h.Moves[0].Balance.Equal(dec("500.00")))
	assert.True(t, h.Final.Equal(dec("380.00")))
}

func TestTrialBalance_AlwaysBalanced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SeedStarterChart(ctx)
	require.NoError(t, err)

	post := func(desc, dCode, cCode, amount string) {
		require.NoError(t, s.PostEntry(ctx, entry(march1, desc,
			debit(dCode, amount), credit(cCode, amount))))
	}
	post("Aporte inicial", "1.1.01", "3.1", "1000.00")
	post("Venta", "1.1.01", "4.1", "350.00")
	post("Alquiler", "5.1", "1.1.01", "80.00")

	tb, err := s.TrialBalance(ctx)
	require.NoError(t, err)
	assert.True(t, tb.Balanced)
	assert.True(t, tb.TotalSumDebit.Equal(tb.TotalSumCredit))
	assert.True(t, tb.TotalDebtorBal.Equal(tb.TotalCreditorBal))
	assert.True(t, tb.TotalSumDebit.Equal(dec("1430.00")))
}

func TestStatements_EndToEnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SeedStarterChart(ctx)
	require.NoError(t, err)

	post := func(desc, dCode, cCode, amount string) {
		require.NoError(t, s.PostEntry(ctx, entry(march1, desc,
			debit(dCode, amount), credit(cCode, amount))))
	}
	post("Aporte inicial", "1.1.01", "3.1", "1000.00")
	post("Compra mercadería", "1.1.04", "1.1.01", "600.00")
	post("Venta", "1.1.01", "4.1", "900.00")
	post("Costo de venta", "6.1", "1.1.04", "540.00")
	post("Sueldos", "5.1", "1.1.01", "200.00")

	is, err := s.IncomeStatement(ctx)
	require.NoError(t, err)
	assert.True(t, is.Revenue.Equal(dec("900.00")))
	assert.True(t, is.CostOfSales.Equal(dec("540.00")))
	assert.True(t, is.GrossProfit.Equal(dec("360.00")))
	assert.True(t, is.NetIncome.Equal(dec("160.00")))

	bs, err := s.BalanceSheet(ctx, is.NetIncome)
	require.NoError(t, err)
	assert.True(t, bs.Assets.Equal(dec("1160.00")))
	assert.True(t, bs.Liabilities.IsZero())
	assert.True(t, bs.Equity.Equal(dec("1160.00")))
	assert.True(t, bs.Balanced)
}

func TestOpeningBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.OpeningBalance(ctx)
	assert.ErrorIs(t, err, ledger.ErrEntryNotFound)

	_, err = s.SeedStarterChart(ctx)
	require.NoError(t, err)

	require.NoError(t, s.PostEntry(ctx, entry(march1, "Asiento de apertura",
		debit("1.1.01", "800.00"),
		debit("1.1.04", "200.00"),
		credit("2.1.01", "300.00"),
		credit("3.1", "700.00"))))
	// Later activity must not leak into the opening sheet.
	require.NoError(t, s.PostEntry(ctx, entry(march1.AddDate(0, 0, 5), "Venta",
		debit("1.1.01", "150.00"), credit("4.1", "150.00"))))

	ob, err := s.OpeningBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asiento de apertura", ob.Description)
	assert.True(t, ob.TotalAssets.Equal(dec("1000.00")))
	assert.True(t, ob.TotalLiabilities.Equal(dec("300.00")))
	assert.True(t, ob.TotalEquity.Equal(dec("700.00")))
	assert.True(t, ob.Balanced)
	require.Len(t, ob.Assets, 2)
	assert.Equal(t, "Caja", ob.Assets[0].Name)
}

func TestInventory_PurchaseSaleFlow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &inventory.Product{Code: "W-001", Name: "Widget"}
	require.NoError(t, s.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	err := s.CreateProduct(ctx, &inventory.Product{Code: "W-001", Name: "Widget bis"})
	assert.ErrorIs(t, err, inventory.ErrDuplicateProduct)

	_, err = s.RecordPurchase(ctx, "W-001", march1, 10, dec("5"))
	require.NoError(t, err)
	_, err = s.RecordPurchase(ctx, "W-001", march1.AddDate(0, 0, 1), 10, dec("7"))
	require.NoError(t, err)

	sale, err := s.RecordSale(ctx, "W-001", march1.AddDate(0, 0, 2), 15)
	require.NoError(t, err)
	assert.True(t, sale.TotalCost.Equal(dec("85")), "got %s", sale.TotalCost)

	k, err := s.Kardex(ctx, "W-001", inventory.MethodFIFO)
	require.NoError(t, err)
	assert.Equal(t, int64(5), k.FinalQty)
	assert.True(t, k.FinalValue.Equal(dec("35")))
	assert.True(t, k.TotalCOGS.Equal(dec("85")))

	// The same movement log replays under the other policy.
	avg, err := s.Kardex(ctx, "W-001", inventory.MethodAverage)
	require.NoError(t, err)
	assert.True(t, avg.TotalCOGS.Equal(dec("90")))
	assert.True(t, avg.FinalValue.Equal(dec("30")))
}

func TestRecordSale_InsufficientStockUnchangedState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateProduct(ctx, &inventory.Product{Code: "W-001", Name: "Widget"}))
	_, err := s.RecordPurchase(ctx, "W-001", march1, 10, dec("5"))
	require.NoError(t, err)

	_, err = s.RecordSale(ctx, "W-001", march1.AddDate(0, 0, 1), 11)
	var insuff *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insuff)
	assert.Equal(t, int64(11), insuff.Requested)
	assert.Equal(t, int64(10), insuff.Available)

	moves, err := s.ListMovements(ctx, "W-001")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, int64(10), moves[0].Remaining)

	// The full quantity still sells afterward.
	_, err = s.RecordSale(ctx, "W-001", march1.AddDate(0, 0, 1), 10)
	require.NoError(t, err)
}

func TestRecordPurchase_UnknownProduct(t *testing.T) {
	s := newTestStore(t)
	_, err := s.RecordPurchase(context.Background(), "NOPE", march1, 1, dec("1"))
	assert.ErrorIs(t, err, inventory.ErrProductNotFound)
}

func TestCompany_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetCompany(ctx)
	assert.ErrorIs(t, err, ledger.ErrCompanyNotSet)

	require.NoError(t, s.SetCompany(ctx, &ledger.Company{
		TaxID: "20123456789", LegalName: "Comercial Andina S.A.C.",
	}))
	require.NoError(t, s.SetCompany(ctx, &ledger.Company{
		TaxID: "20123456789", LegalName: "Comercial Andina S.A.C.", City: "Lima",
	}))

	got, err := s.GetCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lima", got.City)
	assert.Equal(t, "Comercial Andina S.A.C.", got.LegalName)
}
