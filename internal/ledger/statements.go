package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceLine carries an account's summed sides and its net balance
// split into the debtor or creditor column.
type TrialBalanceLine struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	SumDebit    decimal.Decimal `json:"sum_debit"`
	SumCredit   decimal.Decimal `json:"sum_credit"`
	DebtorBal   decimal.Decimal `json:"debtor_balance"`
	CreditorBal decimal.Decimal `json:"creditor_balance"`
}

type TrialBalance struct {
	Lines            []TrialBalanceLine `json:"lines"`
	TotalSumDebit    decimal.Decimal    `json:"total_sum_debit"`
	TotalSumCredit   decimal.Decimal    `json:"total_sum_credit"`
	TotalDebtorBal   decimal.Decimal    `json:"total_debtor_balance"`
	TotalCreditorBal decimal.Decimal    `json:"total_creditor_balance"`
	Balanced         bool               `json:"balanced"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// BuildTrialBalance derives the balance de comprobación from per-account
// totals, ordered as given (callers pass accounts in code order). Accounts
// with no activity are skipped. The report is balanced iff both the sums pair
// and the balance-columns pair agree; the two checks are independent and
// should both hold for any ledger built from accepted entries.
func BuildTrialBalance(totals []AccountTotals) *TrialBalance {
	tb := &TrialBalance{
		TotalSumDebit:    decimal.Zero,
		TotalSumCredit:   decimal.Zero,
		TotalDebtorBal:   decimal.Zero,
		TotalCreditorBal: decimal.Zero,
		GeneratedAt:      time.Now().UTC(),
	}

	for _, t := range totals {
		if !t.HasActivity() {
			continue
		}
		line := TrialBalanceLine{
			Code:        t.Account.Code,
			Name:        t.Account.Name,
			SumDebit:    t.SumDebit,
			SumCredit:   t.SumCredit,
			DebtorBal:   decimal.Zero,
			CreditorBal: decimal.Zero,
		}
		net := t.SumDebit.Sub(t.SumCredit)
		switch {
		case net.IsPositive():
			line.DebtorBal = net
		case net.IsNegative():
			line.CreditorBal = net.Neg()
		}

		tb.TotalSumDebit = tb.TotalSumDebit.Add(line.SumDebit)
		tb.TotalSumCredit = tb.TotalSumCredit.Add(line.SumCredit)
		tb.TotalDebtorBal = tb.TotalDebtorBal.Add(line.DebtorBal)
		tb.TotalCreditorBal = tb.TotalCreditorBal.Add(line.CreditorBal)
		tb.Lines = append(tb.Lines, line)
	}

	tb.Balanced = tb.TotalSumDebit.Equal(tb.TotalSumCredit) &&
		tb.TotalDebtorBal.Equal(tb.TotalCreditorBal)
	return tb
}

// IncomeStatement is the estado de resultados. Class prefixes are fixed by
// convention: 4 revenue, 6 cost of sales, 5 operating expenses.
type IncomeStatement struct {
	Revenue     decimal.Decimal `json:"revenue"`
	CostOfSales decimal.Decimal `json:"cost_of_sales"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetIncome   decimal.Decimal `json:"net_income"`
	GeneratedAt time.Time       `json:"generated_at"`
}

func BuildIncomeStatement(revenue, costOfSales, expenses decimal.Decimal) *IncomeStatement {
	gross := revenue.Sub(costOfSales)
	return &IncomeStatement{
		Revenue:     revenue,
		CostOfSales: costOfSales,
		GrossProfit: gross,
		Expenses:    expenses,
		NetIncome:   gross.Sub(expenses),
		GeneratedAt: time.Now().UTC(),
	}
}

// BalanceSheet is the balance general. Equity includes the period's net
// income, supplied by the caller (from the income statement), not recomputed.
type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	EquityBase  decimal.Decimal `json:"equity_base"`
	NetIncome   decimal.Decimal `json:"net_income"`
	Equity      decimal.Decimal `json:"equity"`
	Balanced    bool            `json:"balanced"`
	GeneratedAt time.Time       `json:"generated_at"`
}

var balanceTolerance = decimal.NewFromFloat(0.01)

// BuildBalanceSheet checks assets == liabilities + equity within a one-cent
// tolerance. A mismatch only clears Balanced; the sheet is still produced.
func BuildBalanceSheet(assets, liabilities, equityBase, netIncome decimal.Decimal) *BalanceSheet {
	equity := equityBase.Add(netIncome)
	diff := assets.Sub(liabilities.Add(equity)).Abs()
	return &BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities,
		EquityBase:  equityBase,
		NetIncome:   netIncome,
		Equity:      equity,
		Balanced:    diff.LessThanOrEqual(balanceTolerance),
		GeneratedAt: time.Now().UTC(),
	}
}

// OpeningBalanceLine is one account of the opening entry with its net
// contribution to its side of the sheet.
type OpeningBalanceLine struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// OpeningBalance is the balance de situación inicial: the financial position
// at the start of operations, derived from the opening journal entry alone.
type OpeningBalance struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`

	Assets      []OpeningBalanceLine `json:"assets"`
	Liabilities []OpeningBalanceLine `json:"liabilities"`
	Equity      []OpeningBalanceLine `json:"equity"`

	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	Balanced         bool            `json:"balanced"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// BuildOpeningBalance classifies the opening entry's lines by top-level
// class: 1 to assets (debit-credit), 2 to liabilities and 3 to equity
// (credit-debit). Lines of other classes are ignored; per-account nets at
// or below one cent are dropped. names maps account codes to display names.
func BuildOpeningBalance(e *JournalEntry, names map[string]string) *OpeningBalance {
	ob := &OpeningBalance{
		Date:             e.Date,
		Description:      e.Description,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		GeneratedAt:      time.Now().UTC(),
	}

	net := make(map[string]decimal.Decimal)
	var order []string
	for _, l := range e.Lines {
		if _, seen := net[l.AccountCode]; !seen {
			order = append(order, l.AccountCode)
		}
		switch ClassOf(l.AccountCode) {
		case "1":
			net[l.AccountCode] = net[l.AccountCode].Add(l.Debit).Sub(l.Credit)
		case "2", "3":
			net[l.AccountCode] = net[l.AccountCode].Add(l.Credit).Sub(l.Debit)
		}
	}
	sort.Strings(order)

	for _, code := range order {
		balance := net[code]
		if balance.Abs().LessThanOrEqual(balanceTolerance) {
			continue
		}
		line := OpeningBalanceLine{Code: code, Name: names[code], Balance: balance}
		switch ClassOf(code) {
		case "1":
			ob.Assets = append(ob.Assets, line)
			ob.TotalAssets = ob.TotalAssets.Add(balance)
		case "2":
			ob.Liabilities = append(ob.Liabilities, line)
			ob.TotalLiabilities = ob.TotalLiabilities.Add(balance)
		case "3":
			ob.Equity = append(ob.Equity, line)
			ob.TotalEquity = ob.TotalEquity.Add(balance)
		}
	}

	diff := ob.TotalAssets.Sub(ob.TotalLiabilities.Add(ob.TotalEquity)).Abs()
	ob.Balanced = diff.LessThanOrEqual(balanceTolerance)
	return ob
}

// LedgerMove is one line in an account's libro mayor, with the running
// balance after applying the line under the account's nature.
type LedgerMove struct {
	Date        time.Time       `json:"date"`
	EntryID     string          `json:"entry_id"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type AccountHistory struct {
	Account Account         `json:"account"`
	Moves   []LedgerMove    `json:"moves"`
	Final   decimal.Decimal `json:"final_balance"`
}

// BuildAccountHistory computes the running balance over chronologically
// ordered moves.
func BuildAccountHistory(acct Account, moves []LedgerMove) *AccountHistory {
	h := &AccountHistory{Account: acct, Final: decimal.Zero}
	running := decimal.Zero
	for _, m := range moves {
		if acct.Nature == NatureDebit {
			running = running.Add(m.Debit).Sub(m.Credit)
		} else {
			running = running.Add(m.Credit).Sub(m.Debit)
		}
		m.Balance = running
		h.Moves = append(h.Moves, m)
	}
	h.Final = running
	return h
}
