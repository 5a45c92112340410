package ledger

import "github.com/shopspring/decimal"

// AccountTotals is an account together with its summed posted lines.
type AccountTotals struct {
	Account   Account         `json:"account"`
	SumDebit  decimal.Decimal `json:"sum_debit"`
	SumCredit decimal.Decimal `json:"sum_credit"`
}

// NetBalance reduces the sums to a signed balance respecting the account's
// nature: debit-normal accounts yield debit−credit, credit-normal accounts
// credit−debit.
func (t AccountTotals) NetBalance() decimal.Decimal {
	if t.Account.Nature == NatureDebit {
		return t.SumDebit.Sub(t.SumCredit)
	}
	return t.SumCredit.Sub(t.SumDebit)
}

// HasActivity reports whether any line was posted against the account.
func (t AccountTotals) HasActivity() bool {
	return !t.SumDebit.IsZero() || !t.SumCredit.IsZero()
}

// SumBalances folds per-account totals into the group balance. Accounts with
// no posted lines contribute zero.
func SumBalances(totals []AccountTotals) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.NetBalance())
	}
	return sum
}
