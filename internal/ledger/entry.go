package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLine is one debit or credit posting inside a journal entry.
type EntryLine struct {
	ID          int64           `json:"id,omitempty"`
	EntryID     string          `json:"entry_id"`
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntry (asiento) is a dated, balanced set of lines. Entries are
// immutable once committed; corrections are new entries.
type JournalEntry struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Lines       []EntryLine `json:"lines"`
	Committed   bool        `json:"committed"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

var cents = decimal.NewFromInt(100)

// twoDecimals reports whether d has no more than 2 decimal places.
func twoDecimals(d decimal.Decimal) bool {
	scaled := d.Mul(cents)
	return scaled.Equal(scaled.Floor())
}

// Totals returns the entry's debit and credit sums.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Validate checks the entry invariants that do not need the account registry:
// a description, at least one line, non-negative amounts at 2 decimals, one
// side per line, and debit total == credit total.
func (e *JournalEntry) Validate() error {
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if len(e.Lines) == 0 {
		return ErrEmptyEntry
	}
	for _, l := range e.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return ErrNegativeAmount
		}
		if !twoDecimals(l.Debit) || !twoDecimals(l.Credit) {
			return ErrAmountPrecision
		}
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return ErrBothSidesSet
		}
	}
	debit, credit := e.Totals()
	if !debit.Round(2).Equal(credit.Round(2)) {
		return &ImbalancedEntryError{DebitTotal: debit, CreditTotal: credit}
	}
	return nil
}
