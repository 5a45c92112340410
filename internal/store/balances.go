package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/ledger"
)

// AccountTotals sums posted debit/credit per account matching the prefix,
// in code order. Only lines of committed entries count; an uncommitted
// header's lines are invisible here just as they are in the journal
// listings. Accounts with no lines come back with zero sums so group
// completeness checks can still see them. Always re-derived from the ledger;
// nothing is cached.
func (s *Store) AccountTotals(ctx context.Context, prefix string) ([]ledger.AccountTotals, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT a.id, a.code, a.name, a.type, a.nature,
			COALESCE(SUM(el.debit_cents), 0), COALESCE(SUM(el.credit_cents), 0)
		FROM accounts a
		LEFT JOIN entry_lines el ON el.account_id = a.id
			AND el.entry_id IN (SELECT id FROM journal_entries WHERE committed = 1)
		WHERE a.code LIKE ? || '%'
		GROUP BY a.id
		ORDER BY a.code`, prefix)
	if err != nil {
		return nil, fmt.Errorf("account totals: %w", err)
	}
	defer rows.Close()

	var totals []ledger.AccountTotals
	for rows.Next() {
		var t ledger.AccountTotals
		var nature string
		var debit, credit int64
		if err := rows.Scan(&t.Account.ID, &t.Account.Code, &t.Account.Name,
			&t.Account.Type, &nature, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		t.Account.Nature = ledger.Nature(nature)
		t.SumDebit = fromCents(debit)
		t.SumCredit = fromCents(credit)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// BalanceFor reduces a code or code-prefix group to its signed balance,
// respecting each account's nature.
func (s *Store) BalanceFor(ctx context.Context, codeOrPrefix string) (decimal.Decimal, error) {
	totals, err := s.AccountTotals(ctx, codeOrPrefix)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.SumBalances(totals), nil
}

// TrialBalance derives the balance de comprobación over the whole chart.
func (s *Store) TrialBalance(ctx context.Context) (*ledger.TrialBalance, error) {
	totals, err := s.AccountTotals(ctx, "")
	if err != nil {
		return nil, err
	}
	return ledger.BuildTrialBalance(totals), nil
}

// IncomeStatement derives the estado de resultados from the fixed class
// prefixes: 4 revenue, 6 cost of sales, 5 expenses.
func (s *Store) IncomeStatement(ctx context.Context) (*ledger.IncomeStatement, error) {
	revenue, err := s.BalanceFor(ctx, "4")
	if err != nil {
		return nil, err
	}
	costOfSales, err := s.BalanceFor(ctx, "6")
	if err != nil {
		return nil, err
	}
	expenses, err := s.BalanceFor(ctx, "5")
	if err != nil {
		return nil, err
	}
	return ledger.BuildIncomeStatement(revenue, costOfSales, expenses), nil
}

// OpeningBalance derives the balance de situación inicial from the first
// committed entry, which by convention is the asiento de apertura recording
// the opening account positions.
func (s *Store) OpeningBalance(ctx context.Context) (*ledger.OpeningBalance, error) {
	var id string
	err := s.reader.QueryRowContext(ctx,
		`SELECT id FROM journal_entries WHERE committed = 1
		ORDER BY entry_date, created_at LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find opening entry: %w", err)
	}

	e, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := names[l.AccountCode]; ok {
			continue
		}
		acct, err := s.GetAccountByCode(ctx, l.AccountCode)
		if err != nil {
			return nil, err
		}
		names[l.AccountCode] = acct.Name
	}

	return ledger.BuildOpeningBalance(e, names), nil
}

// BalanceSheet derives the balance general. Net income comes from the income
// statement and folds into equity; it is not recomputed here.
func (s *Store) BalanceSheet(ctx context.Context, netIncome decimal.Decimal) (*ledger.BalanceSheet, error) {
	assets, err := s.BalanceFor(ctx, "1")
	if err != nil {
		return nil, err
	}
	liabilities, err := s.BalanceFor(ctx, "2")
	if err != nil {
		return nil, err
	}
	equityBase, err := s.BalanceFor(ctx, "3")
	if err != nil {
		return nil, err
	}
	return ledger.BuildBalanceSheet(assets, liabilities, equityBase, netIncome), nil
}
