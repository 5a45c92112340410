package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ampuero/contable/internal/ledger"
)

// CreateAccount registers a chart-of-accounts row. Codes are globally
// unique; a taken code fails with ledger.ErrDuplicateAccount.
func (s *Store) CreateAccount(ctx context.Context, acct *ledger.Account) error {
	if err := acct.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE code = ?`, acct.Code).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check account code: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ledger.ErrDuplicateAccount, acct.Code)
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (code, name, type, nature) VALUES (?, ?, ?, ?)`,
		acct.Code, acct.Name, acct.Type, string(acct.Nature),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	acct.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) GetAccountByCode(ctx context.Context, code string) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT id, code, name, type, nature, created_at FROM accounts WHERE code = ?`, code)
	return scanAccount(row)
}

// ListAccountsByPrefix returns accounts whose code starts with prefix,
// ordered lexicographically by code ("1.10" sorts before "1.2"; dotted codes
// are compared as plain strings, matching the report layout convention). An
// empty prefix lists the whole chart.
func (s *Store) ListAccountsByPrefix(ctx context.Context, prefix string) ([]ledger.Account, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, code, name, type, nature, created_at FROM accounts
		WHERE code LIKE ? || '%' ORDER BY code`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		acct, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acct)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes an account, refusing when posted lines reference it.
func (s *Store) DeleteAccount(ctx context.Context, code string) error {
	acct, err := s.GetAccountByCode(ctx, code)
	if err != nil {
		return err
	}

	var count int
	err = s.reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entry_lines WHERE account_id = ?`, acct.ID).Scan(&count)
	if err != nil {
		return fmt.Errorf("check lines: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s has %d lines", ledger.ErrAccountReferenced, code, count)
	}

	_, err = s.writer.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, acct.ID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// SeedStarterChart registers the built-in chart, skipping codes already
// present. Returns how many accounts were created.
func (s *Store) SeedStarterChart(ctx context.Context) (int, error) {
	created := 0
	for _, ce := range ledger.StarterChart {
		acct := &ledger.Account{Code: ce.Code, Name: ce.Name, Type: ce.Type, Nature: ce.Nature}
		err := s.CreateAccount(ctx, acct)
		if err != nil {
			if errors.Is(err, ledger.ErrDuplicateAccount) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func scanAccount(row *sql.Row) (*ledger.Account, error) {
	var acct ledger.Account
	var nature, createdAt string
	err := row.Scan(&acct.ID, &acct.Code, &acct.Name, &acct.Type, &nature, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	acct.Nature = ledger.Nature(nature)
	acct.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &acct, nil
}

func scanAccountRow(rows *sql.Rows) (*ledger.Account, error) {
	var acct ledger.Account
	var nature, createdAt string
	err := rows.Scan(&acct.ID, &acct.Code, &acct.Name, &acct.Type, &nature, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan account row: %w", err)
	}
	acct.Nature = ledger.Nature(nature)
	acct.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &acct, nil
}
