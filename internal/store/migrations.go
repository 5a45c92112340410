package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Chart of accounts. Codes are dot-segmented and unique; prefix
		// scans rely on plain string ordering.
		`CREATE TABLE IF NOT EXISTS accounts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			code       TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			nature     TEXT NOT NULL CHECK (nature IN ('DEUDORA','ACREEDORA')),
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_code ON accounts(code)`,

		// Journal entry headers
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id          TEXT PRIMARY KEY,
			entry_date  TEXT NOT NULL,
			description TEXT NOT NULL,
			committed   INTEGER NOT NULL DEFAULT 0,
			created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries(entry_date)`,

		// Entry lines; amounts in integer cents, exactly one side per line
		`CREATE TABLE IF NOT EXISTS entry_lines (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id     TEXT NOT NULL REFERENCES journal_entries(id),
			account_id   INTEGER NOT NULL REFERENCES accounts(id),
			debit_cents  INTEGER NOT NULL DEFAULT 0 CHECK (debit_cents >= 0),
			credit_cents INTEGER NOT NULL DEFAULT 0 CHECK (credit_cents >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entry_lines_entry ON entry_lines(entry_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entry_lines_account ON entry_lines(account_id)`,

		// Trigger: refuse committing an entry whose sides do not sum equal
		`CREATE TRIGGER IF NOT EXISTS trg_check_entry_balance
		BEFORE UPDATE OF committed ON journal_entries
		WHEN NEW.committed = 1
		BEGIN
			SELECT CASE
				WHEN (SELECT COALESCE(SUM(debit_cents - credit_cents), 0)
					FROM entry_lines WHERE entry_id = NEW.id) != 0
				THEN RAISE(ABORT, 'journal entry does not balance: debit != credit')
			END;
		END`,

		// Triggers: committed entries are immutable
		`CREATE TRIGGER IF NOT EXISTS trg_immutable_lines_insert
		BEFORE INSERT ON entry_lines
		WHEN (SELECT committed FROM journal_entries WHERE id = NEW.entry_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot add lines to a committed entry');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_lines_delete
		BEFORE DELETE ON entry_lines
		WHEN (SELECT committed FROM journal_entries WHERE id = OLD.entry_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot remove lines from a committed entry');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_lines_update
		BEFORE UPDATE ON entry_lines
		WHEN (SELECT committed FROM journal_entries WHERE id = OLD.entry_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot modify lines of a committed entry');
		END`,

		// Products
		`CREATE TABLE IF NOT EXISTS products (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			code       TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		// Inventory movements. remaining is FIFO lot bookkeeping for
		// purchases; costs are decimal strings (sale unit costs can carry
		// more than 2 places).
		`CREATE TABLE IF NOT EXISTS inventory_movements (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id    INTEGER NOT NULL REFERENCES products(id),
			movement_date TEXT NOT NULL,
			kind          TEXT NOT NULL CHECK (kind IN ('COMPRA','VENTA')),
			quantity      INTEGER NOT NULL CHECK (quantity > 0),
			unit_cost     TEXT NOT NULL,
			total_cost    TEXT NOT NULL,
			remaining     INTEGER NOT NULL DEFAULT 0 CHECK (remaining >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movements_product ON inventory_movements(product_id, movement_date, id)`,

		// Company profile, at most one row
		`CREATE TABLE IF NOT EXISTS company (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			tax_id     TEXT NOT NULL,
			legal_name TEXT NOT NULL,
			trade_name TEXT NOT NULL DEFAULT '',
			address    TEXT NOT NULL DEFAULT '',
			phone      TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			city       TEXT NOT NULL DEFAULT '',
			country    TEXT NOT NULL DEFAULT ''
		)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:min(60, len(stmt))], err)
		}
	}

	return nil
}
