package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/ledger"
)

const dateLayout = "2006-01-02"

// cents converts a validated 2-decimal amount to integer cents for storage.
func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// PostEntry validates and commits a journal entry. All inputs are checked
// before anything is written: entry-level invariants first, then every line's
// account code is resolved. Only a fully valid entry reaches the database,
// where header and lines land in one transaction; the commit flag flip also
// re-checks the balance via trigger.
func (s *Store) PostEntry(ctx context.Context, e *ledger.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	if err := e.Validate(); err != nil {
		return err
	}

	accountIDs := make([]int64, len(e.Lines))
	for i, l := range e.Lines {
		acct, err := s.GetAccountByCode(ctx, l.AccountCode)
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return &ledger.UnknownAccountError{Code: l.AccountCode}
		}
		if err != nil {
			return err
		}
		accountIDs[i] = acct.ID
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO journal_entries (id, entry_date, description) VALUES (?, ?, ?)`,
		e.ID, e.Date.Format(dateLayout), e.Description,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	for i := range e.Lines {
		e.Lines[i].EntryID = e.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entry_lines (entry_id, account_id, debit_cents, credit_cents) VALUES (?, ?, ?, ?)`,
			e.ID, accountIDs[i], toCents(e.Lines[i].Debit), toCents(e.Lines[i].Credit),
		)
		if err != nil {
			return fmt.Errorf("insert line %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE journal_entries SET committed = 1 WHERE id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("commit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	e.Committed = true
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*ledger.JournalEntry, error) {
	var e ledger.JournalEntry
	var entryDate, createdAt string
	var committed int

	err := s.reader.QueryRowContext(ctx,
		`SELECT id, entry_date, description, committed, created_at FROM journal_entries WHERE id = ?`, id,
	).Scan(&e.ID, &entryDate, &e.Description, &committed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	e.Committed = committed == 1
	e.Date, _ = time.Parse(dateLayout, entryDate)
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	lines, err := s.linesForEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Lines = lines
	return &e, nil
}

// ListEntries returns committed entries in journal (libro diario) order:
// entry date ascending, insertion order breaking ties.
func (s *Store) ListEntries(ctx context.Context, filter EntryFilter) ([]ledger.JournalEntry, error) {
	query := `SELECT DISTINCT je.id, je.entry_date, je.description, je.committed, je.created_at
		FROM journal_entries je`
	args := []any{}

	if filter.AccountCode != "" {
		query += ` JOIN entry_lines el ON el.entry_id = je.id
			JOIN accounts a ON a.id = el.account_id
			WHERE a.code = ?`
		args = append(args, filter.AccountCode)
	} else {
		query += ` WHERE 1=1`
	}

	query += ` AND je.committed = 1 ORDER BY je.entry_date, je.created_at`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.JournalEntry
	for rows.Next() {
		var e ledger.JournalEntry
		var entryDate, createdAt string
		var committed int
		if err := rows.Scan(&e.ID, &entryDate, &e.Description, &committed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Committed = committed == 1
		e.Date, _ = time.Parse(dateLayout, entryDate)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

		lines, err := s.linesForEntry(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Lines = lines
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AccountMoves returns a committed account's lines in chronological order,
// for the libro mayor. Running balances are computed by the caller.
func (s *Store) AccountMoves(ctx context.Context, code string) ([]ledger.LedgerMove, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT je.entry_date, je.id, je.description, el.debit_cents, el.credit_cents
		FROM entry_lines el
		JOIN journal_entries je ON je.id = el.entry_id
		JOIN accounts a ON a.id = el.account_id
		WHERE a.code = ? AND je.committed = 1
		ORDER BY je.entry_date, je.created_at, el.id`, code)
	if err != nil {
		return nil, fmt.Errorf("account moves: %w", err)
	}
	defer rows.Close()

	var moves []ledger.LedgerMove
	for rows.Next() {
		var m ledger.LedgerMove
		var entryDate string
		var debit, credit int64
		if err := rows.Scan(&entryDate, &m.EntryID, &m.Description, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.Date, _ = time.Parse(dateLayout, entryDate)
		m.Debit = fromCents(debit)
		m.Credit = fromCents(credit)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// AccountHistory builds the libro mayor for one account.
func (s *Store) AccountHistory(ctx context.Context, code string) (*ledger.AccountHistory, error) {
	acct, err := s.GetAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	moves, err := s.AccountMoves(ctx, code)
	if err != nil {
		return nil, err
	}
	return ledger.BuildAccountHistory(*acct, moves), nil
}

func (s *Store) linesForEntry(ctx context.Context, entryID string) ([]ledger.EntryLine, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT el.id, el.entry_id, a.code, el.debit_cents, el.credit_cents
		FROM entry_lines el
		JOIN accounts a ON a.id = el.account_id
		WHERE el.entry_id = ? ORDER BY el.id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.EntryLine
	for rows.Next() {
		var l ledger.EntryLine
		var debit, credit int64
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountCode, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		l.Debit = fromCents(debit)
		l.Credit = fromCents(credit)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
