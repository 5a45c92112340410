// Package importer loads a chart of accounts from an Excel workbook.
// Every sheet is read and merged; required columns are CÓDIGO, NOMBRE,
// TIPO and NATURALEZA (header matching is case- and space-insensitive).
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ampuero/contable/internal/ledger"
)

// Registry is the account sink; *store.Store satisfies it.
type Registry interface {
	CreateAccount(ctx context.Context, acct *ledger.Account) error
}

// Result summarizes an import run.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

var requiredColumns = []string{"CÓDIGO", "NOMBRE", "TIPO", "NATURALEZA"}

// ImportChart reads every sheet of the workbook and registers each account,
// skipping blank rows and codes already present. Malformed rows are skipped
// with a warning rather than aborting the run.
func ImportChart(ctx context.Context, r io.Reader, reg Registry) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	res := &Result{}
	seen := make(map[string]bool)

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		cols, err := mapColumns(rows[0])
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		for i := 1; i < len(rows); i++ {
			row := rows[i]
			code := strings.TrimSpace(cell(row, cols["CÓDIGO"]))
			name := strings.TrimSpace(cell(row, cols["NOMBRE"]))
			if code == "" || name == "" {
				continue
			}
			if seen[code] {
				res.Skipped++
				continue
			}
			seen[code] = true

			nature, err := ledger.ParseNature(cell(row, cols["NATURALEZA"]))
			if err != nil {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s!%d: %v", sheet, i+1, err))
				continue
			}

			acct := &ledger.Account{
				Code:   code,
				Name:   name,
				Type:   strings.TrimSpace(cell(row, cols["TIPO"])),
				Nature: nature,
			}
			err = reg.CreateAccount(ctx, acct)
			switch {
			case err == nil:
				res.Imported++
			case errors.Is(err, ledger.ErrDuplicateAccount):
				res.Skipped++
			default:
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s!%d: %v", sheet, i+1, err))
			}
		}
	}

	return res, nil
}

// mapColumns normalizes header cells (upper-cased, trimmed) and checks the
// required columns exist.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing required column %s (want %s)",
				want, strings.Join(requiredColumns, ", "))
		}
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
