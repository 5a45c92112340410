package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Nature is an account's normal balance side. Debit-normal accounts grow with
// debits (assets, expenses); credit-normal accounts grow with credits
// (liabilities, equity, revenue).
type Nature string

const (
	NatureDebit  Nature = "DEUDORA"
	NatureCredit Nature = "ACREEDORA"
)

type Account struct {
	ID        int64     `json:"id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Nature    Nature    `json:"nature"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ParseNature accepts the stored forms plus common import spellings
// ("deudora"/"debit" and "acreedora"/"credit", any case).
func ParseNature(s string) (Nature, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEUDORA", "DEBIT", "DEBE":
		return NatureDebit, nil
	case "ACREEDORA", "CREDIT", "HABER":
		return NatureCredit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidNature, s)
	}
}

// ValidNature checks a nature value is one of the two stored forms.
func ValidNature(n Nature) bool {
	return n == NatureDebit || n == NatureCredit
}

// Validate checks account invariants. Codes are dot-segmented decimals
// ("1", "1.1", "1.1.03.01"); segments must be non-empty digit runs.
func (a *Account) Validate() error {
	if err := ValidateCode(a.Code); err != nil {
		return err
	}
	if a.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if !ValidNature(a.Nature) {
		return fmt.Errorf("%w: %q", ErrInvalidNature, string(a.Nature))
	}
	return nil
}

// ValidateCode checks the dotted-decimal code format.
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidAccountCode)
	}
	for _, seg := range strings.Split(code, ".") {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidAccountCode, code)
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return fmt.Errorf("%w: %q contains non-digit %q", ErrInvalidAccountCode, code, string(r))
			}
		}
	}
	return nil
}

// ClassOf returns the top-level class segment of a code ("1.1.03" → "1").
func ClassOf(code string) string {
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i]
	}
	return code
}

// NatureForClass returns the conventional nature for a top-level class:
// 1 (assets), 5 (expenses) and 6 (cost of sales) are debit-normal; 2
// (liabilities), 3 (equity) and 4 (revenue) are credit-normal.
func NatureForClass(class string) (Nature, bool) {
	switch class {
	case "1", "5", "6":
		return NatureDebit, true
	case "2", "3", "4":
		return NatureCredit, true
	default:
		return "", false
	}
}
