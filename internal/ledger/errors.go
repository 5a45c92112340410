package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidAccountCode = errors.New("invalid account code")
	ErrInvalidNature      = errors.New("invalid account nature")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateAccount   = errors.New("account code already exists")
	ErrAccountReferenced  = errors.New("account has posted lines")

	ErrEmptyEntry       = errors.New("journal entry has no lines")
	ErrEmptyDescription = errors.New("journal entry description is required")
	ErrEntryNotFound    = errors.New("journal entry not found")
	ErrNegativeAmount   = errors.New("line amounts must not be negative")
	ErrAmountPrecision  = errors.New("line amounts are limited to 2 decimal places")
	ErrBothSidesSet     = errors.New("line must use exactly one of debit or credit")
)

// ImbalancedEntryError reports a failed double-entry check with both totals.
type ImbalancedEntryError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *ImbalancedEntryError) Error() string {
	return fmt.Sprintf("entry does not balance: debit %s != credit %s",
		e.DebitTotal.StringFixed(2), e.CreditTotal.StringFixed(2))
}

// UnknownAccountError reports a line referencing a code outside the registry.
type UnknownAccountError struct {
	Code string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account code %q", e.Code)
}

func (e *UnknownAccountError) Unwrap() error { return ErrAccountNotFound }
