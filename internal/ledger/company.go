package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrCompanyNotSet  = errors.New("company profile not set")
	ErrInvalidCompany = errors.New("invalid company profile")
)

// Company is the singleton profile printed on report headers.
type Company struct {
	TaxID     string `json:"tax_id"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
}

func (c *Company) Validate() error {
	if c.TaxID == "" {
		return fmt.Errorf("%w: tax id is required", ErrInvalidCompany)
	}
	if c.LegalName == "" {
		return fmt.Errorf("%w: legal name is required", ErrInvalidCompany)
	}
	return nil
}
