package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ampuero/contable/internal/ledger"
)

// SetCompany upserts the single company profile row.
func (s *Store) SetCompany(ctx context.Context, c *ledger.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO company (id, tax_id, legal_name, trade_name, address, phone, email, city, country)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tax_id = excluded.tax_id,
			legal_name = excluded.legal_name,
			trade_name = excluded.trade_name,
			address = excluded.address,
			phone = excluded.phone,
			email = excluded.email,
			city = excluded.city,
			country = excluded.country`,
		c.TaxID, c.LegalName, c.TradeName, c.Address, c.Phone, c.Email, c.City, c.Country,
	)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}

func (s *Store) GetCompany(ctx context.Context) (*ledger.Company, error) {
	var c ledger.Company
	err := s.reader.QueryRowContext(ctx,
		`SELECT tax_id, legal_name, trade_name, address, phone, email, city, country
		FROM company WHERE id = 1`,
	).Scan(&c.TaxID, &c.LegalName, &c.TradeName, &c.Address, &c.Phone, &c.Email, &c.City, &c.Country)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrCompanyNotSet
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
