package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ampuero/contable/internal/inventory"
)

func (s *Store) CreateProduct(ctx context.Context, p *inventory.Product) error {
	if p.Code == "" || p.Name == "" {
		return inventory.ErrInvalidProduct
	}

	var exists int
	err := s.reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE code = ?`, p.Code).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product code: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", inventory.ErrDuplicateProduct, p.Code)
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO products (code, name) VALUES (?, ?)`, p.Code, p.Name)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) GetProductByCode(ctx context.Context, code string) (*inventory.Product, error) {
	var p inventory.Product
	var createdAt string
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, code, name, created_at FROM products WHERE code = ?`, code,
	).Scan(&p.ID, &p.Code, &p.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, inventory.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, code, name, created_at FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []inventory.Product
	for rows.Next() {
		var p inventory.Product
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		products = append(products, p)
	}
	return products, rows.Err()
}

// RecordPurchase creates a new lot: the movement's remaining starts at the
// full quantity and later sales draw it down.
func (s *Store) RecordPurchase(ctx context.Context, productCode string, date time.Time, qty int64, unitCost decimal.Decimal) (*inventory.Movement, error) {
	if qty <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	if unitCost.IsNegative() {
		return nil, inventory.ErrNegativeCost
	}

	p, err := s.GetProductByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}

	m := &inventory.Movement{
		ProductID: p.ID,
		Date:      date,
		Kind:      inventory.KindPurchase,
		Quantity:  qty,
		UnitCost:  unitCost,
		TotalCost: unitCost.Mul(decimal.NewFromInt(qty)),
		Remaining: qty,
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO inventory_movements (product_id, movement_date, kind, quantity, unit_cost, total_cost, remaining)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ProductID, date.Format(dateLayout), string(m.Kind), m.Quantity,
		m.UnitCost.String(), m.TotalCost.String(), m.Remaining,
	)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

// RecordSale checks total available stock across open lots, then consumes
// lots oldest-first and persists the sale with its derived cost, all in one
// transaction. The sufficiency check is policy-agnostic (total quantity);
// kardex replays value the same sale under whichever method is requested.
func (s *Store) RecordSale(ctx context.Context, productCode string, date time.Time, qty int64) (*inventory.Movement, error) {
	if qty <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}

	p, err := s.GetProductByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, unit_cost, remaining FROM inventory_movements
		WHERE product_id = ? AND kind = 'COMPRA' AND remaining > 0
		ORDER BY movement_date, id`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("open lots: %w", err)
	}

	type openLot struct {
		id        int64
		unitCost  decimal.Decimal
		remaining int64
	}
	var lots []openLot
	var available int64
	for rows.Next() {
		var l openLot
		var unitCost string
		if err := rows.Scan(&l.id, &unitCost, &l.remaining); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		l.unitCost, err = decimal.NewFromString(unitCost)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse lot cost: %w", err)
		}
		available += l.remaining
		lots = append(lots, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lots: %w", err)
	}

	if qty > available {
		return nil, &inventory.InsufficientStockError{
			ProductCode: productCode,
			Requested:   qty,
			Available:   available,
		}
	}

	pending := qty
	totalCost := decimal.Zero
	for _, l := range lots {
		if pending == 0 {
			break
		}
		take := pending
		if l.remaining < take {
			take = l.remaining
		}
		totalCost = totalCost.Add(l.unitCost.Mul(decimal.NewFromInt(take)))
		pending -= take

		_, err = tx.ExecContext(ctx,
			`UPDATE inventory_movements SET remaining = remaining - ? WHERE id = ?`,
			take, l.id)
		if err != nil {
			return nil, fmt.Errorf("consume lot %d: %w", l.id, err)
		}
	}

	// Stored unit cost is the operation average, informational only;
	// kardex replays recompute sale costs from raw history.
	m := &inventory.Movement{
		ProductID: p.ID,
		Date:      date,
		Kind:      inventory.KindSale,
		Quantity:  qty,
		UnitCost:  totalCost.DivRound(decimal.NewFromInt(qty), 4),
		TotalCost: totalCost,
		Remaining: 0,
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO inventory_movements (product_id, movement_date, kind, quantity, unit_cost, total_cost, remaining)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		m.ProductID, date.Format(dateLayout), string(m.Kind), m.Quantity,
		m.UnitCost.String(), m.TotalCost.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	m.ID, _ = res.LastInsertId()
	return m, nil
}

// ListMovements returns a product's movements ordered by (date, id)
// ascending, the replay order; insertion order breaks same-date ties.
func (s *Store) ListMovements(ctx context.Context, productCode string) ([]inventory.Movement, error) {
	p, err := s.GetProductByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, product_id, movement_date, kind, quantity, unit_cost, total_cost, remaining
		FROM inventory_movements WHERE product_id = ?
		ORDER BY movement_date, id`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []inventory.Movement
	for rows.Next() {
		var m inventory.Movement
		var date, kind, unitCost, totalCost string
		if err := rows.Scan(&m.ID, &m.ProductID, &date, &kind, &m.Quantity,
			&unitCost, &totalCost, &m.Remaining); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Date, _ = time.Parse(dateLayout, date)
		m.Kind = inventory.Kind(kind)
		if m.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
			return nil, fmt.Errorf("parse unit cost: %w", err)
		}
		if m.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
			return nil, fmt.Errorf("parse total cost: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// Kardex recomputes one product's cost history under the requested method.
func (s *Store) Kardex(ctx context.Context, productCode string, method inventory.Method) (*inventory.Kardex, error) {
	p, err := s.GetProductByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}
	movements, err := s.ListMovements(ctx, productCode)
	if err != nil {
		return nil, err
	}
	return inventory.Replay(*p, movements, method)
}

// Kardexes builds the kardex for every product, in product code order.
func (s *Store) Kardexes(ctx context.Context, method inventory.Method) ([]*inventory.Kardex, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	var kardexes []*inventory.Kardex
	for _, p := range products {
		k, err := s.Kardex(ctx, p.Code, method)
		if err != nil {
			return nil, fmt.Errorf("kardex %s: %w", p.Code, err)
		}
		kardexes = append(kardexes, k)
	}
	return kardexes, nil
}
