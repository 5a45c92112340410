package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Method selects the costing policy for a kardex replay.
type Method string

const (
	MethodFIFO    Method = "FIFO"
	MethodAverage Method = "PMP"
)

// ParseMethod maps user input to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "fifo", "FIFO", "peps", "PEPS":
		return MethodFIFO, nil
	case "pmp", "PMP", "average", "promedio":
		return MethodAverage, nil
	default:
		return "", fmt.Errorf("unknown costing method %q (want fifo or pmp)", s)
	}
}

// Row is one kardex line: the movement's own side plus the running balance
// after it. BalanceUnit is BalanceValue/BalanceQty, zero at zero stock.
type Row struct {
	Date time.Time `json:"date"`
	Kind Kind      `json:"kind"`

	InQty    int64           `json:"in_qty,omitempty"`
	InUnit   decimal.Decimal `json:"in_unit"`
	InTotal  decimal.Decimal `json:"in_total"`
	OutQty   int64           `json:"out_qty,omitempty"`
	OutUnit  decimal.Decimal `json:"out_unit"`
	OutTotal decimal.Decimal `json:"out_total"`

	BalanceQty   int64           `json:"balance_qty"`
	BalanceUnit  decimal.Decimal `json:"balance_unit"`
	BalanceValue decimal.Decimal `json:"balance_value"`
}

// Kardex is a product's full recomputed cost history under one method.
type Kardex struct {
	Product Product `json:"product"`
	Method  Method  `json:"method"`
	Rows    []Row   `json:"rows"`

	FinalQty   int64           `json:"final_qty"`
	FinalValue decimal.Decimal `json:"final_value"`
	TotalCOGS  decimal.Decimal `json:"total_cogs"`
}

// lot is an open purchase batch during a FIFO replay.
type lot struct {
	qty  int64
	unit decimal.Decimal
}

// unitAvgPlaces bounds division results; kardex unit costs are display
// values, four places matches the usual card layout.
const unitAvgPlaces = 4

// Replay recomputes the kardex from the product's movements, which must be
// ordered by (date, insertion order) ascending; insertion order breaks
// same-date ties, which matters for FIFO. The stored Remaining and sale
// costs are ignored; everything is derived fresh from quantities and
// purchase unit costs.
func Replay(p Product, movements []Movement, method Method) (*Kardex, error) {
	switch method {
	case MethodFIFO, MethodAverage:
	default:
		return nil, fmt.Errorf("unknown costing method %q", method)
	}

	k := &Kardex{
		Product:    p,
		Method:     method,
		FinalValue: decimal.Zero,
		TotalCOGS:  decimal.Zero,
	}

	var lots []lot
	qty := int64(0)
	value := decimal.Zero
	average := decimal.Zero

	for _, m := range movements {
		row := Row{Date: m.Date, Kind: m.Kind}

		switch m.Kind {
		case KindPurchase:
			total := m.UnitCost.Mul(decimal.NewFromInt(m.Quantity))
			row.InQty = m.Quantity
			row.InUnit = m.UnitCost
			row.InTotal = total

			qty += m.Quantity
			value = value.Add(total)
			if method == MethodAverage {
				average = value.DivRound(decimal.NewFromInt(qty), unitAvgPlaces)
			}
			if method == MethodFIFO {
				lots = append(lots, lot{qty: m.Quantity, unit: m.UnitCost})
			}

		case KindSale:
			if m.Quantity > qty {
				return nil, fmt.Errorf("%w: product %s on %s", ErrNegativeStock,
					p.Code, m.Date.Format("2006-01-02"))
			}

			var cost decimal.Decimal
			if method == MethodFIFO {
				cost = consumeLots(&lots, m.Quantity)
			} else {
				cost = average.Mul(decimal.NewFromInt(m.Quantity))
			}

			row.OutQty = m.Quantity
			row.OutTotal = cost
			if method == MethodAverage {
				row.OutUnit = average
			} else {
				row.OutUnit = cost.DivRound(decimal.NewFromInt(m.Quantity), unitAvgPlaces)
			}

			qty -= m.Quantity
			value = value.Sub(cost)
			k.TotalCOGS = k.TotalCOGS.Add(cost)

		default:
			return nil, fmt.Errorf("unknown movement kind %q", m.Kind)
		}

		row.BalanceQty = qty
		row.BalanceValue = value
		if qty > 0 {
			if method == MethodAverage {
				row.BalanceUnit = average
			} else {
				row.BalanceUnit = value.DivRound(decimal.NewFromInt(qty), unitAvgPlaces)
			}
		} else {
			row.BalanceUnit = decimal.Zero
		}
		k.Rows = append(k.Rows, row)
	}

	k.FinalQty = qty
	k.FinalValue = value
	return k, nil
}

// consumeLots walks the queue from the front, draining min(remaining, want)
// per lot, and returns the accumulated cost of the consumed units. Emptied
// lots leave the queue.
func consumeLots(lots *[]lot, want int64) decimal.Decimal {
	cost := decimal.Zero
	q := *lots
	for want > 0 && len(q) > 0 {
		take := want
		if q[0].qty < take {
			take = q[0].qty
		}
		cost = cost.Add(q[0].unit.Mul(decimal.NewFromInt(take)))
		q[0].qty -= take
		want -= take
		if q[0].qty == 0 {
			q = q[1:]
		}
	}
	*lots = q
	return cost
}
