package orderbook

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/fixed"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "OPEN"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
)

// Order is a limit order as the book sees it. Price and Amount are fixed at
// creation; Pending only ever decreases and Status is derived from it. Once
// inserted the order is owned by its book: only the matching loop, run under
// the asset's lock, may touch it.
type Order struct {
	ID         int64
	Asset      string
	Side       Side
	Price      decimal.Decimal
	Amount     decimal.Decimal
	Pending    decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewOrder builds an open order with the full amount pending. Asset, price
// and amount are validated at intake; the book assumes the invariants hold.
func NewOrder(id int64, asset string, side Side, price, amount decimal.Decimal) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:         id,
		Asset:      asset,
		Side:       side,
		Price:      fixed.Round(price),
		Amount:     fixed.Round(amount),
		Pending:    fixed.Round(amount),
		Status:     OrderStatusOpen,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// ApplyFill consumes amount from the pending quantity, re-derives the status
// and stamps the modification time.
func (o *Order) ApplyFill(amount decimal.Decimal, at time.Time) {
	o.Pending = fixed.Sub(o.Pending, amount)
	o.refreshStatus()
	o.ModifiedAt = at
}

func (o *Order) refreshStatus() {
	switch {
	case o.Pending.IsZero():
		o.Status = OrderStatusFilled
	case o.Pending.LessThan(o.Amount):
		o.Status = OrderStatusPartiallyFilled
	default:
		o.Status = OrderStatusOpen
	}
}

// Snapshot returns a value copy safe to read outside the asset's lock.
func (o *Order) Snapshot() Order {
	return *o
}
