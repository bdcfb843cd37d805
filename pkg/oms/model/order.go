package model

import (
	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

// AddOrder is the validated intake request handed to the order service.
// Price and amount are positive with at most 2 fractional digits and the
// asset is on the allow-list by the time this struct exists.
type AddOrder struct {
	Asset  string
	Side   orderbook.Side
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// CounterpartyFill is one execution of an order as seen from that order's
// perspective: the opposite order's id plus the executed slice.
type CounterpartyFill struct {
	OrderID int64
	Amount  decimal.Decimal
	Price   decimal.Decimal
}

// OrderDetail is the outbound view of an order: its current state plus all
// fills recorded against it.
type OrderDetail struct {
	Order  orderbook.Order
	Trades []CounterpartyFill
}
