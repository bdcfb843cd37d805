// Package store keeps orders and trades and issues their identities. The
// engine never reads it; it is the persistence collaborator behind the
// order service.
package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type Store interface {
	NextOrderID() int64
	NextTradeID() int64

	SaveOrder(o orderbook.Order)
	GetOrder(id int64) (orderbook.Order, bool)
	// ApplyFill decrements the stored order's pending amount. Fill deltas
	// commute, so concurrent post-match updates for one resting order are
	// safe in any order.
	ApplyFill(orderID int64, amount decimal.Decimal, at time.Time)

	SaveTrade(t *orderbook.Trade)
	TradesByOrder(orderID int64) []*orderbook.Trade
	TradeCount() int64
}
