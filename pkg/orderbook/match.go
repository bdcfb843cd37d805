package orderbook

import (
	"time"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/fixed"
)

// Trade records one pair-slice produced by the matching loop. The ID is
// assigned by the persistence layer after the engine returns; everything
// else is immutable from creation.
type Trade struct {
	ID          int64
	BuyOrderID  int64
	SellOrderID int64
	Price       decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// match consumes the incoming order against the opposite side of the book
// under price-time priority. It walks best levels while they cross the
// incoming limit, takes FIFO heads within a level, and decrements both
// orders by the traded amount, each decrement rounded to 2 places. Trades
// execute at the resting order's price. Filled resting orders and emptied
// levels are removed as the loop goes.
func (ob *orderBook) match(incoming *Order) []*Trade {
	var (
		counterBook map[int64]*deque.Deque[*Order]
		counterHeap *priceHeap
		counterSide Side
		crosses     func(limit, best int64) bool
	)

	limit := fixed.Cents(incoming.Price)
	if incoming.Side == BUY {
		counterBook, counterHeap, counterSide = ob.asks, ob.askHeap, SELL
		crosses = func(limit, best int64) bool { return best <= limit }
	} else {
		counterBook, counterHeap, counterSide = ob.bids, ob.bidHeap, BUY
		crosses = func(limit, best int64) bool { return best >= limit }
	}

	var trades []*Trade
	for incoming.Pending.IsPositive() {
		best, ok := counterHeap.Peek()
		if !ok || !crosses(limit, best) {
			break
		}

		q := counterBook[best]
		for q.Len() > 0 && incoming.Pending.IsPositive() {
			resting := q.Front()

			traded := fixed.Min(incoming.Pending, resting.Pending)
			now := time.Now().UTC()
			incoming.ApplyFill(traded, now)
			resting.ApplyFill(traded, now)

			buyID, sellID := incoming.ID, resting.ID
			if incoming.Side == SELL {
				buyID, sellID = resting.ID, incoming.ID
			}
			trades = append(trades, &Trade{
				BuyOrderID:  buyID,
				SellOrderID: sellID,
				Price:       resting.Price,
				Amount:      traded,
				CreatedAt:   now,
			})

			if resting.Pending.IsZero() {
				ob.removeFront(counterSide, best)
			}
		}
	}

	return trades
}
