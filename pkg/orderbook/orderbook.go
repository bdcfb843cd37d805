package orderbook

import (
	"container/heap"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/fixed"
)

// orderBook holds the resting orders of one asset: one price-keyed map of
// FIFO queues per side, plus a heap per side so the best level is found in
// O(1). Levels are keyed by the price in integer hundredths, so ordering and
// equality are exact.
//
// The book carries no lock of its own. All mutation happens under the
// per-asset critical section held by the engine.
type orderBook struct {
	asset string

	bids map[int64]*deque.Deque[*Order]
	asks map[int64]*deque.Deque[*Order]

	bidHeap *priceHeap
	askHeap *priceHeap
}

func newOrderBook(asset string) *orderBook {
	return &orderBook{
		asset:   asset,
		bids:    make(map[int64]*deque.Deque[*Order]),
		asks:    make(map[int64]*deque.Deque[*Order]),
		bidHeap: newPriceHeap(func(i, j int64) bool { return i > j }), // max-heap
		askHeap: newPriceHeap(func(i, j int64) bool { return i < j }), // min-heap
	}
}

// addOrder matches the incoming order against the opposite side and, if it
// still has pending quantity, rests it in the book. Returns the trades
// produced, best price level first, FIFO within a level.
func (ob *orderBook) addOrder(order *Order) ([]*Trade, error) {
	if !order.Pending.IsPositive() {
		return nil, ErrNoPendingAmount
	}
	if order.Side != BUY && order.Side != SELL {
		return nil, ErrUnknownSide
	}

	trades := ob.match(order)

	if order.Pending.IsPositive() {
		ob.insert(order)
	}

	return trades, nil
}

// insert appends the order to the tail of its price level, creating the
// level on first use.
func (ob *orderBook) insert(order *Order) {
	book, sideHeap := ob.bids, ob.bidHeap
	if order.Side == SELL {
		book, sideHeap = ob.asks, ob.askHeap
	}

	key := fixed.Cents(order.Price)
	if book[key] == nil {
		book[key] = &deque.Deque[*Order]{}
		heap.Push(sideHeap, key)
	}
	book[key].PushBack(order)
}

// removeFront pops the FIFO head at the given level; the caller must have
// verified the level is non-empty. An emptied level is dropped entirely.
func (ob *orderBook) removeFront(side Side, key int64) {
	book, sideHeap := ob.bids, ob.bidHeap
	if side == SELL {
		book, sideHeap = ob.asks, ob.askHeap
	}

	q := book[key]
	q.PopFront()
	if q.Len() == 0 {
		ob.removeLevel(book, sideHeap, key)
	}
}

func (ob *orderBook) removeLevel(book map[int64]*deque.Deque[*Order], sideHeap *priceHeap, key int64) {
	for i, p := range sideHeap.prices {
		if p == key {
			heap.Remove(sideHeap, i)
			break
		}
	}
	delete(book, key)
}

// bestBid returns the highest resting bid price, if any.
func (ob *orderBook) bestBid() (decimal.Decimal, bool) {
	key, ok := ob.bidHeap.Peek()
	return fixed.FromCents(key), ok
}

// bestAsk returns the lowest resting ask price, if any.
func (ob *orderBook) bestAsk() (decimal.Decimal, bool) {
	key, ok := ob.askHeap.Peek()
	return fixed.FromCents(key), ok
}
