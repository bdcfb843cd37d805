package store

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

// Order ids count up from 0; trade ids from a separate range so the two
// series are never confused in logs or responses.
const tradeIDSeed = 50000

type InMemoryStore struct {
	mu     sync.RWMutex
	orders map[int64]*orderbook.Order
	trades map[int64]*orderbook.Trade

	orderIDGen int64
	tradeIDGen int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		orders:     make(map[int64]*orderbook.Order),
		trades:     make(map[int64]*orderbook.Trade),
		orderIDGen: -1,
		tradeIDGen: tradeIDSeed,
	}
}

func (s *InMemoryStore) NextOrderID() int64 {
	return atomic.AddInt64(&s.orderIDGen, 1)
}

func (s *InMemoryStore) NextTradeID() int64 {
	return atomic.AddInt64(&s.tradeIDGen, 1)
}

func (s *InMemoryStore) SaveOrder(o orderbook.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = &o
}

func (s *InMemoryStore) GetOrder(id int64) (orderbook.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return orderbook.Order{}, false
	}
	return *o, true
}

func (s *InMemoryStore) ApplyFill(orderID int64, amount decimal.Decimal, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		o.ApplyFill(amount, at)
	}
}

func (s *InMemoryStore) SaveTrade(t *orderbook.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[t.ID] = t
}

func (s *InMemoryStore) TradesByOrder(orderID int64) []*orderbook.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*orderbook.Trade
	for _, t := range s.trades {
		if t.BuyOrderID == orderID || t.SellOrderID == orderID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllOrders returns a copy of every stored order, in no particular order.
func (s *InMemoryStore) AllOrders() []orderbook.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]orderbook.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out
}

func (s *InMemoryStore) TradeCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.trades))
}
