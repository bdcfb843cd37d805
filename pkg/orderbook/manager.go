package orderbook

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Manager owns one order book per asset, created lazily on first reference.
// Creation is race-free under concurrent first access; everything else on a
// book must run under the asset's critical section, which the engine holds.
type Manager struct {
	books sync.Map
}

func NewManager() *Manager {
	return &Manager{}
}

// AddOrder matches the order against the asset's book and rests any
// residual quantity. Caller must hold the asset's critical section.
func (m *Manager) AddOrder(order *Order) ([]*Trade, error) {
	return m.book(order.Asset).addOrder(order)
}

// BestBid returns the highest resting bid price for the asset, if any.
func (m *Manager) BestBid(asset string) (decimal.Decimal, bool) {
	return m.book(asset).bestBid()
}

// BestAsk returns the lowest resting ask price for the asset, if any.
func (m *Manager) BestAsk(asset string) (decimal.Decimal, bool) {
	return m.book(asset).bestAsk()
}

func (m *Manager) book(asset string) *orderBook {
	if val, ok := m.books.Load(asset); ok {
		return val.(*orderBook)
	}
	actual, _ := m.books.LoadOrStore(asset, newOrderBook(asset))
	return actual.(*orderBook)
}
