package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

func TestIDGenerators(t *testing.T) {
	s := NewInMemoryStore()

	assert.EqualValues(t, 0, s.NextOrderID())
	assert.EqualValues(t, 1, s.NextOrderID())
	assert.EqualValues(t, 50001, s.NextTradeID())
	assert.EqualValues(t, 50002, s.NextTradeID())
}

func TestApplyFillUpdatesStoredOrder(t *testing.T) {
	s := NewInMemoryStore()

	o := orderbook.NewOrder(7, "BTC", orderbook.SELL,
		decimal.RequireFromString("100.00"), decimal.RequireFromString("1.00"))
	s.SaveOrder(o.Snapshot())

	at := time.Now().UTC()
	s.ApplyFill(7, decimal.RequireFromString("0.40"), at)

	got, ok := s.GetOrder(7)
	require.True(t, ok)
	assert.True(t, got.Pending.Equal(decimal.RequireFromString("0.60")))
	assert.Equal(t, orderbook.OrderStatusPartiallyFilled, got.Status)
	assert.Equal(t, at, got.ModifiedAt)

	// unknown order is a no-op
	s.ApplyFill(99, decimal.RequireFromString("0.40"), at)
	_, ok = s.GetOrder(99)
	assert.False(t, ok)
}

func TestTradesByOrderSortedByID(t *testing.T) {
	s := NewInMemoryStore()

	s.SaveTrade(&orderbook.Trade{ID: 50002, BuyOrderID: 1, SellOrderID: 0})
	s.SaveTrade(&orderbook.Trade{ID: 50001, BuyOrderID: 2, SellOrderID: 0})
	s.SaveTrade(&orderbook.Trade{ID: 50003, BuyOrderID: 2, SellOrderID: 3})

	trades := s.TradesByOrder(0)
	require.Len(t, trades, 2)
	assert.EqualValues(t, 50001, trades[0].ID)
	assert.EqualValues(t, 50002, trades[1].ID)
}
