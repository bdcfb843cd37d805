// Package oms is the order intake and persistence collaborator around the
// match engine: it issues identities, records orders and trades, and shapes
// the per-order view of executions.
package oms

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dikshith-shetty/ome/pkg/engine"
	"github.com/dikshith-shetty/ome/pkg/logging"
	"github.com/dikshith-shetty/ome/pkg/oms/model"
	"github.com/dikshith-shetty/ome/pkg/oms/repo"
	"github.com/dikshith-shetty/ome/pkg/oms/store"
	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type OrderService struct {
	store  store.Store
	engine *engine.Engine
	repo   repo.IRepo // optional write-through SQL sink, may be nil
}

func NewOrderService(st store.Store, eng *engine.Engine, rp repo.IRepo) *OrderService {
	return &OrderService{
		store:  st,
		engine: eng,
		repo:   rp,
	}
}

// CreateOrder runs one validated order through the engine and records the
// outcome: the order's final snapshot, all produced trades, and fill
// updates for every resting counterparty touched.
func (s *OrderService) CreateOrder(ctx context.Context, req *model.AddOrder) (*model.OrderDetail, error) {
	log := logging.FromContext(ctx)

	id := s.store.NextOrderID()
	order := orderbook.NewOrder(id, req.Asset, req.Side, req.Price, req.Amount)
	s.store.SaveOrder(order.Snapshot())
	log.Info("order created",
		zap.Int64("order_id", id),
		zap.String("asset", order.Asset),
		zap.String("price", order.Price.String()),
		zap.String("amount", order.Amount.String()))

	trades, snap, err := s.engine.Submit(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order %d: %w", id, err)
	}

	// Store updates are fill deltas on both sides, never snapshot
	// overwrites: once the order rests in the book a concurrent submission
	// may already be filling it, and an absolute write would clobber that
	// fill. Deltas commute, so the store converges regardless of order.
	affected := []int64{id}
	for _, t := range trades {
		t.ID = s.store.NextTradeID()
		s.store.SaveTrade(t)
		s.store.ApplyFill(t.BuyOrderID, t.Amount, t.CreatedAt)
		s.store.ApplyFill(t.SellOrderID, t.Amount, t.CreatedAt)

		counterID := t.SellOrderID
		if counterID == id {
			counterID = t.BuyOrderID
		}
		affected = append(affected, counterID)

		log.Info("trade executed",
			zap.Int64("trade_id", t.ID),
			zap.Int64("buy_order_id", t.BuyOrderID),
			zap.Int64("sell_order_id", t.SellOrderID),
			zap.String("price", t.Price.String()),
			zap.String("amount", t.Amount.String()))
	}

	s.persist(ctx, affected, trades)

	return &model.OrderDetail{
		Order:  snap,
		Trades: counterpartyFills(id, trades),
	}, nil
}

// GetOrder returns the current state of an order with every fill recorded
// against it. Orders absent from the in-memory store fall back to the SQL
// mirror when one is configured, so lookups survive a process restart.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*model.OrderDetail, error) {
	snap, ok := s.store.GetOrder(id)
	if ok {
		return &model.OrderDetail{
			Order:  snap,
			Trades: counterpartyFills(id, s.store.TradesByOrder(id)),
		}, nil
	}

	if s.repo == nil {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}

	snap, err := s.repo.Order().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	trades, err := s.repo.Trade().FindByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load trades of order %d: %w", id, err)
	}
	return &model.OrderDetail{
		Order:  snap,
		Trades: counterpartyFills(id, trades),
	}, nil
}

// persist mirrors the current store state of every affected order, plus the
// produced trades, to SQL when a repo is configured. Failures are logged,
// not surfaced: the book has already committed.
func (s *OrderService) persist(ctx context.Context, orderIDs []int64, trades []*orderbook.Trade) {
	if s.repo == nil {
		return
	}
	log := logging.FromContext(ctx)
	for _, id := range orderIDs {
		snap, ok := s.store.GetOrder(id)
		if !ok {
			continue
		}
		if err := s.repo.Order().Upsert(ctx, snap); err != nil {
			log.Error("persist order failed", zap.Int64("order_id", id), zap.Error(err))
		}
	}
	if err := s.repo.Trade().BulkCreate(ctx, trades); err != nil {
		log.Error("persist trades failed", zap.Int("trades", len(trades)), zap.Error(err))
	}
}

func counterpartyFills(orderID int64, trades []*orderbook.Trade) []model.CounterpartyFill {
	fills := make([]model.CounterpartyFill, 0, len(trades))
	for _, t := range trades {
		counterID := t.SellOrderID
		if counterID == orderID {
			counterID = t.BuyOrderID
		}
		fills = append(fills, model.CounterpartyFill{
			OrderID: counterID,
			Amount:  t.Amount,
			Price:   t.Price,
		})
	}
	return fills
}
