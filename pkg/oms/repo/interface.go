package repo

import (
	"context"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type IOrder interface {
	Upsert(ctx context.Context, o orderbook.Order) error
	FindByID(ctx context.Context, id int64) (orderbook.Order, error)
}

type ITrade interface {
	BulkCreate(ctx context.Context, trades []*orderbook.Trade) error
	FindByOrderID(ctx context.Context, orderID int64) ([]*orderbook.Trade, error)
}
