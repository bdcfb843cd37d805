package repo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type OrderRecord struct {
	ID         int64           `gorm:"column:id;primaryKey"`
	Asset      string          `gorm:"column:asset;index"`
	Side       string          `gorm:"column:side"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(20,2)"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(20,2)"`
	Pending    decimal.Decimal `gorm:"column:pending_amount;type:numeric(20,2)"`
	Status     string          `gorm:"column:status"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	ModifiedAt time.Time       `gorm:"column:modified_at"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

type OrderSQLRepo struct {
	db *gorm.DB
}

func NewOrderSQLRepo(db *gorm.DB) *OrderSQLRepo {
	return &OrderSQLRepo{
		db: db,
	}
}

func (s *OrderSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Upsert writes the order's current state, replacing any previous row.
func (s *OrderSQLRepo) Upsert(ctx context.Context, o orderbook.Order) error {
	rec := &OrderRecord{
		ID:         o.ID,
		Asset:      o.Asset,
		Side:       string(o.Side),
		Price:      o.Price,
		Amount:     o.Amount,
		Pending:    o.Pending,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		ModifiedAt: o.ModifiedAt,
	}
	return s.dbWithContext(ctx).Save(rec).Error
}

// FindByID loads a single order row, returning ErrNotFound when no row
// exists for the id.
func (s *OrderSQLRepo) FindByID(ctx context.Context, id int64) (orderbook.Order, error) {
	var rec OrderRecord
	err := s.dbWithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return orderbook.Order{}, ErrNotFound
	}
	if err != nil {
		return orderbook.Order{}, err
	}
	return orderbook.Order{
		ID:         rec.ID,
		Asset:      rec.Asset,
		Side:       orderbook.Side(rec.Side),
		Price:      rec.Price,
		Amount:     rec.Amount,
		Pending:    rec.Pending,
		Status:     orderbook.OrderStatus(rec.Status),
		CreatedAt:  rec.CreatedAt,
		ModifiedAt: rec.ModifiedAt,
	}, nil
}
