package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type TradeRecord struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	BuyOrderID  int64           `gorm:"column:buy_order_id;index"`
	SellOrderID int64           `gorm:"column:sell_order_id;index"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(20,2)"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(20,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (TradeRecord) TableName() string {
	return "trades"
}

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *TradeSQLRepo) BulkCreate(ctx context.Context, trades []*orderbook.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	records := make([]*TradeRecord, 0, len(trades))
	for _, t := range trades {
		records = append(records, &TradeRecord{
			ID:          t.ID,
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			Price:       t.Price,
			Amount:      t.Amount,
			CreatedAt:   t.CreatedAt,
		})
	}
	return s.dbWithContext(ctx).Create(&records).Error
}

func (s *TradeSQLRepo) FindByOrderID(ctx context.Context, orderID int64) ([]*orderbook.Trade, error) {
	var records []*TradeRecord
	err := s.dbWithContext(ctx).
		Where("buy_order_id = ? OR sell_order_id = ?", orderID, orderID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	trades := make([]*orderbook.Trade, 0, len(records))
	for _, r := range records {
		trades = append(trades, &orderbook.Trade{
			ID:          r.ID,
			BuyOrderID:  r.BuyOrderID,
			SellOrderID: r.SellOrderID,
			Price:       r.Price,
			Amount:      r.Amount,
			CreatedAt:   r.CreatedAt,
		})
	}
	return trades, nil
}
