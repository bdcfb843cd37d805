package httpapi

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dikshith-shetty/ome/pkg/fixed"
	"github.com/dikshith-shetty/ome/pkg/oms/model"
	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

type createOrderRequest struct {
	Asset     string          `json:"asset"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
}

// validate enforces the intake contract: known asset, BUY/SELL direction,
// and positive price/amount with at most 2 fractional digits. Violations
// come back keyed by field so a client sees all problems at once.
func (r *createOrderRequest) validate(assets []string) (*model.AddOrder, map[string]string) {
	errs := make(map[string]string)

	asset := strings.TrimSpace(r.Asset)
	if asset == "" {
		errs["asset"] = "asset is required"
	} else if !assetAllowed(assets, asset) {
		allowed := append([]string(nil), assets...)
		sort.Strings(allowed)
		errs["asset"] = "invalid asset '" + asset + "'. Allowed values are: " + strings.Join(allowed, ", ")
	}

	if !fixed.Valid(r.Price) {
		errs["price"] = "price must be >= 0.01 with up to 2 decimal places"
	}
	if !fixed.Valid(r.Amount) {
		errs["amount"] = "amount must be >= 0.01 with up to 2 decimal places"
	}

	side := orderbook.Side(strings.ToUpper(strings.TrimSpace(r.Direction)))
	if side != orderbook.BUY && side != orderbook.SELL {
		errs["direction"] = "invalid direction '" + r.Direction + "'. Allowed values are: BUY, SELL"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &model.AddOrder{
		Asset:  asset,
		Side:   side,
		Price:  r.Price,
		Amount: r.Amount,
	}, nil
}
