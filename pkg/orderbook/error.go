package orderbook

import "errors"

var (
	ErrNoPendingAmount = errors.New("order has no pending amount")
	ErrUnknownSide     = errors.New("unknown order side")
)
