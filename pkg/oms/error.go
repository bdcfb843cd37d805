package oms

import "errors"

var ErrOrderNotFound = errors.New("order not found")
