package engine

import "errors"

var ErrStopped = errors.New("engine stopped")
