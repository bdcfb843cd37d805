// Package engine coordinates concurrent access to the order books. A fixed
// pool of workers executes match/insert steps; a per-asset mutex guarantees
// that all operations against one asset's book are linearized while
// independent assets proceed in parallel.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dikshith-shetty/ome/pkg/logging"
	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

const defaultPoolSize = 5

type Config struct {
	PoolSize int `yaml:"pool_size"`
}

type task struct {
	ctx   context.Context
	order *orderbook.Order
	resCh chan result
}

type result struct {
	trades []*orderbook.Trade
	order  orderbook.Order
	err    error
}

// Books is the book registry surface the engine drives. *orderbook.Manager
// is the production implementation.
type Books interface {
	AddOrder(order *orderbook.Order) ([]*orderbook.Trade, error)
}

// Engine is the single entry point for book-mutating operations. Submit
// blocks the caller until a pool worker has run the order through the
// asset's book under that asset's lock.
//
// The pool does not preserve submission order: two orders for the same
// asset submitted at nearly the same time may execute in either order.
// Callers needing strict sequencing must serialize their submissions.
type Engine struct {
	books Books

	tasks    chan *task
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	assetLocks sync.Map
}

func New(books Books, cfg *Config) *Engine {
	size := defaultPoolSize
	if cfg != nil && cfg.PoolSize > 0 {
		size = cfg.PoolSize
	}

	e := &Engine{
		books: books,
		tasks: make(chan *task),
		done:  make(chan struct{}),
	}

	e.wg.Add(size)
	for i := 0; i < size; i++ {
		go e.worker()
	}

	return e
}

// Stop drains the pool. Pending Submit calls fail with ErrStopped; work
// already dequeued runs to completion.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}

// Submit matches the order against its asset's book and rests any residual
// quantity, returning the produced trades and a snapshot of the order's
// final state. The call blocks until the scheduled work completes; once
// dequeued the work is never cancelled.
func (e *Engine) Submit(ctx context.Context, order *orderbook.Order) ([]*orderbook.Trade, orderbook.Order, error) {
	t := &task{ctx: ctx, order: order, resCh: make(chan result, 1)}

	select {
	case e.tasks <- t:
	case <-e.done:
		return nil, orderbook.Order{}, ErrStopped
	}

	r := <-t.resCh
	return r.trades, r.order, r.err
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			return
		case t := <-e.tasks:
			trades, snap, err := e.process(t.ctx, t.order)
			t.resCh <- result{trades: trades, order: snap, err: err}
		}
	}
}

// process runs one order through its asset's book. The asset lock is
// released on every exit path; a panic inside the match step surfaces as an
// error to the caller, and any trades already applied to the book before
// the failure are not rolled back.
func (e *Engine) process(ctx context.Context, order *orderbook.Order) (trades []*orderbook.Trade, snap orderbook.Order, err error) {
	mu := e.lockFor(order.Asset)
	mu.Lock()
	defer mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			trades = nil
			err = fmt.Errorf("match order %d asset %s: %v", order.ID, order.Asset, r)
		}
	}()

	trades, err = e.books.AddOrder(order)
	if err != nil {
		return nil, order.Snapshot(), err
	}
	order.ModifiedAt = time.Now().UTC()
	snap = order.Snapshot()

	logging.FromContext(ctx).Info("matching completed",
		zap.Int64("order_id", order.ID),
		zap.String("asset", order.Asset),
		zap.String("pending", snap.Pending.String()),
		zap.Int("trades", len(trades)))

	return trades, snap, nil
}

// lockFor returns the asset's mutex, creating it race-free on first use.
func (e *Engine) lockFor(asset string) *sync.Mutex {
	if mu, ok := e.assetLocks.Load(asset); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := e.assetLocks.LoadOrStore(asset, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
