package matching

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Metrics is the subset of observability hooks the engine calls into.
// It is satisfied by internal/monitoring's Prometheus collector; the
// engine itself never imports Prometheus so the core stays free of the
// HTTP/observability stack.
type Metrics interface {
	OrderAccepted(symbol string, side Side)
	OrderRejected(symbol string, reason string)
	OrderCancelled(symbol string, side Side)
	TradeExecuted(symbol string, volume uint64)
	MatchLatency(symbol string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) OrderAccepted(string, Side)        {}
func (noopMetrics) OrderRejected(string, string)      {}
func (noopMetrics) OrderCancelled(string, Side)       {}
func (noopMetrics) TradeExecuted(string, uint64)      {}
func (noopMetrics) MatchLatency(string, time.Duration) {}

// EngineConfig configures trade channel buffering and similar knobs,
// grounded in the teacher's EngineConfig (internal/orders/matching).
type EngineConfig struct {
	TradeChannelBuffer int
}

// DefaultEngineConfig mirrors the teacher's DefaultTradeChannelBuffer.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{TradeChannelBuffer: 10000}
}

// Engine owns the set of Books, the global order_id -> Order index
// (the "db"), and the append-only trade history. It exposes four
// operations: AcceptOrder, CancelOrder, ViewOrders, ViewHistory.
type Engine struct {
	logger *zap.Logger

	booksMu sync.RWMutex
	books   map[string]*Book

	dbMu sync.RWMutex
	db   map[OrderID]*Order

	history      *History
	TradeChannel chan Trade

	metrics Metrics

	now func() time.Time
}

// NewEngine creates an Engine with no registered symbols.
func NewEngine(logger *zap.Logger, cfg *EngineConfig, metrics Metrics) *Engine {
	if cfg == nil {
		cfg = DefaultEngineConfig()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	tradeCh := make(chan Trade, cfg.TradeChannelBuffer)
	return &Engine{
		logger:       logger,
		books:        make(map[string]*Book),
		db:           make(map[OrderID]*Order),
		history:      NewHistory(tradeCh),
		TradeChannel: tradeCh,
		metrics:      metrics,
		now:          time.Now,
	}
}

// RegisterSymbol adds symbol to the tradable set, or resets its books if
// already registered. Re-registration is a deterministic reset, not an
// error.
func (e *Engine) RegisterSymbol(symbol string) {
	e.booksMu.Lock()
	defer e.booksMu.Unlock()
	e.books[symbol] = NewBook(symbol)
}

func (e *Engine) bookFor(symbol string) (*Book, bool) {
	e.booksMu.RLock()
	defer e.booksMu.RUnlock()
	b, ok := e.books[symbol]
	return b, ok
}

// AcceptOrder stamps, admits, and matches order. It mutates order in
// place: on return, order.Volume holds whatever volume, if any, remains
// unmatched (and, if > 0, is resting in its own side's book).
func (e *Engine) AcceptOrder(order *Order) ([]Trade, error) {
	if order.Volume == 0 || order.Symbol == "" {
		return nil, ErrMalformed
	}

	book, ok := e.bookFor(order.Symbol)
	if !ok {
		e.metrics.OrderRejected(order.Symbol, "unknown_symbol")
		return nil, ErrUnknownSymbol
	}

	order.Time = e.now()

	e.dbMu.Lock()
	if _, exists := e.db[order.ID]; exists {
		e.dbMu.Unlock()
		e.metrics.OrderRejected(order.Symbol, "duplicate_order_id")
		return nil, ErrDuplicateOrderID
	}
	e.db[order.ID] = order
	e.dbMu.Unlock()

	start := e.now()
	trades := e.match(book, order)
	e.metrics.MatchLatency(order.Symbol, e.now().Sub(start))

	if order.Volume > 0 {
		pm, mu := book.side(order.Side)
		mu.Lock()
		// PushOrder can only fail with ErrDuplicateID, which would mean
		// the same id is resting on this side already — impossible
		// because accept_order is the only writer of new ids and the
		// db-level duplicate check above already rejected a repeat.
		if err := pm.PushOrder(order); err != nil {
			mu.Unlock()
			e.logger.Error("queue invariant violation pushing own-side order",
				zap.Uint64("order_id", uint64(order.ID)),
				zap.String("symbol", order.Symbol),
				zap.Error(err))
			return trades, ErrQueueInvariantViolation
		}
		mu.Unlock()
	}

	e.metrics.OrderAccepted(order.Symbol, order.Side)
	for _, t := range trades {
		e.metrics.TradeExecuted(order.Symbol, t.VolumeFilled)
	}
	return trades, nil
}

// match runs the match loop against the opposite side of book for
// incoming, appending a Trade for every fill and lazily discarding
// expired resting orders it encounters at the top. It holds only the
// opposite side's lock for its entire duration and releases it before
// returning, never acquiring incoming's own side lock within this call.
func (e *Engine) match(book *Book, incoming *Order) []Trade {
	other := incoming.Side.Opposite()
	pm, mu := book.side(other)

	mu.Lock()
	defer mu.Unlock()

	var trades []Trade
	now := e.now()

	for incoming.Volume > 0 {
		top, err := pm.Peek()
		if err != nil {
			break // opposite queue is empty
		}

		if top.Expired(now) {
			if _, perr := pm.PopOrder(); perr != nil {
				e.logger.Error("queue invariant violation popping expired top",
					zap.Error(perr))
			}
			e.logger.Info("order expired at top of book, discarded",
				zap.Uint64("order_id", uint64(top.ID)),
				zap.String("symbol", book.Symbol),
				zap.String("side", other.String()))
			continue
		}

		if !crosses(incoming, top) {
			break
		}

		if _, perr := pm.PopOrder(); perr != nil {
			e.logger.Error("queue invariant violation popping match top",
				zap.Error(perr))
			break
		}

		filled := top.Volume
		if incoming.Volume < filled {
			filled = incoming.Volume
		}

		acceptedBefore := incoming.Snapshot()
		matchedBefore := top.Snapshot()

		incoming.Volume -= filled
		top.Volume -= filled

		gap := incoming.Price.Sub(top.Price).Abs()
		trades = append(trades, Trade{
			ID:            uuid.NewString(),
			AcceptedOrder: acceptedBefore,
			MatchedOrder:  matchedBefore,
			VolumeFilled:  filled,
			FinalPrice:    top.Price,
			PriceGap:      gap,
			Time:          now,
		})

		e.logger.Debug("trade executed",
			zap.Uint64("accepted_id", uint64(incoming.ID)),
			zap.Uint64("matched_id", uint64(top.ID)),
			zap.Uint64("volume_filled", filled),
			zap.String("final_price", top.Price.String()))

		if top.Volume > 0 {
			if perr := pm.PushOrder(top); perr != nil {
				e.logger.Error("queue invariant violation re-pushing residual",
					zap.Error(perr))
			}
		}
	}

	for _, t := range trades {
		e.history.Append(t)
	}
	return trades
}

// crosses reports whether incoming crosses the resting top of the
// opposite book: incoming ask price <= resting top price, or incoming
// bid price >= resting top price.
func crosses(incoming, top *Order) bool {
	if incoming.Side == Ask {
		return incoming.Price.LessThanOrEqual(top.Price)
	}
	return incoming.Price.GreaterThanOrEqual(top.Price)
}

// CancelOrder removes order_id from its resting side and from db,
// returning a snapshot of the cancelled order. A cancel that arrives
// after the order has been fully filled (and thus is no longer in any
// book) is a benign success, not an error.
func (e *Engine) CancelOrder(id OrderID) (Order, error) {
	e.dbMu.Lock()
	order, ok := e.db[id]
	if !ok {
		e.dbMu.Unlock()
		return Order{}, ErrUnknownOrderID
	}
	delete(e.db, id)
	e.dbMu.Unlock()

	book, ok := e.bookFor(order.Symbol)
	if ok {
		pm, mu := book.side(order.Side)
		mu.Lock()
		pm.Delete(id) // benign if absent: already fully filled
		mu.Unlock()
	}

	e.metrics.OrderCancelled(order.Symbol, order.Side)
	return order.Snapshot(), nil
}

// BookView is the rendered result of ViewOrders: ask worst-to-best,
// then bid best-to-worst, so it reads top-to-bottom like a conventional
// depth display.
type BookView struct {
	Symbol string
	Asks   []Order // worst ask first, best ask last
	Bids   []Order // best bid first, worst bid last
}

// ViewOrders returns a snapshot of up to size resting orders on each
// side of symbol's book. Expired entries are filtered out unless
// includeExpired is set. ViewOrders has no side effect on the book.
func (e *Engine) ViewOrders(symbol string, size int, includeExpired bool) (BookView, error) {
	book, ok := e.bookFor(symbol)
	if !ok {
		return BookView{}, ErrUnknownSymbol
	}

	now := e.now()

	book.askMu.RLock()
	askTop := book.ask.TopN(size)
	book.askMu.RUnlock()

	book.bidMu.RLock()
	bidTop := book.bid.TopN(size)
	book.bidMu.RUnlock()

	askTop = filterExpired(askTop, now, includeExpired)
	bidTop = filterExpired(bidTop, now, includeExpired)

	// askTop/bidTop are in best-first priority order. The ask side
	// renders worst-first (reverse) so the best ask sits adjacent to
	// the separator, mirroring a conventional depth display.
	reversed := make([]Order, len(askTop))
	for i, o := range askTop {
		reversed[len(askTop)-1-i] = o
	}

	return BookView{Symbol: symbol, Asks: reversed, Bids: bidTop}, nil
}

func filterExpired(orders []Order, now time.Time, includeExpired bool) []Order {
	if includeExpired {
		return orders
	}
	out := orders[:0:0]
	for _, o := range orders {
		if !o.Expired(now) {
			out = append(out, o)
		}
	}
	return out
}

// ViewHistory returns the full chronological trade list.
func (e *Engine) ViewHistory() []Trade {
	return e.history.View()
}
