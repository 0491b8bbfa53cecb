package matching

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one append-only entry of the engine's trade history.
type Trade struct {
	ID            string
	AcceptedOrder Order
	MatchedOrder  Order
	VolumeFilled  uint64
	FinalPrice    decimal.Decimal
	PriceGap      decimal.Decimal
	Time          time.Time
}

// History is the engine's append-only trade log. Entries are never
// mutated or reordered once appended.
type History struct {
	mu      sync.Mutex
	trades  []Trade
	publish chan<- Trade
}

// NewHistory creates an empty History. publish, if non-nil, receives a
// best-effort copy of every appended trade; a full channel drops the
// notification rather than blocking the caller, the same
// "trade channel full, dropping trade" treatment the teacher's
// engine_core.go gives its own TradeChannel. publish exists purely so
// something can observe fills without polling View; it is not a
// substitute for History itself.
func NewHistory(publish chan<- Trade) *History {
	return &History{publish: publish}
}

// Append adds a trade to the end of the log.
func (h *History) Append(t Trade) {
	h.mu.Lock()
	h.trades = append(h.trades, t)
	h.mu.Unlock()

	if h.publish == nil {
		return
	}
	select {
	case h.publish <- t:
	default:
	}
}

// View returns a snapshot of the full chronological trade list.
func (h *History) View() []Trade {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Trade, len(h.trades))
	copy(out, h.trades)
	return out
}

// Len returns the number of recorded trades.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.trades)
}
