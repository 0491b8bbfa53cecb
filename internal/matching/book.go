package matching

import "sync"

// Book is the pair of PriorityMaps for one symbol: a min-top ask queue
// and a max-top bid queue, each protected by its own lock. Exactly two
// locks exist per symbol and they are never held simultaneously — see
// Engine.AcceptOrder for the discipline that relies on this.
type Book struct {
	Symbol string

	askMu sync.RWMutex
	ask   *PriorityMap

	bidMu sync.RWMutex
	bid   *PriorityMap
}

// NewBook creates a fresh, empty Book for symbol. Calling it again for
// the same symbol (via Engine.RegisterSymbol) resets the book: any
// resting orders are discarded rather than preserved.
func NewBook(symbol string) *Book {
	return &Book{
		Symbol: symbol,
		ask:    NewPriorityMap(Ask),
		bid:    NewPriorityMap(Bid),
	}
}

// side returns the PriorityMap and lock for the given side without
// acquiring the lock; callers must lock/unlock themselves so that the
// "opposite lock, then own lock, never both" discipline is visible at
// the call site in engine.go.
func (b *Book) side(s Side) (*PriorityMap, *sync.RWMutex) {
	if s == Ask {
		return b.ask, &b.askMu
	}
	return b.bid, &b.bidMu
}

// Len returns the number of resting orders on side s without regard to
// expiry.
func (b *Book) Len(s Side) int {
	pm, mu := b.side(s)
	mu.RLock()
	defer mu.RUnlock()
	return pm.Size()
}
