package matching

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side identifies which queue of a Book an Order belongs to.
type Side int

const (
	// Ask is a sell offer, ranked lowest-price-first.
	Ask Side = iota
	// Bid is a buy offer, ranked highest-price-first.
	Bid
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Opposite returns the side an incoming order of this side matches against.
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

// OrderID is the caller-assigned identity of an order. The engine treats
// it as opaque and never generates one itself.
type OrderID uint64

// Order is the value record the engine matches, ranks, and fills.
type Order struct {
	ID         OrderID
	Symbol     string
	Side       Side
	Price      decimal.Decimal
	Volume     uint64
	Account    string
	Time       time.Time
	ExpireSec  uint64

	// index is the order's current slot in its PriorityMap's backing
	// array. It is maintained by PriorityMap and must not be read or
	// written by callers.
	index int
}

// Snapshot returns a value copy of the order safe to retain after the
// original is mutated (e.g. for trade records, which must capture the
// pre-decrement state).
func (o *Order) Snapshot() Order {
	cp := *o
	cp.index = 0
	return cp
}

// ExpiresAt returns the instant at which the order stops being valid.
func (o *Order) ExpiresAt() time.Time {
	return o.Time.Add(time.Duration(o.ExpireSec) * time.Second)
}

// Expired reports whether the order is no longer valid at instant now.
func (o *Order) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt())
}

// less defines the priority ordering for a Side's queue: price first
// (direction depends on side), then earlier time, then a side-dependent
// volume tie-break, finally order id to guarantee totality.
func less(side Side, a, b *Order) bool {
	if !a.Price.Equal(b.Price) {
		if side == Ask {
			return a.Price.LessThan(b.Price)
		}
		return a.Price.GreaterThan(b.Price)
	}
	if !a.Time.Equal(b.Time) {
		return a.Time.Before(b.Time)
	}
	if a.Volume != b.Volume {
		// Bid: larger volume wins. Ask: smaller volume wins. Inherited
		// as-is from the source system; not a deliberate market-design
		// choice, only a deterministic total-order tie-break.
		if side == Bid {
			return a.Volume > b.Volume
		}
		return a.Volume < b.Volume
	}
	return a.ID < b.ID
}
