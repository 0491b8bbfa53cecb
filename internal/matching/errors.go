package matching

import "errors"

// Sentinel errors surfaced by PriorityMap, Book, and Engine. None of
// these cause the engine to stop serving other requests: each is scoped
// to the single order or request that triggered it.
var (
	// ErrEmpty is returned by Peek/PopOrder on an empty PriorityMap.
	ErrEmpty = errors.New("matching: priority map is empty")

	// ErrDuplicateID is returned by PushOrder when the id already exists in
	// the map.
	ErrDuplicateID = errors.New("matching: duplicate order id in priority map")

	// ErrUnknownID is returned by Delete when the id is absent.
	ErrUnknownID = errors.New("matching: unknown order id in priority map")

	// ErrUnknownSymbol is returned when an order references a symbol
	// that was never registered with the engine.
	ErrUnknownSymbol = errors.New("matching: unknown symbol")

	// ErrDuplicateOrderID is returned when accept_order is called with
	// an id already present in the engine's db.
	ErrDuplicateOrderID = errors.New("matching: duplicate order id")

	// ErrUnknownOrderID is returned when cancel_order references an id
	// not present in the engine's db.
	ErrUnknownOrderID = errors.New("matching: unknown order id")

	// ErrMalformed is returned for missing or unparseable input fields.
	ErrMalformed = errors.New("matching: malformed order")

	// ErrQueueInvariantViolation indicates a PriorityMap/Book invariant
	// was found broken. Its presence always indicates a bug; it is
	// fatal for the affected request only, never for the engine.
	ErrQueueInvariantViolation = errors.New("matching: queue invariant violation")
)
