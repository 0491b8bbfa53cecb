package matching

import "container/heap"

// PriorityMap is a binary heap over *Order, ordered by the Side's
// comparator, augmented with an id -> slot index so any element can be
// located and removed by OrderID in O(log n). It is the central data
// structure of a Book; Book and Engine are thin consumers of it.
//
// PriorityMap is not safe for concurrent use; callers (Book) serialize
// access with a lock.
type PriorityMap struct {
	side   Side
	orders []*Order
	index  map[OrderID]int
}

// NewPriorityMap creates an empty PriorityMap for the given side. Ask
// maps are min-top (lowest price first), Bid maps are max-top.
func NewPriorityMap(side Side) *PriorityMap {
	pm := &PriorityMap{
		side:  side,
		index: make(map[OrderID]int),
	}
	heap.Init(pm)
	return pm
}

// heap.Interface implementation. These are exported-receiver methods
// because container/heap requires them on the concrete type, but they
// are not meant to be called directly by Book/Engine code — use
// PushOrder, PopOrder, Peek, Delete, TopN instead.

func (pm *PriorityMap) Len() int { return len(pm.orders) }

func (pm *PriorityMap) Less(i, j int) bool {
	return less(pm.side, pm.orders[i], pm.orders[j])
}

func (pm *PriorityMap) Swap(i, j int) {
	pm.orders[i], pm.orders[j] = pm.orders[j], pm.orders[i]
	pm.orders[i].index = i
	pm.orders[j].index = j
	pm.index[pm.orders[i].ID] = i
	pm.index[pm.orders[j].ID] = j
}

func (pm *PriorityMap) heapPush(x interface{}) {
	o := x.(*Order)
	o.index = len(pm.orders)
	pm.orders = append(pm.orders, o)
	pm.index[o.ID] = o.index
}

func (pm *PriorityMap) heapPop() interface{} {
	n := len(pm.orders)
	o := pm.orders[n-1]
	pm.orders[n-1] = nil
	o.index = -1
	pm.orders = pm.orders[:n-1]
	return o
}

// container/heap calls these two as Push/Pop; PriorityMap's own public
// API (below) wraps heap.Push/heap.Pop so callers never touch
// container/heap directly.
func (pm *PriorityMap) Push(x interface{}) { pm.heapPush(x) }
func (pm *PriorityMap) Pop() interface{}   { return pm.heapPop() }

// PushOrder inserts order under order.ID. Fails with ErrDuplicateID if
// that id is already present.
func (pm *PriorityMap) PushOrder(order *Order) error {
	if _, exists := pm.index[order.ID]; exists {
		return ErrDuplicateID
	}
	heap.Push(pm, order)
	return nil
}

// Peek returns the top element without removing it.
func (pm *PriorityMap) Peek() (*Order, error) {
	if len(pm.orders) == 0 {
		return nil, ErrEmpty
	}
	return pm.orders[0], nil
}

// PopOrder removes and returns the top element.
func (pm *PriorityMap) PopOrder() (*Order, error) {
	if len(pm.orders) == 0 {
		return nil, ErrEmpty
	}
	o := heap.Pop(pm).(*Order)
	delete(pm.index, o.ID)
	return o, nil
}

// Delete locates the order by id, removes it, and restores the heap
// invariant. Fails with ErrUnknownID if id is absent.
func (pm *PriorityMap) Delete(id OrderID) (*Order, error) {
	slot, ok := pm.index[id]
	if !ok {
		return nil, ErrUnknownID
	}
	removed := heap.Remove(pm, slot).(*Order)
	delete(pm.index, id)
	return removed, nil
}

// TopN returns a snapshot of up to n top elements in priority order
// without mutating pm. n < 0 returns all elements; n == 0 returns an
// empty snapshot. The live structure is never touched: TopN operates on
// a copy of the backing array.
func (pm *PriorityMap) TopN(n int) []Order {
	if n == 0 || len(pm.orders) == 0 {
		return nil
	}
	if n < 0 || n > len(pm.orders) {
		n = len(pm.orders)
	}

	scratch := &PriorityMap{
		side:   pm.side,
		orders: append([]*Order(nil), pm.orders...),
		index:  make(map[OrderID]int, len(pm.orders)),
	}
	for i, o := range scratch.orders {
		cp := *o
		scratch.orders[i] = &cp
		scratch.index[cp.ID] = i
	}

	out := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		o, err := scratch.PopOrder()
		if err != nil {
			break
		}
		out = append(out, o.Snapshot())
	}
	return out
}

// Size reports the number of live elements.
func (pm *PriorityMap) Size() int { return len(pm.orders) }

// Empty reports whether the map holds no elements.
func (pm *PriorityMap) Empty() bool { return len(pm.orders) == 0 }
