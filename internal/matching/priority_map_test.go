package matching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkOrder(id OrderID, price string, vol uint64, t time.Time) *Order {
	return &Order{
		ID:     id,
		Symbol: "AAPL",
		Price:  decimal.RequireFromString(price),
		Volume: vol,
		Time:   t,
	}
}

func TestPriorityMap_AskOrdersLowestPriceFirst(t *testing.T) {
	pm := NewPriorityMap(Ask)
	base := time.Now()

	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base)))
	require.NoError(t, pm.PushOrder(mkOrder(2, "9.00", 5, base.Add(time.Second))))
	require.NoError(t, pm.PushOrder(mkOrder(3, "9.50", 5, base.Add(2*time.Second))))

	top, err := pm.Peek()
	require.NoError(t, err)
	assert.Equal(t, OrderID(2), top.ID)

	first, err := pm.PopOrder()
	require.NoError(t, err)
	assert.Equal(t, OrderID(2), first.ID)

	second, err := pm.PopOrder()
	require.NoError(t, err)
	assert.Equal(t, OrderID(3), second.ID)

	third, err := pm.PopOrder()
	require.NoError(t, err)
	assert.Equal(t, OrderID(1), third.ID)
}

func TestPriorityMap_BidOrdersHighestPriceFirst(t *testing.T) {
	pm := NewPriorityMap(Bid)
	base := time.Now()

	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base)))
	require.NoError(t, pm.PushOrder(mkOrder(2, "12.00", 5, base.Add(time.Second))))
	require.NoError(t, pm.PushOrder(mkOrder(3, "11.00", 5, base.Add(2*time.Second))))

	top, err := pm.Peek()
	require.NoError(t, err)
	assert.Equal(t, OrderID(2), top.ID)
}

func TestPriorityMap_PriceTiesBrokenByTime(t *testing.T) {
	pm := NewPriorityMap(Bid)
	base := time.Now()

	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base.Add(time.Second))))
	require.NoError(t, pm.PushOrder(mkOrder(2, "10.00", 5, base)))

	top, err := pm.Peek()
	require.NoError(t, err)
	assert.Equal(t, OrderID(2), top.ID, "earlier order at the same price must win")
}

func TestPriorityMap_PushDuplicateIDFails(t *testing.T) {
	pm := NewPriorityMap(Ask)
	base := time.Now()

	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base)))
	err := pm.PushOrder(mkOrder(1, "11.00", 5, base))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestPriorityMap_PeekPopOnEmptyFail(t *testing.T) {
	pm := NewPriorityMap(Ask)

	_, err := pm.Peek()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = pm.PopOrder()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPriorityMap_DeleteByIDPreservesHeapInvariant(t *testing.T) {
	pm := NewPriorityMap(Ask)
	base := time.Now()

	ids := []OrderID{1, 2, 3, 4, 5}
	prices := []string{"10.00", "8.00", "12.00", "9.00", "11.00"}
	for i, id := range ids {
		require.NoError(t, pm.PushOrder(mkOrder(id, prices[i], 1, base.Add(time.Duration(i)*time.Second))))
	}

	removed, err := pm.Delete(3)
	require.NoError(t, err)
	assert.Equal(t, OrderID(3), removed.ID)
	assert.Equal(t, 4, pm.Size())

	_, err = pm.Delete(3)
	assert.ErrorIs(t, err, ErrUnknownID)

	var seen []OrderID
	for !pm.Empty() {
		o, err := pm.PopOrder()
		require.NoError(t, err)
		seen = append(seen, o.ID)
	}
	// Ascending price order, id 3 excluded: 2 (8.00), 4 (9.00), 1 (10.00), 5 (11.00)
	assert.Equal(t, []OrderID{2, 4, 1, 5}, seen)
}

func TestPriorityMap_TopNDoesNotMutateLiveStructure(t *testing.T) {
	pm := NewPriorityMap(Bid)
	base := time.Now()

	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base)))
	require.NoError(t, pm.PushOrder(mkOrder(2, "12.00", 5, base.Add(time.Second))))
	require.NoError(t, pm.PushOrder(mkOrder(3, "11.00", 5, base.Add(2*time.Second))))

	snapshot := pm.TopN(2)
	require.Len(t, snapshot, 2)
	assert.Equal(t, OrderID(2), snapshot[0].ID)
	assert.Equal(t, OrderID(3), snapshot[1].ID)

	assert.Equal(t, 3, pm.Size(), "TopN must not remove elements from the live map")

	top, err := pm.Peek()
	require.NoError(t, err)
	assert.Equal(t, OrderID(2), top.ID)
}

func TestPriorityMap_TopNZeroAndNegative(t *testing.T) {
	pm := NewPriorityMap(Ask)
	base := time.Now()
	require.NoError(t, pm.PushOrder(mkOrder(1, "10.00", 5, base)))

	assert.Empty(t, pm.TopN(0))
	assert.Len(t, pm.TopN(-1), 1)
	assert.Len(t, pm.TopN(100), 1)
}
