package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_NewBookStartsEmpty(t *testing.T) {
	b := NewBook("AAPL")
	assert.Equal(t, 0, b.Len(Ask))
	assert.Equal(t, 0, b.Len(Bid))
}

func TestBook_SideReturnsDistinctMapsAndLocks(t *testing.T) {
	b := NewBook("AAPL")

	askPM, askMu := b.side(Ask)
	bidPM, bidMu := b.side(Bid)

	assert.NotSame(t, askPM, bidPM)
	assert.NotSame(t, askMu, bidMu)

	askMu.Lock()
	require.NoError(t, askPM.PushOrder(mkOrder(1, "10.00", 5, time.Now())))
	askMu.Unlock()

	assert.Equal(t, 1, b.Len(Ask))
	assert.Equal(t, 0, b.Len(Bid))
}

func TestBook_ConcurrentAccessToDifferentSidesDoesNotDeadlock(t *testing.T) {
	b := NewBook("AAPL")
	done := make(chan struct{})

	go func() {
		_, mu := b.side(Ask)
		mu.Lock()
		defer mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		close(done)
	}()

	_, mu := b.side(Bid)
	mu.Lock()
	mu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ask-side goroutine did not finish while the bid-side lock was used")
	}
}
