package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetCreatesOnce(t *testing.T) {
	m := NewManager(time.Hour)

	a := m.Get("session-a")
	b := m.Get("session-a")
	other := m.Get("session-b")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, m.Len())
}

func TestManagerDrop(t *testing.T) {
	m := NewManager(time.Hour)
	m.Get("session-a")

	m.Drop("session-a")

	assert.Equal(t, 0, m.Len())
}

func TestManagerSweepRemovesIdleCarts(t *testing.T) {
	m := NewManager(10 * time.Millisecond)

	m.Get("stale")
	time.Sleep(30 * time.Millisecond)
	fresh := m.Get("fresh")
	fresh.AddItem(salmon(), 1, "Small Fillet")

	removed := m.Sweep()

	require.Equal(t, []string{"stale"}, removed)
	assert.Equal(t, 1, m.Len())
}
