package s3fifo

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGhostQueue(t *testing.T) {
	t.Parallel()
	t.Run("membership", func(t *testing.T) {
		t.Parallel()
		g := newGhostQueue[string](4)
		tassert.False(t, g.contains("a"))
		g.admit("a")
		tassert.True(t, g.contains("a"))
		tassert.Equal(t, 1, g.len())
		g.remove("a")
		tassert.False(t, g.contains("a"))
		tassert.Zero(t, g.len())
	})
	t.Run("bounded", func(t *testing.T) {
		t.Parallel()
		const capacity = 3
		g := newGhostQueue[int](capacity)
		for i := range capacity + 2 {
			g.admit(i)
			tassert.LessOrEqual(t, g.len(), capacity)
		}
		// Oldest memories are forgotten first.
		tassert.False(t, g.contains(0))
		tassert.False(t, g.contains(1))
		tassert.True(t, g.contains(2))
		tassert.True(t, g.contains(3))
		tassert.True(t, g.contains(4))
	})
	t.Run("idempotent admit", func(t *testing.T) {
		t.Parallel()
		g := newGhostQueue[string](2)
		g.admit("a")
		g.admit("a")
		g.admit("b")
		// Readmitting a member must not burn a slot.
		tassert.True(t, g.contains("a"))
		tassert.True(t, g.contains("b"))
	})
	t.Run("stale slots", func(t *testing.T) {
		t.Parallel()
		// A remove+admit cycle leaves a stale FIFO slot behind.
		// Its generation tag no longer matches the index, so
		// reclaiming it must not forget the newer record.
		g := newGhostQueue[string](2)
		g.admit("a")
		g.remove("a")
		g.admit("a") // FIFO: [a(stale), a(current)].
		g.admit("b") // Drops the stale slot; "a" stays a member.
		tassert.True(t, g.contains("a"))
		tassert.True(t, g.contains("b"))
		g.admit("c") // Drops the current "a" slot.
		require.False(t, g.contains("a"))
		tassert.True(t, g.contains("b"))
		tassert.True(t, g.contains("c"))
	})
}
