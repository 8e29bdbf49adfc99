package ring_test

import (
	"testing"

	"github.com/djdv/go-s3fifo/internal/ring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Parallel()
	t.Run("fifo order", func(t *testing.T) {
		t.Parallel()
		b := ring.New[int](4)
		for i := 1; i <= 4; i++ {
			require.True(t, b.PushBack(i))
		}
		assert.True(t, b.Full())
		assert.False(t, b.PushBack(5), "push into a full buffer")
		for i := 1; i <= 4; i++ {
			got, ok := b.PopFront()
			require.True(t, ok)
			assert.Equal(t, i, got)
		}
		assert.True(t, b.Empty())
		_, ok := b.PopFront()
		assert.False(t, ok, "pop from an empty buffer")
	})
	t.Run("wraparound", func(t *testing.T) {
		t.Parallel()
		const capacity = 3
		b := ring.New[int](capacity)
		// Interleave pushes and pops well past the capacity so the
		// cursors wrap the backing array several times.
		next := 0
		for i := range capacity * 5 {
			require.True(t, b.PushBack(i))
			if b.Full() {
				got, ok := b.PopFront()
				require.True(t, ok)
				assert.Equal(t, next, got)
				next++
			}
		}
		assert.Equal(t, capacity-1, b.Len())
	})
	t.Run("front peeks", func(t *testing.T) {
		t.Parallel()
		b := ring.New[string](2)
		_, ok := b.Front()
		assert.False(t, ok)
		b.PushBack("head")
		b.PushBack("tail")
		got, ok := b.Front()
		require.True(t, ok)
		assert.Equal(t, "head", got)
		assert.Equal(t, 2, b.Len(), "peek must not consume")
	})
	t.Run("accounting", func(t *testing.T) {
		t.Parallel()
		b := ring.New[int](8)
		assert.Equal(t, 8, b.Cap())
		assert.True(t, b.Empty())
		b.PushBack(1)
		assert.Equal(t, 1, b.Len())
		assert.False(t, b.Empty())
		assert.False(t, b.Full())
	})
	t.Run("do", func(t *testing.T) {
		t.Parallel()
		b := ring.New[int](4)
		for i := range 3 {
			b.PushBack(i)
		}
		var seen []int
		b.Do(func(v int) bool {
			seen = append(seen, v)
			return true
		})
		assert.Equal(t, []int{0, 1, 2}, seen)
		seen = seen[:0]
		b.Do(func(v int) bool {
			seen = append(seen, v)
			return false
		})
		assert.Equal(t, []int{0}, seen, "yield returning false stops early")
	})
}
