// Package ring is a fixed-capacity circular buffer, specialized
// as the FIFO queue backing the S3-FIFO eviction engine.
package ring

// A Buffer is a bounded FIFO queue backed by a fixed array.
// Elements are pushed at the tail and popped from the head;
// both cursors are plain indexes, so every operation is
// index arithmetic with no pointer relinking.
// The zero value is unusable; construct with [New].
type Buffer[T any] struct {
	items []T
	head  int
	count int
}

// New creates a Buffer holding at most capacity elements.
// Capacity must be positive.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{
		items: make([]T, capacity),
	}
}

// PushBack appends item at the tail and reports whether
// it was enqueued. It returns false only when the buffer is full.
func (b *Buffer[T]) PushBack(item T) bool {
	if b.count == len(b.items) {
		return false
	}
	tail := b.index(b.count)
	b.items[tail] = item
	b.count++
	return true
}

// PopFront removes and returns the head element.
// It returns the zero value and false when the buffer is empty.
func (b *Buffer[T]) PopFront() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	item := b.items[b.head]
	b.items[b.head] = zero // Release the reference for collection.
	b.head = b.index(1)
	b.count--
	return item, true
}

// Front returns the head element without removing it.
func (b *Buffer[T]) Front() (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.items[b.head], true
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity of the buffer.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Full reports whether another PushBack would be refused.
func (b *Buffer[T]) Full() bool { return b.count == len(b.items) }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.count == 0 }

// Do calls yield on each buffered element in FIFO order,
// stopping early if yield returns false.
// The behavior of Do is undefined if yield modifies b.
func (b *Buffer[T]) Do(yield func(T) bool) {
	for i := range b.count {
		if !yield(b.items[b.index(i)]) {
			return
		}
	}
}

func (b *Buffer[T]) index(offset int) int {
	return (b.head + offset) % len(b.items)
}
