package s3fifo

import "github.com/djdv/go-s3fifo/internal/ring"

type (
	// ghostTag is one ghost FIFO slot. The generation distinguishes
	// a slot from older slots left behind for the same key after
	// a remove+readmit cycle, so stale slots never count as members.
	ghostTag[Key comparable] struct {
		key Key
		gen uint64
	}
	// ghostQueue remembers keys recently evicted from the small queue.
	// It stores bare keys only; membership is the signal, values are
	// never retained. Bounded: admitting to a full queue forgets the
	// oldest key first.
	ghostQueue[Key comparable] struct {
		fifo  *ring.Buffer[ghostTag[Key]]
		index map[Key]uint64
		gen   uint64
	}
)

func newGhostQueue[Key comparable](capacity int) *ghostQueue[Key] {
	return &ghostQueue[Key]{
		fifo:  ring.New[ghostTag[Key]](capacity),
		index: make(map[Key]uint64, capacity),
	}
}

func (g *ghostQueue[Key]) contains(key Key) bool {
	_, ok := g.index[key]
	return ok
}

// remove forgets key. The key's FIFO slot (if any) goes stale
// and is reclaimed when it reaches the head.
func (g *ghostQueue[Key]) remove(key Key) {
	delete(g.index, key)
}

// admit appends key, dropping the oldest slot first when full.
// Keys already present are left in place.
func (g *ghostQueue[Key]) admit(key Key) {
	if g.contains(key) {
		return
	}
	if g.fifo.Full() {
		g.dropOldest()
	}
	g.gen++
	pushed := g.fifo.PushBack(ghostTag[Key]{key: key, gen: g.gen})
	if debugging {
		assert(pushed, "ghost queue full after dropping its head")
	}
	g.index[key] = g.gen
}

func (g *ghostQueue[Key]) dropOldest() {
	tag, ok := g.fifo.PopFront()
	if debugging {
		assert(ok, "drop from empty ghost queue")
	}
	if !ok {
		return
	}
	// A mismatched generation means the slot was already
	// superseded by remove+admit; the index entry (if any)
	// belongs to a newer slot and must survive.
	if gen, member := g.index[tag.key]; member && gen == tag.gen {
		delete(g.index, tag.key)
	}
}

func (g *ghostQueue[Key]) len() int { return len(g.index) }
