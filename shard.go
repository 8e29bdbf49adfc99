package s3fifo

import (
	"math"
	"sync"

	"github.com/djdv/go-s3fifo/internal/ring"
)

// maxFrequency is the saturation point of the per-entry hit counter.
const maxFrequency = 3

type (
	location uint8
	// entry is the unit of residency. A live entry is referenced by
	// exactly one queue; movement between queues is a transfer of the
	// same pointer, never a copy into both.
	entry[Key comparable, Value any] struct {
		key   Key
		value Value
		freq  uint8
		where location
		// dead marks an entry removed from the table while its
		// queue slot is still occupied. Ring buffers cannot unlink
		// interior elements, so removal tombstones instead; the
		// slot is reclaimed when an eviction scan pops it.
		dead bool
	}
	// shard is an independent partition of the cache: one entry
	// table, one small/main/ghost queue set, and one lock.
	shard[Key comparable, Value any] struct {
		mu    sync.Mutex
		table map[Key]*entry[Key, Value]
		small *ring.Buffer[*entry[Key, Value]]
		main  *ring.Buffer[*entry[Key, Value]]
		ghost *ghostQueue[Key]
		stats Stats
	}
)

const (
	locationSmall location = iota
	locationMain
)

// newShard splits capacity between the small and main queues by
// smallRatio, clamped so both queues hold at least one entry.
// The ghost queue is sized to the main queue's capacity.
func newShard[Key comparable, Value any](capacity int, smallRatio float64) *shard[Key, Value] {
	smallCapacity := min(
		max(int(math.Round(float64(capacity)*smallRatio)), 1),
		capacity-1,
	)
	mainCapacity := capacity - smallCapacity
	return &shard[Key, Value]{
		table: make(map[Key]*entry[Key, Value], capacity),
		small: ring.New[*entry[Key, Value]](smallCapacity),
		main:  ring.New[*entry[Key, Value]](mainCapacity),
		ghost: newGhostQueue[Key](mainCapacity),
	}
}

// get returns the live value for key, bumping its frequency.
// The counter bump is the only mutation on the read path;
// no entry moves between queues.
func (s *shard[Key, Value]) get(key Key) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ent, ok := s.table[key]; ok {
		if ent.freq < maxFrequency {
			ent.freq++
		}
		s.stats.Hits++
		return ent.value, true
	}
	s.stats.Misses++
	var zero Value
	return zero, false
}

// set inserts or updates key with value.
func (s *shard[Key, Value]) set(key Key, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if debugging {
		defer s.checkInvariants()
	}
	if ent, ok := s.table[key]; ok {
		// Overwrite in place: a combined write+access.
		// Location and queue position are untouched.
		ent.value = value
		if ent.freq < maxFrequency {
			ent.freq++
		}
		return
	}
	if s.ghost.contains(key) {
		// The key was evicted from small recently; a second
		// admission attempt earns the main queue directly.
		s.ghost.remove(key)
		s.admitMain(&entry[Key, Value]{
			key:   key,
			value: value,
			where: locationMain,
		})
		s.stats.GhostAdmissions++
		return
	}
	for s.small.Full() {
		s.evictSmall()
	}
	ent := &entry[Key, Value]{key: key, value: value, where: locationSmall}
	pushed := s.small.PushBack(ent)
	if debugging {
		assert(pushed, "small queue full after eviction")
	}
	s.table[key] = ent
}

// admitMain appends ent to the main queue,
// evicting via second chance until room exists.
func (s *shard[Key, Value]) admitMain(ent *entry[Key, Value]) {
	for s.main.Full() {
		s.evictMain()
	}
	pushed := s.main.PushBack(ent)
	if debugging {
		assert(pushed, "main queue full after eviction")
	}
	s.table[ent.key] = ent
}

// evictSmall pops the small head, freeing at least one slot.
// A head hit during probation is promoted to main with its frequency
// reset to 1 (avoiding immediate re-eviction there); an unproven head
// drops its value and leaves a bare key in the ghost queue.
func (s *shard[Key, Value]) evictSmall() {
	ent, ok := s.small.PopFront()
	if debugging {
		assert(ok, "evict from empty small queue")
	}
	if !ok || ent.dead {
		return // Tombstone pop alone reclaims the slot.
	}
	if ent.freq >= 1 {
		ent.freq = 1
		ent.where = locationMain
		s.admitMain(ent)
		return
	}
	delete(s.table, ent.key)
	s.ghost.admit(ent.key)
	s.stats.Evictions++
}

// evictMain runs the second-chance scan until one main slot is freed.
// Heads with nonzero frequency pay one unit and recirculate; the scan
// terminates because each pass strictly decreases the queue's
// frequency sum. Main evictions leave no ghost record.
func (s *shard[Key, Value]) evictMain() {
	for {
		ent, ok := s.main.PopFront()
		if debugging {
			assert(ok, "evict from empty main queue")
		}
		if !ok || ent.dead {
			return
		}
		if ent.freq > 0 {
			ent.freq--
			pushed := s.main.PushBack(ent)
			if debugging {
				assert(pushed, "requeue into full main queue")
			}
			continue
		}
		delete(s.table, ent.key)
		s.stats.Evictions++
		return
	}
}

// remove deletes key from whichever structure holds it and returns
// the removed value. Absent keys are a no-op.
func (s *shard[Key, Value]) remove(key Key) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if debugging {
		defer s.checkInvariants()
	}
	var zero Value
	if ent, ok := s.table[key]; ok {
		delete(s.table, key)
		ent.dead = true
		value := ent.value
		ent.value = zero // Release the reference for collection.
		return value, true
	}
	s.ghost.remove(key)
	return zero, false
}

func (s *shard[Key, Value]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table)
}

// keys returns a snapshot of the live keys, in no particular order.
func (s *shard[Key, Value]) keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Key, 0, len(s.table))
	for key := range s.table {
		snapshot = append(snapshot, key)
	}
	return snapshot
}

func (s *shard[Key, Value]) snapshotStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// checkInvariants must be called with the lock held.
// Only reachable in s3fifo_debug builds.
func (s *shard[Key, Value]) checkInvariants() {
	live := 0
	check := func(where location) func(*entry[Key, Value]) bool {
		return func(ent *entry[Key, Value]) bool {
			if ent.dead {
				return true
			}
			live++
			assert(ent.where == where, "entry queued outside its location tag")
			assert(ent.freq <= maxFrequency, "frequency above saturation point")
			tabled, ok := s.table[ent.key]
			assert(ok && tabled == ent, "queued entry missing from table")
			assert(!s.ghost.contains(ent.key), "live key has a ghost record")
			return true
		}
	}
	s.small.Do(check(locationSmall))
	s.main.Do(check(locationMain))
	assert(live == len(s.table), "table size diverged from queued live entries")
	assert(s.ghost.len() <= s.ghost.fifo.Cap(), "ghost membership above capacity")
}
