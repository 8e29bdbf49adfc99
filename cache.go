package s3fifo

import (
	"hash/maphash"
	"iter"
)

type (
	// Cache is a thread-safe, fixed-capacity key-value cache using the
	// S3-FIFO replacement algorithm. The key space is partitioned into
	// independently locked shards; operations on keys in different
	// shards proceed in parallel.
	// Constructed by [New].
	Cache[Key comparable, Value any] struct {
		shards   []*shard[Key, Value]
		seed     maphash.Seed
		capacity int
	}
	// Stats are cumulative operation counters,
	// aggregated across shards by [Cache.Stats].
	Stats struct {
		// Hits and Misses count Get outcomes.
		Hits, Misses uint64
		// Evictions counts entries removed to make room
		// (ghost demotions and main-queue evictions alike).
		Evictions uint64
		// GhostAdmissions counts keys fast-tracked into the main
		// queue because they were readmitted during their ghost window.
		GhostAdmissions uint64
	}
)

const (
	// DefaultSmallRatio is the fraction of each shard's capacity
	// reserved for the small (probation) queue, per the S3-FIFO paper.
	DefaultSmallRatio = 0.1
	// DefaultShardCount is suitable for single-threaded use.
	DefaultShardCount = 1
	// MinimumShardCapacity is the lowest per-shard slot count
	// supported by [New]; each shard needs at least one small
	// and one main slot.
	MinimumShardCapacity = 2
)

// New creates a [Cache] with capacity total entry slots spread across
// shardCount shards. smallRatio is the fraction of each shard's
// capacity reserved for the small queue and must be within (0,1)
// exclusive; [DefaultSmallRatio] is the conventional choice.
// Every shard must receive at least [MinimumShardCapacity] slots.
func New[Key comparable, Value any](
	capacity int, smallRatio float64, shardCount int,
) (*Cache[Key, Value], error) {
	if shardCount < 1 {
		return nil, shardCountError(shardCount)
	}
	if smallRatio <= 0 || smallRatio >= 1 {
		return nil, ratioError(smallRatio)
	}
	if capacity < 1 ||
		capacity/shardCount < MinimumShardCapacity {
		return nil, capacityError(capacity, shardCount)
	}
	var (
		shards = make([]*shard[Key, Value], shardCount)
		base   = capacity / shardCount
		extra  = capacity % shardCount
	)
	for i := range shards {
		shardCapacity := base
		// Distribute the remainder so shard capacities sum
		// to the requested total.
		if i < extra {
			shardCapacity++
		}
		shards[i] = newShard[Key, Value](shardCapacity, smallRatio)
	}
	return &Cache[Key, Value]{
		shards:   shards,
		seed:     maphash.MakeSeed(),
		capacity: capacity,
	}, nil
}

func (c *Cache[Key, Value]) shardFor(key Key) *shard[Key, Value] {
	shards := c.shards
	if len(shards) == 1 {
		return shards[0]
	}
	sum := maphash.Comparable(c.seed, key)
	return shards[sum%uint64(len(shards))]
}

// Get returns the value for key if it is resident in the cache,
// bumping the entry's (saturating) frequency; otherwise it returns
// the zero value and false. Get never moves entries between queues.
func (c *Cache[Key, Value]) Get(key Key) (Value, bool) {
	return c.shardFor(key).get(key)
}

// Set inserts or updates key with value, evicting as needed.
// New keys enter the small queue unless they are found in the ghost
// queue, in which case they are admitted directly to the main queue.
// Updates overwrite in place without changing the entry's queue.
func (c *Cache[Key, Value]) Set(key Key, value Value) {
	c.shardFor(key).set(key, value)
}

// Load returns the cached value for key (if resident). Otherwise, it
// calls fetch, inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func (c *Cache[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	c.Set(key, value)
	return value, nil
}

// Remove deletes key from the cache (or its ghost record) and
// returns the removed value. Removing an absent key is a no-op.
func (c *Cache[Key, Value]) Remove(key Key) (Value, bool) {
	return c.shardFor(key).remove(key)
}

// Len returns the number of live entries across all shards.
func (c *Cache[Key, Value]) Len() int {
	var total int
	for _, shard := range c.shards {
		total += shard.len()
	}
	return total
}

// Capacity returns the total entry slots the cache was constructed with.
func (c *Cache[Key, Value]) Capacity() int { return c.capacity }

// Keys returns an iterator over the (unordered) keys of live entries.
// Each shard is snapshotted under its lock as the iteration reaches it.
func (c *Cache[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for _, shard := range c.shards {
			for _, key := range shard.keys() {
				if !yield(key) {
					return
				}
			}
		}
	}
}

// Stats returns cumulative counters aggregated across all shards.
func (c *Cache[Key, Value]) Stats() Stats {
	var total Stats
	for _, shard := range c.shards {
		stats := shard.snapshotStats()
		total.Hits += stats.Hits
		total.Misses += stats.Misses
		total.Evictions += stats.Evictions
		total.GhostAdmissions += stats.GhostAdmissions
	}
	return total
}
