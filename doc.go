// Package s3fifo implements a [Cache] using the S3-FIFO replacement algorithm.
//
// S3-FIFO is a scan-resistant policy built entirely from FIFO queues,
// avoiding the per-access list reordering (and its lock contention)
// of LRU while reaching comparable or better hit ratios.
//
// The following is a summary (intended for maintainers)
// of the design described in the [S3-FIFO paper].
//
// Glossary and invariants:
//
//   - Entry holds a key, its value, and a saturating frequency counter.
//
//     A live entry resides in exactly one of the small or main queues.
//
//   - Small queue
//
//     Probation FIFO for newly admitted, unproven entries.
//     Sized to a configured fraction of capacity (default 10%).
//
//   - Main queue
//
//     FIFO for proven entries, holding the remaining capacity.
//     Evicted with a second-chance (CLOCK style) scan.
//
//   - Ghost queue
//
//     Bounded FIFO of bare keys recently evicted from the small queue.
//     Holds no values; membership alone signals that a key deserves
//     the main queue on its next admission. Sized to the main
//     queue's entry capacity.
//
//   - Frequency
//
//     Saturating counter in [0, 3]. Incremented on every hit,
//     consumed (decremented) only by the main queue's eviction scan.
//
// Operations:
//
//   - Hit (lazy promotion)
//
//     A Get bumps the entry's frequency and returns the value.
//     No entry moves between queues on the read path.
//
//   - Admission
//
//     A Set of an absent key lands in the small queue, unless the key
//     is found in the ghost queue, in which case it is removed from
//     ghost and admitted directly to the main queue.
//
//   - Small eviction
//
//     The small head is popped when the queue is full. A head that was
//     hit during probation (frequency >= 1) is promoted to the main
//     queue with its frequency reset to 1; otherwise its value is
//     dropped and its bare key is remembered in the ghost queue.
//     A one-off access to a never-reused key therefore costs one small
//     slot and one ghost slot, never a main slot.
//
//   - Main eviction (second chance)
//
//     The main head is popped; a nonzero frequency is decremented and
//     the entry requeued at the tail, granting it another cycle.
//     A zero-frequency head is evicted outright, with no ghost record.
//     Each pass strictly decreases the queue's frequency sum,
//     so the scan is bounded.
//
// Counts and targets:
//
//   - |small| + |main| <= capacity at all times.
//
//   - |small| <= round(capacity * smallRatio), |main| <= the remainder.
//
//   - |ghost| <= main capacity.
//
// Concurrency:
//
// The key space is partitioned across shards by hash; each shard owns
// independent queues, an entry table, and a share of the capacity,
// guarded by one exclusive lock. Operations on keys in different
// shards never contend.
//
// [S3-FIFO paper]: https://dl.acm.org/doi/10.1145/3600006.3613147
package s3fifo
