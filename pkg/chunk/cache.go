// pkg/chunk/cache.go

package chunk

import (
	"github.com/google/btree"
	"github.com/pkg/errors"

	"SparseBuf/pkg/utils"
)

var logger = utils.GetLogger("sparsebuf")

// ErrUnaligned is returned when a chunk is inserted at an offset that is not a
// multiple of the cache's chunk size.
var ErrUnaligned = errors.New("chunk offset is not aligned")

type memItem struct {
	start uint64
	atime uint64
	chunk *Chunk
}

func lessItem(a, b *memItem) bool {
	return a.start < b.start
}

// Cache keeps resident chunks ordered by their start offset.
//
// With capacity 0 (the default) nothing is ever evicted. Otherwise Shrink
// drops least recently used chunks until the resident bytes fit. Cache is not
// safe for concurrent use.
type Cache struct {
	chunkSize uint64
	capacity  int64
	used      int64
	clock     uint64
	evicted   uint64
	items     *btree.BTreeG[*memItem]
}

func NewCache(chunkSize int, capacity int64) *Cache {
	if chunkSize <= 0 {
		panic("chunk size should > 0")
	}
	return &Cache{
		chunkSize: uint64(chunkSize),
		capacity:  capacity,
		items:     btree.NewG(16, lessItem),
	}
}

// Align rounds off down to the start of the chunk containing it.
func (c *Cache) Align(off uint64) uint64 {
	return off - off%c.chunkSize
}

func (c *Cache) ChunkSize() int {
	return int(c.chunkSize)
}

func (c *Cache) tick() uint64 {
	c.clock++
	return c.clock
}

func (c *Cache) Contains(off uint64) bool {
	return c.items.Has(&memItem{start: off})
}

// Get returns the chunk starting at off and marks it as recently used.
func (c *Cache) Get(off uint64) (*Chunk, bool) {
	item, ok := c.items.Get(&memItem{start: off})
	if !ok {
		return nil, false
	}
	item.atime = c.tick()
	return item.chunk, true
}

// Insert stores ch keyed by its start offset. An existing chunk at the same
// offset is replaced.
func (c *Cache) Insert(ch *Chunk) error {
	if ch.Start%c.chunkSize != 0 {
		return errors.Wrapf(ErrUnaligned, "offset %d, chunk size %d", ch.Start, c.chunkSize)
	}
	old, replaced := c.items.ReplaceOrInsert(&memItem{start: ch.Start, atime: c.tick(), chunk: ch})
	if replaced {
		c.used -= int64(cap(old.chunk.Buf))
	}
	c.used += int64(cap(ch.Buf))
	return nil
}

// Range calls fn for every resident chunk with lo <= Start <= hi, in ascending
// order, until fn returns false.
func (c *Cache) Range(lo, hi uint64, fn func(ch *Chunk) bool) {
	c.items.AscendGreaterOrEqual(&memItem{start: lo}, func(item *memItem) bool {
		if item.start > hi {
			return false
		}
		item.atime = c.tick()
		return fn(item.chunk)
	})
}

// Len returns the number of resident chunks.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Used returns the bytes held by resident chunks.
func (c *Cache) Used() int64 {
	return c.used
}

// Evicted returns how many chunks Shrink has dropped so far.
func (c *Cache) Evicted() uint64 {
	return c.evicted
}

// Shrink evicts least recently used chunks until the cache fits its capacity.
// Chunks starting within [lo, hi] are kept even if that leaves the cache over
// capacity.
func (c *Cache) Shrink(lo, hi uint64) {
	if c.capacity <= 0 {
		return
	}
	for c.used > c.capacity {
		var victim *memItem
		c.items.Ascend(func(item *memItem) bool {
			if item.start >= lo && item.start <= hi {
				return true
			}
			if victim == nil || item.atime < victim.atime {
				victim = item
			}
			return true
		})
		if victim == nil {
			return
		}
		c.items.Delete(victim)
		c.used -= int64(cap(victim.chunk.Buf))
		c.evicted++
		logger.Debugf("remove chunk %d from cache, used: %d", victim.start, c.used)
	}
}
