package interp

import (
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/parser"
)

type cacheEntry struct {
	text string
	desc parser.Descriptor
}

// descriptorCache remembers successful parses by line text. Descriptors are
// never mutated after parsing, so sharing them between replays is safe.
type descriptorCache struct {
	buckets map[uint64][]cacheEntry
	hits    int
}

func newDescriptorCache() *descriptorCache {
	return &descriptorCache{buckets: make(map[uint64][]cacheEntry)}
}

func (c *descriptorCache) get(text string) (parser.Descriptor, bool) {
	for _, e := range c.buckets[fnv1a.HashString64(text)] {
		if e.text == text {
			c.hits++
			return e.desc, true
		}
	}
	return nil, false
}

func (c *descriptorCache) put(text string, d parser.Descriptor) {
	h := fnv1a.HashString64(text)
	c.buckets[h] = append(c.buckets[h], cacheEntry{text: text, desc: d})
}
