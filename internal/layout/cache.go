package layout

import (
	"container/list"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache keeps computed layouts by structure and spacing, so redrawing an
// unchanged structure doesn't lay it out again. The oldest entry is
// evicted first. It's safe to share between trees.
type Cache struct {
	mu sync.Mutex

	// maximum number of layouts kept
	size int

	// entries by key, each holding a *cacheEntry
	entries map[string]*list.Element

	// insertion order, oldest at the front
	order *list.List

	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

type cacheEntry struct {
	key    string
	layout Layout
}

// NewCache returns a cache holding up to size layouts. Its counters are
// registered with reg, which may be nil, under a "cache" label set to name.
// Registering two caches with the same name on one registry panics.
func NewCache(name string, size int, reg prometheus.Registerer) *Cache {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"cache": name}
	return &Cache{
		size:    size,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name:        "rna_layout_cache_hits_total",
			Help:        "Layouts served from the cache",
			ConstLabels: labels,
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name:        "rna_layout_cache_misses_total",
			Help:        "Layouts computed because they weren't cached",
			ConstLabels: labels,
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Name:        "rna_layout_cache_evictions_total",
			Help:        "Layouts evicted to make room for newer ones",
			ConstLabels: labels,
		}),
	}
}

// Len is the number of cached layouts
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) get(key string) (Layout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.hits.Inc()
		return el.Value.(*cacheEntry).layout, true
	}
	c.misses.Inc()
	return Layout{}, false
}

func (c *Cache) add(key string, l Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.size <= 0 {
		return
	}
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).layout = l
		return
	}

	for c.order.Len() >= c.size {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		c.evictions.Inc()
	}
	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, layout: l})
}
