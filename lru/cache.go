package lru

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key     K
	data    V
	expires time.Time
}

// Cache is a fixed size LRU cache. Entries older than ttl are treated as missing.
type Cache[K comparable, V any] struct {
	queue    *list.List
	items    map[K]*list.Element
	capacity int
	ttl      time.Duration
	now      func() time.Time
	mx       sync.Mutex
}

// New creates a cache of the given capacity. Zero ttl keeps entries until they are evicted.
func New[K comparable, V any](capacity int, ttl time.Duration) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[K, V]{
		queue:    list.New(),
		items:    map[K]*list.Element{},
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *Cache[K, V]) remove(el *list.Element) {
	c.queue.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key) //nolint:forcetypeassert // only entries are stored
}

func (c *Cache[K, V]) expired(e *entry[K, V]) bool {
	return c.ttl > 0 && !c.now().Before(e.expires)
}

func (c *Cache[K, V]) Put(k K, v V) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if el, ok := c.items[k]; ok {
		e := el.Value.(*entry[K, V]) //nolint:forcetypeassert // only entries are stored
		e.data, e.expires = v, c.now().Add(c.ttl)
		c.queue.MoveToFront(el)
		return
	}

	if c.queue.Len() == c.capacity {
		c.remove(c.queue.Back())
	}
	c.items[k] = c.queue.PushFront(&entry[K, V]{key: k, data: v, expires: c.now().Add(c.ttl)})
}

func (c *Cache[K, V]) Get(key K) (v V, ok bool) { //nolint:ireturn // returns generic interface (V) of type param any
	c.mx.Lock()
	defer c.mx.Unlock()

	el, ok := c.items[key]
	if !ok {
		return v, false
	}

	e := el.Value.(*entry[K, V]) //nolint:forcetypeassert // only entries are stored
	if c.expired(e) {
		c.remove(el)
		return v, false
	}

	c.queue.MoveToFront(el)
	return e.data, true
}

func (c *Cache[K, V]) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	return c.queue.Len()
}

func (c *Cache[K, V]) Keys() (keys []K) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}
