package cache

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Cache is a weighted LRU cache. Inserting past the weight budget evicts the
// least recently used entries.
type Cache[V any] interface {
	GetWeight() int
	GetBudget() int

	// Insert adds or replaces the value for key.
	Insert(key string, value V, weight int)

	// Retrieve returns the value for key and marks it recently used.
	Retrieve(key string) (V, bool)

	Remove(key string)
	Clear()
}

type cacheNode[V any] struct {
	next   *cacheNode[V]
	prev   *cacheNode[V]
	key    string
	value  V
	weight int
}

type cache[V any] struct {
	log *logrus.Entry

	mu     sync.Mutex
	head   *cacheNode[V]
	tail   *cacheNode[V]
	lookup map[string]*cacheNode[V]
	weight int
	budget int
}

// NewCache initializes and returns a new cache with a given weight budget.
func NewCache[V any](budget int) Cache[V] {
	return &cache[V]{
		log:    logrus.StandardLogger().WithField("type", "cache"),
		lookup: make(map[string]*cacheNode[V]),
		budget: budget,
	}
}

func (c *cache[V]) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *cache[V]) GetBudget() int {
	return c.budget
}

func (c *cache[V]) Insert(key string, value V, weight int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lookup[key]; ok {
		c.unlink(existing)
		c.weight -= existing.weight
		delete(c.lookup, key)
	}

	node := &cacheNode[V]{key: key, value: value, weight: weight}
	c.pushFront(node)
	c.lookup[key] = node
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		c.weight -= evicted.weight
		delete(c.lookup, evicted.key)

		c.log.WithFields(logrus.Fields{
			"key":    evicted.key,
			"weight": evicted.weight,
			"spare":  c.budget - c.weight,
		}).Trace("evicted")
	}
}

func (c *cache[V]) Retrieve(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.lookup[key]
	if !ok {
		var zero V
		return zero, false
	}

	if node != c.head {
		c.unlink(node)
		c.pushFront(node)
	}
	return node.value, true
}

func (c *cache[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.lookup[key]
	if !ok {
		return
	}
	c.unlink(node)
	c.weight -= node.weight
	delete(c.lookup, key)
}

func (c *cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*cacheNode[V])
	c.weight = 0
}

func (c *cache[V]) pushFront(node *cacheNode[V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *cache[V]) unlink(node *cacheNode[V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.next = nil
	node.prev = nil
}
