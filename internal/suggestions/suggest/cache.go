package suggest

import (
	"container/list"
	"strconv"
	"strings"
	"sync"
)

// cacheKey identifies a ranking. The history is reduced to its fingerprint,
// so the scalar request fields are kept verbatim and two requests only
// collide if they also agree on all of them.
type cacheKey struct {
	hash       uint64
	input      string
	atUnixNano int64
	zone       string
	maxResults int
	historyLen int
}

func newCacheKey(req Request, maxResults int) cacheKey {
	name, offset := req.At.Zone()
	return cacheKey{
		hash:       fingerprint(req, maxResults),
		input:      strings.ToLower(strings.TrimSpace(req.Input)),
		atUnixNano: req.At.UnixNano(),
		zone:       req.At.Location().String() + "/" + name + "/" + strconv.Itoa(offset),
		maxResults: maxResults,
		historyLen: len(req.History),
	}
}

// resultCache memoises rankings by request key, evicting the least
// recently used one when full. Suggestions are deep-copied on the way in
// and out so callers never share memory with the cache.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	byKey    map[cacheKey]*list.Element
	order    *list.List // front is most recent
}

type cachedRanking struct {
	key         cacheKey
	suggestions []Suggestion
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: max(capacity, 1),
		byKey:    make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *resultCache) get(key cacheKey) ([]Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return cloneSuggestions(elem.Value.(*cachedRanking).suggestions), true
}

func (c *resultCache) put(key cacheKey, suggestions []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byKey[key]; ok {
		elem.Value.(*cachedRanking).suggestions = cloneSuggestions(suggestions)
		c.order.MoveToFront(elem)
		return
	}
	for c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byKey, oldest.Value.(*cachedRanking).key)
	}
	c.byKey[key] = c.order.PushFront(&cachedRanking{key: key, suggestions: cloneSuggestions(suggestions)})
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
