package flow

import "slices"

// KeyCount is a key with its occurrence count.
type KeyCount struct {
	Key   string
	Count int
}

// Counter accumulates key counts and remembers first-seen order, so that
// ranking ties resolve identically on identical inputs.
type Counter struct {
	index  map[string]int
	counts []KeyCount
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increments the count of key by one.
func (c *Counter) Add(key string) {
	if i, ok := c.index[key]; ok {
		c.counts[i].Count++
		return
	}
	c.index[key] = len(c.counts)
	c.counts = append(c.counts, KeyCount{Key: key, Count: 1})
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.counts) }

// Count returns the count of key.
func (c *Counter) Count(key string) int {
	if i, ok := c.index[key]; ok {
		return c.counts[i].Count
	}
	return 0
}

// Ranked returns all keys by descending count. Equal counts keep
// first-seen order.
func (c *Counter) Ranked() []KeyCount {
	ranked := slices.Clone(c.counts)
	slices.SortStableFunc(ranked, func(a, b KeyCount) int { return b.Count - a.Count })
	return ranked
}

// Selection is the set of keys retained by [TopN], in rank order.
type Selection struct {
	Ranked []KeyCount
	keys   map[string]struct{}
}

// Has reports whether key was retained.
func (s Selection) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of retained keys.
func (s Selection) Len() int { return len(s.Ranked) }

// Keys returns the retained keys in rank order.
func (s Selection) Keys() []string {
	keys := make([]string, len(s.Ranked))
	for i, kc := range s.Ranked {
		keys[i] = kc.Key
	}
	return keys
}

// TopN counts items by key and retains the n most frequent keys.
// n <= 0 retains nothing. The input is not modified.
func TopN[T any](items []T, key func(T) string, n int) Selection {
	c := NewCounter()
	for _, it := range items {
		c.Add(key(it))
	}
	ranked := c.Ranked()
	n = max(0, min(n, len(ranked)))

	sel := Selection{Ranked: ranked[:n], keys: make(map[string]struct{}, n)}
	for _, kc := range sel.Ranked {
		sel.keys[kc.Key] = struct{}{}
	}
	return sel
}

// Retain returns the items whose key is in sel, preserving order.
func Retain[T any](items []T, key func(T) string, sel Selection) []T {
	var out []T
	for _, it := range items {
		if sel.Has(key(it)) {
			out = append(out, it)
		}
	}
	return out
}
