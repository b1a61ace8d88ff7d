package hash

import (
	pair "github.com/notEpsilon/go-pair"
	"github.com/ryogrid/toydbms/types"
)

// ValueCounter counts occurrences of values.
// values which compare equal share one counter, e.g. Integer 1 and Float 1.0
type ValueCounter struct {
	buckets map[uint32][]*pair.Pair[types.Value, uint32]
}

func NewValueCounter() *ValueCounter {
	return &ValueCounter{make(map[uint32][]*pair.Pair[types.Value, uint32])}
}

// Increment adds one to the counter of val and returns the new count
func (c *ValueCounter) Increment(val types.Value) uint32 {
	hash := HashValue(&val)
	for _, entry := range c.buckets[hash] {
		if entry.First.CompareEquals(val) {
			entry.Second++
			return entry.Second
		}
	}
	c.buckets[hash] = append(c.buckets[hash], &pair.Pair[types.Value, uint32]{First: val, Second: 1})
	return 1
}

// GetCount returns the count of val. zero for a value never counted
func (c *ValueCounter) GetCount(val types.Value) uint32 {
	for _, entry := range c.buckets[HashValue(&val)] {
		if entry.First.CompareEquals(val) {
			return entry.Second
		}
	}
	return 0
}
