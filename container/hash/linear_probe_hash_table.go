// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package hash

import (
	"github.com/pkg/errors"
	"github.com/ryogrid/toydbms/storage/tuple"
	"github.com/ryogrid/toydbms/types"
)

type slot struct {
	occupied bool
	hash     uint32
	key      types.Value
	value    *tuple.Tuple
}

/**
 * Implementation of linear probing hash table that lives in memory.
 * Non-unique keys are supported. Supports insert and lookup.
 * The number of entries is bounded by the capacity given at creation,
 * so the table never grows.
 */
type LinearProbeHashTable struct {
	slots    []slot
	capacity uint32
	size     uint32
}

func NewLinearProbeHashTable(capacity uint32) *LinearProbeHashTable {
	if capacity == 0 {
		capacity = 1
	}
	// load factor is kept at or below 0.5
	return &LinearProbeHashTable{make([]slot, 2*capacity), capacity, 0}
}

// GetValue returns the values whose key equals key, in insertion order
func (ht *LinearProbeHashTable) GetValue(key types.Value) []*tuple.Tuple {
	result := []*tuple.Tuple{}
	if key.IsNull() {
		return result
	}
	hash := HashValue(&key)
	numSlots := uint32(len(ht.slots))
	for ii, offset := uint32(0), hash%numSlots; ii < numSlots; ii, offset = ii+1, (offset+1)%numSlots {
		// stop the search when we find an empty spot
		if !ht.slots[offset].occupied {
			break
		}
		if ht.slots[offset].hash == hash && ht.slots[offset].key.CompareEquals(key) {
			result = append(result, ht.slots[offset].value)
		}
	}
	return result
}

func (ht *LinearProbeHashTable) Insert(key types.Value, value *tuple.Tuple) error {
	if ht.size >= ht.capacity {
		return errors.Errorf("hash table is full: capacity %d", ht.capacity)
	}
	hash := HashValue(&key)
	numSlots := uint32(len(ht.slots))
	offset := hash % numSlots
	for ht.slots[offset].occupied {
		offset = (offset + 1) % numSlots
	}
	ht.slots[offset] = slot{true, hash, key, value}
	ht.size++
	return nil
}

func (ht *LinearProbeHashTable) Count() uint32 {
	return ht.size
}

func (ht *LinearProbeHashTable) IsFull() bool {
	return ht.size >= ht.capacity
}

// Clear removes every entry. the capacity is kept
func (ht *LinearProbeHashTable) Clear() {
	for ii := range ht.slots {
		ht.slots[ii] = slot{}
	}
	ht.size = 0
}
