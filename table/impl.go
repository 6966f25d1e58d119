package table

import "github.com/bdragon300/probe-hash/probe"

// slot is an occupied table cell; an empty cell is nil.
type slot struct {
	key string
}

// insert walks the key's probe sequence and stores the key in the first empty slot. Returns the slot index and
// true, or -1 and false if all ts attempts hit occupied slots.
func insert(table *HashTable, key string) (int, bool) {
	ts := len(table.slots)
	seq := probe.New(table.strategy, key, ts)

	for attempt := 0; attempt < ts; attempt++ {
		table.comparisons++
		idx := seq.At(attempt)
		if table.slots[idx] == nil {
			table.slots[idx] = newSlot(key)
			table.inserts++
			return idx, true
		}
	}

	table.failures++
	return -1, false
}

func newSlot(key string) *slot {
	return &slot{key: key}
}
