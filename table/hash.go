package table

import (
	"fmt"

	"github.com/bdragon300/probe-hash/probe"
)

const defaultDC2 = 31

// NewHashTableDefault creates a new hash table with double hashing and the default secondary hash multiplier.
func NewHashTableDefault(ts int) *HashTable {
	return NewHashTable(ts, probe.DoubleHashing{DC2: defaultDC2})
}

// NewHashTable creates a new hash table with ts slots. The table never grows, ts is fixed for its whole lifetime.
//
// Strategy selects the collision resolution: probe.Quadratic or probe.DoubleHashing. Any coefficients are
// accepted, even those which don't cover the whole table; such keys just fail to insert earlier.
func NewHashTable(ts int, strategy probe.Strategy) *HashTable {
	if ts <= 0 {
		panic(fmt.Errorf("table size must be positive"))
	}
	if strategy == nil {
		panic(fmt.Errorf("strategy must be set"))
	}
	return &HashTable{
		strategy: strategy,
		slots:    make([]*slot, ts),
	}
}

// HashTable is a fixed-size open-addressed hash table of string keys that counts probe comparisons.
//
// Every insertion probes slots along the key's probe sequence, attempts 0..ts-1, and takes the first empty one.
// Each probed slot is one comparison, including the one that succeeds. Occupied slots are never overwritten,
// and there is no deletion.
//
// Keys are not deduplicated: inserting the same key twice stores it in two slots if the sequence finds another
// empty one.
//
// HashTable is not safe for concurrent use.
type HashTable struct {
	strategy    probe.Strategy
	slots       []*slot
	inserts     int // Number of occupied slots
	failures    int // Number of insertions that found no empty slot
	comparisons int // Total probe attempts across all insertions
}

// Insert puts key into the first empty slot of its probe sequence. It returns false if no empty slot was found
// within ts attempts, which is a normal outcome for a full table or a sequence that doesn't cover it.
func (t *HashTable) Insert(key string) bool {
	_, ok := insert(t, key)
	return ok
}

// AverageComparisons returns the total number of comparisons divided by the table size. It is normalized to the
// capacity, not to the number of insertions, so that strategies are comparable at a fixed table size.
// It's zero before the first insertion.
func (t *HashTable) AverageComparisons() float64 {
	return float64(t.comparisons) / float64(len(t.slots))
}

// Comparisons returns the total number of probe attempts made by all insertions.
func (t *HashTable) Comparisons() int {
	return t.comparisons
}

// Failures returns the number of insertions that returned false.
func (t *HashTable) Failures() int {
	return t.failures
}

// Len returns the number of occupied slots.
func (t *HashTable) Len() int {
	return t.inserts
}

// Cap returns the table size.
func (t *HashTable) Cap() int {
	return len(t.slots)
}

// LoadFactor returns the fraction of occupied slots.
func (t *HashTable) LoadFactor() float64 {
	return float64(t.inserts) / float64(len(t.slots))
}

// Slot returns the key stored in slot i and true, or an empty string and false if the slot is empty.
func (t *HashTable) Slot(i int) (string, bool) {
	if s := t.slots[i]; s != nil {
		return s.key, true
	}
	return "", false
}

// Strategy returns the table's probing strategy.
func (t *HashTable) Strategy() probe.Strategy {
	return t.strategy
}
