// Package experiment measures how many probe comparisons it takes to insert a batch of random keys into a
// fixed-size open-addressed hash table.
//
// A run generates Config.Keys distinct keys from a seeded source, inserts all of them into one fresh
// table.HashTable and reports the table's statistics. Sweep repeats the run for a range of table sizes.
package experiment

import (
	"fmt"

	"github.com/bdragon300/probe-hash/keygen"
	"github.com/bdragon300/probe-hash/probe"
	"github.com/bdragon300/probe-hash/table"
)

// Result holds the statistics of one run.
type Result struct {
	TableSize          int
	Strategy           probe.Strategy
	Keys               int     // keys offered to the table
	Inserted           int     // successful insertions
	Failed             int     // insertions that found no empty slot
	Comparisons        int     // total probe attempts
	AverageComparisons float64 // Comparisons / TableSize
	LoadFactor         float64 // Inserted / TableSize
}

func (r Result) String() string {
	return fmt.Sprintf("ts=%d %v: avg comparisons %.2f, inserted %d/%d, failed %d, load %.2f",
		r.TableSize, r.Strategy, r.AverageComparisons, r.Inserted, r.Keys, r.Failed, r.LoadFactor)
}

// Run executes one experiment.
func Run(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	keys, err := keygen.Generate(keygen.NewRand(cfg.Seed), cfg.Keys, cfg.Lengths)
	if err != nil {
		return Result{}, fmt.Errorf("generate keys: %w", err)
	}
	return Insert(table.NewHashTable(cfg.TableSize, cfg.Strategy), keys), nil
}

// Insert inserts keys into t in order and returns the resulting statistics. Failed insertions are counted,
// they don't stop the run.
func Insert(t *table.HashTable, keys []string) Result {
	res := Result{
		TableSize: t.Cap(),
		Strategy:  t.Strategy(),
		Keys:      len(keys),
	}
	for _, k := range keys {
		if t.Insert(k) {
			res.Inserted++
		} else {
			res.Failed++
		}
	}
	res.Comparisons = t.Comparisons()
	res.AverageComparisons = t.AverageComparisons()
	res.LoadFactor = t.LoadFactor()
	return res
}
