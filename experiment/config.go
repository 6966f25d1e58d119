package experiment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bdragon300/probe-hash/keygen"
	"github.com/bdragon300/probe-hash/probe"
)

// ErrInvalidConfig wraps every configuration validation error.
var ErrInvalidConfig = errors.New("invalid experiment config")

// Config describes one experiment run.
type Config struct {
	TableSize int            // number of table slots, ts
	Strategy  probe.Strategy // collision resolution strategy and its constants
	Keys      int            // number of distinct keys to insert
	Lengths   []int          // allowed key lengths
	Seed      uint64         // key generator seed
}

// DefaultConfig returns 2000 keys of 7 or 8 letters inserted into 2000 slots with double hashing, dc2=31.
func DefaultConfig() Config {
	return Config{
		TableSize: 2000,
		Strategy:  probe.DoubleHashing{DC2: 31},
		Keys:      2000,
		Lengths:   slices.Clone(keygen.DefaultLengths),
		Seed:      1,
	}
}

// Validate checks the config. Probing constants are never rejected: a poor choice is a legitimate experiment.
func (c Config) Validate() error {
	if c.TableSize <= 0 {
		return fmt.Errorf("%w: table size must be positive, got %d", ErrInvalidConfig, c.TableSize)
	}
	if c.Strategy == nil {
		return fmt.Errorf("%w: strategy is not set", ErrInvalidConfig)
	}
	if c.Keys < 0 {
		return fmt.Errorf("%w: key count must not be negative, got %d", ErrInvalidConfig, c.Keys)
	}
	if len(c.Lengths) == 0 {
		return fmt.Errorf("%w: no key lengths", ErrInvalidConfig)
	}
	for _, l := range c.Lengths {
		if l < 1 {
			return fmt.Errorf("%w: key length must be positive, got %d", ErrInvalidConfig, l)
		}
	}
	return nil
}
