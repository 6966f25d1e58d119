// Package keygen generates batches of distinct random lowercase keys.
package keygen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Alphabet is the set of characters keys are made of.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// DefaultLengths are the key lengths used when none are given.
var DefaultLengths = []int{7, 8}

var (
	// ErrInvalidLength is returned when a key length is less than 1 or no lengths are given.
	ErrInvalidLength = errors.New("invalid key length")
	// ErrKeySpace is returned when more distinct keys are requested than the lengths allow.
	ErrKeySpace = errors.New("not enough distinct keys")
)

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.BigEndian.PutUint64(s[:], seed)
	return rand.New(rand.NewChaCha8(s))
}

// Generate returns n pairwise distinct keys in generation order. Each key length is picked uniformly from lengths,
// each character uniformly from Alphabet. The same rnd state always produces the same batch.
func Generate(rnd *rand.Rand, n int, lengths []int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative key count %d", n)
	}
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: no lengths given", ErrInvalidLength)
	}
	for _, l := range lengths {
		if l < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, l)
		}
	}
	if space := keySpace(lengths, n); space < n {
		return nil, fmt.Errorf("%w: requested %d, lengths %v allow %d", ErrKeySpace, n, lengths, space)
	}

	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	buf := make([]byte, 0, maxLen(lengths))
	for len(keys) < n {
		l := lengths[rnd.IntN(len(lengths))]
		buf = buf[:l]
		for i := range buf {
			buf[i] = Alphabet[rnd.IntN(len(Alphabet))]
		}
		if _, ok := seen[string(buf)]; ok {
			continue
		}
		k := string(buf)
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys, nil
}

// keySpace counts distinct strings over the alphabet for the given lengths, saturating once it reaches limit.
// Duplicate lengths are counted once.
func keySpace(lengths []int, limit int) int {
	counted := make(map[int]bool, len(lengths))
	total := 0
	for _, l := range lengths {
		if counted[l] {
			continue
		}
		counted[l] = true
		n := 1
		for i := 0; i < l && n <= limit; i++ {
			n *= len(Alphabet)
		}
		total += n
		if total >= limit {
			return total
		}
	}
	return total
}

func maxLen(lengths []int) int {
	m := 0
	for _, l := range lengths {
		m = max(m, l)
	}
	return m
}
