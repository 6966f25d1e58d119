// Package probe computes open-addressing probe sequences for string keys.
//
// A probe sequence maps a key and an attempt number to a slot index in [0, ts). Two strategies are
// supported: quadratic probing and double hashing. Both share the same primary hash, so attempt 0 is
// always the key's initial location.
package probe

import (
	"errors"
	"fmt"
	"iter"
)

// ErrUnknownMethod is returned by Parse for a method name it does not know.
var ErrUnknownMethod = errors.New("unknown probing method")

// Strategy is a collision resolution strategy together with its parameters. The set of strategies is
// closed: Quadratic and DoubleHashing are the only implementations.
type Strategy interface {
	fmt.Stringer
	// Name returns the short method name, "quadratic" or "double".
	Name() string
	strategy()
}

// Quadratic probing: index = (h0 + C1*attempt + C2*attempt²) mod ts.
//
// The coefficients are not checked for full table coverage. Poor constants (e.g. C1 = C2 = 0) make the
// sequence cycle through fewer than ts slots, which shows up as failed insertions.
type Quadratic struct {
	C1 int // linear coefficient
	C2 int // quadratic coefficient
}

func (Quadratic) strategy() {}

func (Quadratic) Name() string { return "quadratic" }

func (q Quadratic) String() string {
	return fmt.Sprintf("quadratic(c1=%d, c2=%d)", q.C1, q.C2)
}

// DoubleHashing: index = (h0 + attempt*h2) mod ts, where h2 is SecondaryHash with multiplier DC2.
type DoubleHashing struct {
	// DC1 is kept for configurations that carry a pair of constants. No formula uses it.
	DC1 int
	DC2 int // secondary hash multiplier
}

func (DoubleHashing) strategy() {}

func (DoubleHashing) Name() string { return "double" }

func (d DoubleHashing) String() string {
	return fmt.Sprintf("double(dc2=%d)", d.DC2)
}

// Parse builds a strategy from a method name and its two constants. For quadratic probing a and b are
// c1 and c2, for double hashing they are dc1 and dc2. Menu numbers "1" and "2" are accepted as aliases.
func Parse(method string, a, b int) (Strategy, error) {
	switch method {
	case "quadratic", "1":
		return Quadratic{C1: a, C2: b}, nil
	case "double", "2":
		return DoubleHashing{DC1: a, DC2: b}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}

// PrimaryHash returns the positional weighted sum of character codes modulo ts:
// (Σ code(key[i]) * (i+1)) mod ts.
func PrimaryHash(key string, ts int) int {
	var h, i int
	for _, c := range key {
		i++
		h = (h + int(c)%ts*(i%ts)) % ts
	}
	return h
}

// SecondaryHash returns the double hashing step for key: the left fold acc = acc*dc2 + code(c) taken
// modulo ts-1, plus one. The result is in [1, ts-1] and never zero. For ts == 1 it returns 1.
func SecondaryHash(key string, dc2, ts int) int {
	m := ts - 1
	if m <= 0 {
		return 1
	}
	mul := mod(dc2, m)
	var h int
	for _, c := range key {
		h = mod(h*mul+int(c), m)
	}
	return h + 1
}

// Probe is the probe sequence of one key. Hashes are computed once, so At is cheap to call for every
// attempt.
type Probe struct {
	strategy Strategy
	ts       int
	h0       int
	h2       int // double hashing step, zero for quadratic probing
}

// New returns the probe sequence for key in a table of ts slots.
func New(s Strategy, key string, ts int) Probe {
	if ts <= 0 {
		panic(fmt.Errorf("table size must be positive"))
	}
	p := Probe{strategy: s, ts: ts, h0: PrimaryHash(key, ts)}
	switch s := s.(type) {
	case Quadratic:
	case DoubleHashing:
		p.h2 = SecondaryHash(key, s.DC2, ts)
	default:
		panic(fmt.Errorf("unsupported strategy %T", s))
	}
	return p
}

// At returns the slot index probed on the given attempt. At(0) is the primary hash.
func (p Probe) At(attempt int) int {
	a := attempt % p.ts
	switch s := p.strategy.(type) {
	case Quadratic:
		// Coefficients are reduced first so that products stay below ts².
		lin := mod(s.C1, p.ts) * a % p.ts
		sq := mod(s.C2, p.ts) * (a * a % p.ts) % p.ts
		return (p.h0 + lin + sq) % p.ts
	case DoubleHashing:
		return (p.h0 + a*p.h2) % p.ts
	}
	panic(fmt.Errorf("unsupported strategy %T", p.strategy))
}

// Index returns the slot probed for key on the given attempt.
func Index(s Strategy, key string, attempt, ts int) int {
	return New(s, key, ts).At(attempt)
}

// Sequence yields (attempt, index) pairs for attempts 0..ts-1.
func Sequence(s Strategy, key string, ts int) iter.Seq2[int, int] {
	p := New(s, key, ts)
	return func(yield func(int, int) bool) {
		for attempt := 0; attempt < ts; attempt++ {
			if !yield(attempt, p.At(attempt)) {
				return
			}
		}
	}
}

// Coverage returns how many distinct slots the key's sequence visits in ts attempts. A value of ts
// means every slot is reachable from the key's initial hash.
func Coverage(s Strategy, key string, ts int) int {
	seen := make([]bool, ts)
	n := 0
	for _, idx := range Sequence(s, key, ts) {
		if !seen[idx] {
			seen[idx] = true
			n++
		}
	}
	return n
}

// mod is the mathematical modulus, always in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
