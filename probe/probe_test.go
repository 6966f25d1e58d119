package probe

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(rnd *rand.Rand) string {
	b := make([]byte, 7+rnd.IntN(2))
	for i := range b {
		b[i] = byte('a' + rnd.IntN(26))
	}
	return string(b)
}

func TestPrimaryHash(t *testing.T) {
	t.Run("known keys; should return weighted sum modulo ts", func(t *testing.T) {
		assert.Equal(t, 828, PrimaryHash("abcdefg", 2000))
		assert.Equal(t, 7, PrimaryHash("abcdefg", 13))
		assert.Equal(t, 5, PrimaryHash("hello", 13))
		assert.Equal(t, 97, PrimaryHash("a", 2000))
		assert.Equal(t, 3, PrimaryHash("be", 11))
		assert.Equal(t, 5, PrimaryHash("aa", 11))
	})

	t.Run("ts is 1; should always be 0", func(t *testing.T) {
		assert.Equal(t, 0, PrimaryHash("zzzzzzzz", 1))
	})

	t.Run("character order matters; should differ for permutations", func(t *testing.T) {
		assert.Equal(t, 7, PrimaryHash("ab", 11))
		assert.Equal(t, 6, PrimaryHash("ba", 11))
	})
}

func TestSecondaryHash(t *testing.T) {
	t.Run("known keys; should fold with dc2 and add one", func(t *testing.T) {
		assert.Equal(t, 130, SecondaryHash("abcdefg", 31, 2000))
		assert.Equal(t, 1928, SecondaryHash("hello", 31, 2000))
		assert.Equal(t, 11, SecondaryHash("hello", 31, 13))
		assert.Equal(t, 98, SecondaryHash("a", 31, 2000))
	})

	t.Run("negative dc2; should use mathematical modulus", func(t *testing.T) {
		assert.Equal(t, 2, SecondaryHash("a", -5, 13))
		assert.Equal(t, 5, SecondaryHash("abcdefg", -5, 13))
	})

	t.Run("any key and dc2; should stay in [1, ts-1]", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(1, 2))
		for range 2000 {
			ts := 2 + rnd.IntN(500)
			dc2 := rnd.IntN(2001) - 1000
			h := SecondaryHash(randomKey(rnd), dc2, ts)
			require.GreaterOrEqual(t, h, 1)
			require.LessOrEqual(t, h, ts-1)
		}
	})

	t.Run("ts is 1; should be 1", func(t *testing.T) {
		assert.Equal(t, 1, SecondaryHash("abcdefg", 31, 1))
	})
}

func TestIndex(t *testing.T) {
	t.Run("attempt 0; should equal primary hash for every strategy", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(3, 4))
		for range 500 {
			ts := 1 + rnd.IntN(3000)
			key := randomKey(rnd)
			strategies := []Strategy{
				Quadratic{C1: rnd.IntN(100) - 50, C2: rnd.IntN(100) - 50},
				DoubleHashing{DC1: rnd.IntN(100), DC2: rnd.IntN(100) - 50},
			}
			for _, s := range strategies {
				require.Equal(t, PrimaryHash(key, ts), Index(s, key, 0, ts), "%v, ts=%d, key=%q", s, ts, key)
			}
		}
	})

	t.Run("quadratic; should follow h0 + c1*a + c2*a² mod ts", func(t *testing.T) {
		var got []int
		for a := range 6 {
			got = append(got, Index(Quadratic{C1: 1, C2: 3}, "hello", a, 13))
		}
		assert.Equal(t, []int{5, 9, 6, 9, 5, 7}, got)
	})

	t.Run("quadratic with negative coefficients; should stay in range", func(t *testing.T) {
		var got []int
		for a := range 6 {
			got = append(got, Index(Quadratic{C1: -2, C2: -7}, "hello", a, 13))
		}
		assert.Equal(t, []int{5, 9, 12, 1, 2, 2}, got)
	})

	t.Run("double hashing; should step by secondary hash", func(t *testing.T) {
		var got []int
		for a := range 6 {
			got = append(got, Index(DoubleHashing{DC2: 31}, "hello", a, 13))
		}
		assert.Equal(t, []int{5, 3, 1, 12, 10, 8}, got)
	})

	t.Run("dc1 differs; should not change the sequence", func(t *testing.T) {
		for a := range 20 {
			assert.Equal(t,
				Index(DoubleHashing{DC1: 0, DC2: 31}, "abcdefg", a, 2000),
				Index(DoubleHashing{DC1: 977, DC2: 31}, "abcdefg", a, 2000),
			)
		}
	})

	t.Run("zero table size; should panic", func(t *testing.T) {
		assert.Panics(t, func() { Index(Quadratic{}, "abc", 0, 0) })
	})

	t.Run("nil strategy; should panic", func(t *testing.T) {
		assert.Panics(t, func() { New(nil, "abc", 11) })
	})
}

func TestCoverage(t *testing.T) {
	t.Run("double hashing with prime ts; should visit every slot", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(5, 6))
		for _, ts := range []int{2, 3, 11, 13, 101, 2003} {
			for range 20 {
				key := randomKey(rnd)
				require.Equal(t, ts, Coverage(DoubleHashing{DC2: 31}, key, ts), "ts=%d, key=%q", ts, key)
			}
		}
	})

	t.Run("linear probing; should visit every slot", func(t *testing.T) {
		assert.Equal(t, 2000, Coverage(Quadratic{C1: 1}, "abcdefg", 2000))
	})

	t.Run("c1=c2=0; should visit only the initial slot", func(t *testing.T) {
		assert.Equal(t, 1, Coverage(Quadratic{}, "abcdefg", 2000))
	})

	t.Run("pure quadratic with prime ts; should visit (ts+1)/2 slots", func(t *testing.T) {
		assert.Equal(t, 6, Coverage(Quadratic{C2: 1}, "hello", 11))
	})

	t.Run("c1=c2=1 with power of two ts; should miss slots", func(t *testing.T) {
		assert.Equal(t, 8, Coverage(Quadratic{C1: 1, C2: 1}, "hello", 16))
	})
}

func TestSequence(t *testing.T) {
	t.Run("full iteration; should yield ts attempts in order", func(t *testing.T) {
		var attempts []int
		for a, idx := range Sequence(DoubleHashing{DC2: 31}, "hello", 13) {
			attempts = append(attempts, a)
			assert.Equal(t, Index(DoubleHashing{DC2: 31}, "hello", a, 13), idx)
		}
		assert.Len(t, attempts, 13)
		assert.Equal(t, 0, attempts[0])
		assert.Equal(t, 12, attempts[12])
	})

	t.Run("break early; should stop yielding", func(t *testing.T) {
		n := 0
		for range Sequence(Quadratic{C1: 1}, "hello", 13) {
			n++
			if n == 3 {
				break
			}
		}
		assert.Equal(t, 3, n)
	})
}

func TestParse(t *testing.T) {
	t.Run("quadratic; should set c1 and c2", func(t *testing.T) {
		s, err := Parse("quadratic", 1, 3)
		require.NoError(t, err)
		assert.Equal(t, Quadratic{C1: 1, C2: 3}, s)
		assert.Equal(t, "quadratic", s.Name())
	})

	t.Run("menu number 2; should be double hashing", func(t *testing.T) {
		s, err := Parse("2", 7, 31)
		require.NoError(t, err)
		assert.Equal(t, DoubleHashing{DC1: 7, DC2: 31}, s)
		assert.Equal(t, "double(dc2=31)", s.String())
	})

	t.Run("unknown method; should fail", func(t *testing.T) {
		_, err := Parse("cuckoo", 1, 2)
		assert.ErrorIs(t, err, ErrUnknownMethod)
	})
}
