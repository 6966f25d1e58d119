package keygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("default lengths; should return distinct lowercase keys", func(t *testing.T) {
		keys, err := Generate(NewRand(1), 2000, DefaultLengths)
		require.NoError(t, err)
		require.Len(t, keys, 2000)

		seen := make(map[string]bool)
		for _, k := range keys {
			assert.False(t, seen[k], "duplicate key %q", k)
			seen[k] = true
			assert.Contains(t, []int{7, 8}, len(k))
			assert.Empty(t, strings.Trim(k, Alphabet), "key %q has foreign characters", k)
		}
	})

	t.Run("same seed; should reproduce the batch", func(t *testing.T) {
		a, err := Generate(NewRand(42), 100, DefaultLengths)
		require.NoError(t, err)
		b, err := Generate(NewRand(42), 100, DefaultLengths)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		c, err := Generate(NewRand(43), 100, DefaultLengths)
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("exactly the whole key space; should enumerate it", func(t *testing.T) {
		keys, err := Generate(NewRand(7), 26, []int{1})
		require.NoError(t, err)
		assert.ElementsMatch(t, strings.Split(Alphabet, ""), keys)
	})

	t.Run("more keys than the space allows; should fail", func(t *testing.T) {
		_, err := Generate(NewRand(7), 26+26*26+1, []int{1, 2, 2})
		assert.ErrorIs(t, err, ErrKeySpace)
	})

	t.Run("bad lengths; should fail", func(t *testing.T) {
		_, err := Generate(NewRand(7), 5, nil)
		assert.ErrorIs(t, err, ErrInvalidLength)
		_, err = Generate(NewRand(7), 5, []int{7, 0})
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("zero keys; should return empty batch", func(t *testing.T) {
		keys, err := Generate(NewRand(7), 0, DefaultLengths)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("negative count; should fail", func(t *testing.T) {
		_, err := Generate(NewRand(7), -1, DefaultLengths)
		assert.Error(t, err)
	})
}
