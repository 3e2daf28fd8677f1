package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategies_EnumeratesAllPrefixPermutations(t *testing.T) {
	strategies := Strategies()
	require.Len(t, strategies, 720) // 6!

	seen := map[string]bool{}
	for _, s := range strategies {
		require.Len(t, s, int(NumClasses))

		// a strategy holds each class exactly once
		var count [NumClasses]int
		for _, c := range s {
			count[c]++
		}
		for c, n := range count {
			assert.Equal(t, 1, n, "class %s in %v", Class(c), s.Tags())
		}

		// fixed rescue suffix
		assert.Equal(t, []Class{ClassADouble, ClassBDouble, ClassF, ClassE}, []Class(s[6:]))

		key := ""
		for _, c := range s {
			key += c.String() + ","
		}
		assert.False(t, seen[key], "duplicate strategy %v", s.Tags())
		seen[key] = true
	}
}

func TestStrategies_Deterministic(t *testing.T) {
	a, b := Strategies(), Strategies()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
	// lexicographic: the identity permutation comes first
	assert.Equal(t, []string{"A", "B", "C", "D", "A_", "B_", "A__", "B__", "F", "E"}, a[0].Tags())
}

func TestChunkStrategies_CoversAllWithoutOverlap(t *testing.T) {
	strategies := Strategies()

	for _, workers := range []int{1, 2, 3, 4, 7, 720, 1000} {
		chunks := chunkStrategies(strategies, workers)
		total := 0
		for _, c := range chunks {
			total += len(c)
		}
		assert.Equal(t, len(strategies), total, "workers=%d", workers)
		assert.LessOrEqual(t, len(chunks), workers, "workers=%d", workers)
	}
}
