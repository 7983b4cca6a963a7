package samples

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounter_ReturnsPriorValue(t *testing.T) {
	c := NewCounter(10)

	require.Equal(t, int64(10), c.Add(5))
	require.Equal(t, int64(15), c.Add(-3))
	require.Equal(t, int64(12), c.Value())
}

func TestCounter_ZeroValueStartsAtZero(t *testing.T) {
	var c Counter
	require.Equal(t, int64(0), c.Add(1))
	require.Equal(t, int64(1), c.Value())
}

func TestCounter_ConcurrentAddsAreLinearizable(t *testing.T) {
	const n = 100
	c := NewCounter(0)

	priors := make([]int64, n)
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(delta int) {
			defer wg.Done()
			priors[delta-1] = c.Add(int64(delta))
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(n*(n+1)/2), c.Value())

	seen := map[int64]bool{}
	for _, p := range priors {
		require.False(t, seen[p], "prior value %d observed twice", p)
		seen[p] = true
	}
}
