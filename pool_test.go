package pooled

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tabkit/pooled/errs"
)

func TestNewPool_DedupAndSort(t *testing.T) {
	pool, err := NewPool([]string{"b", "a", "c", "a", "b"})
	require.NoError(t, err)

	require.Equal(t, 3, pool.Len())
	require.Equal(t, []string{"a", "b", "c"}, pool.Values())
}

func TestNewPool_Empty(t *testing.T) {
	pool, err := NewPool([]int{})
	require.NoError(t, err)
	require.Equal(t, 0, pool.Len())
}

func TestNewPool_Overflow(t *testing.T) {
	values := make([]int, MaxPoolSize+1)
	for i := range values {
		values[i] = i
	}

	_, err := NewPool(values)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPoolOverflow)
}

func TestNewPool_AtCapacity(t *testing.T) {
	values := make([]int, MaxPoolSize)
	for i := range values {
		values[i] = i
	}

	pool, err := NewPool(values)
	require.NoError(t, err)
	require.Equal(t, MaxPoolSize, pool.Len())

	_, err = pool.Append(-1)
	require.ErrorIs(t, err, errs.ErrPoolOverflow)
}

func TestNewPool_NaNSortsFirstAndCollapses(t *testing.T) {
	nan := math.NaN()
	pool, err := NewPool([]float64{2.5, nan, 1.5, nan})
	require.NoError(t, err)

	require.Equal(t, 3, pool.Len())
	values := pool.Values()
	require.True(t, math.IsNaN(values[0]))
	require.Equal(t, []float64{1.5, 2.5}, values[1:])
}

func TestPool_Lookup(t *testing.T) {
	pool, err := NewPool([]string{"b", "a", "c"})
	require.NoError(t, err)

	r, ok := pool.Lookup("b")
	require.True(t, ok)
	require.Equal(t, Ref(2), r)

	_, ok = pool.Lookup("z")
	require.False(t, ok)
}

func TestPool_Lookup_NaN(t *testing.T) {
	pool, err := NewPool([]float64{math.NaN(), 1.0})
	require.NoError(t, err)

	r, ok := pool.Lookup(math.NaN())
	require.True(t, ok)
	require.Equal(t, Ref(1), r)
}

func TestPool_Append_NoResort(t *testing.T) {
	pool, err := NewPool([]string{"a", "c"})
	require.NoError(t, err)

	r, err := pool.Append("b")
	require.NoError(t, err)
	require.Equal(t, Ref(3), r)

	// Appended values land at the end; existing slots keep their order.
	require.Equal(t, []string{"a", "c", "b"}, pool.Values())

	got, ok := pool.Lookup("b")
	require.True(t, ok)
	require.Equal(t, r, got)
}

func TestPool_Append_AfterLookupKeepsIndexCoherent(t *testing.T) {
	pool, err := NewPool([]int{10, 20})
	require.NoError(t, err)

	// Force the reverse index to exist before growing.
	_, ok := pool.Lookup(10)
	require.True(t, ok)

	r, err := pool.Append(30)
	require.NoError(t, err)

	got, ok := pool.Lookup(30)
	require.True(t, ok)
	require.Equal(t, r, got)
}

func TestPool_Clone_Independent(t *testing.T) {
	pool, err := NewPool([]string{"a", "b"})
	require.NoError(t, err)

	clone := pool.Clone()
	_, err = clone.Append("c")
	require.NoError(t, err)

	require.Equal(t, 2, pool.Len())
	require.Equal(t, 3, clone.Len())
}

func TestPool_Fingerprint(t *testing.T) {
	p1, err := NewPool([]string{"a", "b"})
	require.NoError(t, err)
	p2, err := NewPool([]string{"b", "a"})
	require.NoError(t, err)

	// Same contents after construction sorting, so same fingerprint.
	require.Equal(t, p1.Fingerprint(), p2.Fingerprint())

	_, err = p2.Append("c")
	require.NoError(t, err)
	require.NotEqual(t, p1.Fingerprint(), p2.Fingerprint())
}

func TestPool_Fingerprint_SeparatorMatters(t *testing.T) {
	p1, err := NewPool([]string{"ab", "c"})
	require.NoError(t, err)
	p2, err := NewPool([]string{"a", "bc"})
	require.NoError(t, err)

	require.NotEqual(t, p1.Fingerprint(), p2.Fingerprint())
}
