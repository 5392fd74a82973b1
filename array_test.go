package pooled

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tabkit/pooled/errs"
	"github.com/tabkit/pooled/masked"
)

func TestEncode_Basic(t *testing.T) {
	x, err := Encode([]string{"b", "a", "a"}, []bool{false, false, false})
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, x.PoolValues())
	require.Equal(t, []Ref{2, 1, 1}, x.Refs())
	require.Equal(t, []bool{false, false, false}, x.IsMissing())

	m := x.Materialize()
	require.Equal(t, []string{"b", "a", "a"}, m.Values())
	require.False(t, m.AnyMissing())
}

func TestEncode_NilMask(t *testing.T) {
	x, err := Encode([]int{3, 1, 3}, nil)
	require.NoError(t, err)

	require.Equal(t, []int{1, 3}, x.PoolValues())
	require.Equal(t, []Ref{2, 1, 2}, x.Refs())
}

func TestEncode_WithMissing(t *testing.T) {
	x, err := Encode([]int{7, 0, 5}, []bool{false, true, false})
	require.NoError(t, err)

	// Masked cells contribute nothing to the pool.
	require.Equal(t, []int{5, 7}, x.PoolValues())
	require.Equal(t, []Ref{2, None, 1}, x.Refs())
	require.True(t, x.MissingAt(1))
	require.False(t, x.MissingAt(0))
}

func TestEncode_MaskLengthMismatch(t *testing.T) {
	_, err := Encode([]int{1, 2}, []bool{false})
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestEncode_DeterministicReferences(t *testing.T) {
	data := []string{"x", "y", "x", "z", "y", "x"}
	x, err := Encode(data, nil)
	require.NoError(t, err)

	refs := x.Refs()
	for i, a := range data {
		for j, b := range data {
			if a == b {
				require.Equal(t, refs[i], refs[j])
			} else {
				require.NotEqual(t, refs[i], refs[j])
			}
		}
	}
}

func TestEncode_WithPool(t *testing.T) {
	x, err := Encode([]string{"b", "a"}, nil, WithPool([]string{"c", "a", "b", "a"}))
	require.NoError(t, err)

	// Supplied pool is deduplicated and sorted before mapping, and extra
	// entries are retained.
	require.Equal(t, []string{"a", "b", "c"}, x.PoolValues())
	require.Equal(t, []Ref{2, 1}, x.Refs())
}

func TestEncode_WithPool_Mismatch(t *testing.T) {
	_, err := Encode([]string{"b", "z"}, nil, WithPool([]string{"a", "b"}))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPoolMismatch)
}

func TestEncode_WithPool_MissingCellsNeedNoPoolEntry(t *testing.T) {
	x, err := Encode([]string{"b", "z"}, []bool{false, true}, WithPool([]string{"a", "b"}))
	require.NoError(t, err)
	require.Equal(t, []Ref{2, None}, x.Refs())
}

func TestEncode_WithShape(t *testing.T) {
	x, err := Encode([]int{1, 2, 3, 4, 5, 6}, nil, WithShape[int](2, 3))
	require.NoError(t, err)

	require.Equal(t, 2, x.NDim())
	require.Equal(t, []int{2, 3}, x.Shape())
	require.Equal(t, 6, x.Len())
}

func TestEncode_WithShape_Mismatch(t *testing.T) {
	_, err := Encode([]int{1, 2, 3}, nil, WithShape[int](2, 2))
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestFromRefs_Valid(t *testing.T) {
	pool, err := NewPool([]string{"a", "b"})
	require.NoError(t, err)

	x, err := FromRefs([]Ref{2, None, 1}, pool)
	require.NoError(t, err)
	require.Equal(t, 3, x.Len())

	v, ok := x.At(0).Get()
	require.True(t, ok)
	require.Equal(t, "b", v)
}

func TestFromRefs_OutOfBounds(t *testing.T) {
	pool, err := NewPool([]string{"a", "b"})
	require.NoError(t, err)

	_, err = FromRefs([]Ref{1, 3}, pool)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrRefOutOfBounds)
}

func TestFromRefs_NilPool(t *testing.T) {
	_, err := FromRefs[string]([]Ref{None}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidUsage)
}

func TestAllMissing(t *testing.T) {
	x := AllMissing[string](4)

	require.Equal(t, 4, x.Len())
	require.Equal(t, 0, x.PoolLen())
	require.Equal(t, []bool{true, true, true, true}, x.IsMissing())
	require.True(t, x.At(0).IsMissing())
}

func TestArray_Copy_Independent(t *testing.T) {
	x, err := Encode([]string{"a", "b"}, nil)
	require.NoError(t, err)

	y := x.Copy()
	require.False(t, x.SharesPool(y))

	require.NoError(t, y.Set(0, "c"))

	// Neither the source refs nor its pool observe the copy's mutation.
	require.Equal(t, []Ref{1, 2}, x.Refs())
	require.Equal(t, 2, x.PoolLen())
	require.Equal(t, 3, y.PoolLen())
}

func TestArray_Similar_SharesPool(t *testing.T) {
	x, err := Encode([]string{"a", "b"}, nil)
	require.NoError(t, err)

	y := x.Similar(3)
	require.Equal(t, 3, y.Len())
	require.Equal(t, []bool{true, true, true}, y.IsMissing())
	require.True(t, x.SharesPool(y))

	// Pool growth through the skeleton is visible through the source.
	require.NoError(t, y.Set(0, "c"))
	require.Equal(t, []string{"a", "b", "c"}, x.PoolValues())
}

func TestArray_Similar_DefaultShape(t *testing.T) {
	x, err := Encode([]int{1, 2, 3, 4}, nil, WithShape[int](2, 2))
	require.NoError(t, err)

	y := x.Similar()
	require.Equal(t, []int{2, 2}, y.Shape())
	require.Equal(t, 4, y.Len())
}

func TestArray_Reshape(t *testing.T) {
	x, err := Encode([]int{1, 2, 3, 4, 5, 6}, nil)
	require.NoError(t, err)

	require.NoError(t, x.Reshape(3, 2))
	require.Equal(t, []int{3, 2}, x.Shape())

	err = x.Reshape(4, 2)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestArray_At2(t *testing.T) {
	x, err := Encode([]string{"a", "b", "c", "d"}, nil, WithShape[string](2, 2))
	require.NoError(t, err)

	cell, err := x.At2(1, 0)
	require.NoError(t, err)
	v, ok := cell.Get()
	require.True(t, ok)
	require.Equal(t, "c", v)

	_, err = x.At2(2, 0)
	require.ErrorIs(t, err, errs.ErrPositionOutOfRange)
}

func TestArray_At2_RequiresMatrix(t *testing.T) {
	x, err := Encode([]string{"a", "b"}, nil)
	require.NoError(t, err)

	_, err = x.At2(0, 0)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestArray_LastIndex(t *testing.T) {
	x, err := Encode([]int{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, x.LastIndex())

	empty, err := Encode([]int{}, nil)
	require.NoError(t, err)
	require.Equal(t, -1, empty.LastIndex())
}

func TestMaskedBridge_RoundTrip(t *testing.T) {
	in := masked.New([]string{"b", "", "a", "b"}, []bool{false, true, false, false})

	x, err := FromMasked(in)
	require.NoError(t, err)

	out := x.ToMasked()
	require.True(t, masked.Equal(in, out))
}

func TestMaskedBridge_RoundTrip_AllMissing(t *testing.T) {
	in := masked.Make[int](3)

	x, err := FromMasked(in)
	require.NoError(t, err)
	require.Equal(t, 0, x.PoolLen())

	require.True(t, masked.Equal(in, x.Materialize()))
}
