package pooled

import (
	"cmp"

	"github.com/tabkit/pooled/masked"
)

// CoEncode encodes two data/mask pairs against one shared pool built from the
// sorted union of both inputs' distinct non-missing values. Equal values
// receive equal references across both results, so the two columns can be
// compared, joined or grouped by reference equality instead of value
// equality.
//
// The two results hold the same pool object, not copies. A pool-growing write
// through either array is visible through the other; this aliasing is the
// point of the operation, and callers needing isolation should Copy the side
// they intend to mutate.
func CoEncode[T cmp.Ordered](d1 []T, m1 []bool, d2 []T, m2 []bool) (*Array[T], *Array[T], error) {
	union := make([]T, 0, len(d1)+len(d2))
	union = append(union, presentValues(d1, m1)...)
	union = append(union, presentValues(d2, m2)...)

	pool, err := NewPool(union)
	if err != nil {
		return nil, nil, err
	}

	refs1, err := mapRefs(d1, m1, pool, false)
	if err != nil {
		return nil, nil, err
	}
	refs2, err := mapRefs(d2, m2, pool, false)
	if err != nil {
		return nil, nil, err
	}

	a1 := &Array[T]{refs: refs1, shape: []int{len(refs1)}, pool: pool}
	a2 := &Array[T]{refs: refs2, shape: []int{len(refs2)}, pool: pool}

	return a1, a2, nil
}

// CoEncodeMasked is CoEncode over two masked arrays.
func CoEncodeMasked[T cmp.Ordered](a, b *masked.Array[T]) (*Array[T], *Array[T], error) {
	return CoEncode(a.Values(), a.Mask(), b.Values(), b.Mask())
}
