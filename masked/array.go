// Package masked provides a plain masked array: element storage paired with a
// per-element missing indicator, with no pooling or deduplication.
//
// masked.Array is the interchange representation of the pooled library. Pooled
// arrays materialize into it and are constructed from it. The missing
// indicator is kept as a compressed bitmap rather than a parallel []bool, so
// sparse missingness costs almost nothing.
package masked

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Array pairs a value slice with a bitmap of missing positions.
//
// The zero value is not usable; construct instances with New, Make or FromValues.
// Positions are 0-based. The backing value under a missing cell carries no
// meaning; readers must consult the mask, never the raw value.
type Array[T any] struct {
	values  []T
	missing *roaring.Bitmap
}

// New creates a masked array from parallel value and mask slices.
// mask[i] == true marks position i as missing. mask may be nil, meaning no
// cell is missing. The values slice is copied.
//
// New panics if mask is non-nil and has a different length than values; the
// two slices describe the same cells and a mismatch is a programming error.
func New[T any](values []T, mask []bool) *Array[T] {
	if mask != nil && len(mask) != len(values) {
		panic("masked: mask length does not match values length")
	}

	a := &Array[T]{
		values:  make([]T, len(values)),
		missing: roaring.New(),
	}
	copy(a.values, values)

	for i, m := range mask {
		if m {
			a.missing.Add(uint32(i))
		}
	}

	return a
}

// FromValues creates a masked array with no missing cells.
func FromValues[T any](values []T) *Array[T] {
	return New(values, nil)
}

// Make creates an all-missing masked array of length n.
func Make[T any](n int) *Array[T] {
	a := &Array[T]{
		values:  make([]T, n),
		missing: roaring.New(),
	}
	if n > 0 {
		a.missing.AddRange(0, uint64(n))
	}

	return a
}

// Len returns the number of cells.
func (a *Array[T]) Len() int {
	return len(a.values)
}

// IsMissing reports whether the cell at position i is missing.
func (a *Array[T]) IsMissing(i int) bool {
	return a.missing.Contains(uint32(i))
}

// MissingCount returns the number of missing cells.
func (a *Array[T]) MissingCount() int {
	return int(a.missing.GetCardinality())
}

// AnyMissing reports whether at least one cell is missing.
func (a *Array[T]) AnyMissing() bool {
	return !a.missing.IsEmpty()
}

// Value returns the value at position i and true, or the zero value and false
// if the cell is missing.
func (a *Array[T]) Value(i int) (T, bool) {
	if a.IsMissing(i) {
		var zero T
		return zero, false
	}

	return a.values[i], true
}

// Values returns a copy of the backing value slice. Entries under missing
// cells carry no meaning; use Mask or IsMissing to identify them.
func (a *Array[T]) Values() []T {
	out := make([]T, len(a.values))
	copy(out, a.values)

	return out
}

// Mask returns the missing indicator as a []bool parallel to Values.
func (a *Array[T]) Mask() []bool {
	out := make([]bool, len(a.values))
	it := a.missing.Iterator()
	for it.HasNext() {
		out[it.Next()] = true
	}

	return out
}

// Bitmap returns a copy of the missing-position bitmap.
func (a *Array[T]) Bitmap() *roaring.Bitmap {
	return a.missing.Clone()
}

// Set stores v at position i and clears its missing flag.
func (a *Array[T]) Set(i int, v T) {
	a.values[i] = v
	a.missing.Remove(uint32(i))
}

// SetMissing marks position i as missing and zeroes its backing value.
func (a *Array[T]) SetMissing(i int) {
	var zero T
	a.values[i] = zero
	a.missing.Add(uint32(i))
}

// Append adds v as a new trailing cell.
func (a *Array[T]) Append(v T) {
	a.values = append(a.values, v)
}

// AppendMissing adds a new trailing missing cell.
func (a *Array[T]) AppendMissing() {
	var zero T
	a.missing.Add(uint32(len(a.values)))
	a.values = append(a.values, zero)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (a *Array[T]) Clone() *Array[T] {
	out := &Array[T]{
		values:  make([]T, len(a.values)),
		missing: a.missing.Clone(),
	}
	copy(out.values, a.values)

	return out
}

// Present returns an iterator over the non-missing cells in position order,
// yielding each position and its value.
func (a *Array[T]) Present() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.values {
			if a.missing.Contains(uint32(i)) {
				continue
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Equal reports whether two masked arrays are element-wise equal: same
// length, same missing cells, and equal values at every non-missing position.
func Equal[T comparable](a, b *Array[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	if !a.missing.Equals(b.missing) {
		return false
	}
	for i, v := range a.values {
		if a.missing.Contains(uint32(i)) {
			continue
		}
		if v != b.values[i] {
			return false
		}
	}

	return true
}
