package pooled

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/tabkit/pooled/errs"
	"github.com/tabkit/pooled/masked"
)

// Index selects positions along one axis of an array. The variant set is
// closed: a single position, a half-open range, an explicit position list
// (plain, masked, or bitmap), or a boolean mask (plain or masked). Each
// variant resolves to a flat position list before any reference is touched.
type Index interface {
	// resolve returns the selected positions for an axis of length n, in
	// selection order, each within [0, n).
	resolve(n int) ([]int, error)
}

// Pos selects a single position.
type Pos int

// Range selects the half-open interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Positions selects explicit positions in the given order. Positions may
// repeat.
type Positions []int

// Mask selects the positions where the mask is true. The mask length must
// equal the axis length.
type Mask []bool

func (p Pos) resolve(n int) ([]int, error) {
	if int(p) < 0 || int(p) >= n {
		return nil, fmt.Errorf("%w: position %d, length %d", errs.ErrPositionOutOfRange, int(p), n)
	}

	return []int{int(p)}, nil
}

func (r Range) resolve(n int) ([]int, error) {
	if r.Start < 0 || r.End < r.Start || r.End > n {
		return nil, fmt.Errorf("%w: range [%d, %d), length %d",
			errs.ErrPositionOutOfRange, r.Start, r.End, n)
	}

	out := make([]int, 0, r.End-r.Start)
	for i := r.Start; i < r.End; i++ {
		out = append(out, i)
	}

	return out, nil
}

func (p Positions) resolve(n int) ([]int, error) {
	for _, i := range p {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: position %d, length %d", errs.ErrPositionOutOfRange, i, n)
		}
	}

	return slices.Clone(p), nil
}

func (m Mask) resolve(n int) ([]int, error) {
	if len(m) != n {
		return nil, fmt.Errorf("%w: mask length %d, axis length %d",
			errs.ErrShapeMismatch, len(m), n)
	}

	var out []int
	for i, keep := range m {
		if keep {
			out = append(out, i)
		}
	}

	return out, nil
}

type bitmapIndex struct {
	bits *roaring.Bitmap
}

// BitmapIndex selects the positions set in a roaring bitmap, in ascending
// order.
func BitmapIndex(bits *roaring.Bitmap) Index {
	return bitmapIndex{bits: bits}
}

func (b bitmapIndex) resolve(n int) ([]int, error) {
	out := make([]int, 0, b.bits.GetCardinality())
	it := b.bits.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= n {
			return nil, fmt.Errorf("%w: position %d, length %d", errs.ErrPositionOutOfRange, i, n)
		}
		out = append(out, i)
	}

	return out, nil
}

type maskedMask struct {
	mask *masked.Array[bool]
}

// MaskedMask selects by a boolean mask whose entries can themselves be
// missing; a missing entry excludes its position, the same as false. The mask
// length must equal the axis length.
func MaskedMask(mask *masked.Array[bool]) Index {
	return maskedMask{mask: mask}
}

func (m maskedMask) resolve(n int) ([]int, error) {
	if m.mask.Len() != n {
		return nil, fmt.Errorf("%w: mask length %d, axis length %d",
			errs.ErrShapeMismatch, m.mask.Len(), n)
	}

	var out []int
	for i, keep := range m.mask.Present() {
		if keep {
			out = append(out, i)
		}
	}

	return out, nil
}

type maskedPositions struct {
	list *masked.Array[int]
}

// MaskedPositions selects the non-missing entries of a masked position list,
// in list order. Missing entries are dropped before lookup rather than
// selecting anything.
func MaskedPositions(list *masked.Array[int]) Index {
	return maskedPositions{list: list}
}

func (m maskedPositions) resolve(n int) ([]int, error) {
	var out []int
	for _, i := range m.list.Present() {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: position %d, length %d", errs.ErrPositionOutOfRange, i, n)
		}
		out = append(out, i)
	}

	return out, nil
}

// Take returns a new one-dimensional array holding the cells selected by ix,
// in selection order. Mask and MaskedMask indexes are aligned element-wise
// with the flat cells.
//
// The result copies the receiver's pool verbatim, including slots the
// selected cells never reference. Slices therefore stay cheap to build, at
// the price of retaining unreferenced pool entries; see Compact to shed them.
// The result shares no storage with the receiver.
func (x *Array[T]) Take(ix Index) (*Array[T], error) {
	positions, err := ix.resolve(len(x.refs))
	if err != nil {
		return nil, err
	}

	refs := make([]Ref, len(positions))
	for out, i := range positions {
		refs[out] = x.refs[i]
	}

	return &Array[T]{
		refs:  refs,
		shape: []int{len(refs)},
		pool:  x.pool.Clone(),
	}, nil
}

// TakeRow returns row r of a two-dimensional array as a one-dimensional
// array.
func (x *Array[T]) TakeRow(r int) (*Array[T], error) {
	return x.Take2(Pos(r), Range{Start: 0, End: x.colCount()})
}

// TakeCol returns column c of a two-dimensional array as a one-dimensional
// array.
func (x *Array[T]) TakeCol(c int) (*Array[T], error) {
	return x.Take2(Range{Start: 0, End: x.rowCount()}, Pos(c))
}

// Take2 reads a two-dimensional array through a row index and a column index.
// The supported forms are a single position on at least one axis: scalar/
// scalar yields a one-cell array, and scalar on one axis with any multi
// selection on the other yields a one-dimensional array in selection order.
// Selecting multiple positions on both axes at once returns
// errs.ErrUnimplemented rather than guessing between cartesian and pairwise
// semantics.
//
// The result copies the pool verbatim, like Take.
func (x *Array[T]) Take2(rowIx, colIx Index) (*Array[T], error) {
	if len(x.shape) != 2 {
		return nil, fmt.Errorf("%w: Take2 on %d-dimensional array",
			errs.ErrShapeMismatch, len(x.shape))
	}

	rows, cols := x.shape[0], x.shape[1]

	rowPositions, err := rowIx.resolve(rows)
	if err != nil {
		return nil, err
	}
	colPositions, err := colIx.resolve(cols)
	if err != nil {
		return nil, err
	}

	_, rowScalar := rowIx.(Pos)
	_, colScalar := colIx.(Pos)
	if !rowScalar && !colScalar {
		return nil, fmt.Errorf("%w: two-dimensional read with multi selection on both axes",
			errs.ErrUnimplemented)
	}

	refs := make([]Ref, 0, len(rowPositions)*len(colPositions))
	for _, r := range rowPositions {
		for _, c := range colPositions {
			refs = append(refs, x.refs[r*cols+c])
		}
	}

	return &Array[T]{
		refs:  refs,
		shape: []int{len(refs)},
		pool:  x.pool.Clone(),
	}, nil
}

func (x *Array[T]) rowCount() int {
	if len(x.shape) != 2 {
		return 0
	}

	return x.shape[0]
}

func (x *Array[T]) colCount() int {
	if len(x.shape) != 2 {
		return 0
	}

	return x.shape[1]
}
