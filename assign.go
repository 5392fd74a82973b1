package pooled

import (
	"fmt"

	"github.com/tabkit/pooled/errs"
)

// Set writes v into the cell at flat position i. If v is already pooled its
// existing reference is reused; otherwise v is appended to the pool, which is
// the only way Set can fail: errs.ErrPoolOverflow when the pool is at
// capacity. On failure the array is unchanged.
//
// Appending never re-sorts the pool, so a pool that has grown through Set is
// no longer in sorted order. On an array produced by Similar or CoEncode the
// pool growth is visible to every array sharing the pool.
func (x *Array[T]) Set(i int, v T) error {
	if err := x.checkPosition(i); err != nil {
		return err
	}

	r, ok := x.pool.Lookup(v)
	if !ok {
		var err error
		r, err = x.pool.Append(v)
		if err != nil {
			return err
		}
	}
	x.refs[i] = r

	return nil
}

// SetMissing marks the cell at flat position i missing. Always legal for an
// in-range position; the pool is untouched and the previous value's slot is
// retained.
func (x *Array[T]) SetMissing(i int) error {
	if err := x.checkPosition(i); err != nil {
		return err
	}
	x.refs[i] = None

	return nil
}

// SetCell writes a cell at flat position i: a missing cell behaves like
// SetMissing, a present cell like Set.
func (x *Array[T]) SetCell(i int, c Cell[T]) error {
	v, ok := c.Get()
	if !ok {
		return x.SetMissing(i)
	}

	return x.Set(i, v)
}

// SetAt writes cells to the positions selected by ix, pairing positions and
// cells in selection order. The number of cells must equal the number of
// selected positions (errs.ErrLengthMismatch otherwise).
//
// The single-cell rule applies pairwise in order, so a value appended to the
// pool early in the batch is found and reused by later duplicates. The batch
// is not atomic: a failure partway through leaves the earlier writes applied.
func (x *Array[T]) SetAt(ix Index, cells []Cell[T]) error {
	positions, err := ix.resolve(len(x.refs))
	if err != nil {
		return err
	}
	if len(positions) != len(cells) {
		return fmt.Errorf("%w: %d positions, %d cells",
			errs.ErrLengthMismatch, len(positions), len(cells))
	}

	for k, i := range positions {
		if err := x.SetCell(i, cells[k]); err != nil {
			return err
		}
	}

	return nil
}

// SetValues is SetAt with every cell present.
func (x *Array[T]) SetValues(ix Index, values []T) error {
	cells := make([]Cell[T], len(values))
	for i, v := range values {
		cells[i] = Value(v)
	}

	return x.SetAt(ix, cells)
}

func (x *Array[T]) checkPosition(i int) error {
	if i < 0 || i >= len(x.refs) {
		return fmt.Errorf("%w: position %d, length %d", errs.ErrPositionOutOfRange, i, len(x.refs))
	}

	return nil
}
