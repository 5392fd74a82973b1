package pooled

import (
	"fmt"

	"github.com/tabkit/pooled/errs"
)

// Replace rewrites every cell equal to from so that it reads as to. Either
// side may be the missing cell, giving four cases:
//
//   - from and to both present: from must be pooled (errs.ErrValueNotFound
//     otherwise). If to is already pooled, every reference to from's slot is
//     repointed to to's slot, leaving from's slot orphaned but retained. If
//     to is new, from's slot is overwritten in place, retargeting every
//     referencing cell without touching the reference array.
//   - from missing, to present: every missing cell is pointed at to's slot,
//     appending to to the pool if it is new.
//   - from present, to missing: every reference to from's slot becomes
//     missing, orphaning the slot; errs.ErrValueNotFound if from is not
//     pooled.
//   - both missing: a no-op that always succeeds.
//
// Orphaned slots are never garbage-collected; Compact removes them if the
// retained memory matters. On failure the array is unchanged.
func (x *Array[T]) Replace(from, to Cell[T]) error {
	fromValue, fromPresent := from.Get()
	toValue, toPresent := to.Get()

	switch {
	case !fromPresent && !toPresent:
		return nil

	case !fromPresent:
		r, ok := x.pool.Lookup(toValue)
		if !ok {
			var err error
			r, err = x.pool.Append(toValue)
			if err != nil {
				return err
			}
		}
		x.repoint(None, r)

		return nil

	case !toPresent:
		r, ok := x.pool.Lookup(fromValue)
		if !ok {
			return fmt.Errorf("%w: %v", errs.ErrValueNotFound, fromValue)
		}
		x.repoint(r, None)

		return nil

	default:
		fromRef, ok := x.pool.Lookup(fromValue)
		if !ok {
			return fmt.Errorf("%w: %v", errs.ErrValueNotFound, fromValue)
		}

		toRef, ok := x.pool.Lookup(toValue)
		switch {
		case ok && toRef == fromRef:
			// from and to resolve to the same slot; nothing to rewrite.
		case ok:
			x.repoint(fromRef, toRef)
		default:
			// to is new: overwrite from's slot so existing references
			// resolve to the new value with no reference rewrite.
			x.pool.setSlot(fromRef, toValue)
		}

		return nil
	}
}

// repoint rewrites every reference equal to from into to.
func (x *Array[T]) repoint(from, to Ref) {
	for i, r := range x.refs {
		if r == from {
			x.refs[i] = to
		}
	}
}
