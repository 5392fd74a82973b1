package pooled

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tabkit/pooled/errs"
	"github.com/tabkit/pooled/internal/hash"
)

// Pool is an ordered sequence of distinct values that pooled arrays reference
// by index. Slot r holds the value for reference Ref(r), 1-based.
//
// A pool built by NewPool is sorted. Sortedness is an initial-construction
// property only: later growth through Append and in-place replacement keeps
// existing references stable instead of re-sorting, so a mutated pool is in
// general unsorted. Do not "repair" this; re-sorting would silently repoint
// every existing reference.
//
// Pools are not safe for concurrent use.
type Pool[T cmp.Ordered] struct {
	values []T

	// lookup is the reverse index from value to reference, built on first
	// Lookup and kept coherent across Append. Invalidated by slot overwrite.
	lookup map[T]Ref
}

// NewPool builds a pool from the given values: duplicates are removed and the
// result is sorted under T's total order. For floating-point element types,
// NaN sorts before all other values and duplicate NaNs collapse to one slot.
//
// Returns errs.ErrPoolOverflow if the number of distinct values exceeds
// MaxPoolSize.
func NewPool[T cmp.Ordered](values []T) (*Pool[T], error) {
	distinct := slices.Clone(values)
	slices.Sort(distinct)
	distinct = slices.CompactFunc(distinct, func(a, b T) bool {
		return cmp.Compare(a, b) == 0
	})

	if len(distinct) > MaxPoolSize {
		return nil, fmt.Errorf("%w: %d distinct values, limit %d",
			errs.ErrPoolOverflow, len(distinct), MaxPoolSize)
	}

	return &Pool[T]{values: distinct}, nil
}

// Len returns the number of slots in the pool.
func (p *Pool[T]) Len() int {
	return len(p.values)
}

// Value returns the value stored in slot r.
// It panics if r is None or exceeds the pool length, the same way an
// out-of-range slice index does; validated arrays never produce such a
// reference.
func (p *Pool[T]) Value(r Ref) T {
	if r == None {
		panic("pooled: Value called with the missing reference")
	}

	return p.values[r-1]
}

// Values returns a copy of the pool contents in slot order.
func (p *Pool[T]) Values() []T {
	return slices.Clone(p.values)
}

// Lookup returns the reference of the first slot holding v, or (None, false)
// if v is not in the pool.
//
// The reverse index is a hash map built lazily on first use. NaN cannot be
// found through a map key, so a NaN probe falls back to a scan comparing with
// cmp.Compare; every other value resolves in O(1).
func (p *Pool[T]) Lookup(v T) (Ref, bool) {
	p.ensureLookup()

	if r, ok := p.lookup[v]; ok {
		return r, true
	}

	if v != v { // NaN
		for i, pv := range p.values {
			if cmp.Compare(pv, v) == 0 {
				return Ref(i + 1), true
			}
		}
	}

	return None, false
}

// Append adds v at the end of the pool and returns its new reference.
// The pool is not re-sorted and v is not checked for duplication; callers
// wanting reuse-or-append semantics should Lookup first, the way
// Array.Set does.
//
// Returns errs.ErrPoolOverflow if the pool is already at MaxPoolSize.
func (p *Pool[T]) Append(v T) (Ref, error) {
	if len(p.values) >= MaxPoolSize {
		return None, fmt.Errorf("%w: pool is at capacity %d", errs.ErrPoolOverflow, MaxPoolSize)
	}

	p.values = append(p.values, v)
	r := Ref(len(p.values))

	if p.lookup != nil {
		if _, exists := p.lookup[v]; !exists {
			p.lookup[v] = r
		}
	}

	return r, nil
}

// Clone returns a deep copy of the pool. The reverse index is not copied; the
// clone rebuilds it on demand.
func (p *Pool[T]) Clone() *Pool[T] {
	return &Pool[T]{values: slices.Clone(p.values)}
}

// Fingerprint returns the xxHash64 content fingerprint of the pool: two pools
// fingerprint equal iff they hold equal values in the same slot order. This
// is a cheap way to check that two arrays were encoded against pools with
// identical contents, e.g. the two halves of a CoEncode.
func (p *Pool[T]) Fingerprint() uint64 {
	return hash.Fingerprint(p.values)
}

// setSlot overwrites slot r in place. Existing references to r now resolve to
// v; this is how Replace retargets every referencing cell without touching
// the reference array. The reverse index is dropped since first-occurrence
// order may have changed.
func (p *Pool[T]) setSlot(r Ref, v T) {
	p.values[r-1] = v
	p.lookup = nil
}

func (p *Pool[T]) ensureLookup() {
	if p.lookup != nil {
		return
	}

	p.lookup = make(map[T]Ref, len(p.values))
	for i, v := range p.values {
		if _, exists := p.lookup[v]; !exists {
			p.lookup[v] = Ref(i + 1)
		}
	}
}
