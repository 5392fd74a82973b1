package pooled

import (
	"github.com/tabkit/pooled/internal/scratch"
	"github.com/tabkit/pooled/masked"
)

// Unique returns the distinct cells of the array as a masked array in pool
// order: the full pool, with one trailing missing cell appended iff any cell
// of the array is missing.
//
// "Pool order" is the order the slots currently have, which is sorted for a
// freshly encoded array but may have been perturbed by later appends and
// replacements. The full pool is reported even when some slots are no longer
// referenced, matching the uncompacted-slice behavior of Take; run Compact
// first for a strictly-referenced result.
func (x *Array[T]) Unique() *masked.Array[T] {
	out := masked.FromValues(x.pool.Values())

	for _, r := range x.refs {
		if r == None {
			out.AppendMissing()
			break
		}
	}

	return out
}

// Order returns a permutation p of the flat positions such that reading the
// array at p[0], p[1], ... yields non-decreasing references, with missing
// cells first. For a freshly encoded array this is a sort by value; after
// pool-growing mutation it groups by pool order instead.
//
// The permutation is computed with a stable counting pass over the reference
// domain, O(n + k) for n cells and k pool slots. This is the pooling payoff:
// grouping never compares values.
func (x *Array[T]) Order() []int {
	counts, release := scratch.GetIntSlice(x.pool.Len() + 2)
	defer release()

	// counts[r+1] accumulates the bucket size for reference r, so the
	// prefix sum leaves counts[r] holding bucket r's start offset.
	for _, r := range x.refs {
		counts[int(r)+1]++
	}
	for i := 1; i < len(counts); i++ {
		counts[i] += counts[i-1]
	}

	out := make([]int, len(x.refs))
	for i, r := range x.refs {
		out[counts[int(r)]] = i
		counts[int(r)]++
	}

	return out
}

// Compact rebuilds the pool in place to hold only slots some cell references,
// preserving their relative order, and remaps the reference array to match.
// This undoes the slot retention of Take, Unique and Replace. The receiver
// ends up with an exclusively owned pool even if it previously shared one.
func (x *Array[T]) Compact() {
	used, release := scratch.GetBoolSlice(x.pool.Len() + 1)
	defer release()

	for _, r := range x.refs {
		used[r] = true
	}

	remap := make([]Ref, x.pool.Len()+1)
	kept := make([]T, 0, x.pool.Len())
	for slot := 1; slot <= x.pool.Len(); slot++ {
		if !used[slot] {
			continue
		}
		kept = append(kept, x.pool.Value(Ref(slot)))
		remap[slot] = Ref(len(kept))
	}

	for i, r := range x.refs {
		x.refs[i] = remap[r]
	}
	x.pool = &Pool[T]{values: kept}
}
