// Package pooled implements a dictionary-encoded columnar array with
// missing-value support.
//
// A pooled array stores a compact ordered pool of distinct values plus a
// parallel array of small integer references into that pool; the reserved
// reference 0 marks a missing cell. Compared to storing values directly, the
// representation saves memory on low-cardinality columns and turns equality,
// grouping and ordering into integer operations over the reference domain.
//
// # Core Features
//
//   - Generic over any ordered element type, 16-bit references (up to 65535
//     distinct values per pool)
//   - Deterministic encoding: the pool is the sorted sequence of distinct
//     non-missing values
//   - In-place mutation with reuse-or-append pool growth and stable
//     references
//   - Closed set of index forms (position, range, position list, boolean
//     mask, bitmap) for reads and batch writes
//   - Pool-sharing co-encoding of two columns for reference-equality joins
//   - Value replacement, uniqueness extraction and O(n + k) grouping order
//   - Bidirectional bridge to the masked (unpooled) representation in
//     package masked
//
// # Basic Usage
//
// Encoding, reading and mutating a column:
//
//	x, _ := pooled.Encode([]string{"b", "a", "a"}, []bool{false, false, true})
//
//	cell := x.At(0)              // Value("b")
//	missing := x.MissingAt(2)    // true
//
//	_ = x.Set(2, "c")            // appends "c" to the pool
//	m := x.Materialize()         // masked.Array with ["b", "a", "c"]
//
// Co-encoding two columns into one shared pool:
//
//	left, right, _ := pooled.CoEncode(keys1, nil, keys2, nil)
//	// left and right hold references into the same pool, so
//	// left.Refs()[i] == right.Refs()[j] iff the underlying values are equal.
//
// Grouping without value comparison:
//
//	perm := x.Order() // missing cells first, then cells grouped in pool order
//
// # Ownership
//
// Arrays own their reference storage and pool exclusively, with two
// documented exceptions that share the pool object on purpose: Similar and
// CoEncode. All other producers (Copy, Take, Take2) deep-copy the pool. The
// package performs no synchronization; concurrent use requires external
// locking.
package pooled
