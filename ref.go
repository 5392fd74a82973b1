package pooled

import "math"

// Ref is a reference into a value pool.
//
// References are 1-based: Ref(1) addresses the first pool slot. The zero
// value None marks a missing cell and never addresses the pool. Keeping the
// reference width at 16 bits bounds a pooled array's per-cell overhead at two
// bytes regardless of the element type.
type Ref uint16

// None is the reserved reference marking a missing cell.
const None Ref = 0

// MaxPoolSize is the maximum number of distinct non-missing values a pool can
// hold. One reference value is reserved for None, so the addressable range of
// Ref leaves room for exactly MaxPoolSize slots.
const MaxPoolSize = math.MaxUint16
