package pooled

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tabkit/pooled/errs"
	"github.com/tabkit/pooled/masked"
)

// Array is a dictionary-encoded N-dimensional array with missing-value
// support: a flat, row-major array of references into a value pool. A cell
// holding the reference None is missing; every other reference addresses a
// pool slot holding the cell's value.
//
// Pooling trades a small indirection for memory savings on low-cardinality
// data and for cheap equality: cells encoded against the same pool compare
// equal iff their references compare equal, and grouping degenerates to a
// counting pass over the reference domain (see Order).
//
// Every array owns its reference storage exclusively. The pool is owned
// exclusively too, except for arrays produced by Similar and CoEncode, which
// deliberately share one pool object; each operation documents which side of
// that line it is on. Arrays are not safe for concurrent use.
type Array[T cmp.Ordered] struct {
	refs  []Ref
	shape []int
	pool  *Pool[T]
}

type encodeConfig[T cmp.Ordered] struct {
	poolValues []T
	hasPool    bool
	shape      []int
}

// EncodeOption configures Encode.
type EncodeOption[T cmp.Ordered] func(*encodeConfig[T])

// WithPool supplies the candidate pool for Encode. The supplied values are
// deduplicated and sorted before mapping, and every non-missing input value
// must be present among them; an absent value fails the construction with
// errs.ErrPoolMismatch.
func WithPool[T cmp.Ordered](values []T) EncodeOption[T] {
	return func(cfg *encodeConfig[T]) {
		cfg.poolValues = values
		cfg.hasPool = true
	}
}

// WithShape sets the logical shape of the encoded array. The product of the
// dimensions must equal the data length. Without this option the result is
// one-dimensional.
func WithShape[T cmp.Ordered](dims ...int) EncodeOption[T] {
	return func(cfg *encodeConfig[T]) {
		cfg.shape = dims
	}
}

// Encode builds a pooled array from parallel data and missing-mask slices.
// mask[i] == true marks cell i as missing; a nil mask means no cell is
// missing.
//
// The pool is the sorted sequence of distinct non-missing data values, so
// equal input values always receive equal references and pool order is
// deterministic. Cost is O(n log n), dominated by the sort.
//
// Returns errs.ErrShapeMismatch if the mask length or a WithShape option does
// not match the data length, errs.ErrPoolOverflow if the distinct values
// exceed MaxPoolSize, and errs.ErrPoolMismatch if a WithPool option omits a
// required value.
func Encode[T cmp.Ordered](data []T, mask []bool, opts ...EncodeOption[T]) (*Array[T], error) {
	var cfg encodeConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	if mask != nil && len(mask) != len(data) {
		return nil, fmt.Errorf("%w: mask length %d, data length %d",
			errs.ErrShapeMismatch, len(mask), len(data))
	}

	candidates := cfg.poolValues
	if !cfg.hasPool {
		candidates = presentValues(data, mask)
	}

	pool, err := NewPool(candidates)
	if err != nil {
		return nil, err
	}

	refs, err := mapRefs(data, mask, pool, cfg.hasPool)
	if err != nil {
		return nil, err
	}

	shape := cfg.shape
	if shape == nil {
		shape = []int{len(data)}
	}
	if err := checkShape(shape, len(data)); err != nil {
		return nil, err
	}

	return &Array[T]{refs: refs, shape: slices.Clone(shape), pool: pool}, nil
}

// FromRefs builds a pooled array directly from a reference array and a pool,
// validating that every non-None reference addresses an existing pool slot.
// The refs slice is copied; the pool is adopted as-is, so the caller must not
// keep mutating it independently.
//
// Returns errs.ErrInvalidUsage for a nil pool, errs.ErrRefOutOfBounds for a
// reference past the pool length, and errs.ErrShapeMismatch if the dimensions
// do not multiply out to len(refs). Without explicit dimensions the array is
// one-dimensional.
func FromRefs[T cmp.Ordered](refs []Ref, pool *Pool[T], dims ...int) (*Array[T], error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: nil pool", errs.ErrInvalidUsage)
	}

	limit := Ref(pool.Len())
	for i, r := range refs {
		if r > limit {
			return nil, fmt.Errorf("%w: refs[%d] = %d, pool has %d slots",
				errs.ErrRefOutOfBounds, i, r, pool.Len())
		}
	}

	if dims == nil {
		dims = []int{len(refs)}
	}
	if err := checkShape(dims, len(refs)); err != nil {
		return nil, err
	}

	return &Array[T]{refs: slices.Clone(refs), shape: slices.Clone(dims), pool: pool}, nil
}

// AllMissing returns an array of the given shape with every cell missing,
// backed by a fresh empty pool.
func AllMissing[T cmp.Ordered](dims ...int) *Array[T] {
	n := 1
	for _, d := range dims {
		n *= d
	}

	return &Array[T]{
		refs:  make([]Ref, n),
		shape: slices.Clone(dims),
		pool:  &Pool[T]{},
	}
}

// FromMasked encodes a masked array into a pooled array, taking its values
// and mask. Equivalent to Encode on the masked array's fields.
func FromMasked[T cmp.Ordered](m *masked.Array[T]) (*Array[T], error) {
	return Encode(m.Values(), m.Mask())
}

// Len returns the total number of cells.
func (x *Array[T]) Len() int {
	return len(x.refs)
}

// LastIndex returns the flat position of the last cell, or -1 for an empty
// array.
func (x *Array[T]) LastIndex() int {
	return len(x.refs) - 1
}

// NDim returns the number of dimensions.
func (x *Array[T]) NDim() int {
	return len(x.shape)
}

// Shape returns a copy of the dimension sizes.
func (x *Array[T]) Shape() []int {
	return slices.Clone(x.shape)
}

// Reshape changes the logical shape in place. The product of the new
// dimensions must equal Len; returns errs.ErrShapeMismatch otherwise.
func (x *Array[T]) Reshape(dims ...int) error {
	if err := checkShape(dims, len(x.refs)); err != nil {
		return err
	}
	x.shape = slices.Clone(dims)

	return nil
}

// Copy returns a deep copy: references, shape and pool are all copied, so the
// result shares no storage with the receiver.
func (x *Array[T]) Copy() *Array[T] {
	return &Array[T]{
		refs:  slices.Clone(x.refs),
		shape: slices.Clone(x.shape),
		pool:  x.pool.Clone(),
	}
}

// Similar returns an all-missing array of the requested shape that shares the
// receiver's pool object. This is a deliberate aliasing exception: the
// skeleton references nothing yet, and sharing lets values later written to
// it reuse the receiver's references. Without dimensions the receiver's shape
// is kept.
func (x *Array[T]) Similar(dims ...int) *Array[T] {
	if dims == nil {
		dims = x.shape
	}

	n := 1
	for _, d := range dims {
		n *= d
	}

	return &Array[T]{
		refs:  make([]Ref, n),
		shape: slices.Clone(dims),
		pool:  x.pool,
	}
}

// SharesPool reports whether two arrays reference the same pool object, as
// after Similar or CoEncode. Pools with equal contents but separate identity
// compare false; see Pool.Fingerprint for content comparison.
func (x *Array[T]) SharesPool(other *Array[T]) bool {
	return x.pool == other.pool
}

// MissingAt reports whether the cell at flat position i is missing.
func (x *Array[T]) MissingAt(i int) bool {
	return x.refs[i] == None
}

// IsMissing returns the element-wise missing mask. Only the reference array
// is consulted; the pool is never touched.
func (x *Array[T]) IsMissing() []bool {
	out := make([]bool, len(x.refs))
	for i, r := range x.refs {
		out[i] = r == None
	}

	return out
}

// At returns the cell at flat position i: the pooled value, or the missing
// cell. It panics if i is out of range, like a slice index.
func (x *Array[T]) At(i int) Cell[T] {
	r := x.refs[i]
	if r == None {
		return Missing[T]()
	}

	return Value(x.pool.Value(r))
}

// At2 returns the cell at row r, column c of a two-dimensional array.
// Returns errs.ErrShapeMismatch if the array is not two-dimensional and
// errs.ErrPositionOutOfRange if either coordinate is out of bounds.
func (x *Array[T]) At2(r, c int) (Cell[T], error) {
	if len(x.shape) != 2 {
		return Missing[T](), fmt.Errorf("%w: At2 on %d-dimensional array",
			errs.ErrShapeMismatch, len(x.shape))
	}
	rows, cols := x.shape[0], x.shape[1]
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return Missing[T](), fmt.Errorf("%w: (%d, %d) in %dx%d array",
			errs.ErrPositionOutOfRange, r, c, rows, cols)
	}

	return x.At(r*cols + c), nil
}

// Refs returns a copy of the flat reference array.
func (x *Array[T]) Refs() []Ref {
	return slices.Clone(x.refs)
}

// PoolValues returns a copy of the pool contents in slot order.
func (x *Array[T]) PoolValues() []T {
	return x.pool.Values()
}

// PoolLen returns the number of slots in the pool, including slots no cell
// references.
func (x *Array[T]) PoolLen() int {
	return x.pool.Len()
}

// Materialize converts the array to its masked representation: each missing
// cell becomes a masked cell, every other cell becomes its pooled value. This
// is the inverse of Encode up to pool-internal order.
func (x *Array[T]) Materialize() *masked.Array[T] {
	values := make([]T, len(x.refs))
	mask := make([]bool, len(x.refs))
	for i, r := range x.refs {
		if r == None {
			mask[i] = true
		} else {
			values[i] = x.pool.Value(r)
		}
	}

	return masked.New(values, mask)
}

// ToMasked is Materialize under the bridge's conventional name.
func (x *Array[T]) ToMasked() *masked.Array[T] {
	return x.Materialize()
}

// presentValues collects the non-missing values of data.
func presentValues[T any](data []T, mask []bool) []T {
	if mask == nil {
		return data
	}

	out := make([]T, 0, len(data))
	for i, v := range data {
		if !mask[i] {
			out = append(out, v)
		}
	}

	return out
}

// mapRefs maps each cell of data to its pool reference, or None where masked.
// When the pool was caller-supplied, an absent value is a PoolMismatch; a
// self-built pool contains every present value by construction.
func mapRefs[T cmp.Ordered](data []T, mask []bool, pool *Pool[T], supplied bool) ([]Ref, error) {
	refs := make([]Ref, len(data))
	for i, v := range data {
		if mask != nil && mask[i] {
			continue
		}

		r, ok := pool.Lookup(v)
		if !ok {
			if supplied {
				return nil, fmt.Errorf("%w: data[%d] = %v", errs.ErrPoolMismatch, i, v)
			}

			return nil, fmt.Errorf("%w: data[%d] = %v missing from freshly built pool",
				errs.ErrInvalidUsage, i, v)
		}
		refs[i] = r
	}

	return refs, nil
}

func checkShape(dims []int, n int) error {
	size := 1
	for _, d := range dims {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension %d", errs.ErrShapeMismatch, d)
		}
		size *= d
	}
	if size != n {
		return fmt.Errorf("%w: dimensions %v hold %d cells, have %d",
			errs.ErrShapeMismatch, dims, size, n)
	}

	return nil
}
