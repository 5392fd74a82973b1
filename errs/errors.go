// Package errs defines the sentinel errors shared across the pooled library.
//
// All fallible operations wrap one of these sentinels with fmt.Errorf and %w,
// so callers can classify failures with errors.Is while still receiving a
// message describing the specific call site.
package errs

import "errors"

var (
	// ErrPoolOverflow is returned when a pool would grow beyond the number of
	// distinct values the reference type can address.
	ErrPoolOverflow = errors.New("pool size exceeds reference capacity")

	// ErrPoolMismatch is returned when encoding against a caller-supplied pool
	// that does not contain every non-missing input value.
	ErrPoolMismatch = errors.New("value not present in supplied pool")

	// ErrRefOutOfBounds is returned when a reference array contains a reference
	// greater than the pool length.
	ErrRefOutOfBounds = errors.New("reference exceeds pool size")

	// ErrValueNotFound is returned by replace operations when the source value
	// is absent from the pool.
	ErrValueNotFound = errors.New("value not found in pool")

	// ErrUnimplemented is returned for index forms that are intentionally not
	// supported, such as two-dimensional reads where both axes select multiple
	// positions.
	ErrUnimplemented = errors.New("index form not supported")

	// ErrInvalidUsage is returned for operations that are nonsensical for the
	// receiver, such as value operations on an array with no pool attached.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrShapeMismatch is returned when the provided dimensions do not match
	// the number of elements, or when a mask or data slice has the wrong length.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrPositionOutOfRange is returned when an index position falls outside
	// the array bounds.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrLengthMismatch is returned by batch assignment when the number of
	// selected positions differs from the number of supplied values.
	ErrLengthMismatch = errors.New("length mismatch")
)
