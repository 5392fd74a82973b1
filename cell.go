package pooled

// Cell is a scalar read or write unit: either a concrete value or missing.
//
// Cell is what single-element reads return and what replace and batch
// assignment accept, so "missing" can appear anywhere a value can without
// resorting to pointers or panics.
type Cell[T any] struct {
	value   T
	present bool
}

// Value wraps a concrete value in a Cell.
func Value[T any](v T) Cell[T] {
	return Cell[T]{value: v, present: true}
}

// Missing returns the missing Cell for type T.
func Missing[T any]() Cell[T] {
	return Cell[T]{}
}

// Get returns the cell's value and whether it is present.
// For a missing cell it returns the zero value and false.
func (c Cell[T]) Get() (T, bool) {
	return c.value, c.present
}

// IsMissing reports whether the cell is missing.
func (c Cell[T]) IsMissing() bool {
	return !c.present
}

// Or returns the cell's value, or fallback if the cell is missing.
func (c Cell[T]) Or(fallback T) T {
	if !c.present {
		return fallback
	}

	return c.value
}
