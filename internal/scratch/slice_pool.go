package scratch

import "sync"

// Slice pools for short-lived scratch buffers.
// These pools keep the counting passes in Order and Compact allocation-free
// in steady state.
var (
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
	boolSlicePool = sync.Pool{
		New: func() any { return &[]bool{} },
	}
)

// GetIntSlice retrieves a zeroed int slice of the given length from the pool.
//
// The caller must call the returned cleanup function (typically with defer) to
// return the slice to the pool. The slice must not be retained after cleanup.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		for i := range slice {
			slice[i] = 0
		}
	}

	return slice, func() { intSlicePool.Put(ptr) }
}

// GetBoolSlice retrieves a zeroed bool slice of the given length from the pool.
//
// The caller must call the returned cleanup function (typically with defer) to
// return the slice to the pool. The slice must not be retained after cleanup.
func GetBoolSlice(size int) ([]bool, func()) {
	ptr, _ := boolSlicePool.Get().(*[]bool)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]bool, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		for i := range slice {
			slice[i] = false
		}
	}

	return slice, func() { boolSlicePool.Put(ptr) }
}
