package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 content fingerprint of a value sequence.
//
// Values are fed to the digest in order, each in its default formatted form
// followed by a NUL separator, so that ["ab", "c"] and ["a", "bc"] produce
// different fingerprints. Two sequences fingerprint equal iff they hold equal
// values in the same order, which is what pool identity checks need.
func Fingerprint[T any](values []T) uint64 {
	d := xxhash.New()

	var buf []byte
	for _, v := range values {
		buf = fmt.Appendf(buf[:0], "%v\x00", v)
		_, _ = d.Write(buf)
	}

	return d.Sum64()
}
