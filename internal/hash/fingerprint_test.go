package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint_OrderSensitive(t *testing.T) {
	require.Equal(t, Fingerprint([]string{"a", "b"}), Fingerprint([]string{"a", "b"}))
	require.NotEqual(t, Fingerprint([]string{"a", "b"}), Fingerprint([]string{"b", "a"}))
}

func TestFingerprint_BoundarySensitive(t *testing.T) {
	require.NotEqual(t, Fingerprint([]string{"ab", "c"}), Fingerprint([]string{"a", "bc"}))
}

func TestFingerprint_Empty(t *testing.T) {
	require.Equal(t, Fingerprint([]int(nil)), Fingerprint([]int{}))
}
