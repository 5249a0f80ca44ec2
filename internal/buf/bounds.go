// Package buf holds the overflow-safe index and capacity arithmetic shared by
// the sparse store, the flattened tree and the byte arena.
package buf

import (
	"math"

	"github.com/joshuapare/nodetree/pkg/types"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

// InRange reports whether i addresses one of n items.
func InRange(i, n int) bool {
	return i >= 0 && i < n
}

// CheckIndex returns an ErrKindIndexRange error when i does not address one of n items.
func CheckIndex(i, n int) error {
	if InRange(i, n) {
		return nil
	}
	return types.Errorf(types.ErrKindIndexRange, "index %d out of range [0,%d)", i, n)
}

// NextCapacity returns the capacity that makes slot need addressable.
//
// With double unset the result is exactly need+1. With double set it is
// max(need+1, 2*current), clamped to math.MaxInt32 since slots are addressed
// by int32 ids.
func NextCapacity(current, need int, double bool) (int, error) {
	if need < 0 {
		return 0, types.Errorf(types.ErrKindIndexRange, "negative index %d", need)
	}
	want, ok := AddOverflowSafe(need, 1)
	if !ok || want > math.MaxInt32 {
		return 0, types.Errorf(types.ErrKindIndexRange, "index %d exceeds addressable capacity", need)
	}
	if !double {
		return want, nil
	}
	doubled := current
	if doubled <= math.MaxInt32/2 {
		doubled *= 2
	} else {
		doubled = math.MaxInt32
	}
	return max(want, doubled), nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}
