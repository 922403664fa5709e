package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxTypes is the width of a capability bit vector: the hard ceiling on
// distinct component types and, separately, on distinct system types.
const MaxTypes = 64

// Bits is a fixed-width capability vector. Bit i stands for the type with id i.
type Bits uint64

// BitFor returns the vector with only bit id set.
func BitFor(id uint32) Bits { return Bits(1) << id }

func (b Bits) Has(id uint32) bool   { return b&BitFor(id) != 0 }
func (b Bits) Empty() bool          { return b == 0 }
func (b Bits) Count() int           { return bits.OnesCount64(uint64(b)) }
func (b Bits) Contains(o Bits) bool { return b&o == o }

// Each calls fn for every set bit in ascending order.
func (b Bits) Each(fn func(id uint32)) {
	for v := uint64(b); v != 0; v &= v - 1 {
		fn(uint32(bits.TrailingZeros64(v)))
	}
}

// String renders the vector as binary, most significant set bit first.
func (b Bits) String() string {
	if b == 0 {
		return "0"
	}
	return strconv.FormatUint(uint64(b), 2)
}

// padded renders the vector at a fixed width for diagnostic dumps.
func (b Bits) padded(width int) string {
	s := b.String()
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
