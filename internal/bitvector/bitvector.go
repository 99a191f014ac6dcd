// Package bitvector implements the BitVector value described in the ETCa
// decoder's data model: an integer tagged with an explicit bit width and
// the absolute bit positions of the input stream it was read from.
package bitvector

import "fmt"

// BitVector is a nonnegative integer together with its declared bit width
// and the ordered, absolute bit positions (in the originating stream) it
// was decoded from. Two BitVectors compare equal by value alone; the bit
// section is provenance, not identity.
type BitVector struct {
	Value   uint64
	BitSize int
	Section []int
}

// New builds a BitVector, masking value down to bitSize bits.
func New(value uint64, bitSize int, section []int) BitVector {
	if bitSize < 64 {
		value &= (uint64(1) << bitSize) - 1
	}
	return BitVector{Value: value, BitSize: bitSize, Section: section}
}

// Int returns the value coerced to a plain integer.
func (b BitVector) Int() uint64 { return b.Value }

// Equal reports whether two BitVectors carry the same value. Bit sections
// are ignored, matching the "provenance, not identity" invariant.
func (b BitVector) Equal(other BitVector) bool { return b.Value == other.Value }

// Unsigned reinterprets the vector at the given width, without sign
// extension.
func (b BitVector) Unsigned(bitSize int) BitVector {
	var mask uint64 = ^uint64(0)
	if bitSize < 64 {
		mask = (uint64(1) << bitSize) - 1
	}
	return BitVector{Value: b.Value & mask, BitSize: bitSize, Section: b.Section}
}

// Signed reinterprets the vector at the given width as two's complement,
// sign-extending when the top bit of that width is set. A bitSize of 0
// reuses the vector's own declared width.
func (b BitVector) Signed(bitSize int) BitVector {
	if bitSize == 0 {
		bitSize = b.BitSize
	}
	var mask uint64 = ^uint64(0)
	if bitSize < 64 {
		mask = (uint64(1) << bitSize) - 1
	}
	val := b.Value & mask
	if bitSize < 64 && val&(uint64(1)<<(bitSize-1)) != 0 {
		val |= ^mask
	}
	return BitVector{Value: val, BitSize: bitSize, Section: b.Section}
}

// AsInt64 interprets the vector's current bits as a signed two's
// complement number at its own declared width.
func (b BitVector) AsInt64() int64 {
	s := b.Signed(b.BitSize)
	return int64(s.Value)
}

// Concat implements a ∥ b: the value of b occupies the low bits, a the
// high bits, and the result's width is the sum of both widths.
func Concat(a, b BitVector) BitVector {
	section := make([]int, 0, len(a.Section)+len(b.Section))
	section = append(section, a.Section...)
	section = append(section, b.Section...)
	return BitVector{
		Value:   (a.Value << uint(b.BitSize)) | b.Value,
		BitSize: a.BitSize + b.BitSize,
		Section: section,
	}
}

// Dec renders the value in decimal, matching the original decoder's
// ResultInt.dec(): signed values print with their sign, unsigned values
// print bare.
func (b BitVector) Dec() string {
	return fmt.Sprintf("%d", int64(b.Value))
}

// String renders the value as a zero-padded binary literal at its
// declared width.
func (b BitVector) String() string {
	return fmt.Sprintf("%0*b", b.BitSize, b.Value)
}
