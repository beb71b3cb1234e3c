package binary

import (
	"math/big"

	"github.com/ezrec/bitvec/alu"
	"github.com/ezrec/bitvec/bitbuf"
)

// Shifts operate on the raw bits read as an unsigned integer. Shift counts
// past the width are clamped; the result is the same.

// unsigned returns the raw bits as a non-negative integer.
func (b *Binary) unsigned() *big.Int {
	return b.Cast(Unsigned).Int()
}

// place puts the low Len() bits of v into a Binary like b.
func (b *Binary) place(v *big.Int) *bitbuf.Buffer {
	return bitbuf.FromBytes(littleEndian(v), b.Len())
}

// FlaggedShl shifts left by n, filling with zeros. Overflow is set when a
// set bit is shifted out.
func (b *Binary) FlaggedShl(n uint) (*Binary, Flags) {
	n = min(n, uint(b.Len())+1)
	u := b.unsigned()
	shifted := new(big.Int).Lsh(u, n)
	out := b.place(shifted)
	return b.wrap(out), alu.FlagsOf(out, shifted.BitLen() > b.Len())
}

// Shl shifts left by n.
func (b *Binary) Shl(n uint) *Binary {
	out, _ := b.FlaggedShl(n)
	return out
}

// FlaggedShr shifts right by n, filling with zeros. Overflow is set when
// a set bit is shifted out.
func (b *Binary) FlaggedShr(n uint) (*Binary, Flags) {
	n = min(n, uint(b.Len()))
	u := b.unsigned()
	shifted := new(big.Int).Rsh(u, n)
	lost := new(big.Int).Lsh(shifted, n).Cmp(u) != 0
	out := b.place(shifted)
	return b.wrap(out), alu.FlagsOf(out, lost)
}

// Shr shifts right by n.
func (b *Binary) Shr(n uint) *Binary {
	out, _ := b.FlaggedShr(n)
	return out
}

// FlaggedShld shifts b left by n into a register of twice the width and
// returns the upper half: the bits shifted out of b. Overflow is set when
// any set bit left b.
func (b *Binary) FlaggedShld(n uint) (*Binary, Flags) {
	n = min(n, 2*uint(b.Len()))
	shifted := new(big.Int).Lsh(b.unsigned(), n)
	high := new(big.Int).Rsh(shifted, uint(b.Len()))
	out := b.place(high)
	return b.wrap(out), alu.FlagsOf(out, high.Sign() != 0)
}

// Shld returns the bits shifted out of b by a left shift of n.
func (b *Binary) Shld(n uint) *Binary {
	out, _ := b.FlaggedShld(n)
	return out
}

// FlaggedSar is an arithmetic right shift. Signed values fill with their
// sign bit, magnitude values keep their sign flag and shift the
// magnitude, and unsigned values shift logically. Overflow is set when a
// set bit is shifted out.
func (b *Binary) FlaggedSar(n uint) (*Binary, Flags) {
	switch b.behavior {
	case Signed:
		n = min(n, uint(b.Len()))
		v := b.Int()
		shifted := new(big.Int).Rsh(v, n)
		lost := new(big.Int).Lsh(shifted, n).Cmp(v) != 0
		out := encode(shifted, b.Len(), Signed)
		return b.wrap(out), alu.FlagsOf(out, lost)
	case Magnitude:
		return b.magnitudeShift(n, false)
	default:
		return b.FlaggedShr(n)
	}
}

// Sar is an arithmetic right shift.
func (b *Binary) Sar(n uint) *Binary {
	out, _ := b.FlaggedSar(n)
	return out
}

// FlaggedSal is an arithmetic left shift, multiplying by 2**n. Overflow
// is set when the product does not fit; for signed values this includes
// a change of sign.
func (b *Binary) FlaggedSal(n uint) (*Binary, Flags) {
	switch b.behavior {
	case Signed:
		out, _ := b.FlaggedShl(n)
		n = min(n, uint(b.Len())+1)
		product := new(big.Int).Lsh(b.Int(), n)
		return out, alu.FlagsOf(out.buf, !Signed.Fits(product, b.Len()))
	case Magnitude:
		return b.magnitudeShift(n, true)
	default:
		return b.FlaggedShl(n)
	}
}

// Sal is an arithmetic left shift.
func (b *Binary) Sal(n uint) *Binary {
	out, _ := b.FlaggedSal(n)
	return out
}

// magnitudeShift shifts the magnitude bits of a sign-magnitude value,
// leaving the sign flag in place.
func (b *Binary) magnitudeShift(n uint, left bool) (*Binary, Flags) {
	width := b.Len() - 1
	if width == 0 {
		return b.Clone(), alu.FlagsOf(b.buf, false)
	}

	magnitude, _ := b.Slice(0, width)
	var shifted *Binary
	var flags Flags
	if left {
		shifted, flags = magnitude.FlaggedShl(n)
	} else {
		shifted, flags = magnitude.FlaggedShr(n)
	}

	out := shifted.buf.Resize(b.Len())
	out.Set(width, b.buf.Top())

	return b.wrap(out), alu.FlagsOf(out, flags.Overflow)
}
