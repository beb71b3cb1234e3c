package alu

import (
	"github.com/ezrec/bitvec/bitbuf"
	"github.com/ezrec/bitvec/sign"
)

// widen pads both operands to the longer of the two lengths.
func widen(a, b *bitbuf.Buffer) (x, y *bitbuf.Buffer) {
	n := max(a.Len(), b.Len())
	return a.PadTo(n), b.PadTo(n)
}

// Add sums a, b and an incoming carry with a byte serial ripple carry.
// Overflow is set when a carry leaves the last byte, or when a set bit
// lands past the result length.
func Add(a, b *bitbuf.Buffer, carry bool) (out *bitbuf.Buffer, flags Flags) {
	out, y := widen(a, b)

	var c uint16
	if carry {
		c = 1
	}

	sum := out.Raw()
	addend := y.Raw()
	for i := range sum {
		s := uint16(sum[i]) + uint16(addend[i]) + c
		sum[i] = byte(s)
		c = s >> 8
	}

	clipped := out.ApplyMask()
	flags = FlagsOf(out, c != 0 || clipped)

	return
}

// Increment adds one.
func Increment(v *bitbuf.Buffer) (*bitbuf.Buffer, Flags) {
	return Add(v, bitbuf.Zero(v.Len()), true)
}

// Decrement subtracts one, by adding all ones.
func Decrement(v *bitbuf.Buffer) (*bitbuf.Buffer, Flags) {
	return Add(v, bitbuf.Ones(v.Len()), false)
}

// Negate returns the additive inverse of v under a sign behavior.
// Unsigned values are returned unchanged, magnitude values flip their
// sign flag, and signed values take the two's complement.
func Negate(v *bitbuf.Buffer, behavior sign.Behavior) (out *bitbuf.Buffer) {
	switch behavior {
	case sign.Magnitude:
		out = v.Clone()
		out.Set(out.Len()-1, !out.Top())
	case sign.Signed:
		if v.Top() {
			out, _ = Decrement(v)
			out = Not(out)
		} else {
			out, _ = Increment(Not(v))
		}
	default:
		out = v.Clone()
	}

	return
}

// Subtract computes a - b. Both operands are taken to two's complement at
// the common length, added as a + ^b + 1, and the difference converted
// back to the requested behavior. For Unsigned and Signed the flags are
// those of the adder, so Overflow is the adder carry.
func Subtract(a, b *bitbuf.Buffer, behavior sign.Behavior) (out *bitbuf.Buffer, flags Flags) {
	if behavior == sign.Magnitude {
		return AddMagnitude(a, b, true)
	}

	x, y := widen(a, b)

	x, _ = Convert(x, behavior, sign.Signed, AllowOverflow)
	y, _ = Convert(y, behavior, sign.Signed, AllowOverflow)

	out, flags = Add(x, Not(y), true)
	if behavior != sign.Signed {
		out, _ = Convert(out, sign.Signed, behavior, AllowOverflow)
		flags = FlagsOf(out, flags.Overflow)
	}

	return
}

// signExtend widens a two's complement value by one bit.
func signExtend(v *bitbuf.Buffer) *bitbuf.Buffer {
	out := v.Resize(v.Len() + 1)
	out.Set(v.Len(), v.Top())
	return out
}

// AddMagnitude adds (or subtracts) two sign-magnitude values at their
// common length n. The exact sum is formed in n+1 bit two's complement.
// Overflow is set when its magnitude needs more than n-1 bits, and the
// result then keeps the low n-1 magnitude bits with the sum's sign.
// A zero result never carries the sign flag.
func AddMagnitude(a, b *bitbuf.Buffer, subtract bool) (out *bitbuf.Buffer, flags Flags) {
	x, y := widen(a, b)
	n := x.Len()

	x, _ = Convert(x, sign.Magnitude, sign.Signed, AllowOverflow)
	y, _ = Convert(y, sign.Magnitude, sign.Signed, AllowOverflow)
	x, y = signExtend(x), signExtend(y)

	var sum *bitbuf.Buffer
	if subtract {
		sum, _ = Add(x, Not(y), true)
	} else {
		sum, _ = Add(x, y, false)
	}

	negative := sum.Top()
	if negative {
		sum = Negate(sum, sign.Signed)
	}

	out = bitbuf.Zero(n)
	for i := range n - 1 {
		out.Set(i, sum.Get(i))
	}
	if negative && !out.IsZero() {
		out.Set(n-1, true)
	}

	flags = FlagsOf(out, sum.Get(n-1))

	return
}
