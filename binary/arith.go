package binary

import (
	"math/big"

	"github.com/ezrec/bitvec/alu"
	"github.com/ezrec/bitvec/bitbuf"
)

// check rejects operands with different sign behaviors.
func (b *Binary) check(o *Binary) error {
	if b.behavior != o.behavior {
		return ErrSignMismatch
	}
	return nil
}

// Like converts a plain integer to b's width and sign behavior, for use
// as the other operand of an operation on b.
func (b *Binary) Like(v int64) (*Binary, error) {
	return FromInt64(v, WithLength(b.Len()), WithSign(b.behavior))
}

// FlaggedAdd returns b + o at the wider of the two widths, with flags.
// Magnitude sums set Overflow when the value does not fit.
func (b *Binary) FlaggedAdd(o *Binary) (out *Binary, flags Flags, err error) {
	if err = b.check(o); err != nil {
		return
	}

	var sum *bitbuf.Buffer
	if b.behavior == Magnitude {
		sum, flags = alu.AddMagnitude(b.buf, o.buf, false)
	} else {
		sum, flags = alu.Add(b.buf, o.buf, false)
	}

	out = b.wrap(sum)

	return
}

// OverflowingAdd returns b + o and whether it overflowed.
func (b *Binary) OverflowingAdd(o *Binary) (*Binary, bool, error) {
	out, flags, err := b.FlaggedAdd(o)
	return out, flags.Overflow, err
}

// Add returns the wrapping sum b + o.
func (b *Binary) Add(o *Binary) (*Binary, error) {
	out, _, err := b.FlaggedAdd(o)
	return out, err
}

// FlaggedSub returns b - o at the wider of the two widths, with flags.
func (b *Binary) FlaggedSub(o *Binary) (out *Binary, flags Flags, err error) {
	if err = b.check(o); err != nil {
		return
	}

	diff, flags := alu.Subtract(b.buf, o.buf, b.behavior)
	out = b.wrap(diff)

	return
}

// OverflowingSub returns b - o and whether it overflowed.
func (b *Binary) OverflowingSub(o *Binary) (*Binary, bool, error) {
	out, flags, err := b.FlaggedSub(o)
	return out, flags.Overflow, err
}

// Sub returns the wrapping difference b - o.
func (b *Binary) Sub(o *Binary) (*Binary, error) {
	out, _, err := b.FlaggedSub(o)
	return out, err
}

// Neg returns the additive inverse. Unsigned values are unchanged.
func (b *Binary) Neg() *Binary {
	return b.wrap(alu.Negate(b.buf, b.behavior))
}

// FlaggedNeg is Neg with flags. Overflow is set when the inverse is not
// representable, as for the most negative two's complement value.
func (b *Binary) FlaggedNeg() (*Binary, Flags) {
	out := b.Neg()
	inverse := new(big.Int).Neg(b.Int())
	overflow := b.behavior != Unsigned && !b.behavior.Fits(inverse, b.Len())
	return out, alu.FlagsOf(out.buf, overflow)
}

// Not complements every bit.
func (b *Binary) Not() *Binary {
	return b.wrap(alu.Not(b.buf))
}

func (b *Binary) bitwise(o *Binary, op func(x, y *bitbuf.Buffer) *bitbuf.Buffer) (*Binary, error) {
	if err := b.check(o); err != nil {
		return nil, err
	}
	return b.wrap(op(b.buf, o.buf)), nil
}

func (b *Binary) And(o *Binary) (*Binary, error)  { return b.bitwise(o, alu.And) }
func (b *Binary) Or(o *Binary) (*Binary, error)   { return b.bitwise(o, alu.Or) }
func (b *Binary) Xor(o *Binary) (*Binary, error)  { return b.bitwise(o, alu.Xor) }
func (b *Binary) Nand(o *Binary) (*Binary, error) { return b.bitwise(o, alu.Nand) }
func (b *Binary) Nor(o *Binary) (*Binary, error)  { return b.bitwise(o, alu.Nor) }
func (b *Binary) Xnor(o *Binary) (*Binary, error) { return b.bitwise(o, alu.Xnor) }

// Map combines b and o bit by bit through a truth table.
func (b *Binary) Map(o *Binary, table alu.TruthTable) (*Binary, error) {
	return b.bitwise(o, func(x, y *bitbuf.Buffer) *bitbuf.Buffer {
		return alu.Map(x, y, table)
	})
}

// product computes b * o, and the width of the wider operand.
func (b *Binary) product(o *Binary) (p *big.Int, n int, err error) {
	if err = b.check(o); err != nil {
		return
	}
	p = new(big.Int).Mul(b.Int(), o.Int())
	n = max(b.Len(), o.Len())
	return
}

// Multiply returns the full product, twice as wide as the wider operand.
func (b *Binary) Multiply(o *Binary) (*Binary, error) {
	p, n, err := b.product(o)
	if err != nil {
		return nil, err
	}
	return &Binary{buf: encode(p, 2*n, b.behavior), behavior: b.behavior, format: b.format}, nil
}

// WideMul returns the high and low halves of the full product. The
// halves are raw unsigned bit patterns.
func (b *Binary) WideMul(o *Binary) (hi, lo *Binary, err error) {
	full, err := b.Multiply(o)
	if err != nil {
		return
	}
	n := full.Len() / 2
	lo, _ = full.Slice(0, n)
	hi, _ = full.Slice(n, 2*n)
	return
}

// FlaggedMul returns the product wrapped to the wider operand's width.
// Overflow is set when the product does not fit.
func (b *Binary) FlaggedMul(o *Binary) (out *Binary, flags Flags, err error) {
	p, n, err := b.product(o)
	if err != nil {
		return
	}

	var buf *bitbuf.Buffer
	switch b.behavior {
	case Magnitude:
		wrapped := new(big.Int).Abs(p)
		wrapped.Mod(wrapped, new(big.Int).Lsh(big.NewInt(1), uint(n-1)))
		if p.Sign() < 0 {
			wrapped.Neg(wrapped)
		}
		buf = encode(wrapped, n, Magnitude)
	default:
		buf = encode(p, 2*n, Signed).Resize(n)
	}

	out = &Binary{buf: buf, behavior: b.behavior, format: b.format}
	flags = alu.FlagsOf(buf, !b.behavior.Fits(p, n))

	return
}

// Mul returns the product wrapped to the wider operand's width.
func (b *Binary) Mul(o *Binary) (*Binary, error) {
	out, _, err := b.FlaggedMul(o)
	return out, err
}

// HammingDistance counts the differing bits of b and o.
func (b *Binary) HammingDistance(o *Binary) (int, error) {
	if err := b.check(o); err != nil {
		return 0, err
	}
	return alu.HammingDistance(b.buf, o.buf), nil
}
