package binary

import (
	"iter"
	"math/big"

	"github.com/ezrec/bitvec/alu"
	"github.com/ezrec/bitvec/bitbuf"
)

// Int returns the integer value of b under its sign behavior.
func (b *Binary) Int() *big.Int {
	raw := b.buf.Clone()
	negative := b.IsNegative()
	if negative && b.behavior == Magnitude {
		raw.Set(raw.Len()-1, false)
	}

	data := raw.Bytes()
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
	v := new(big.Int).SetBytes(data)

	if negative {
		switch b.behavior {
		case Signed:
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(b.Len())))
		case Magnitude:
			v.Neg(v)
		}
	}

	return v
}

// Int64 returns the value as an int64, or ErrOverflow.
func (b *Binary) Int64() (int64, error) {
	v := b.Int()
	if !v.IsInt64() {
		return 0, &ErrRange{Value: v.String(), Length: 64, Behavior: Signed}
	}
	return v.Int64(), nil
}

// Uint64 returns the value as a uint64, or ErrOverflow.
func (b *Binary) Uint64() (uint64, error) {
	v := b.Int()
	if !v.IsUint64() {
		return 0, &ErrRange{Value: v.String(), Length: 64, Behavior: Unsigned}
	}
	return v.Uint64(), nil
}

// Float64 returns the nearest float64 to the value.
func (b *Binary) Float64() float64 {
	v, _ := new(big.Float).SetInt(b.Int()).Float64()
	return v
}

// Bool is true when any bit is set.
func (b *Binary) Bool() bool {
	return !b.buf.IsZero()
}

// IsNegative is true when the sign bit of a signed or magnitude value is
// set. Unsigned values are never negative.
func (b *Binary) IsNegative() bool {
	return b.behavior.Negative() && b.buf.Top()
}

// SignExtendingBit is the bit that fills new high bits when the value is
// sign extended: the most significant bit, whatever the sign behavior.
func (b *Binary) SignExtendingBit() bool {
	return b.buf.Top()
}

// Max is the largest value of b's width and sign behavior.
func (b *Binary) Max() *big.Int {
	return b.behavior.Max(b.Len())
}

// Min is the smallest value of b's width and sign behavior.
func (b *Binary) Min() *big.Int {
	return b.behavior.Min(b.Len())
}

// RawBits returns exactly Len() '0' and '1' digits, most significant first.
func (b *Binary) RawBits() string {
	digits := make([]byte, 0, b.Len())
	for bit := range b.buf.Backward() {
		if bit {
			digits = append(digits, '1')
		} else {
			digits = append(digits, '0')
		}
	}
	return string(digits)
}

// Bits iterates over the bits, most significant first.
func (b *Binary) Bits() iter.Seq[bool] {
	return b.buf.Backward()
}

// All iterates over (index, bit) pairs from bit 0.
func (b *Binary) All() iter.Seq2[int, bool] {
	return b.buf.All()
}

// Cast reinterprets the same bits under another sign behavior.
func (b *Binary) Cast(behavior SignBehavior) *Binary {
	return &Binary{buf: b.buf.Clone(), behavior: behavior, format: b.format}
}

// Convert keeps the value and changes the sign behavior, failing with
// ErrOverflow when the value cannot be represented.
func (b *Binary) Convert(behavior SignBehavior) (*Binary, error) {
	return Copy(b, WithSign(behavior))
}

// Resize truncates or zero extends the raw bits to n.
func (b *Binary) Resize(n int) *Binary {
	return b.wrap(b.buf.Resize(max(n, 1)))
}

// extend widens to n bits, filling new bits with fill.
func (b *Binary) extend(n int, fill bool) *Binary {
	if n <= b.Len() {
		return b.Clone()
	}
	out := b.buf.Resize(n)
	for i := b.Len(); i < n; i++ {
		out.Set(i, fill)
	}
	return b.wrap(out)
}

// PadZeros widens to n bits with zeros. It never truncates.
func (b *Binary) PadZeros(n int) *Binary {
	return b.extend(n, false)
}

// PadOnes widens to n bits with ones. It never truncates.
func (b *Binary) PadOnes(n int) *Binary {
	return b.extend(n, true)
}

// SignExtend widens to n bits, repeating the most significant bit.
func (b *Binary) SignExtend(n int) *Binary {
	return b.extend(n, b.SignExtendingBit())
}

// AppendHigh adds bit above the most significant bit.
func (b *Binary) AppendHigh(bit bool) *Binary {
	out := b.buf.Resize(b.Len() + 1)
	out.Set(b.Len(), bit)
	return b.wrap(out)
}

// AppendLow adds bit below the least significant bit.
func (b *Binary) AppendLow(bit bool) *Binary {
	out := bitbuf.Zero(b.Len() + 1)
	out.SetRange(1, b.buf)
	out.Set(0, bit)
	return b.wrap(out)
}

// Strip re-encodes the value at its minimal width, dropping leading zeros.
func (b *Binary) Strip() *Binary {
	out, err := FromBig(b.Int(), WithSign(b.behavior), WithFormat(b.format))
	if err != nil {
		// The minimal width always fits.
		panic(err)
	}
	return out
}

// StripRight drops the trailing zero bits, as an unsigned value.
func (b *Binary) StripRight() *Binary {
	out, _ := b.SliceFrom(b.TrailingZeros())
	return out
}

// Abs returns the magnitude of the value, in the same width and behavior.
func (b *Binary) Abs() *Binary {
	if b.IsNegative() {
		return b.wrap(alu.Negate(b.buf, b.behavior))
	}
	return b.Clone()
}
