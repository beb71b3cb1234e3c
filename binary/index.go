package binary

import (
	"github.com/ezrec/bitvec/bitbuf"
)

// index resolves a possibly negative bit index.
func (b *Binary) index(i int) (int, error) {
	n := b.Len()
	at := i
	if at < 0 {
		at += n
	}
	if at < 0 || at >= n {
		return 0, &ErrBounds{Start: i, Stop: i + 1, Length: n}
	}
	return at, nil
}

// bounds resolves slice bounds. Negative bounds count from the top.
// When strict, stop may not pass the end.
func (b *Binary) bounds(start, stop int, strict bool) (lo, hi int, err error) {
	n := b.Len()
	lo, hi = start, stop
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	if lo < 0 || hi < 0 || lo > hi || (strict && hi > n) {
		err = &ErrBounds{Start: start, Stop: stop, Length: n}
	}
	return
}

// Bit returns bit i. Negative indices count from the most significant bit.
func (b *Binary) Bit(i int) (bool, error) {
	at, err := b.index(i)
	if err != nil {
		return false, err
	}
	return b.buf.Get(at), nil
}

// SetBit assigns bit i in place.
func (b *Binary) SetBit(i int, value bool) error {
	at, err := b.index(i)
	if err != nil {
		return err
	}
	b.buf.Set(at, value)
	return nil
}

// SetBits assigns value to every listed bit. Nothing is changed unless
// every index is valid.
func (b *Binary) SetBits(indices []int, value bool) error {
	resolved := make([]int, len(indices))
	for n, i := range indices {
		at, err := b.index(i)
		if err != nil {
			return err
		}
		resolved[n] = at
	}
	for _, at := range resolved {
		b.buf.Set(at, value)
	}
	return nil
}

// Slice returns bits [start, stop) as an unsigned value, bit start
// becoming bit 0. A stop past the end reads zeros.
func (b *Binary) Slice(start, stop int) (*Binary, error) {
	lo, hi, err := b.bounds(start, stop, false)
	if err != nil {
		return nil, err
	}

	out := bitbuf.Zero(max(hi-lo, 1))
	for i := lo; i < min(hi, b.Len()); i++ {
		out.Set(i-lo, b.buf.Get(i))
	}

	return &Binary{buf: out, behavior: Unsigned}, nil
}

// SliceFrom returns bits from start to the most significant bit.
func (b *Binary) SliceFrom(start int) (*Binary, error) {
	return b.Slice(start, b.Len())
}

// SetSlice overwrites bits [start, stop) in place with the raw bits of
// value, which must be exactly stop-start bits wide.
func (b *Binary) SetSlice(start, stop int, value *Binary) error {
	lo, hi, err := b.bounds(start, stop, true)
	if err != nil {
		return err
	}
	if value.Len() != hi-lo {
		return &ErrWidth{Want: hi - lo, Got: value.Len()}
	}
	b.buf.SetRange(lo, value.buf)
	return nil
}

// SetSliceStep is SetSlice for a stepped range. Only a step of one is
// supported.
func (b *Binary) SetSliceStep(start, stop, step int, value *Binary) error {
	if step != 1 {
		return ErrNotSupported
	}
	return b.SetSlice(start, stop, value)
}

// FillSlice sets every bit of [start, stop) to bit.
func (b *Binary) FillSlice(start, stop int, bit bool) error {
	lo, hi, err := b.bounds(start, stop, true)
	if err != nil {
		return err
	}
	for i := lo; i < hi; i++ {
		b.buf.Set(i, bit)
	}
	return nil
}

func (b *Binary) window(start, n int) *Binary {
	out, _ := b.Slice(start, start+n)
	return out
}

// LowByte returns bits 0..7, zero extended.
func (b *Binary) LowByte() *Binary {
	return b.window(0, 8)
}

// HighByte returns bits 8..15, zero extended.
func (b *Binary) HighByte() *Binary {
	return b.window(8, 8)
}

// ExtendedLow returns bits 0..15, zero extended.
func (b *Binary) ExtendedLow() *Binary {
	return b.window(0, 16)
}

// ExtendedHigh returns bits 16..31, zero extended.
func (b *Binary) ExtendedHigh() *Binary {
	return b.window(16, 16)
}

// Byte returns storage byte i as an unsigned byte. Negative indices count
// from the most significant byte.
func (b *Binary) Byte(i int) (*Binary, error) {
	count := bitbuf.ByteLen(b.Len())
	at := i
	if at < 0 {
		at += count
	}
	if at < 0 || at >= count {
		return nil, &ErrBounds{Start: 8 * i, Stop: 8*i + 8, Length: b.Len()}
	}
	return b.window(8*at, 8), nil
}
