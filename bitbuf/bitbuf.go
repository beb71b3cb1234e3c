// Package bitbuf stores a fixed number of bits in little-endian bytes.
//
// Bit 0 is the least significant bit of byte 0. Bits past the length in the
// final byte are kept zero by every operation.
package bitbuf

import (
	"bytes"
	"iter"
	"math/bits"
)

// Buffer is a sequence of bits with a fixed length.
type Buffer struct {
	data   []byte
	length int
}

// ByteLen returns the number of bytes needed to store n bits.
func ByteLen(n int) int {
	return (n + 7) / 8
}

// Zero returns an all-zero buffer of n bits.
func Zero(n int) *Buffer {
	if n < 1 {
		panic("bitbuf: length must be at least 1")
	}
	return &Buffer{data: make([]byte, ByteLen(n)), length: n}
}

// Ones returns an all-one buffer of n bits.
func Ones(n int) *Buffer {
	buf := Zero(n)
	for i := range buf.data {
		buf.data[i] = 0xff
	}
	buf.ApplyMask()
	return buf
}

// FromBytes copies data into a buffer of n bits, truncating or zero
// extending as needed.
func FromBytes(data []byte, n int) *Buffer {
	buf := Zero(n)
	copy(buf.data, data)
	buf.ApplyMask()
	return buf
}

// Len returns the bit length.
func (buf *Buffer) Len() int {
	return buf.length
}

// Bytes returns a copy of the storage bytes.
func (buf *Buffer) Bytes() []byte {
	return bytes.Clone(buf.data)
}

// Raw returns the storage bytes without copying.
// Callers that modify it must call ApplyMask afterwards.
func (buf *Buffer) Raw() []byte {
	return buf.data
}

// Clone returns an independent copy.
func (buf *Buffer) Clone() *Buffer {
	return &Buffer{data: bytes.Clone(buf.data), length: buf.length}
}

// Get returns bit i.
func (buf *Buffer) Get(i int) bool {
	if i < 0 || i >= buf.length {
		panic("bitbuf: index out of range")
	}
	return buf.data[i/8]&(1<<(i%8)) != 0
}

// Set assigns bit i.
func (buf *Buffer) Set(i int, value bool) {
	if i < 0 || i >= buf.length {
		panic("bitbuf: index out of range")
	}
	if value {
		buf.data[i/8] |= 1 << (i % 8)
	} else {
		buf.data[i/8] &^= 1 << (i % 8)
	}
}

// SetRange copies all of src into the buffer starting at bit offset.
func (buf *Buffer) SetRange(offset int, src *Buffer) {
	for i := range src.length {
		buf.Set(offset+i, src.Get(i))
	}
}

// Top returns the most significant bit.
func (buf *Buffer) Top() bool {
	return buf.Get(buf.length - 1)
}

// IsZero is true when every bit is clear.
func (buf *Buffer) IsZero() bool {
	for _, b := range buf.data {
		if b != 0 {
			return false
		}
	}
	return true
}

// lastMask is the mask of valid bits in the final byte.
func (buf *Buffer) lastMask() byte {
	rem := buf.length % 8
	if rem == 0 {
		return 0xff
	}
	return byte(1<<rem) - 1
}

// Mask returns the all-ones pattern for the buffer's length.
func (buf *Buffer) Mask() []byte {
	mask := bytes.Repeat([]byte{0xff}, len(buf.data))
	mask[len(mask)-1] = buf.lastMask()
	return mask
}

// ApplyMask clears any bits past the length, reporting whether a set bit
// was clipped.
func (buf *Buffer) ApplyMask() (clipped bool) {
	last := len(buf.data) - 1
	mask := buf.lastMask()
	clipped = buf.data[last]&^mask != 0
	buf.data[last] &= mask
	return
}

// Resize returns a copy of n bits, truncating or zero extending.
func (buf *Buffer) Resize(n int) *Buffer {
	return FromBytes(buf.data, n)
}

// PadTo returns a copy zero extended to at least n bits. It never
// truncates.
func (buf *Buffer) PadTo(n int) *Buffer {
	if n <= buf.length {
		return buf.Clone()
	}
	return buf.Resize(n)
}

// Equal compares the raw bit patterns, including the length.
func (buf *Buffer) Equal(other *Buffer) bool {
	return buf.length == other.length && bytes.Equal(buf.data, other.data)
}

// OnesCount returns the number of set bits.
func (buf *Buffer) OnesCount() (count int) {
	for _, b := range buf.data {
		count += bits.OnesCount8(b)
	}
	return
}

// All iterates over (index, bit) pairs from the least significant bit.
func (buf *Buffer) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := range buf.length {
			if !yield(i, buf.Get(i)) {
				return
			}
		}
	}
}

// Backward iterates over the bits from the most significant bit.
func (buf *Buffer) Backward() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := buf.length - 1; i >= 0; i-- {
			if !yield(buf.Get(i)) {
				return
			}
		}
	}
}
