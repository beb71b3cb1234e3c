package binary

import (
	"github.com/ezrec/bitvec/alu"
)

// TrailingZeros counts the clear bits below the lowest set bit.
func (b *Binary) TrailingZeros() int {
	return b.run(false, false)
}

// LeadingZeros counts the clear bits above the highest set bit.
func (b *Binary) LeadingZeros() int {
	return b.run(false, true)
}

// TrailingOnes counts the set bits below the lowest clear bit.
func (b *Binary) TrailingOnes() int {
	return b.run(true, false)
}

// LeadingOnes counts the set bits above the highest clear bit.
func (b *Binary) LeadingOnes() int {
	return b.run(true, true)
}

// run counts consecutive bits equal to bit, from the top when leading.
func (b *Binary) run(bit bool, leading bool) (count int) {
	n := b.Len()
	for count < n {
		i := count
		if leading {
			i = n - 1 - count
		}
		if b.buf.Get(i) != bit {
			break
		}
		count++
	}
	return
}

// CountOnes returns the number of set bits.
func (b *Binary) CountOnes() int {
	return b.buf.OnesCount()
}

// CountZeros returns the number of clear bits.
func (b *Binary) CountZeros() int {
	return b.Len() - b.buf.OnesCount()
}

// matches is true when the raw bits of pattern appear at bit offset.
func (b *Binary) matches(pattern *Binary, offset int) bool {
	for i, bit := range pattern.All() {
		if b.buf.Get(offset+i) != bit {
			return false
		}
	}
	return true
}

// Find returns the lowest offset at which the raw bits of pattern appear.
func (b *Binary) Find(pattern *Binary) (int, bool) {
	for offset := 0; offset+pattern.Len() <= b.Len(); offset++ {
		if b.matches(pattern, offset) {
			return offset, true
		}
	}
	return 0, false
}

// FindAll returns every offset at which the raw bits of pattern appear,
// overlapping matches included.
func (b *Binary) FindAll(pattern *Binary) (offsets []int) {
	for offset := 0; offset+pattern.Len() <= b.Len(); offset++ {
		if b.matches(pattern, offset) {
			offsets = append(offsets, offset)
		}
	}
	return
}

func (b *Binary) positions(bit bool) (offsets []int) {
	for i, value := range b.All() {
		if value == bit {
			offsets = append(offsets, i)
		}
	}
	return
}

// FindOnes lists the indices of the set bits.
func (b *Binary) FindOnes() []int {
	return b.positions(true)
}

// FindZeros lists the indices of the clear bits.
func (b *Binary) FindZeros() []int {
	return b.positions(false)
}

// Flags reports the zero, sign and parity flags of b as if it were the
// result of an operation that did not overflow.
func (b *Binary) Flags() Flags {
	return alu.FlagsOf(b.buf, false)
}
