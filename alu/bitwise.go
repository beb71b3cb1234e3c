package alu

import (
	"github.com/ezrec/bitvec/bitbuf"
)

// TruthTable gives the result bit for each pair of input bits,
// indexed by a<<1 | b.
type TruthTable [4]bool

var (
	TableAnd  = TruthTable{false, false, false, true}
	TableOr   = TruthTable{false, true, true, true}
	TableXor  = TruthTable{false, true, true, false}
	TableNand = TruthTable{true, true, true, false}
	TableNor  = TruthTable{true, false, false, false}
	TableXnor = TruthTable{true, false, false, true}
)

// Lookup returns the table entry for a pair of bits.
func (tt TruthTable) Lookup(a, b bool) bool {
	index := 0
	if a {
		index |= 2
	}
	if b {
		index |= 1
	}
	return tt[index]
}

// bytewise applies op to each pair of bytes of the widened operands.
func bytewise(a, b *bitbuf.Buffer, op func(x, y byte) byte) *bitbuf.Buffer {
	out, y := widen(a, b)
	raw := out.Raw()
	other := y.Raw()
	for i := range raw {
		raw[i] = op(raw[i], other[i])
	}
	out.ApplyMask()
	return out
}

// Not complements every bit.
func Not(v *bitbuf.Buffer) *bitbuf.Buffer {
	out := v.Clone()
	raw := out.Raw()
	for i := range raw {
		raw[i] = ^raw[i]
	}
	out.ApplyMask()
	return out
}

func And(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return x & y })
}

func Or(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return x | y })
}

func Xor(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return x ^ y })
}

func Nand(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return ^(x & y) })
}

func Nor(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return ^(x | y) })
}

func Xnor(a, b *bitbuf.Buffer) *bitbuf.Buffer {
	return bytewise(a, b, func(x, y byte) byte { return ^(x ^ y) })
}

// Map applies an arbitrary two input truth table, bit by bit.
func Map(a, b *bitbuf.Buffer, table TruthTable) *bitbuf.Buffer {
	out, y := widen(a, b)
	for i, bit := range out.All() {
		out.Set(i, table.Lookup(bit, y.Get(i)))
	}
	return out
}

// CompareUnsigned orders two patterns as unsigned integers, returning
// -1, 0 or +1.
func CompareUnsigned(a, b *bitbuf.Buffer) int {
	x, y := widen(a, b)
	left := x.Raw()
	right := y.Raw()
	for i := len(left) - 1; i >= 0; i-- {
		switch {
		case left[i] < right[i]:
			return -1
		case left[i] > right[i]:
			return 1
		}
	}
	return 0
}

// HammingDistance counts the bit positions that differ.
func HammingDistance(a, b *bitbuf.Buffer) int {
	return Xor(a, b).OnesCount()
}
