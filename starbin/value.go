// Package starbin exposes binary numbers to Starlark scripts.
//
// A Binary value supports the arithmetic, bitwise and shift operators,
// comparison, indexing of single bits and slicing of bit ranges. Bit 0 is
// the least significant bit.
package starbin

import (
	"fmt"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bitvec/binary"
)

// Value is a Starlark value holding a binary number.
type Value struct {
	b      *binary.Binary
	frozen bool
}

var (
	_ starlark.Value       = (*Value)(nil)
	_ starlark.HasBinary   = (*Value)(nil)
	_ starlark.HasUnary    = (*Value)(nil)
	_ starlark.Comparable  = (*Value)(nil)
	_ starlark.Sliceable   = (*Value)(nil)
	_ starlark.HasSetIndex = (*Value)(nil)
	_ starlark.HasAttrs    = (*Value)(nil)
)

// New wraps b. The value shares b's storage.
func New(b *binary.Binary) *Value {
	return &Value{b: b}
}

// Number returns the wrapped number.
func (v *Value) Number() *binary.Binary {
	return v.b
}

func (v *Value) String() string {
	if v.b.SignBehavior() == binary.Unsigned {
		return fmt.Sprintf("Binary(%q)", v.b.Bin(false))
	}
	return fmt.Sprintf("Binary(%q, sign_behavior=%q)", v.b.Bin(false), v.b.SignBehavior().String())
}

func (v *Value) Type() string { return "binary" }

func (v *Value) Freeze() { v.frozen = true }

func (v *Value) Truth() starlark.Bool { return starlark.Bool(v.b.Bool()) }

func (v *Value) Hash() (uint32, error) {
	h := v.b.Hash()
	return uint32(h ^ (h >> 32)), nil
}

// operand converts x to a number like v.
func (v *Value) operand(x starlark.Value) (*binary.Binary, error) {
	switch x := x.(type) {
	case *Value:
		return x.b, nil
	case starlark.Int:
		n, ok := x.Int64()
		if !ok {
			return nil, ErrOperand(x.String())
		}
		return v.b.Like(n)
	case starlark.Bool:
		if x {
			return v.b.Like(1)
		}
		return v.b.Like(0)
	}

	return nil, ErrOperand(x.Type())
}

// shiftCount converts a shift operand.
func shiftCount(x starlark.Value) (uint, error) {
	i, ok := x.(starlark.Int)
	if !ok {
		return 0, ErrShiftCount
	}
	n, ok := i.Int64()
	if !ok || n < 0 {
		return 0, ErrShiftCount
	}
	return uint(n), nil
}

func (v *Value) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.LTLT, syntax.GTGT:
		if side == starlark.Right {
			return nil, nil
		}
		n, err := shiftCount(y)
		if err != nil {
			return nil, err
		}
		if op == syntax.LTLT {
			return New(v.b.Shl(n)), nil
		}
		return New(v.b.Sar(n)), nil
	}

	o, err := v.operand(y)
	if err != nil {
		return nil, err
	}

	x := v.b
	if side == starlark.Right {
		x, o = o, x
	}

	var out *binary.Binary
	switch op {
	case syntax.PLUS:
		out, err = x.Add(o)
	case syntax.MINUS:
		out, err = x.Sub(o)
	case syntax.STAR:
		out, err = x.Mul(o)
	case syntax.AMP:
		out, err = x.And(o)
	case syntax.PIPE:
		out, err = x.Or(o)
	case syntax.CIRCUMFLEX:
		out, err = x.Xor(o)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return New(out), nil
}

func (v *Value) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		return v, nil
	case syntax.MINUS:
		return New(v.b.Neg()), nil
	case syntax.TILDE:
		return New(v.b.Not()), nil
	}
	return nil, nil
}

func (v *Value) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	cmp := v.b.Cmp(y.(*Value).b)
	switch op {
	case syntax.EQL:
		return cmp == 0, nil
	case syntax.NEQ:
		return cmp != 0, nil
	case syntax.LT:
		return cmp < 0, nil
	case syntax.LE:
		return cmp <= 0, nil
	case syntax.GT:
		return cmp > 0, nil
	case syntax.GE:
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
}

func (v *Value) Len() int { return v.b.Len() }

func (v *Value) Index(i int) starlark.Value {
	bit, _ := v.b.Bit(i)
	return starlark.Bool(bit)
}

// Slice returns the selected bits as an unsigned number, the first
// selected bit becoming bit 0.
func (v *Value) Slice(start, end, step int) starlark.Value {
	var bits []bool
	if step > 0 {
		for i := start; i < end; i += step {
			bit, _ := v.b.Bit(i)
			bits = append(bits, bit)
		}
	} else {
		for i := start; i > end; i += step {
			bit, _ := v.b.Bit(i)
			bits = append(bits, bit)
		}
	}
	slices.Reverse(bits)

	return New(binary.Must(binary.FromBits(bits)))
}

func (v *Value) SetIndex(i int, x starlark.Value) error {
	if v.frozen {
		return ErrFrozen
	}
	return v.b.SetBit(i, bool(x.Truth()))
}
