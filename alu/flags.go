package alu

import (
	"fmt"

	"github.com/ezrec/bitvec/bitbuf"
)

// Flags are the condition codes produced by an ALU operation.
type Flags struct {
	Overflow bool // Result did not fit, or a carry escaped.
	Zero     bool // Result is zero.
	Sign     bool // Most significant bit of the result.
	Parity   bool // Least significant bit of the result.
}

// FlagsOf derives the flags of a result, given its overflow condition.
func FlagsOf(out *bitbuf.Buffer, overflow bool) Flags {
	return Flags{
		Overflow: overflow,
		Zero:     out.IsZero(),
		Sign:     out.Top(),
		Parity:   out.Get(0),
	}
}

func (fl Flags) String() string {
	return fmt.Sprintf("Flags(of=%v,zf=%v,sf=%v,pf=%v)", fl.Overflow, fl.Zero, fl.Sign, fl.Parity)
}
