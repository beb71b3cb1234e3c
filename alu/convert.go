package alu

import (
	"github.com/ezrec/bitvec/bitbuf"
	"github.com/ezrec/bitvec/sign"
)

// Mode controls what a conversion does with values the target behavior
// cannot represent.
type Mode int

const (
	Strict        Mode = iota // Unrepresentable values are ErrOverflow.
	AllowOverflow             // Unrepresentable bit patterns pass through.
	Absolute                  // Negative values become their magnitude.
)

// isMinimum is true for the pattern 100...0.
func isMinimum(v *bitbuf.Buffer) bool {
	if !v.Top() {
		return false
	}
	rest := v.Clone()
	rest.Set(rest.Len()-1, false)
	return rest.IsZero()
}

// Convert reinterprets the value of v, read under from, as a bit pattern
// under to. The length is unchanged.
func Convert(v *bitbuf.Buffer, from, to sign.Behavior, mode Mode) (out *bitbuf.Buffer, err error) {
	if mode < Strict || mode > Absolute {
		err = ErrMode
		return
	}

	out = v.Clone()
	if from == to || !v.Top() {
		return
	}

	switch to {
	case sign.Unsigned:
		out, err = toUnsigned(v, from, mode)
	case sign.Signed:
		out, err = toSigned(v, from, mode)
	case sign.Magnitude:
		out, err = toMagnitude(v, from, mode)
	}

	return
}

// The helpers below are only called with the top bit of v set.

func toUnsigned(v *bitbuf.Buffer, from sign.Behavior, mode Mode) (out *bitbuf.Buffer, err error) {
	out = v.Clone()

	if from == sign.Magnitude && isMinimum(v) {
		// Negative zero.
		out.Set(out.Len()-1, false)
		return
	}

	switch mode {
	case Absolute:
		if from == sign.Magnitude {
			out.Set(out.Len()-1, false)
		} else {
			out = Negate(v, sign.Signed)
		}
	case AllowOverflow:
	default:
		err = ErrOverflow
	}

	return
}

func toSigned(v *bitbuf.Buffer, from sign.Behavior, mode Mode) (out *bitbuf.Buffer, err error) {
	out = v.Clone()

	switch from {
	case sign.Magnitude:
		out.Set(out.Len()-1, false)
		out = Negate(out, sign.Signed)
	default:
		if mode == Strict {
			err = ErrOverflow
		}
	}

	return
}

func toMagnitude(v *bitbuf.Buffer, from sign.Behavior, mode Mode) (out *bitbuf.Buffer, err error) {
	out = v.Clone()

	if from == sign.Signed {
		if isMinimum(v) {
			if mode == Strict {
				err = ErrOverflow
			}
			return
		}
		out = Negate(v, sign.Signed)
		out.Set(out.Len()-1, true)
		return
	}

	if mode == Strict {
		err = ErrOverflow
	}

	return
}
