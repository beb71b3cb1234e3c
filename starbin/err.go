package starbin

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	ErrFrozen     = errors.New(f("binary value is frozen"))
	ErrShiftCount = errors.New(f("shift count must be a non-negative int"))
	ErrLength     = errors.New(f("conflicting bit_length and bytes_length"))
)

// ErrOperand reports a value that cannot take part in a binary operation.
type ErrOperand string

func (err ErrOperand) Error() string {
	return f("%v is not convertible to binary", string(err))
}
