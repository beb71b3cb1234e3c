package floats

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	ErrFormat  = errors.New(f("float format invalid"))
	ErrUnknown = errors.New(f("float format unknown"))
)

// ErrWidth reports a bit pattern of the wrong width for a format.
type ErrWidth struct {
	Format string
	Want   int
	Got    int
}

func (err *ErrWidth) Error() string {
	return f("%v needs %v bits, not %v", err.Format, err.Want, err.Got)
}

// ErrFixed reports an unreadable fixed point literal.
type ErrFixed string

func (err ErrFixed) Error() string {
	return f("'%v' is not a binary fixed point number", string(err))
}
