package binary

import (
	"errors"

	"github.com/ezrec/bitvec/alu"
	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	ErrConstruction = errors.New(f("construction invalid"))
	ErrOverflow     = alu.ErrOverflow
	ErrIndex        = errors.New(f("index out of range"))
	ErrValue        = errors.New(f("value invalid"))
	ErrNotSupported = errors.New(f("operation not supported"))
	ErrSignMismatch = errors.Join(ErrValue, errors.New(f("sign behaviors differ")))
)

// ErrRange reports an integer that does not fit a requested width.
type ErrRange struct {
	Value    string
	Length   int
	Behavior SignBehavior
}

func (err *ErrRange) Error() string {
	return f("%v does not fit %v %v bits", err.Value, err.Behavior, err.Length)
}

func (err *ErrRange) Unwrap() error {
	return ErrOverflow
}

// ErrBounds reports an index or slice outside of a value.
type ErrBounds struct {
	Start, Stop int
	Length      int
}

func (err *ErrBounds) Error() string {
	if err.Stop == err.Start+1 {
		return f("bit %v out of range for %v bits", err.Start, err.Length)
	}
	return f("slice [%v:%v] out of range for %v bits", err.Start, err.Stop, err.Length)
}

func (err *ErrBounds) Unwrap() error {
	return ErrIndex
}

// ErrWidth reports a value of the wrong width for a slice assignment.
type ErrWidth struct {
	Want, Got int
}

func (err *ErrWidth) Error() string {
	return f("%v bits given for a %v bit slice", err.Got, err.Want)
}

func (err *ErrWidth) Unwrap() error {
	return ErrValue
}
