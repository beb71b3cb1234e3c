package alu

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	// ErrOverflow is returned when a value does not fit its destination.
	ErrOverflow = errors.New(f("overflow"))
	// ErrMode is returned for an unknown conversion mode.
	ErrMode = errors.New(f("conversion mode invalid"))
)
