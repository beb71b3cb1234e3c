package format

import (
	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

// ErrSpec reports an unreadable format specification.
type ErrSpec string

func (err ErrSpec) Error() string {
	return f("format '%v' invalid", string(err))
}

// ErrPattern reports an unreadable group pattern.
type ErrPattern string

func (err ErrPattern) Error() string {
	return f("group pattern '%v' invalid", string(err))
}
