package parse

import (
	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

// ErrSyntax reports a literal that is not binary, hex or an integer.
type ErrSyntax string

func (err ErrSyntax) Error() string {
	return f("'%v' is not a binary, hex or integer literal", string(err))
}
