package cli

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	ErrNoInput = errors.New(f("no expressions to evaluate"))
)

// ErrEval reports the expression that failed in a batch.
type ErrEval struct {
	Index int
	Expr  string
	Err   error
}

func (err *ErrEval) Error() string {
	return f("expression %d (%v): %v", err.Index, err.Expr, err.Err)
}

func (err *ErrEval) Unwrap() error {
	return err.Err
}
