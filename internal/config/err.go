package config

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	ErrWorkers   = errors.New(f("eval.workers must be at least one"))
	ErrTickLimit = errors.New(f("cpu.tick_limit must not be negative"))
)

// ErrConfigFile reports a configuration file that could not be read.
type ErrConfigFile struct {
	Path string
	Err  error
}

func (err *ErrConfigFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfigFile) Unwrap() error {
	return err.Err
}
