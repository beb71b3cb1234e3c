package io

import (
	"errors"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortFull  = errors.New(f("port full"))
	ErrPortEmpty = errors.New(f("port empty"))
)

// ErrPortValue reports input that is not an integer of the word width.
type ErrPortValue struct {
	Text  string
	Width int
}

func (err *ErrPortValue) Error() string {
	return f("'%v' is not a %v bit integer", err.Text, err.Width)
}
