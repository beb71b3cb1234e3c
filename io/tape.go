package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ezrec/bitvec/binary"
)

// TAPE_DEFAULT_FORMAT prints each word as an unsigned decimal line.
const TAPE_DEFAULT_FORMAT = "%d\n"

// Tape is a text console. Words are read as whitespace separated integer
// literals from Input, and written to Output with Format.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Format string // fmt verb applied to each sent word.

	scanner *bufio.Scanner
}

var _ Port = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next integer literal from the input. Negative values
// are stored in two's complement.
func (tc *Tape) Receive(width int) (value *binary.Binary, err error) {
	if tc.Input == nil {
		err = ErrPortEmpty
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrPortEmpty
		}
		return
	}

	text := tc.scanner.Text()
	number, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		err = &ErrPortValue{Text: text, Width: width}
		return
	}

	value, err = binary.FromInt64(number, binary.WithLength(width))
	if err != nil {
		err = errors.Join(&ErrPortValue{Text: text, Width: width}, err)
		return
	}

	value = value.Cast(binary.Unsigned)

	return
}

// Send writes a word to the output.
func (tc *Tape) Send(value *binary.Binary) (err error) {
	if tc.Output == nil {
		return
	}

	format := tc.Format
	if format == "" {
		format = TAPE_DEFAULT_FORMAT
	}

	_, err = fmt.Fprintf(tc.Output, format, value)

	return
}
