// Package io provides the ports the toy CPU reads and writes through.
// A port moves whole words: Tape is a text console over an io.Reader and
// io.Writer, and Ring is an in-memory queue of words.
package io

import (
	"github.com/ezrec/bitvec/binary"
)

// Port defines the interface for all word I/O ports.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Receive reads the next word, as an unsigned value of width bits.
	Receive(width int) (*binary.Binary, error)
	// Send writes a single word to the port.
	Send(value *binary.Binary) error
}
