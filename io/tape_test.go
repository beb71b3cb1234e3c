package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvec/binary"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("12 0x7f\n -1\t0b101 bogus 70000")}

	table := []string{"000c", "007f", "ffff", "0005"}
	for _, expected := range table {
		value, err := tape.Receive(16)
		assert.NoError(err)
		if err == nil {
			assert.Equal(expected, value.Hex(false))
			assert.Equal(binary.Unsigned, value.SignBehavior())
		}
	}

	_, err := tape.Receive(16)
	var pv *ErrPortValue
	if assert.ErrorAs(err, &pv) {
		assert.Equal("bogus", pv.Text)
		assert.Equal(16, pv.Width)
	}

	_, err = tape.Receive(16)
	assert.ErrorAs(err, &pv)
	assert.Equal("70000", pv.Text)

	_, err = tape.Receive(16)
	assert.ErrorIs(err, ErrPortEmpty)

	tape = &Tape{}
	_, err = tape.Receive(16)
	assert.ErrorIs(err, ErrPortEmpty)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	tape := &Tape{Output: &out}

	assert.NoError(tape.Send(binary.U16(42)))
	assert.NoError(tape.Send(binary.U16(0xffff)))
	assert.Equal("42\n65535\n", out.String())

	out.Reset()
	tape.Format = "%#x;"
	assert.NoError(tape.Send(binary.U16(0xbeef)))
	assert.Equal("0xbeef;", out.String())

	tape = &Tape{}
	assert.NoError(tape.Send(binary.U16(1)))
}
