package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/io"
)

func FuzzDecode(f *testing.F) {
	for op := range 16 {
		f.Add(uint16(op))
		f.Add(uint16(op) | 0x7ff0)
	}
	f.Add(uint16(0xe635))

	f.Fuzz(func(t *testing.T, word uint16) {
		assert := assert.New(t)

		code, err := Decode(binary.U16(word))
		assert.NoError(err)

		if code.Op == OP_LOAD && word&0x8000 != 0 {
			// The load padding bit is not preserved.
			word &= 0x7fff
		}

		again, err := code.Encode()
		if assert.NoError(err, code.String()) {
			value, _ := again.Uint64()
			assert.Equal(uint64(word), value, code.String())
		}

		// Every decoded word executes without a decode failure.
		cpu := NewCpu(&io.Ring{})
		err = cpu.Execute(code)
		if err != nil {
			assert.NotErrorIs(err, ErrOpcodeOp, code.String())
		}
	})
}
