package cpu

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"load", "r0", "0x10"},
				Code: Code{Op: OP_LOAD, R1: REG_R0, Imm: 0x10}},
			{LineNo: 3, Ip: 1, Words: []string{"load", "r1", "0x20"},
				Code: Code{Op: OP_LOAD, R1: REG_R1, Imm: 0x20}},
			{LineNo: 4, Ip: 2, Words: []string{"add", "r0", "r1"},
				Code: Code{Op: OP_ADD, R1: REG_R0, R2: REG_R1}},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)

	dbg = prog.Debug(1)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.Opcode.LineNo)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(OP_ADD, dbg.Code.Op)

	dbg = prog.Debug(10)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Code: Code{Op: OP_NOP}},
			{LineNo: 2, Ip: 1, Code: Code{Op: OP_PRINT, R1: REG_R2}},
			{LineNo: 3, Ip: 2, Code: Code{Op: OP_STOP}},
		},
	}

	var ips []int
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		if code.Op == OP_PRINT {
			break
		}
	}
	assert.Equal([]int{0, 1}, ips)

	rom, err := prog.Binary()
	assert.NoError(err)
	assert.Len(rom, 3)
	assert.Equal("0026", rom[1].Hex(false))

	prog.Opcodes[0].Code.Imm = 99
	_, err = prog.Binary()
	assert.ErrorIs(err, ErrOpcodeImm)
}

func TestProgram_Listing(t *testing.T) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(fibonacci, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	text, err := prog.Listing()
	if err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "fibonacci", []byte(text))
}
