package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/io"
)

var fibonacci = []string{
	"      load r1 0",
	"      load r2 1",
	"      load r3 15",
	"      load r4 1",
	"loop: add r2 r1",
	"      print r2",
	"      sub r3 r4",
	"      mov r5 r1",
	"      mov r1 r2",
	"      mov r2 r5",
	"      jne r3 r4 loop",
	"      stop",
}

// runProgram assembles and runs a program to its stop instruction.
func runProgram(t *testing.T, program []string, port io.Port) *Cpu {
	require := require.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(err)

	rom, err := prog.Binary()
	require.NoError(err)

	cpu := NewCpu(port)
	require.NoError(cpu.Load(rom))

	for range 10000 {
		err = cpu.Tick()
		if errors.Is(err, ErrPcEmpty) {
			return cpu
		}
		require.NoError(err, cpu.String())
	}

	t.Fatal("program did not stop")
	return nil
}

func TestFibonacci(t *testing.T) {
	assert := assert.New(t)

	ring := &io.Ring{}
	cpu := runProgram(t, fibonacci, ring)

	assert.Equal([]int64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377}, ring.Values())
	assert.True(cpu.Halted())
	assert.Equal(4+14*7+1, cpu.Ticks)
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"load r1 255",
		"load r2 8",
		"shl r1 r2", // r1 = 0xff00
		"load r3 255",
		"or r1 r3", // r1 = 0xffff
		"mov r4 r1",
		"load r2 1",
		"add r1 r2", // carry out
		"stop",
	}

	cpu := runProgram(t, program, nil)

	assert.Equal("0000", cpu.Register[REG_R1].Hex(false))
	assert.Equal("ffff", cpu.Register[REG_R4].Hex(false))
	assert.Equal(binary.Flags{Overflow: true, Zero: true}, cpu.Flags())
	assert.Equal("0003", cpu.Register[REG_FLAGS].Hex(false))

	cpu = runProgram(t, []string{"load r1 3", "load r2 5", "and r1 r2", "stop"}, nil)
	assert.Equal("0001", cpu.Register[REG_R1].Hex(false))
	assert.Equal(binary.Flags{Parity: true}, cpu.Flags())

	cpu = runProgram(t, []string{"load r1 200", "load r2 200", "mul r1 r2", "stop"}, nil)
	value, err := cpu.Register[REG_R1].Uint64()
	assert.NoError(err)
	assert.Equal(uint64(40000), value)
	assert.True(cpu.Flags().Sign)
	assert.False(cpu.Flags().Overflow)
}

func TestLoadKeepsHighByte(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"load r1 0x12",
		"load r2 8",
		"shl r1 r2",
		"load r1 0x34",
		"load r3 -1",
		"stop",
	}

	cpu := runProgram(t, program, nil)
	assert.Equal("1234", cpu.Register[REG_R1].Hex(false))
	assert.Equal("00ff", cpu.Register[REG_R3].Hex(false))
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"      load r1 3",
		"      load r2 1",
		"      load r3 0",
		"loop: add r3 r2", // r3 counts iterations
		"      sub r1 r2",
		"      jge r1 r2 loop",
		"      jmp done",
		"      load r3 99",
		"done: print r3",
		"      stop",
	}

	ring := &io.Ring{}
	runProgram(t, program, ring)
	assert.Equal([]int64{3}, ring.Values())
}

func TestInput(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"in r1",
		"in r2",
		"xor r1 r2",
		"print r1",
		"stop",
	}

	var out strings.Builder
	tape := &io.Tape{Input: strings.NewReader("0x0f0f 0xffff"), Output: &out, Format: "%x\n"}
	runProgram(t, program, tape)
	assert.Equal("f0f0\n", out.String())
}

func TestCpuErrors(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	assert.NoError(cpu.Load([]*binary.Binary{Code{Op: OP_PRINT, R1: REG_R0}.MustEncode()}))

	err := cpu.Tick()
	assert.ErrorIs(err, ErrPortMissing)
	assert.ErrorIs(err, ErrOpcode{})

	cpu.Rom = nil
	err = cpu.Tick()
	assert.ErrorIs(err, ErrPcRange)

	err = cpu.Load([]*binary.Binary{binary.U8(0)})
	assert.Error(err)

	cpu = NewCpu(&io.Ring{})
	assert.NoError(cpu.Load([]*binary.Binary{Code{Op: OP_IN, R1: REG_R0}.MustEncode()}))
	assert.ErrorIs(cpu.Tick(), io.ErrPortEmpty)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	text := cpu.String()

	assert.Contains(text, "   r0: 0000\n")
	assert.Contains(text, "flags: Flags(of=false,zf=false,sf=false,pf=false)\n")
	assert.Contains(text, "   pc: 0000\n")
	assert.Equal(8, strings.Count(text, "\n"))

	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}
	assert.Equal("0xffff", defines["PC_HALT"])
	assert.Equal("16", defines["WORD_BITS"])
}
