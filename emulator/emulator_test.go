package emulator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bitvec/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(HISTORY_SIZE, emu.History.Capacity)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("1024", defines["HISTORY_SIZE"])
	assert.Equal("0xffff", defines["PC_HALT"])
}

func doRunSingle(emu *Emulator, program []string, input string, t *testing.T) (output string) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	emu.Tape.Input = strings.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	err = emu.Reset()
	assert.NoError(err)

	for _, op := range prog.Opcodes {
		if op.Code.Op == cpu.OP_STOP {
			break
		}
		assert.Equal(op.LineNo, emu.LineNo())
		here := program[emu.LineNo()-1]
		assert.Equal(op.Ip, emu.Cpu.Pc(), here)
		assert.Equal(op.Code, emu.Code(), here)
		done, err := emu.Tick()
		assert.NoError(err, here)
		assert.False(done, here)
	}

	// The stop instruction, then the halted cpu.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	output = tape_output.String()
	return
}

func TestEmulatorStraightLine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"in r0",
		"in r1",
		"add r0 r1",
		"; a comment line",
		"print r0",
		"load r2 0x10",
		"mul r0 r2",
		"print r0",
		"stop",
	}

	output := doRunSingle(emu, program, "100 23", t)

	assert.Equal("123\n1968\n", output)
	assert.Equal([]int64{123, 1968}, emu.Printed())
	assert.Equal(8, emu.Ticks())
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"      load r1 0",
		"      load r2 1",
		"      load r3 10",
		"      load r4 1",
		"loop: add r2 r1",
		"      print r2",
		"      sub r3 r4",
		"      mov r5 r1",
		"      mov r1 r2",
		"      mov r2 r5",
		"      jne r3 r4 loop",
		"      halt",
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	emu.Tape.Output = &bytes.Buffer{}
	assert.NoError(emu.Reset())

	err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal([]int64{1, 1, 2, 3, 5, 8, 13, 21, 34}, emu.Printed())
	assert.True(emu.Halted())

	// Reset clears the history.
	assert.NoError(emu.Reset())
	assert.Empty(emu.Printed())
	assert.Equal(0, emu.Ticks())

	err = emu.Run(context.Background(), 5)
	assert.ErrorIs(err, ErrTickLimit)
	var re *ErrRuntime
	if assert.ErrorAs(err, &re) {
		assert.Equal(6, re.LineNo)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = emu.Run(ctx, 0)
	assert.True(errors.Is(err, context.Canceled))
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"load r0 1",
		"nop",
		"in r1",
		"stop",
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	emu.Tape.Input = strings.NewReader("")
	assert.NoError(emu.Reset())

	err = emu.Run(context.Background(), 100)
	var re *ErrRuntime
	if assert.ErrorAs(err, &re) {
		assert.Equal(3, re.LineNo)
	}
	assert.ErrorIs(err, cpu.ErrOpcode{})
}

func TestEmulatorHistoryFull(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"      load r1 1",
		"loop: print r1",
		"      add r0 r1",
		"      jne r0 r2 loop",
		"      stop",
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	output := &bytes.Buffer{}
	emu.Tape.Output = output
	assert.NoError(emu.Reset())

	// r0 wraps back to zero after 65536 iterations.
	err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Len(emu.Printed(), HISTORY_SIZE)
	assert.Equal(65536, bytes.Count(output.Bytes(), []byte("\n")))
}
