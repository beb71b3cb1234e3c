// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/cpu"
	"github.com/ezrec/bitvec/internal"
	"github.com/ezrec/bitvec/io"
)

const (
	HISTORY_SIZE = 1024 // Words of printed output kept by the emulator.
)

var _emulator_defines = map[string]string{
	"HISTORY_SIZE":  fmt.Sprintf("%v", HISTORY_SIZE),
	"RING_CAPACITY": fmt.Sprintf("%v", io.RING_DEFAULT_CAPACITY),
}

// Emulator state. CPU + program + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape    io.Tape // Console IO channel.
	History io.Ring // The first HISTORY_SIZE words printed since reset.
}

// console sends to the tape, and keeps a copy in the history.
type console struct {
	emu *Emulator
}

func (c console) Rewind() {
	c.emu.Tape.Rewind()
	c.emu.History.Data = nil
	c.emu.History.Rewind()
}

func (c console) Receive(width int) (value *binary.Binary, err error) {
	return c.emu.Tape.Receive(width)
}

func (c console) Send(value *binary.Binary) (err error) {
	err = c.emu.Tape.Send(value)
	if err != nil {
		return
	}

	err = c.emu.History.Send(value)
	if errors.Is(err, io.ErrPortFull) {
		err = nil
	}

	return
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.History.Capacity = HISTORY_SIZE
	emu.Cpu = cpu.NewCpu(console{emu: emu})

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Chain2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU and load the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	rom, err := emu.Program.Binary()
	if err != nil {
		return
	}

	emu.Cpu.Reset()

	err = emu.Cpu.Load(rom)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d words", len(rom))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	pc := emu.Cpu.Pc()
	for ip, code := range emu.Program.Codes() {
		if pc == ip {
			return code
		}
	}

	return cpu.Code{}
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Printed returns the values printed since the last reset.
func (emu *Emulator) Printed() []int64 {
	return emu.History.Values()
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks until the program stops, the context is cancelled, or limit
// ticks have passed. A limit of zero runs without a bound.
func (emu *Emulator) Run(ctx context.Context, limit int) (err error) {
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if limit > 0 && emu.Ticks() >= limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
