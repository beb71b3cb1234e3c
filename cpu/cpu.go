package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/io"
)

// PC_HALT is the program counter value after a stop.
const PC_HALT = 0xffff

var _cpu_defines = map[string]string{
	"WORD_BITS": fmt.Sprintf("%v", WORD_BITS),
	"PC_HALT":   fmt.Sprintf("0x%x", PC_HALT),
	"FLAG_OF":   fmt.Sprintf("%v", FLAG_OF),
	"FLAG_ZF":   fmt.Sprintf("%v", FLAG_ZF),
	"FLAG_SF":   fmt.Sprintf("%v", FLAG_SF),
	"FLAG_PF":   fmt.Sprintf("%v", FLAG_PF),
}

// Cpu is the simulation context for a 16 bit register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [8]*binary.Binary // Register bank. r6 holds the flags, r7 the program counter.
	Rom      []*binary.Binary  // Program memory, one instruction word per address.
	Port     io.Port           // Console for print and in.

	Ticks int // CPU ticks counter.
}

// NewCpu creates a new CPU attached to a port.
func NewCpu(port io.Port) (cpu *Cpu) {
	cpu = &Cpu{
		Port: port,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// word returns a register sized unsigned value.
func word(v uint16) *binary.Binary {
	return binary.U16(v)
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() int {
	pc, _ := cpu.Register[REG_PC].Uint64()
	return int(pc)
}

// Flags returns the flags held in REG_FLAGS.
func (cpu *Cpu) Flags() (flags binary.Flags) {
	reg := cpu.Register[REG_FLAGS]
	flags.Overflow, _ = reg.Bit(FLAG_OF)
	flags.Zero, _ = reg.Bit(FLAG_ZF)
	flags.Sign, _ = reg.Bit(FLAG_SF)
	flags.Parity, _ = reg.Bit(FLAG_PF)
	return
}

// setFlags replaces REG_FLAGS.
func (cpu *Cpu) setFlags(flags binary.Flags) {
	reg := binary.Zero(WORD_BITS, binary.Unsigned)
	_ = reg.SetBit(FLAG_OF, flags.Overflow)
	_ = reg.SetBit(FLAG_ZF, flags.Zero)
	_ = reg.SetBit(FLAG_SF, flags.Sign)
	_ = reg.SetBit(FLAG_PF, flags.Parity)
	cpu.Register[REG_FLAGS] = reg
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, reg := range cpu.Register {
		name := Reg(n).String()
		strval := reg.Hex(false)
		switch Reg(n) {
		case REG_FLAGS:
			name = "flags"
			strval = cpu.Flags().String()
		case REG_PC:
			name = "pc"
		}
		text += fmt.Sprintf("% 5s: %v\n", name, strval)
	}

	return
}

// Reset the CPU state.
// - Clears the registers.
// - Zeros the tick counter.
// - Rewinds the port.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	for n := range cpu.Register {
		cpu.Register[n] = binary.Zero(WORD_BITS, binary.Unsigned)
	}
	cpu.Ticks = 0

	if cpu.Port != nil {
		cpu.Port.Rewind()
	}
}

// Load replaces the program memory. Execution restarts at address zero.
func (cpu *Cpu) Load(rom []*binary.Binary) (err error) {
	if len(rom) >= PC_HALT {
		err = ErrProgramSize
		return
	}

	for _, w := range rom {
		if w.Len() != WORD_BITS {
			err = &binary.ErrWidth{Want: WORD_BITS, Got: w.Len()}
			return
		}
	}

	cpu.Rom = rom
	cpu.Register[REG_PC] = word(0)

	return
}

// Halted is true after a stop instruction.
func (cpu *Cpu) Halted() bool {
	return cpu.Pc() == PC_HALT
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	pc := cpu.Pc()

	switch {
	case pc == PC_HALT:
		err = ErrPcEmpty
		return
	case pc >= len(cpu.Rom):
		err = ErrPcRange
		return
	}

	return Decode(cpu.Rom[pc])
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// shiftCount reads a register as a shift count.
func shiftCount(reg *binary.Binary) uint {
	count, _ := reg.Uint64()
	return uint(min(count, WORD_BITS))
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Pc(), code)
	}

	r1 := cpu.Register[code.R1]
	r2 := cpu.Register[code.R2]

	var result *binary.Binary
	var flags binary.Flags
	var flagged bool

	step := 1

	switch code.Op {
	case OP_NOP:
		// pass
	case OP_LOAD:
		result = r1.Clone()
		err = result.SetSlice(0, 8, binary.U8(uint8(code.Imm)))
	case OP_ADD:
		result, flags, err = r1.FlaggedAdd(r2)
		flagged = true
	case OP_SUB:
		result, flags, err = r1.FlaggedSub(r2)
		flagged = true
	case OP_MUL:
		result, flags, err = r1.FlaggedMul(r2)
		flagged = true
	case OP_AND:
		result, err = r1.And(r2)
		flagged = true
	case OP_OR:
		result, err = r1.Or(r2)
		flagged = true
	case OP_XOR:
		result, err = r1.Xor(r2)
		flagged = true
	case OP_SHL:
		result, flags = r1.FlaggedShl(shiftCount(r2))
		flagged = true
	case OP_SHR:
		result, flags = r1.FlaggedShr(shiftCount(r2))
		flagged = true
	case OP_JGE:
		if r1.GreaterEq(r2) {
			step += code.Imm
		}
	case OP_JNE:
		if !r1.Equal(r2) {
			step += code.Imm
		}
	case OP_PRINT:
		if cpu.Port == nil {
			err = ErrPortMissing
			return
		}
		err = cpu.Port.Send(r1)
	case OP_IN:
		if cpu.Port == nil {
			err = ErrPortMissing
			return
		}
		result, err = cpu.Port.Receive(WORD_BITS)
	case OP_STOP:
		cpu.Register[REG_PC] = word(PC_HALT)
		return
	case OP_MOV:
		result = r2.Clone()
	default:
		err = ErrOpcodeOp
	}

	if err != nil {
		return
	}

	if result != nil {
		cpu.Register[code.R1] = result
		if flagged {
			switch code.Op {
			case OP_AND, OP_OR, OP_XOR:
				flags = result.Flags()
			}
			cpu.setFlags(flags)
		}
	}

	cpu.Register[REG_PC], err = cpu.Register[REG_PC].Add(word(uint16(step)))

	return
}
