package cpu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/ezrec/bitvec/binary"
)

// WORD_BITS is the width of registers and instruction words.
const WORD_BITS = 16

// Op is an operation code, held in bits 0..3 of an instruction word.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP   = Op(0)  // nop
	OP_LOAD  = Op(1)  // load
	OP_ADD   = Op(2)  // add
	OP_SUB   = Op(3)  // sub
	OP_JGE   = Op(4)  // jge
	OP_JNE   = Op(5)  // jne
	OP_PRINT = Op(6)  // print
	OP_STOP  = Op(7)  // stop
	OP_MOV   = Op(8)  // mov
	OP_AND   = Op(9)  // and
	OP_OR    = Op(10) // or
	OP_XOR   = Op(11) // xor
	OP_SHL   = Op(12) // shl
	OP_SHR   = Op(13) // shr
	OP_MUL   = Op(14) // mul
	OP_IN    = Op(15) // in
)

// Reg is a register index.
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	REG_R0    = Reg(0) // r0
	REG_R1    = Reg(1) // r1
	REG_R2    = Reg(2) // r2
	REG_R3    = Reg(3) // r3
	REG_R4    = Reg(4) // r4
	REG_R5    = Reg(5) // r5
	REG_FLAGS = Reg(6) // r6
	REG_PC    = Reg(7) // r7
)

// Flag bits held in REG_FLAGS.
const (
	FLAG_OF = 0 // Overflow
	FLAG_ZF = 1 // Zero
	FLAG_SF = 2 // Sign
	FLAG_PF = 3 // Parity
)

// Form is the operand shape of an operation.
type Form int

const (
	FORM_NONE   = Form(iota) // No operands.
	FORM_R1                  // r1
	FORM_R1_R2               // r1 r2
	FORM_R1_IMM8             // r1 imm8
	FORM_JUMP                // r1 r2 imm6
)

// Form returns the operand shape of the operation.
func (op Op) Form() Form {
	switch op {
	case OP_NOP, OP_STOP:
		return FORM_NONE
	case OP_PRINT, OP_IN:
		return FORM_R1
	case OP_LOAD:
		return FORM_R1_IMM8
	case OP_JGE, OP_JNE:
		return FORM_JUMP
	}
	return FORM_R1_R2
}

// Immediate ranges.
const (
	IMM6_MIN = -32
	IMM6_MAX = 31
	IMM8_MAX = 255
)

// Code is a decoded instruction.
//
// Word layout, least significant bit first: op[0:4], r1[4:7], then either
// r2[7:10] and a signed imm6[10:16], or an unsigned imm8[7:15] for load.
type Code struct {
	Op  Op
	R1  Reg
	R2  Reg
	Imm int // Jump offset, or the byte for load.
}

// Validate checks that every field fits its place in the word.
func (code Code) Validate() (err error) {
	if code.Op < OP_NOP || code.Op > OP_IN {
		return ErrOpcodeOp
	}
	if code.R1 < REG_R0 || code.R1 > REG_PC {
		return ErrOpcodeArg1
	}
	if code.R2 < REG_R0 || code.R2 > REG_PC {
		return ErrOpcodeArg2
	}

	switch code.Op.Form() {
	case FORM_R1_IMM8:
		if code.Imm < 0 || code.Imm > IMM8_MAX {
			return ErrOpcodeImm
		}
	default:
		if code.Imm < IMM6_MIN || code.Imm > IMM6_MAX {
			return ErrOpcodeImm
		}
	}

	return
}

// bigEndian reverses the little-endian storage of a word.
func bigEndian(data []byte) []byte {
	out := slices.Clone(data)
	slices.Reverse(out)
	return out
}

// Encode packs the instruction into a 16 bit word.
func (code Code) Encode() (word *binary.Binary, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if err = code.Validate(); err != nil {
		return
	}

	// Fields are added most significant first.
	builder := funbit.NewBuilder()
	if code.Op.Form() == FORM_R1_IMM8 {
		funbit.AddInteger(builder, int64(0), funbit.WithSize(1))
		funbit.AddInteger(builder, int64(code.Imm), funbit.WithSize(8))
	} else {
		funbit.AddInteger(builder, int64(code.Imm&0x3f), funbit.WithSize(6))
		funbit.AddInteger(builder, int64(code.R2), funbit.WithSize(3))
	}
	funbit.AddInteger(builder, int64(code.R1), funbit.WithSize(3))
	funbit.AddInteger(builder, int64(code.Op), funbit.WithSize(4))

	bs, err := funbit.Build(builder)
	if err != nil {
		err = errors.Join(ErrOpcodeDecode, err)
		return
	}

	return binary.FromBytes(bigEndian(bs.ToBytes()),
		binary.WithLength(WORD_BITS),
		binary.WithSign(binary.Unsigned),
		binary.WithFormat("pad:4 3 3 6 "))
}

// MustEncode is Encode for instructions known to be valid.
func (code Code) MustEncode() *binary.Binary {
	return binary.Must(code.Encode())
}

// Decode unpacks a 16 bit instruction word.
func Decode(word *binary.Binary) (code Code, err error) {
	if word.Len() != WORD_BITS {
		err = errors.Join(ErrOpcodeDecode, &binary.ErrWidth{Want: WORD_BITS, Got: word.Len()})
		return
	}

	bs := funbit.NewBitStringFromBytes(bigEndian(word.Bytes()))

	var imm, r2, r1, op uint
	matcher := funbit.NewMatcher()
	funbit.Integer(matcher, &imm, funbit.WithSize(6))
	funbit.Integer(matcher, &r2, funbit.WithSize(3))
	funbit.Integer(matcher, &r1, funbit.WithSize(3))
	funbit.Integer(matcher, &op, funbit.WithSize(4))

	_, err = funbit.Match(matcher, bs)
	if err != nil {
		err = errors.Join(ErrOpcodeDecode, err)
		return
	}

	code = Code{Op: Op(op), R1: Reg(r1)}
	switch code.Op.Form() {
	case FORM_R1_IMM8:
		code.Imm = int((imm&0x1f)<<3 | r2)
	default:
		code.R2 = Reg(r2)
		offset := binary.Must(binary.Uint(6, uint64(imm))).Cast(binary.Signed)
		value, _ := offset.Int64()
		code.Imm = int(value)
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	words := []string{code.Op.String()}

	switch code.Op.Form() {
	case FORM_R1:
		words = append(words, code.R1.String())
	case FORM_R1_R2:
		words = append(words, code.R1.String(), code.R2.String())
	case FORM_R1_IMM8:
		words = append(words, code.R1.String(), fmt.Sprintf("%d", code.Imm))
	case FORM_JUMP:
		words = append(words, code.R1.String(), code.R2.String(), fmt.Sprintf("%+d", code.Imm))
	}

	return strings.Join(words, " ")
}

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo    int      // Source line.
	Ip        int      // Address of the instruction.
	Words     []string // Source words, after equates are substituted.
	Code      Code     // Assembled instruction.
	LinkLabel string   // Jump target, resolved when the program is linked.
}
