package cpu

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/bitvec/binary"
)

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the source of the instruction at ip.
type Debug struct {
	*Opcode
}

// Debug returns the opcode at ip. The Opcode is nil when ip is outside
// of the program.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip == op.Ip {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
			}
			break
		}
	}

	return
}

// Binary encodes the program as a ROM image.
func (prog *Program) Binary() (rom []*binary.Binary, err error) {
	for ip, code := range prog.Codes() {
		var word *binary.Binary
		word, err = code.Encode()
		if err != nil {
			err = errors.Join(fmt.Errorf("%04x", ip), err)
			return
		}
		rom = append(rom, word)
	}

	return
}

// Codes iterates over the instructions by address.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// Listing renders the program with addresses, encoded words and source
// line numbers.
func (prog *Program) Listing() (text string, err error) {
	var sb strings.Builder
	for _, op := range prog.Opcodes {
		var word *binary.Binary
		word, err = op.Code.Encode()
		if err != nil {
			return
		}
		fmt.Fprintf(&sb, "%04x: %v  %-16v ; line %d\n", op.Ip, word.Hex(false), op.Code, op.LineNo)
	}

	text = sb.String()

	return
}
