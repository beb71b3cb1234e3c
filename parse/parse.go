// Package parse turns textual literals into an integer and the bit length
// implied by the way they were written.
package parse

import (
	"math/big"
	"strings"
	"unicode"
)

// Kind is the notation a literal was written in.
type Kind int

const (
	Empty   Kind = iota // empty
	Bits                // binary
	Hex                 // hex
	Integer             // integer
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Bits:
		return "binary"
	case Hex:
		return "hex"
	case Integer:
		return "integer"
	}
	return "unknown"
}

// Digits is true when a literal carries an explicit width. Bits and Hex
// literals describe a raw bit pattern, one or four bits per digit.
func (k Kind) Digits() bool {
	return k == Bits || k == Hex || k == Empty
}

func isBinary(s string) bool {
	return len(s) > 0 && strings.Trim(s, "01") == ""
}

func isHex(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}

// squeeze removes whitespace and '_' digit separators.
func squeeze(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return r
	}, s)
}

// Literal parses s, which may be:
//
//	""            zero, one bit long
//	0b0101, 0101  binary, one bit per digit
//	0xfa, fa      hex, four bits per digit
//	-12, 0o17     any Go integer literal, as long as its bit length
//
// Whitespace and '_' separators are ignored in binary and hex digits.
func Literal(s string) (value *big.Int, length int, kind Kind, err error) {
	value = new(big.Int)
	digits := squeeze(s)
	lower := strings.ToLower(digits)

	switch {
	case digits == "":
		length = 1
		kind = Empty
	case strings.HasPrefix(lower, "0b") && isBinary(digits[2:]):
		value.SetString(digits[2:], 2)
		length = len(digits) - 2
		kind = Bits
	case strings.HasPrefix(lower, "0x") && isHex(digits[2:]):
		value.SetString(digits[2:], 16)
		length = 4 * (len(digits) - 2)
		kind = Hex
	case isBinary(digits):
		value.SetString(digits, 2)
		length = len(digits)
		kind = Bits
	case isHex(digits):
		value.SetString(digits, 16)
		length = 4 * len(digits)
		kind = Hex
	default:
		_, ok := value.SetString(digits, 0)
		if !ok {
			err = ErrSyntax(s)
			return
		}
		length = value.BitLen()
		kind = Integer
	}

	return
}
