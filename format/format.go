// Package format renders bit patterns as binary or hex digit strings,
// optionally grouped.
//
// A format spec is a ':' separated list of modifiers:
//
//	%b, %x        radix (binary is the default)
//	pad:<c>[sep]  fixed groups; c is one of s(none) n(4) b(8) w(16) d(32) q(64)
//	pad:<pattern> repeating groups, such as "4'4 " or "10 5 1 "
//	r<c>          reverse the digits, prefixed with the marker c
//
// Groups are counted from the least significant digit; each group's
// separator is written on its most significant side.
package format

import (
	"regexp"
	"strconv"
	"strings"
)

// Source is a bit pattern to render.
type Source interface {
	Bytes() []byte // Little-endian storage.
	Len() int      // Number of meaningful bits.
}

// Group is one run of digits and the separator before it.
type Group struct {
	Width int // In bits.
	Sep   string
}

// Spec is a parsed format specification.
type Spec struct {
	Radix   byte    // 'b' or 'x'
	Groups  []Group // nil selects the default grouping.
	Reverse string  // Marker for reversed output.

	reversed bool
	grouped  bool
}

var fixedWidth = map[byte]int{'s': 0, 'n': 4, 'b': 8, 'w': 16, 'd': 32, 'q': 64}

var rePattern = regexp.MustCompile(`(\d+|\D+)`)

// Default is the grouping used when a spec does not name one: bytes
// separated by spaces for byte multiples and values over 16 bits.
func Default(n int) []Group {
	if n%8 == 0 || n > 16 {
		return []Group{{Width: 8, Sep: " "}}
	}
	return nil
}

// ParsePattern reads a repeating group pattern such as "4'4 ".
func ParsePattern(pattern string) (groups []Group, err error) {
	parts := rePattern.FindAllString(pattern, -1)
	if len(parts) == 0 || len(parts)%2 != 0 {
		err = ErrPattern(pattern)
		return
	}

	for n := 0; n < len(parts); n += 2 {
		var width int
		width, err = strconv.Atoi(parts[n])
		if err != nil || width <= 0 {
			err = ErrPattern(pattern)
			return
		}
		groups = append(groups, Group{Width: width, Sep: parts[n+1]})
	}

	return
}

// Parse reads a format specification.
func Parse(spec string) (s Spec, err error) {
	s.Radix = 'b'

	if spec == "" {
		return
	}

	mods := strings.Split(spec, ":")
	for n := 0; n < len(mods); n++ {
		mod := mods[n]
		switch {
		case len(mod) == 2 && mod[0] == 'r':
			s.Reverse = mod[1:]
			s.reversed = true
		case mod == "%b" || mod == "%x":
			s.Radix = mod[1]
		case mod == "pad":
			n++
			if n >= len(mods) {
				err = ErrSpec(spec)
				return
			}
			arg := mods[n]
			width, fixed := 0, false
			if len(arg) == 1 || len(arg) == 2 {
				width, fixed = fixedWidth[arg[0]]
			}
			s.grouped = true
			if fixed {
				sep := " "
				if len(arg) == 2 {
					sep = arg[1:]
				}
				if width > 0 {
					s.Groups = []Group{{Width: width, Sep: sep}}
				}
				continue
			}
			s.Groups, err = ParsePattern(arg)
			if err != nil {
				return
			}
		default:
			err = ErrSpec(spec)
			return
		}
	}

	return
}

// MustParse is Parse that panics on a bad format spec.
func MustParse(spec string) Spec {
	s, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return s
}

// Digits returns the ungrouped digits of src, most significant first.
// Binary output has exactly Len() digits; hex output has one digit per
// started nibble.
func Digits(src Source, radix byte) string {
	data := src.Bytes()
	n := src.Len()

	var sb strings.Builder
	switch radix {
	case 'x':
		nibbles := (n + 3) / 4
		sb.Grow(nibbles)
		for i := nibbles - 1; i >= 0; i-- {
			b := data[i/2]
			if i%2 == 1 {
				b >>= 4
			}
			sb.WriteByte("0123456789abcdef"[b&0xf])
		}
	default:
		sb.Grow(n)
		for i := n - 1; i >= 0; i-- {
			if data[i/8]&(1<<(i%8)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}

	return sb.String()
}

// group inserts separators into digits, counted from the right.
func group(digits string, groups []Group, bitsPerDigit int) string {
	if len(groups) == 0 {
		return digits
	}

	type chunk struct {
		text, sep string
	}

	var chunks []chunk
	end := len(digits)
	for index := 0; end > 0; index = (index + 1) % len(groups) {
		g := groups[index]
		width := max(1, g.Width/bitsPerDigit)
		start := max(0, end-width)
		chunks = append(chunks, chunk{digits[start:end], g.Sep})
		end = start
	}

	var sb strings.Builder
	for i := len(chunks) - 1; i >= 0; i-- {
		if i != len(chunks)-1 {
			sb.WriteString(chunks[i].sep)
		}
		sb.WriteString(chunks[i].text)
	}

	return sb.String()
}

// Format renders src according to the spec.
func (s Spec) Format(src Source) string {
	groups := s.Groups
	if !s.grouped {
		groups = Default(src.Len())
	}

	bitsPerDigit := 1
	if s.Radix == 'x' {
		bitsPerDigit = 4
	}

	text := group(Digits(src, s.Radix), groups, bitsPerDigit)
	if s.reversed {
		runes := []rune(text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		text = s.Reverse + string(runes)
	}

	return text
}

// Bin renders the binary digits of src, with an optional 0b prefix.
func Bin(src Source, prefix bool) string {
	digits := Digits(src, 'b')
	if prefix {
		return "0b" + digits
	}
	return digits
}

// Hex renders the hex digits of src, with an optional 0x prefix.
func Hex(src Source, prefix bool) string {
	digits := Digits(src, 'x')
	if prefix {
		return "0x" + digits
	}
	return digits
}
