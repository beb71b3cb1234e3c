package binary

import (
	"fmt"
	"strings"

	"github.com/ezrec/bitvec/format"
)

// String renders b with its default format spec, or with the default
// byte grouping when it has none.
func (b *Binary) String() string {
	spec, err := format.Parse(b.format)
	if err != nil {
		spec = format.Spec{Radix: 'b'}
	}
	return spec.Format(b.buf)
}

// FormatWith renders b with a format spec such as "%x" or "pad:n_".
func (b *Binary) FormatWith(spec string) (string, error) {
	s, err := format.Parse(spec)
	if err != nil {
		return "", err
	}
	return s.Format(b.buf), nil
}

// Bin returns the binary digits, optionally prefixed with 0b.
func (b *Binary) Bin(prefix bool) string {
	return format.Bin(b.buf, prefix)
}

// Hex returns the hex digits, optionally prefixed with 0x.
func (b *Binary) Hex(prefix bool) string {
	return format.Hex(b.buf, prefix)
}

// Format implements fmt.Formatter: %v and %s use String, %b and %x the
// ungrouped digits (the # flag adds a prefix), and %d the integer value.
func (b *Binary) Format(state fmt.State, verb rune) {
	var text string
	switch verb {
	case 'v', 's':
		text = b.String()
	case 'b':
		text = b.Bin(state.Flag('#'))
	case 'x':
		text = b.Hex(state.Flag('#'))
	case 'd':
		text = b.Int().String()
	default:
		text = fmt.Sprintf("%%!%c(binary=%s)", verb, b.RawBits())
	}

	if width, ok := state.Width(); ok && width > len(text) {
		pad := strings.Repeat(" ", width-len(text))
		if state.Flag('-') {
			text += pad
		} else {
			text = pad + text
		}
	}

	_, _ = state.Write([]byte(text))
}
