package floats

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/ezrec/bitvec/binary"
)

// Fixed is a number split at its binary point.
type Fixed struct {
	Negative bool
	Whole    *binary.Binary // Integer part.
	Frac     *binary.Binary // Fraction digits, the first after the point most significant.
}

func (fx Fixed) String() string {
	var sb strings.Builder
	if fx.Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(fx.Whole.Strip().RawBits())
	sb.WriteByte('.')
	sb.WriteString(fx.Frac.RawBits())
	return sb.String()
}

// Float64 returns the value of fx.
func (fx Fixed) Float64() float64 {
	v := fx.Whole.Float64() + math.Ldexp(fx.Frac.Float64(), -fx.Frac.Len())
	if fx.Negative {
		v = -v
	}
	return v
}

// SplitFixed expands |v| into its whole and fractional binary digits,
// stopping after limit fraction digits. A fraction of zero is one 0 digit.
func SplitFixed(v float64, limit int) (fx Fixed, err error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		err = ErrFixed(strconv.FormatFloat(v, 'g', -1, 64))
		return
	}

	fx.Negative = math.Signbit(v)
	whole, frac := math.Modf(math.Abs(v))

	wholeInt, _ := big.NewFloat(whole).Int(nil)
	fx.Whole, err = binary.FromBig(wholeInt, binary.WithSign(binary.Unsigned))
	if err != nil {
		return
	}

	var digits []bool
	for len(digits) < max(limit, 1) && frac != 0 {
		frac *= 2
		digits = append(digits, frac >= 1)
		frac -= math.Trunc(frac)
	}
	if len(digits) == 0 {
		digits = []bool{false}
	}

	fx.Frac, err = binary.FromBits(digits)

	return
}

// ParseFixed reads a binary fixed point literal such as "101.01" or
// "-0.1".
func ParseFixed(s string) (fx Fixed, err error) {
	text := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		fx.Negative = true
		text = rest
	}

	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" && frac == "" {
		err = ErrFixed(s)
		return
	}

	digits := func(part string) (*binary.Binary, error) {
		if strings.Trim(part, "01") != "" {
			return nil, ErrFixed(s)
		}
		if part == "" {
			return binary.Zero(1, binary.Unsigned), nil
		}
		return binary.Parse("0b"+part, binary.WithSign(binary.Unsigned))
	}

	if fx.Whole, err = digits(whole); err != nil {
		return
	}
	fx.Frac, err = digits(frac)

	return
}
