// Package sign names the ways a bit pattern can be read as an integer.
package sign

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ezrec/bitvec/translate"
)

var f = translate.From

var ErrBehavior = errors.New(f("unknown sign behavior"))

// Behavior selects the integer interpretation of a bit pattern.
type Behavior int

const (
	Unsigned  Behavior = iota // unsigned
	Signed                    // signed
	Magnitude                 // magnitude
)

var names = [...]string{
	Unsigned:  "unsigned",
	Signed:    "signed",
	Magnitude: "magnitude",
}

func (b Behavior) String() string {
	if b < 0 || int(b) >= len(names) {
		return f("Behavior(%d)", int(b))
	}
	return names[b]
}

// ParseBehavior accepts the String() form of a Behavior, case insensitive.
func ParseBehavior(name string) (b Behavior, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for n, known := range names {
		if name == known {
			b = Behavior(n)
			return
		}
	}
	err = errors.Join(ErrBehavior, errors.New(name))
	return
}

// Max is the largest value representable in n bits.
func (b Behavior) Max(n int) *big.Int {
	one := big.NewInt(1)
	switch b {
	case Signed, Magnitude:
		v := new(big.Int).Lsh(one, uint(n-1))
		return v.Sub(v, one)
	default:
		v := new(big.Int).Lsh(one, uint(n))
		return v.Sub(v, one)
	}
}

// Min is the smallest value representable in n bits.
func (b Behavior) Min(n int) *big.Int {
	switch b {
	case Signed:
		v := new(big.Int).Lsh(big.NewInt(1), uint(n-1))
		return v.Neg(v)
	case Magnitude:
		return new(big.Int).Neg(b.Max(n))
	default:
		return new(big.Int)
	}
}

// Fits reports whether v is representable in n bits.
func (b Behavior) Fits(v *big.Int, n int) bool {
	return v.Cmp(b.Min(n)) >= 0 && v.Cmp(b.Max(n)) <= 0
}

// Negative is true for the behaviors that can hold negative values.
func (b Behavior) Negative() bool {
	return b == Signed || b == Magnitude
}
