// Package floats encodes numbers into small IEEE 754 style binary float
// formats, and splits them back into sign, exponent and mantissa fields.
package floats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ezrec/bitvec/binary"
)

// Format describes a binary float: one sign bit, then Exponent bits of
// biased exponent, then Mantissa bits of fraction.
type Format struct {
	Name     string
	Exponent int
	Mantissa int
	Bias     int
}

// New returns a format with the IEEE bias of 2**(exponent-1) - 1.
func New(name string, exponent, mantissa int) Format {
	return Format{
		Name:     name,
		Exponent: exponent,
		Mantissa: mantissa,
		Bias:     1<<(exponent-1) - 1,
	}
}

var (
	FP8   = New("fp8", 4, 3)
	FP16  = New("fp16", 5, 10)
	FP24  = New("fp24", 7, 16)
	FP32  = New("fp32", 8, 23)
	BF16  = New("bf16", 8, 7)
	TF    = New("tf", 8, 10)
	PXR24 = New("pxr24", 8, 15)
)

var presets = map[string]Format{}

func init() {
	for _, ft := range []Format{FP8, FP16, FP24, FP32, BF16, TF, PXR24} {
		presets[ft.Name] = ft
	}
}

// Lookup finds a preset format by name.
func Lookup(name string) (ft Format, err error) {
	ft, ok := presets[strings.ToLower(name)]
	if !ok {
		err = errors.Join(ErrUnknown, errors.New(name))
	}
	return
}

// Names lists the preset formats.
func Names() (names []string) {
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Validate checks that the format fits the float64 arithmetic used to
// encode it.
func (ft Format) Validate() error {
	if ft.Exponent < 2 || ft.Exponent > 11 || ft.Mantissa < 1 || ft.Mantissa > 52 {
		return errors.Join(ErrFormat, fmt.Errorf("e%vm%v", ft.Exponent, ft.Mantissa))
	}
	return nil
}

// Bits is the total width of the format.
func (ft Format) Bits() int {
	return 1 + ft.Exponent + ft.Mantissa
}

func (ft Format) String() string {
	if ft.Name != "" {
		return ft.Name
	}
	return fmt.Sprintf("e%vm%v", ft.Exponent, ft.Mantissa)
}

// pattern groups the fields when a value is printed.
func (ft Format) pattern() string {
	return fmt.Sprintf("pad:%d %d 1 ", ft.Mantissa, ft.Exponent)
}

func (ft Format) maxExponent() uint64 {
	return 1<<ft.Exponent - 1
}

// roundShift divides v by 2**shift, rounding half to even.
func roundShift(v uint64, shift int) uint64 {
	switch {
	case shift <= 0:
		return v << -shift
	case shift >= 64:
		return 0
	}

	q := v >> shift
	rem := v & (1<<shift - 1)
	half := uint64(1) << (shift - 1)
	if rem > half || (rem == half && q&1 == 1) {
		q++
	}

	return q
}

// Encode rounds v to the nearest value of the format, ties to even.
// Values too large for the format become infinities.
func (ft Format) Encode(v float64) (*binary.Binary, error) {
	if err := ft.Validate(); err != nil {
		return nil, err
	}

	var raw uint64
	switch {
	case math.IsNaN(v):
		raw = ft.maxExponent()<<ft.Mantissa | 1<<(ft.Mantissa-1)
	case math.IsInf(v, 0):
		raw = ft.maxExponent() << ft.Mantissa
	case v == 0:
	default:
		frac, exp := math.Frexp(math.Abs(v))
		significand := uint64(math.Ldexp(frac, 53))

		biased := exp - 1 + ft.Bias
		if biased >= 1 {
			q := roundShift(significand, 52-ft.Mantissa)
			raw = uint64(biased)<<ft.Mantissa + q - 1<<ft.Mantissa
		} else {
			raw = roundShift(significand, 54-exp-ft.Bias-ft.Mantissa)
		}

		if raw>>ft.Mantissa >= ft.maxExponent() {
			raw = ft.maxExponent() << ft.Mantissa
		}
	}

	if math.Signbit(v) && !math.IsNaN(v) {
		raw |= 1 << (ft.Exponent + ft.Mantissa)
	}

	return binary.FromUint64(raw,
		binary.WithLength(ft.Bits()),
		binary.WithSign(binary.Unsigned),
		binary.WithFormat(ft.pattern()))
}

// Parts are the fields of an encoded float, each as an unsigned value.
type Parts struct {
	Sign     *binary.Binary
	Exponent *binary.Binary
	Mantissa *binary.Binary
}

func (p Parts) String() string {
	return fmt.Sprintf("sign=%v exponent=%v mantissa=%v", p.Sign.RawBits(), p.Exponent.RawBits(), p.Mantissa.RawBits())
}

// Join reassembles the fields into one value.
func (p Parts) Join() (*binary.Binary, error) {
	return binary.Concat(p.Sign, p.Exponent, p.Mantissa)
}

// Split returns the fields of an encoded float.
func (ft Format) Split(b *binary.Binary) (p Parts, err error) {
	if b.Len() != ft.Bits() {
		err = &ErrWidth{Format: ft.String(), Want: ft.Bits(), Got: b.Len()}
		return
	}

	top := ft.Exponent + ft.Mantissa
	p.Mantissa, _ = b.Slice(0, ft.Mantissa)
	p.Exponent, _ = b.Slice(ft.Mantissa, top)
	p.Sign, _ = b.Slice(top, top+1)

	return
}

// Decode returns the float64 value of an encoded float. Every value of a
// valid format is exactly representable.
func (ft Format) Decode(b *binary.Binary) (v float64, err error) {
	if err = ft.Validate(); err != nil {
		return
	}

	p, err := ft.Split(b)
	if err != nil {
		return
	}

	exponent, _ := p.Exponent.Uint64()
	mantissa, _ := p.Mantissa.Uint64()

	switch exponent {
	case ft.maxExponent():
		if mantissa != 0 {
			v = math.NaN()
		} else {
			v = math.Inf(1)
		}
	case 0:
		v = math.Ldexp(float64(mantissa), 1-ft.Bias-ft.Mantissa)
	default:
		v = math.Ldexp(float64(uint64(1)<<ft.Mantissa+mantissa), int(exponent)-ft.Bias-ft.Mantissa)
	}

	if p.Sign.Bool() {
		v = math.Copysign(v, -1)
	}

	return
}

// Max is the largest finite value of the format.
func (ft Format) Max() float64 {
	top := int(ft.maxExponent()) - 1
	return math.Ldexp(float64(uint64(1)<<(ft.Mantissa+1)-1), top-ft.Bias-ft.Mantissa)
}

// SmallestNormal is the smallest positive normal value of the format.
func (ft Format) SmallestNormal() float64 {
	return math.Ldexp(1, 1-ft.Bias)
}

// SmallestSubnormal is the smallest positive value of the format.
func (ft Format) SmallestSubnormal() float64 {
	return math.Ldexp(1, 1-ft.Bias-ft.Mantissa)
}
