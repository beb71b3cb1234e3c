// Package binary provides Binary, a fixed width binary number that behaves
// like a CPU register of any size.
//
// A Binary holds a bit pattern and a sign behavior that says how the
// pattern is read as an integer: unsigned, two's complement signed, or
// sign-magnitude. Arithmetic is bit exact and reports CPU style flags.
// Equality, ordering and hashing use the integer value only, so
// U8(5) equals MustParse("101").
package binary

import (
	"errors"
	"iter"
	"math"
	"math/big"
	"slices"

	"github.com/ezrec/bitvec/alu"
	"github.com/ezrec/bitvec/bitbuf"
	"github.com/ezrec/bitvec/parse"
	"github.com/ezrec/bitvec/sign"
)

// SignBehavior selects how a bit pattern is read as an integer.
type SignBehavior = sign.Behavior

const (
	Unsigned  = sign.Unsigned
	Signed    = sign.Signed
	Magnitude = sign.Magnitude
)

// Flags are the condition codes of an operation.
type Flags = alu.Flags

// Binary is a fixed width binary number.
type Binary struct {
	buf      *bitbuf.Buffer
	behavior SignBehavior
	format   string
}

// Option adjusts how a Binary is constructed.
type Option func(*options)

type options struct {
	length    int
	hasLength bool
	bytes     int
	hasBytes  bool
	behavior  SignBehavior
	hasSign   bool
	format    string
}

// WithLength sets the width in bits.
func WithLength(n int) Option {
	return func(o *options) {
		o.length = n
		o.hasLength = true
	}
}

// WithBytes sets the width in bytes.
func WithBytes(n int) Option {
	return func(o *options) {
		o.bytes = n
		o.hasBytes = true
	}
}

// WithSign sets the sign behavior.
func WithSign(behavior SignBehavior) Option {
	return func(o *options) {
		o.behavior = behavior
		o.hasSign = true
	}
}

// WithFormat sets the default format spec used by String.
func WithFormat(spec string) Option {
	return func(o *options) {
		o.format = spec
	}
}

func collect(opts []Option) (o options, err error) {
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.hasLength && o.length < 0, o.hasBytes && o.bytes < 0:
		err = errors.Join(ErrConstruction, errors.New(f("negative length")))
	case o.hasLength && o.hasBytes && o.length != 8*o.bytes:
		err = errors.Join(ErrConstruction, errors.New(f("bit length %v conflicts with byte length %v", o.length, o.bytes)))
	case o.hasBytes:
		o.length = 8 * o.bytes
		o.hasLength = true
	}

	if o.hasSign && (o.behavior < Unsigned || o.behavior > Magnitude) {
		err = errors.Join(ErrConstruction, sign.ErrBehavior)
	}

	return
}

// width returns the requested length, or the fallback, never below one.
func (o *options) width(fallback int) int {
	n := fallback
	if o.hasLength {
		n = o.length
	}
	return max(n, 1)
}

func (o *options) sign(fallback SignBehavior) SignBehavior {
	if o.hasSign {
		return o.behavior
	}
	return fallback
}

// littleEndian returns the magnitude of v as little-endian bytes.
func littleEndian(v *big.Int) []byte {
	data := v.Bytes()
	slices.Reverse(data)
	return data
}

// encode places v into a buffer of n bits. v must fit.
func encode(v *big.Int, n int, behavior SignBehavior) *bitbuf.Buffer {
	abs := new(big.Int).Abs(v)
	buf := bitbuf.FromBytes(littleEndian(abs), n)
	if v.Sign() < 0 {
		buf = alu.Negate(buf, behavior)
	}
	return buf
}

// fromInt builds the integer v. Without explicit options, negative values
// are Signed and positive values Unsigned, and the width is the bit length
// of |v| plus a sign bit when the behavior has one.
func fromInt(v *big.Int, o options) (b *Binary, err error) {
	fallback := Unsigned
	if v.Sign() < 0 {
		fallback = Signed
	}
	behavior := o.sign(fallback)

	inferred := new(big.Int).Abs(v).BitLen()
	if behavior.Negative() {
		inferred++
	}
	n := o.width(inferred)

	if !behavior.Fits(v, n) {
		err = &ErrRange{Value: v.String(), Length: n, Behavior: behavior}
		return
	}

	b = &Binary{buf: encode(v, n, behavior), behavior: behavior, format: o.format}

	return
}

// FromBig builds a Binary holding v.
func FromBig(v *big.Int, opts ...Option) (*Binary, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	return fromInt(v, o)
}

// FromInt64 builds a Binary holding v.
func FromInt64(v int64, opts ...Option) (*Binary, error) {
	return FromBig(big.NewInt(v), opts...)
}

// FromUint64 builds a Binary holding v.
func FromUint64(v uint64, opts ...Option) (*Binary, error) {
	return FromBig(new(big.Int).SetUint64(v), opts...)
}

// FromFloat builds a Binary holding an integral float.
func FromFloat(v float64, opts ...Option) (b *Binary, err error) {
	if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
		err = errors.Join(ErrConstruction, errors.New(f("%v is not an integer", v)))
		return
	}
	i, _ := big.NewFloat(v).Int(nil)
	return FromBig(i, opts...)
}

// Parse builds a Binary from a literal. Binary and hex digits give a raw
// bit pattern as wide as the digits, read under the requested sign
// behavior, so Parse("1111", WithSign(Signed)) is -1. Integer literals
// such as "-12" follow the FromBig rules. Whitespace is ignored and the
// empty string is a single zero bit.
func Parse(s string, opts ...Option) (b *Binary, err error) {
	o, err := collect(opts)
	if err != nil {
		return
	}

	value, length, kind, err := parse.Literal(s)
	if err != nil {
		err = errors.Join(ErrConstruction, err)
		return
	}

	if !kind.Digits() {
		return fromInt(value, o)
	}

	n := o.width(length)
	if value.BitLen() > n {
		err = &ErrRange{Value: s, Length: n, Behavior: o.sign(Unsigned)}
		return
	}

	b = &Binary{
		buf:      bitbuf.FromBytes(littleEndian(value), n),
		behavior: o.sign(Unsigned),
		format:   o.format,
	}

	return
}

// MustParse is Parse that panics on error.
func MustParse(s string, opts ...Option) *Binary {
	return Must(Parse(s, opts...))
}

// Must panics when err is not nil.
func Must(b *Binary, err error) *Binary {
	if err != nil {
		panic(err)
	}
	return b
}

// FromBytes builds a Binary from little-endian bytes. The width defaults
// to eight bits per byte; an explicit width truncates or zero extends.
func FromBytes(data []byte, opts ...Option) (b *Binary, err error) {
	o, err := collect(opts)
	if err != nil {
		return
	}

	b = &Binary{
		buf:      bitbuf.FromBytes(data, o.width(8*len(data))),
		behavior: o.sign(Unsigned),
		format:   o.format,
	}

	return
}

// FromBits builds a Binary from bits listed most significant first.
func FromBits(bits []bool, opts ...Option) (b *Binary, err error) {
	o, err := collect(opts)
	if err != nil {
		return
	}

	buf := bitbuf.Zero(max(len(bits), 1))
	for i, bit := range bits {
		buf.Set(len(bits)-1-i, bit)
	}

	b = &Binary{
		buf:      buf.Resize(o.width(len(bits))),
		behavior: o.sign(Unsigned),
		format:   o.format,
	}

	return
}

// FromSeq builds a Binary from a sequence of bits, most significant first.
func FromSeq(bits iter.Seq[bool], opts ...Option) (*Binary, error) {
	return FromBits(slices.Collect(bits), opts...)
}

// Copy duplicates b. When the sign behavior changes the value is
// converted, failing with ErrOverflow if it cannot be represented. When
// the width changes the integer value is re-encoded.
func Copy(b *Binary, opts ...Option) (c *Binary, err error) {
	o, err := collect(opts)
	if err != nil {
		return
	}

	if o.format == "" {
		o.format = b.format
	}
	behavior := o.sign(b.behavior)

	if o.width(b.Len()) != b.Len() {
		o.behavior = behavior
		o.hasSign = true
		return fromInt(b.Int(), o)
	}

	buf, err := alu.Convert(b.buf, b.behavior, behavior, alu.Strict)
	if err != nil {
		err = &ErrRange{Value: b.Int().String(), Length: b.Len(), Behavior: behavior}
		return
	}

	c = &Binary{buf: buf, behavior: behavior, format: o.format}

	return
}

// wrap builds a Binary sharing b's sign behavior and format.
func (b *Binary) wrap(buf *bitbuf.Buffer) *Binary {
	return &Binary{buf: buf, behavior: b.behavior, format: b.format}
}

// Zero returns a zero of n bits.
func Zero(n int, behavior SignBehavior) *Binary {
	return &Binary{buf: bitbuf.Zero(max(n, 1)), behavior: behavior}
}

// Len returns the width in bits.
func (b *Binary) Len() int {
	return b.buf.Len()
}

// SignBehavior returns how the bits are read as an integer.
func (b *Binary) SignBehavior() SignBehavior {
	return b.behavior
}

// Bytes returns a copy of the little-endian storage.
func (b *Binary) Bytes() []byte {
	return b.buf.Bytes()
}

// Clone returns an independent copy.
func (b *Binary) Clone() *Binary {
	return b.wrap(b.buf.Clone())
}
