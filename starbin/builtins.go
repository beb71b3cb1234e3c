package starbin

import (
	"errors"

	"go.starlark.net/starlark"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/floats"
	"github.com/ezrec/bitvec/sign"
)

// convert builds a number from a Starlark value with the construction
// defaults: strings are literals, ints take their natural width, and a
// list of truth values gives one bit per element, most significant first.
func convert(x starlark.Value, opts ...binary.Option) (*binary.Binary, error) {
	switch x := x.(type) {
	case *Value:
		return binary.Copy(x.b, opts...)
	case starlark.String:
		return binary.Parse(string(x), opts...)
	case starlark.Int:
		return binary.FromBig(x.BigInt(), opts...)
	case starlark.Bool:
		if x {
			return binary.FromInt64(1, opts...)
		}
		return binary.FromInt64(0, opts...)
	case starlark.Float:
		return binary.FromFloat(float64(x), opts...)
	case starlark.Iterable:
		var bits []bool
		iter := x.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for iter.Next(&elem) {
			bits = append(bits, bool(elem.Truth()))
		}
		return binary.FromBits(bits, opts...)
	}

	return nil, ErrOperand(x.Type())
}

// makeBinary is the Binary constructor:
//
//	Binary(value=None, bit_length=None, bytes_length=None, sign_behavior=None, format=None)
func makeBinary(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value, bitLength, bytesLength starlark.Value
	var behavior, format string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"value?", &value,
		"bit_length?", &bitLength,
		"bytes_length?", &bytesLength,
		"sign_behavior?", &behavior,
		"format?", &format,
	)
	if err != nil {
		return nil, err
	}

	var opts []binary.Option
	length := -1
	if bitLength != nil && bitLength != starlark.None {
		if err = starlark.AsInt(bitLength, &length); err != nil {
			return nil, err
		}
	}
	if bytesLength != nil && bytesLength != starlark.None {
		var n int
		if err = starlark.AsInt(bytesLength, &n); err != nil {
			return nil, err
		}
		if length >= 0 && length != 8*n {
			return nil, ErrLength
		}
		length = 8 * n
	}
	if length >= 0 {
		opts = append(opts, binary.WithLength(length))
	}
	if behavior != "" {
		var sb binary.SignBehavior
		sb, err = sign.ParseBehavior(behavior)
		if err != nil {
			return nil, err
		}
		opts = append(opts, binary.WithSign(sb))
	}
	if format != "" {
		opts = append(opts, binary.WithFormat(format))
	}

	if value == nil || value == starlark.None {
		value = starlark.MakeInt(0)
	}

	b, err := convert(value, opts...)
	if err != nil {
		return nil, err
	}

	return New(b), nil
}

// sized returns a constructor for a register sized alias such as u8.
func sized(n int, behavior binary.SignBehavior) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var value starlark.Value = starlark.MakeInt(0)
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0, &value); err != nil {
			return nil, err
		}
		b, err := convert(value, binary.WithLength(n), binary.WithSign(behavior))
		if err != nil {
			return nil, err
		}
		return New(b), nil
	}
}

func parts(args starlark.Tuple) (list []*binary.Binary, err error) {
	for _, arg := range args {
		var b *binary.Binary
		b, err = convert(arg)
		if err != nil {
			return
		}
		list = append(list, b)
	}
	return
}

func concat(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, errors.New(f("%s: unexpected keyword arguments", fn.Name()))
	}
	list, err := parts(args)
	if err != nil {
		return nil, err
	}
	out, err := binary.Concat(list...)
	if err != nil {
		return nil, err
	}
	return New(out), nil
}

func floatFormat(name string) (floats.Format, error) {
	return floats.Lookup(name)
}

// fpEncode is fp_encode(format, x): the bits of x in a named float format.
func fpEncode(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &x); err != nil {
		return nil, err
	}
	ft, err := floatFormat(name)
	if err != nil {
		return nil, err
	}
	v, ok := starlark.AsFloat(x)
	if !ok {
		return nil, ErrOperand(x.Type())
	}
	b, err := ft.Encode(v)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

// fpDecode is fp_decode(format, bits): the float held by bits.
func fpDecode(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 2, &name, &x); err != nil {
		return nil, err
	}
	ft, err := floatFormat(name)
	if err != nil {
		return nil, err
	}
	b, err := convert(x, binary.WithLength(ft.Bits()))
	if err != nil {
		return nil, err
	}
	v, err := ft.Decode(b)
	if err != nil {
		return nil, err
	}
	return starlark.Float(v), nil
}

// Predeclared returns the builtins of the binary module.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"Binary":    starlark.NewBuiltin("Binary", makeBinary),
		"u8":        starlark.NewBuiltin("u8", sized(8, binary.Unsigned)),
		"u16":       starlark.NewBuiltin("u16", sized(16, binary.Unsigned)),
		"u32":       starlark.NewBuiltin("u32", sized(32, binary.Unsigned)),
		"u64":       starlark.NewBuiltin("u64", sized(64, binary.Unsigned)),
		"i8":        starlark.NewBuiltin("i8", sized(8, binary.Signed)),
		"i16":       starlark.NewBuiltin("i16", sized(16, binary.Signed)),
		"i32":       starlark.NewBuiltin("i32", sized(32, binary.Signed)),
		"i64":       starlark.NewBuiltin("i64", sized(64, binary.Signed)),
		"concat":    starlark.NewBuiltin("concat", concat),
		"fp_encode": starlark.NewBuiltin("fp_encode", fpEncode),
		"fp_decode": starlark.NewBuiltin("fp_decode", fpDecode),
	}
}
