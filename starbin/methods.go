package starbin

import (
	"maps"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/bitvec/binary"
	"github.com/ezrec/bitvec/sign"
)

type method func(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

var methods = map[string]method{
	"low_byte":      unaryMethod((*binary.Binary).LowByte),
	"high_byte":     unaryMethod((*binary.Binary).HighByte),
	"extended_low":  unaryMethod((*binary.Binary).ExtendedLow),
	"extended_high": unaryMethod((*binary.Binary).ExtendedHigh),
	"abs":           unaryMethod((*binary.Binary).Abs),
	"strip":         unaryMethod((*binary.Binary).Strip),
	"get_byte":      methodGetByte,
	"sign_behavior": methodSignBehavior,
	"maximum_value": methodMaximum,
	"minimum_value": methodMinimum,
	"is_negative":   methodIsNegative,
	"value":         methodValue,
	"float":         methodFloat,
	"hex":           methodHex,
	"bin":           methodBin,
	"format":        methodFormat,
	"flags":         methodFlags,
	"add_flags":     flaggedMethod((*binary.Binary).FlaggedAdd),
	"sub_flags":     flaggedMethod((*binary.Binary).FlaggedSub),
	"mul_flags":     flaggedMethod((*binary.Binary).FlaggedMul),
	"wide_mul":      methodWideMul,
	"shr":           shiftMethod((*binary.Binary).Shr),
	"sal":           shiftMethod((*binary.Binary).Sal),
	"shld":          shiftMethod((*binary.Binary).Shld),
	"cast":          methodCast,
	"convert":       methodConvert,
	"resize":        widthMethod((*binary.Binary).Resize),
	"sign_extend":   widthMethod((*binary.Binary).SignExtend),
	"count_ones":    methodCountOnes,
	"hamming":       methodHamming,
	"find":          methodFind,
	"set_slice":     methodSetSlice,
}

func (v *Value) Attr(name string) (starlark.Value, error) {
	m, ok := methods[name]
	if !ok {
		return nil, nil
	}

	impl := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return m(v, fn, args, kwargs)
	}

	return starlark.NewBuiltin(name, impl).BindReceiver(v), nil
}

func (v *Value) AttrNames() []string {
	return slices.Sorted(maps.Keys(methods))
}

func noArgs(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) error {
	return starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 0)
}

func unaryMethod(op func(*binary.Binary) *binary.Binary) method {
	return func(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return New(op(v.b)), nil
	}
}

func shiftMethod(op func(*binary.Binary, uint) *binary.Binary) method {
	return func(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var count starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &count); err != nil {
			return nil, err
		}
		n, err := shiftCount(count)
		if err != nil {
			return nil, err
		}
		return New(op(v.b, n)), nil
	}
}

func widthMethod(op func(*binary.Binary, int) *binary.Binary) method {
	return func(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return New(op(v.b, n)), nil
	}
}

// flagsValue renders flags as a struct with one boolean field per flag.
func flagsValue(flags binary.Flags) starlark.Value {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"overflow": starlark.Bool(flags.Overflow),
		"zero":     starlark.Bool(flags.Zero),
		"sign":     starlark.Bool(flags.Sign),
		"parity":   starlark.Bool(flags.Parity),
	})
}

func flaggedMethod(op func(*binary.Binary, *binary.Binary) (*binary.Binary, binary.Flags, error)) method {
	return func(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var y starlark.Value
		if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &y); err != nil {
			return nil, err
		}
		o, err := v.operand(y)
		if err != nil {
			return nil, err
		}
		out, flags, err := op(v.b, o)
		if err != nil {
			return nil, err
		}
		return starlark.Tuple{New(out), flagsValue(flags)}, nil
	}
}

func methodGetByte(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var i int
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &i); err != nil {
		return nil, err
	}
	out, err := v.b.Byte(i)
	if err != nil {
		return nil, err
	}
	return New(out), nil
}

func methodSignBehavior(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.String(v.b.SignBehavior().String()), nil
}

func methodMaximum(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeBigInt(v.b.Max()), nil
}

func methodMinimum(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeBigInt(v.b.Min()), nil
}

func methodIsNegative(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.Bool(v.b.IsNegative()), nil
}

func methodValue(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeBigInt(v.b.Int()), nil
}

func methodFloat(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.Float(v.b.Float64()), nil
}

func methodHex(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var prefix bool
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "prefix?", &prefix); err != nil {
		return nil, err
	}
	return starlark.String(v.b.Hex(prefix)), nil
}

func methodBin(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var prefix bool
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "prefix?", &prefix); err != nil {
		return nil, err
	}
	return starlark.String(v.b.Bin(prefix)), nil
}

func methodFormat(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var spec string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "spec?", &spec); err != nil {
		return nil, err
	}
	if spec == "" {
		return starlark.String(v.b.String()), nil
	}
	text, err := v.b.FormatWith(spec)
	if err != nil {
		return nil, err
	}
	return starlark.String(text), nil
}

func methodFlags(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return flagsValue(v.b.Flags()), nil
}

func methodWideMul(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	o, err := v.operand(y)
	if err != nil {
		return nil, err
	}
	hi, lo, err := v.b.WideMul(o)
	if err != nil {
		return nil, err
	}
	return starlark.Tuple{New(hi), New(lo)}, nil
}

func behaviorArg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (behavior binary.SignBehavior, err error) {
	var name string
	if err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return
	}
	return sign.ParseBehavior(name)
}

func methodCast(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	behavior, err := behaviorArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	return New(v.b.Cast(behavior)), nil
}

func methodConvert(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	behavior, err := behaviorArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	out, err := v.b.Convert(behavior)
	if err != nil {
		return nil, err
	}
	return New(out), nil
}

func methodCountOnes(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(fn, args, kwargs); err != nil {
		return nil, err
	}
	return starlark.MakeInt(v.b.CountOnes()), nil
}

func methodHamming(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var y starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &y); err != nil {
		return nil, err
	}
	o, err := v.operand(y)
	if err != nil {
		return nil, err
	}
	n, err := v.b.HammingDistance(o)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(n), nil
}

func methodFind(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &pattern); err != nil {
		return nil, err
	}
	p, err := convert(pattern)
	if err != nil {
		return nil, err
	}
	at, ok := v.b.Find(p)
	if !ok {
		at = -1
	}
	return starlark.MakeInt(at), nil
}

// methodSetSlice overwrites bits [start, stop). A bool fills the range;
// anything else must convert to a number exactly as wide as the range.
func methodSetSlice(v *Value, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var start, stop int
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 3, &start, &stop, &x); err != nil {
		return nil, err
	}
	if v.frozen {
		return nil, ErrFrozen
	}

	if bit, ok := x.(starlark.Bool); ok {
		return starlark.None, v.b.FillSlice(start, stop, bool(bit))
	}

	value, err := convert(x)
	if err != nil {
		return nil, err
	}

	return starlark.None, v.b.SetSlice(start, stop, value)
}
