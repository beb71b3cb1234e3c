package binary

import (
	"math/big"
)

// Register sized constructors. The Go type already bounds the value, so
// these cannot fail.

func exact(v *big.Int, n int, behavior SignBehavior) *Binary {
	return &Binary{buf: encode(v, n, behavior), behavior: behavior}
}

func U8(v uint8) *Binary   { return exact(new(big.Int).SetUint64(uint64(v)), 8, Unsigned) }
func U16(v uint16) *Binary { return exact(new(big.Int).SetUint64(uint64(v)), 16, Unsigned) }
func U32(v uint32) *Binary { return exact(new(big.Int).SetUint64(uint64(v)), 32, Unsigned) }
func U64(v uint64) *Binary { return exact(new(big.Int).SetUint64(v), 64, Unsigned) }

func I8(v int8) *Binary   { return exact(big.NewInt(int64(v)), 8, Signed) }
func I16(v int16) *Binary { return exact(big.NewInt(int64(v)), 16, Signed) }
func I32(v int32) *Binary { return exact(big.NewInt(int64(v)), 32, Signed) }
func I64(v int64) *Binary { return exact(big.NewInt(v), 64, Signed) }

// Uint builds an n bit unsigned value.
func Uint(n int, v uint64) (*Binary, error) {
	return FromUint64(v, WithLength(n), WithSign(Unsigned))
}

// Int builds an n bit two's complement value.
func Int(n int, v int64) (*Binary, error) {
	return FromInt64(v, WithLength(n), WithSign(Signed))
}

// Mag builds an n bit sign-magnitude value.
func Mag(n int, v int64) (*Binary, error) {
	return FromInt64(v, WithLength(n), WithSign(Magnitude))
}
