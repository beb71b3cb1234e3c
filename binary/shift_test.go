package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftLogical(t *testing.T) {
	assert := assert.New(t)

	out, flags := U8(0x81).FlaggedShl(1)
	assert.Equal("00000010", out.RawBits())
	assert.True(flags.Overflow)

	assert.Equal("00001000", U8(1).Shl(3).RawBits())
	assert.True(U8(1).Shl(100).Equal(U8(0)))

	out, flags = U8(0x81).FlaggedShr(1)
	assert.Equal("01000000", out.RawBits())
	assert.True(flags.Overflow)

	out, flags = U8(0x80).FlaggedShr(7)
	assert.Equal("00000001", out.RawBits())
	assert.False(flags.Overflow)
	assert.True(flags.Parity)

	assert.True(U8(0xff).Shr(9).Equal(U8(0)))
}

func TestShiftArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name     string
		in       *Binary
		shift    func(b *Binary, n uint) (*Binary, Flags)
		n        uint
		value    int64
		overflow bool
	}{
		{"sar -4", I8(-4), (*Binary).FlaggedSar, 1, -2, false},
		{"sar -3", I8(-3), (*Binary).FlaggedSar, 1, -2, true},
		{"sar -1", I8(-1), (*Binary).FlaggedSar, 10, -1, true},
		{"sar unsigned", U8(0x80), (*Binary).FlaggedSar, 1, 0x40, false},
		{"sal 64", I8(64), (*Binary).FlaggedSal, 1, -128, true},
		{"sal -64", I8(-64), (*Binary).FlaggedSal, 1, -128, false},
		{"sal -65", I8(-65), (*Binary).FlaggedSal, 1, 126, true},
		{"sal unsigned", U8(0x40), (*Binary).FlaggedSal, 1, 0x80, false},
		{"sar magnitude", Must(Mag(8, -3)), (*Binary).FlaggedSar, 1, -1, true},
		{"sal magnitude", Must(Mag(8, -3)), (*Binary).FlaggedSal, 1, -6, false},
		{"sal magnitude overflow", Must(Mag(8, 127)), (*Binary).FlaggedSal, 1, 126, true},
	}

	for _, entry := range table {
		out, flags := entry.shift(entry.in, entry.n)
		assert.Equal(entry.in.Len(), out.Len(), entry.name)
		assert.Equal(entry.in.SignBehavior(), out.SignBehavior(), entry.name)
		assert.Equal(entry.value, out.Int().Int64(), entry.name)
		assert.Equal(entry.overflow, flags.Overflow, entry.name)
	}

	assert.Equal(int64(-2), I8(-4).Sar(1).Int().Int64())
	assert.Equal(int64(-8), I8(-4).Sal(1).Int().Int64())
}

func TestShld(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("00000001", U8(0x81).Shld(1).RawBits())
	assert.Equal("00001111", U8(0xff).Shld(4).RawBits())
	assert.Equal("11111111", U8(0xff).Shld(8).RawBits())

	out, flags := U8(0x01).FlaggedShld(1)
	assert.True(out.Equal(U8(0)))
	assert.False(flags.Overflow)
	assert.True(flags.Zero)
}
