package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	assert := assert.New(t)

	b := U8(0x81)

	bit, err := b.Bit(0)
	assert.NoError(err)
	assert.True(bit)

	bit, err = b.Bit(1)
	assert.NoError(err)
	assert.False(bit)

	bit, err = b.Bit(-1)
	assert.NoError(err)
	assert.True(bit)

	_, err = b.Bit(8)
	assert.ErrorIs(err, ErrIndex)

	_, err = b.Bit(-9)
	assert.ErrorIs(err, ErrIndex)

	assert.NoError(b.SetBit(1, true))
	assert.Equal("10000011", b.RawBits())
	assert.ErrorIs(b.SetBit(8, true), ErrIndex)
}

func TestSetBits(t *testing.T) {
	assert := assert.New(t)

	b := U8(0)
	assert.NoError(b.SetBits([]int{0, -1}, true))
	assert.Equal("10000001", b.RawBits())

	assert.ErrorIs(b.SetBits([]int{1, 8}, true), ErrIndex)
	assert.Equal("10000001", b.RawBits())
}

func TestSlice(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		bits        string
		start, stop int
		want        string
	}{
		{"10000010", 0, 3, "010"},
		{"10000010", 5, 8, "100"},
		{"10000010", -2, 8, "10"},
		{"11", 1, 4, "001"},
		{"1010", 0, 4, "1010"},
	}

	for _, entry := range table {
		out, err := MustParse(entry.bits).Slice(entry.start, entry.stop)
		if !assert.NoError(err, "%v[%v:%v]", entry.bits, entry.start, entry.stop) {
			continue
		}
		assert.Equal(entry.want, out.RawBits(), "%v[%v:%v]", entry.bits, entry.start, entry.stop)
		assert.Equal(Unsigned, out.SignBehavior())
	}

	_, err := MustParse("1010").Slice(3, 1)
	assert.ErrorIs(err, ErrIndex)

	out, err := MustParse("1010", WithSign(Signed)).SliceFrom(2)
	assert.NoError(err)
	assert.Equal("10", out.RawBits())
}

func TestSetSlice(t *testing.T) {
	assert := assert.New(t)

	b := Zero(8, Unsigned)
	assert.NoError(b.SetSlice(0, 3, MustParse("101")))
	assert.Equal("00000101", b.RawBits())

	err := b.SetSlice(0, 3, MustParse("1"))
	assert.ErrorIs(err, ErrValue)
	var widthErr *ErrWidth
	assert.ErrorAs(err, &widthErr)
	assert.Equal(3, widthErr.Want)

	assert.ErrorIs(b.SetSlice(4, 9, MustParse("11111")), ErrIndex)
	assert.ErrorIs(b.SetSliceStep(0, 4, 2, MustParse("11")), ErrNotSupported)
	assert.NoError(b.SetSliceStep(4, 6, 1, MustParse("11")))
	assert.Equal("00110101", b.RawBits())

	c := U8(0)
	assert.NoError(c.FillSlice(2, 5, true))
	assert.Equal("00011100", c.RawBits())
}

func TestSliceSymmetry(t *testing.T) {
	assert := assert.New(t)

	x := U16(0xbeef)
	for start := 0; start < x.Len(); start++ {
		for stop := start + 1; stop <= x.Len(); stop++ {
			y := x.Clone()
			s, err := x.Slice(start, stop)
			assert.NoError(err)
			assert.NoError(y.SetSlice(start, stop, s))
			assert.True(y.Equal(x), "[%v:%v]", start, stop)
		}
	}
}

func TestBytes(t *testing.T) {
	assert := assert.New(t)

	b := U16(0xa5f0)
	assert.Equal("11110000", b.LowByte().RawBits())
	assert.Equal("10100101", b.HighByte().RawBits())
	assert.Equal("1010010111110000", b.ExtendedLow().RawBits())
	assert.Equal("0000000000000000", b.ExtendedHigh().RawBits())

	hi, err := b.Byte(-1)
	assert.NoError(err)
	assert.Equal("10100101", hi.RawBits())

	_, err = b.Byte(2)
	assert.ErrorIs(err, ErrIndex)

	assert.Equal([]byte{0xf0, 0xa5}, b.Bytes())
}

func TestInfo(t *testing.T) {
	assert := assert.New(t)

	b := MustParse("0001000")
	assert.Equal(3, b.TrailingZeros())
	assert.Equal(3, b.LeadingZeros())
	assert.Equal(0, b.TrailingOnes())
	assert.Equal(0, b.LeadingOnes())

	b = MustParse("1110111")
	assert.Equal(3, b.TrailingOnes())
	assert.Equal(3, b.LeadingOnes())
	assert.Equal(6, b.CountOnes())
	assert.Equal(1, b.CountZeros())

	assert.Equal(4, MustParse("0000").TrailingZeros())

	b = MustParse("0110110")
	at, ok := b.Find(MustParse("11"))
	assert.True(ok)
	assert.Equal(1, at)
	assert.Equal([]int{1, 4}, b.FindAll(MustParse("11")))
	assert.Equal([]int{1, 2, 4, 5}, b.FindOnes())
	assert.Equal([]int{0, 3, 6}, b.FindZeros())

	assert.Equal([]int{0, 1}, MustParse("111").FindAll(MustParse("11")))

	_, ok = U8(0).Find(MustParse("1"))
	assert.False(ok)
}

func TestInfoFlags(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Flags{Zero: true}, U8(0).Flags())
	assert.Equal(Flags{Sign: true}, U8(0x80).Flags())
	assert.Equal(Flags{Parity: true}, U8(0x01).Flags())
	assert.Equal(Flags{Sign: true, Parity: true}, I16(-1).Flags())
}
