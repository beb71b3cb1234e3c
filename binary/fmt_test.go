package binary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("10100101 11110000", U16(0xa5f0).String())
	assert.Equal("101", MustParse("101").String())
	assert.Equal("a5 f0", MustParse("a5f0", WithFormat("%x")).String())
	assert.Equal("a5 f0", MustParse("a5f0", WithFormat("%x")).Cast(Signed).String())

	text, err := U16(0xa5f0).FormatWith("pad:n_")
	assert.NoError(err)
	assert.Equal("1010_0101_1111_0000", text)

	text, err = U16(0xa5f0).FormatWith("%x:pad:s")
	assert.NoError(err)
	assert.Equal("a5f0", text)

	_, err = U16(0).FormatWith("bogus")
	assert.Error(err)

	assert.Equal("0b101", MustParse("101").Bin(true))
	assert.Equal("0xa5f0", U16(0xa5f0).Hex(true))
	assert.Equal("1e", U8(0x1e).Hex(false))
}

func TestFormatter(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		format string
		value  *Binary
		want   string
	}{
		{"%d", I8(-2), "-2"},
		{"%v", U8(1), "00000001"},
		{"%s", MustParse("101"), "101"},
		{"%b", U8(0x1e), "00011110"},
		{"%#b", MustParse("101"), "0b101"},
		{"%x", U8(0x1e), "1e"},
		{"%#x", U8(0x1e), "0x1e"},
		{"%5d", U8(3), "    3"},
		{"%-4d|", U8(3), "3   |"},
	}

	for _, entry := range table {
		assert.Equal(entry.want, fmt.Sprintf(entry.format, entry.value), entry.format)
	}

	assert.Equal("00000001", fmt.Sprint(U8(1)))
}
