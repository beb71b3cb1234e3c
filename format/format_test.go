package format

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

type pattern struct {
	data   []byte
	length int
}

func (p pattern) Bytes() []byte { return p.data }
func (p pattern) Len() int      { return p.length }

func TestFormatGolden(t *testing.T) {
	table := []struct {
		name string
		spec string
		src  pattern
	}{
		{"byte", "", pattern{[]byte{0x01}, 8}},
		{"nine", "", pattern{[]byte{0x00, 0x00}, 9}},
		{"word", "", pattern{[]byte{0xf0, 0xa5}, 16}},
		{"twelve", "", pattern{[]byte{0xbc, 0x0a}, 12}},
		{"twenty", "", pattern{[]byte{0xff, 0xff, 0x0f}, 20}},
		{"hex", "%x", pattern{[]byte{0xf0, 0xa5}, 16}},
		{"hex-flat", "%x:pad:s", pattern{[]byte{0xf0, 0xa5}, 16}},
		{"nibbles", "pad:n", pattern{[]byte{0xf0, 0xa5}, 16}},
		{"underscore", "pad:n_", pattern{[]byte{0xbc, 0x0a}, 12}},
		{"pattern", "pad:4'4 ", pattern{[]byte{0xf0, 0xa5}, 16}},
		{"reversed", "r.:pad:s", pattern{[]byte{0x03}, 4}},
		{"hex-nine", "%x", pattern{[]byte{0xff, 0x01}, 9}},
		{"fp16", "pad:10 5 1 ", pattern{[]byte{0x00, 0x3c}, 16}},
	}

	var out bytes.Buffer
	for _, entry := range table {
		spec, err := Parse(entry.spec)
		if err != nil {
			t.Fatalf("%v: %v", entry.name, err)
		}
		fmt.Fprintf(&out, "%s: %s\n", entry.name, spec.Format(entry.src))
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "formats", out.Bytes())
}

func TestBinHex(t *testing.T) {
	assert := assert.New(t)

	src := pattern{[]byte{0x1e}, 5}
	assert.Equal("11110", Bin(src, false))
	assert.Equal("0b11110", Bin(src, true))
	assert.Equal("1e", Hex(src, false))
	assert.Equal("0x1e", Hex(src, true))

	one := pattern{[]byte{0x01}, 1}
	assert.Equal("0b1", Bin(one, true))
	assert.Equal("0x1", Hex(one, true))
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	var specErr ErrSpec
	_, err := Parse("pad")
	assert.ErrorAs(err, &specErr)

	_, err = Parse("%o")
	assert.ErrorAs(err, &specErr)

	var patternErr ErrPattern
	_, err = Parse("pad:abc")
	assert.ErrorAs(err, &patternErr)

	_, err = Parse("pad:0 ")
	assert.ErrorAs(err, &patternErr)

	assert.Panics(func() { MustParse("nope") })
}

func TestParsePattern(t *testing.T) {
	assert := assert.New(t)

	groups, err := ParsePattern("4'4 ")
	assert.NoError(err)
	assert.Equal([]Group{{4, "'"}, {4, " "}}, groups)

	assert.Equal([]Group{{8, " "}}, Default(8))
	assert.Equal([]Group{{8, " "}}, Default(17))
	assert.Nil(Default(12))
}
