package starbin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.starlark.net/starlark"

	"github.com/ezrec/bitvec/binary"
)

// evalText evaluates src, returning strings unquoted.
func evalText(s *Session, src string) (string, error) {
	value, err := s.Eval(src)
	if err != nil {
		return "", err
	}
	if str, ok := value.(starlark.String); ok {
		return string(str), nil
	}
	return value.String(), nil
}

func TestEval(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		src    string
		result string
	}){
		{`Binary("0110")`, `Binary("0110")`},
		{`Binary(4, bit_length=8).bin()`, "00000100"},
		{`Binary(255).bin()`, "11111111"},
		{`Binary([True, 0, 1, 1.0]).bin()`, "1011"},
		{`Binary("0000 0001").bin()`, "00000001"},
		{`Binary("ff Aa C   C").hex()`, "ffaacc"},
		{`Binary(1, bytes_length=2).hex(prefix=True)`, "0x0001"},
		{`Binary(-3).value()`, "-3"},
		{`Binary("1111", sign_behavior="signed").value()`, "-1"},
		{`Binary("0000").maximum_value()`, "15"},
		{`Binary("0000", sign_behavior="signed").minimum_value()`, "-8"},
		{`Binary("0000 1111 1000 1111").low_byte().bin()`, "10001111"},
		{`Binary("0000 1111 1000 1111").high_byte().bin()`, "00001111"},
		{`i8(-1)`, `Binary("11111111", sign_behavior="signed")`},
		{`i8(-1).is_negative()`, "True"},
		{`i8(-1).sign_behavior()`, "signed"},
		{`(u8(250) + 10).value()`, "4"},
		{`(u8(3) - 5).value()`, "254"},
		{`(10 - u8(3)).value()`, "7"},
		{`(u8(12) * 3).value()`, "36"},
		{`(u8(0xf0) & 0x3c).hex()`, "30"},
		{`(u8(0xf0) | 0x0f).hex()`, "ff"},
		{`(u8(0xff) ^ u8(0x0f)).hex()`, "f0"},
		{`(u8(1) << 3).value()`, "8"},
		{`(i8(-8) >> 2).value()`, "-2"},
		{`u8(0x80).shr(7).value()`, "1"},
		{`(~u8(0)).value()`, "255"},
		{`(-i8(5)).value()`, "-5"},
		{`(+u8(5)).value()`, "5"},
		{`u8(5) == i16(5)`, "True"},
		{`u8(3) < u8(4)`, "True"},
		{`u8(3) >= u8(4)`, "False"},
		{`len(u16(0))`, "16"},
		{`Binary("0110")[1]`, "True"},
		{`Binary("0110")[-1]`, "False"},
		{`Binary("11111010")[:3].bin()`, "010"},
		{`Binary("11111010")[2:].bin()`, "111110"},
		{`Binary("11111010")[-6:-2].bin()`, "1110"},
		{`u8(255).add_flags(1)[1].overflow`, "True"},
		{`u8(255).add_flags(1)[1].zero`, "True"},
		{`u8(0x81).flags().parity`, "True"},
		{`u8(200).wide_mul(2)[0].value()`, "1"},
		{`u8(200).wide_mul(2)[1].value()`, "144"},
		{`u8(0x0f).hamming(0xff)`, "4"},
		{`u8(0x0f).count_ones()`, "4"},
		{`Binary("0110110").find("11")`, "1"},
		{`Binary("0110110").find("111")`, "-1"},
		{`i8(-1).cast("unsigned").value()`, "255"},
		{`u8(3).resize(4).bin()`, "0011"},
		{`concat("1", "00").bin()`, "100"},
		{`fp_encode("fp16", 1.0).hex()`, "3c00"},
		{`fp_decode("fp16", "3c00")`, "1.0"},
		{`u8(0x34).format("%x")`, "34"},
	}

	for _, entry := range table {
		s := NewSession("test", nil)
		result, err := evalText(s, entry.src)
		assert.NoError(err, entry.src)
		assert.Equal(entry.result, result, entry.src)
	}
}

func TestEvalErrors(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		`u8(1) + i8(1)`,
		`u8(1) + "a"`,
		`u8(1) << -1`,
		`u8(256)`,
		`Binary(5, bit_length=8, bytes_length=2)`,
		`Binary(1, sign_behavior="sideways")`,
		`Binary("0110")[4]`,
		`fp_encode("fp7", 1.0)`,
		`u8(1).get_byte(3)`,
		`u8(1).nothing()`,
		`1 +`,
	}

	for _, src := range table {
		s := NewSession("test", nil)
		_, err := s.Eval(src)
		assert.Error(err, src)
	}
}

func TestSession(t *testing.T) {
	assert := assert.New(t)

	var printed []string
	s := NewSession("session", func(msg string) {
		printed = append(printed, msg)
	})

	value, err := s.Eval("x = u8(0)\nx[0] = True\nx[7] = 1")
	assert.NoError(err)
	assert.Equal(starlark.None, value)

	text, err := evalText(s, "x.bin()")
	assert.NoError(err)
	assert.Equal("10000001", text)

	_, err = s.Eval(`x.set_slice(1, 4, "101")`)
	assert.NoError(err)

	_, err = s.Eval(`x.set_slice(4, 7, True)`)
	assert.NoError(err)

	_, err = s.Eval("print(x.bin())")
	assert.NoError(err)
	assert.Equal([]string{"11111011"}, printed)

	_, err = s.Eval(`x.set_slice(0, 2, "101")`)
	assert.Error(err)

	_, err = s.Eval("y = x + 1\nz = y.value()")
	assert.NoError(err)
	text, err = evalText(s, "z")
	assert.NoError(err)
	assert.Equal("252", text)
}

func TestValue(t *testing.T) {
	assert := assert.New(t)

	v := New(binary.U8(5))
	assert.Equal("binary", v.Type())
	assert.Equal(starlark.True, v.Truth())
	assert.Equal(starlark.False, New(binary.U8(0)).Truth())
	assert.Equal(8, v.Len())

	h1, err := v.Hash()
	assert.NoError(err)
	h2, err := New(binary.I16(5)).Hash()
	assert.NoError(err)
	assert.Equal(h1, h2)

	assert.NoError(v.SetIndex(1, starlark.True))
	assert.Equal("00000111", v.Number().Bin(false))

	v.Freeze()
	assert.ErrorIs(v.SetIndex(0, starlark.False), ErrFrozen)

	names := v.AttrNames()
	assert.Contains(names, "low_byte")
	assert.True(strings.Compare(names[0], names[len(names)-1]) < 0)

	attr, err := v.Attr("missing")
	assert.NoError(err)
	assert.Nil(attr)
}
