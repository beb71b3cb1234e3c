package sign

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanges(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		behavior Behavior
		n        int
		min, max int64
	}{
		{Unsigned, 1, 0, 1},
		{Unsigned, 8, 0, 255},
		{Signed, 1, -1, 0},
		{Signed, 4, -8, 7},
		{Signed, 8, -128, 127},
		{Magnitude, 4, -7, 7},
		{Magnitude, 9, -255, 255},
	}

	for _, entry := range table {
		assert.Equal(entry.min, entry.behavior.Min(entry.n).Int64(), "%v %d", entry.behavior, entry.n)
		assert.Equal(entry.max, entry.behavior.Max(entry.n).Int64(), "%v %d", entry.behavior, entry.n)
	}

	assert.True(Signed.Fits(big.NewInt(-8), 4))
	assert.False(Signed.Fits(big.NewInt(8), 4))
	assert.False(Magnitude.Fits(big.NewInt(-8), 4))
	assert.False(Unsigned.Fits(big.NewInt(-1), 4))
}

func TestParseBehavior(t *testing.T) {
	assert := assert.New(t)

	for _, b := range []Behavior{Unsigned, Signed, Magnitude} {
		parsed, err := ParseBehavior(b.String())
		assert.NoError(err)
		assert.Equal(b, parsed)
	}

	b, err := ParseBehavior(" Signed ")
	assert.NoError(err)
	assert.Equal(Signed, b)

	_, err = ParseBehavior("ones-complement")
	assert.ErrorIs(err, ErrBehavior)

	assert.Equal("Behavior(7)", Behavior(7).String())
	assert.True(Magnitude.Negative())
	assert.False(Unsigned.Negative())
}
