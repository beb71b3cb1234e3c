package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	prev, err := SetLanguage("en-US")
	assert.NoError(err)
	defer SetLanguage(prev)

	assert.Equal("en-US", Language())
	assert.Equal("bit 3 out of range", From("bit %d out of range", 3))
	assert.Equal("plain", From("plain"))
}

func TestSetLanguageInvalid(t *testing.T) {
	assert := assert.New(t)

	before := Language()
	_, err := SetLanguage("not a language tag!")
	assert.Error(err)
	assert.Equal(before, Language())
}
