package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	s := String(32, CharsetHex)
	assert.Len(t, s, 32)
	for _, c := range s {
		assert.True(t, strings.ContainsRune(string(CharsetHex), c))
	}
	assert.Empty(t, String(0, CharsetAlphanumeric))
}

func TestStrings(t *testing.T) {
	out := Strings(16, 1, CharsetHex)
	assert.Len(t, out, 16)
	assert.ElementsMatch(t, strings.Split(string(CharsetHex), ""), out)
}
