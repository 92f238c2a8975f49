package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleFlags_Bits(t *testing.T) {
	for _, flags := range []StyleFlags{StandardStyle, TurnStyle, ScaleStyle, EmptyStyle, {Title: true, ScaleStyle: true}} {
		assert.Equal(t, flags, StyleFlagsFromBits(flags.Bits()))
	}

	assert.Equal(t, uint32(0), EmptyStyle.Bits())
	assert.Equal(t, uint32(0xf), StandardStyle.Bits())
	assert.Equal(t, TurnStyle, StyleFlagsFromBits(0x10))
}

func TestParseStyleFlags(t *testing.T) {
	for name, want := range map[string]StyleFlags{
		"":         StandardStyle,
		"standard": StandardStyle,
		" Turn ":   TurnStyle,
		"scale":    ScaleStyle,
		"empty":    EmptyStyle,
	} {
		got, err := ParseStyleFlags(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseStyleFlags("fancy")
	require.Error(t, err)
}
