package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestParseFontStyle(t *testing.T) {
	tests := []struct {
		value   string
		want    FontStyle
		wantErr bool
	}{
		{"", FontStyleRegular, false},
		{"Regular", FontStyleRegular, false},
		{"bold", FontStyleBold, false},
		{"italic bold", FontStyleBold | FontStyleItalic, false},
		{"oblique", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseFontStyle(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup(t *testing.T) {
	regular := Lookup("Go", FontStyleRegular)
	require.NotNil(t, regular)
	assert.Equal(t, DefaultFont(), regular)

	bold := Lookup("go", FontStyleBold)
	require.NotNil(t, bold)
	assert.NotEqual(t, regular, bold)

	// unknown families fall back to the default family
	assert.Equal(t, bold, Lookup("Helvetica", FontStyleBold))
	assert.False(t, IsKnownFamily("Helvetica"))
	assert.True(t, IsKnownFamily("go mono"))

	// Go Medium has no bold, so the nearest style is used
	assert.Equal(t, Lookup("Go Medium", FontStyleItalic), Lookup("Go Medium", FontStyleBold|FontStyleItalic))
	assert.Equal(t, Lookup("Go Medium", FontStyleRegular), Lookup("Go Medium", FontStyleBold))
}

func TestFamilies(t *testing.T) {
	assert.Equal(t, []string{"Go", "Go Medium", "Go Mono", "Go Smallcaps"}, Families())
}

func TestFontSpec_Face(t *testing.T) {
	small := FontSpec{Family: "Go", Size: 10}.Face()
	defer small.Close()
	large := FontSpec{Family: "Go", Size: 20}.Face()
	defer large.Close()

	smallWidth := font.MeasureString(small, "Legend")
	largeWidth := font.MeasureString(large, "Legend")
	assert.Greater(t, smallWidth, smallWidth/2)
	assert.Greater(t, largeWidth, smallWidth)
	assert.Greater(t, large.Metrics().Height, small.Metrics().Height)
}
