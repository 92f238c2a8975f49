package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Pixels(t *testing.T) {
	c := NewConverter(96)

	tests := []struct {
		name      string
		dimension float64
		unit      string
		want      int32
	}{
		{"one inch", 1, "in", 96},
		{"72 points", 72, "pt", 96},
		{"6 picas", 6, "pc", 96},
		{"2.54 cm", 2.54, "cm", 96},
		{"25.4 mm", 25.4, "mm", 96},
		{"pixels", 17, "px", 17},
		{"long form", 1, "inch", 96},
		{"upper case", 1, "IN", 96},
		{"rounded", 10, "pt", 13},
		{"negative", -1, "in", -96},
		{"zero", 0, "cm", 0},
		{"too many inches", 3e7, "in", math.MaxInt32},
		{"too many pixels", 1e12, "px", math.MaxInt32},
		{"too many negative pixels", -1e12, "px", math.MinInt32},
		{"infinite", math.Inf(1), "cm", math.MaxInt32},
		{"not a number", math.NaN(), "in", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Pixels(tt.dimension, tt.unit))
		})
	}
}

func TestConverter_UnrecognisedUnitIsPixels(t *testing.T) {
	c := NewConverter(300)

	for _, x := range []float64{0, 1, 12.4, 12.6, -3, 1000} {
		px := c.Pixels(x, "px")
		assert.Equal(t, px, c.Pixels(x, ""))
		assert.Equal(t, px, c.Pixels(x, "bogus"))
	}
}

func TestConverter_RealWorldRatios(t *testing.T) {
	for _, dpi := range []float64{72, 96, 160, 300, 441} {
		c := NewConverter(dpi)
		for _, x := range []float64{0.5, 1, 2, 7.3} {
			inch := c.Pixels(x, "in")
			assert.InDelta(t, inch, c.Pixels(x*72, "pt"), 1)
			assert.InDelta(t, inch, c.Pixels(x*6, "pc"), 1)
			assert.InDelta(t, inch, c.Pixels(x*2.54, "cm"), 1)
			assert.InDelta(t, inch, c.Pixels(x*25.4, "mm"), 1)
		}
	}
}

func TestConverter_Linear(t *testing.T) {
	c := NewConverter(96)

	for _, unit := range []string{"pt", "pc", "cm", "mm", "in", "px"} {
		one := float64(c.Pixels(10, unit))
		assert.InDelta(t, one*3, float64(c.Pixels(30, unit)), 2, unit)
		assert.Equal(t, -c.Pixels(10, unit), c.Pixels(-10, unit), unit)
	}
}

func TestNewConverter_InvalidDPI(t *testing.T) {
	c := NewConverter(0)
	assert.Equal(t, float64(DefaultDPI), c.DPI())
	assert.Equal(t, int32(DefaultDPI), c.Pixels(1, UnitInch))
}

func TestDimension_Pixels(t *testing.T) {
	c := NewConverter(72)
	assert.Equal(t, int32(36), Dimension{Value: 0.5, Unit: UnitInch}.Pixels(c))
}
