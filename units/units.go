package units

import (
	"math"
	"strings"
)

const (
	UnitPoint      = "pt"
	UnitPica       = "pc"
	UnitCentimetre = "cm"
	UnitMillimetre = "mm"
	UnitInch       = "in"
	UnitPixel      = "px"
)

const (
	DefaultDPI = 96

	metresPerInch = 0.0254
	pointsPerInch = 72
	pointsPerPica = 12
)

// Converter turns physical dimensions into device pixels.
// The base factors are derived once from the device resolution.
type Converter struct {
	dpi            float64
	metresPerPixel float64
	pointsPerPixel float64
	inchesPerPixel float64
}

func NewConverter(dpi float64) *Converter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	return &Converter{
		dpi:            dpi,
		metresPerPixel: metresPerInch / dpi,
		pointsPerPixel: pointsPerInch / dpi,
		inchesPerPixel: 1 / dpi,
	}
}

func (c *Converter) DPI() float64 {
	return c.dpi
}

func (c *Converter) MetresPerPixel() float64 {
	return c.metresPerPixel
}

// Pixels converts a dimension to a whole number of pixels.
// An empty or unrecognised unit is taken as pixels.
func (c *Converter) Pixels(dimension float64, unit string) int32 {
	var pixels float64
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitPoint, "point", "points":
		pixels = dimension / c.pointsPerPixel
	case UnitPica, "pica", "picas":
		pixels = dimension * pointsPerPica / c.pointsPerPixel
	case UnitCentimetre, "centimetre", "centimetres", "centimeter", "centimeters":
		pixels = dimension * 0.01 / c.metresPerPixel
	case UnitMillimetre, "millimetre", "millimetres", "millimeter", "millimeters":
		pixels = dimension * 0.001 / c.metresPerPixel
	case UnitInch, "inch", "inches":
		pixels = dimension / c.inchesPerPixel
	default:
		pixels = dimension
	}

	return toInt32(math.Round(pixels))
}

// toInt32 saturates at the int32 range. NaN is 0.
func toInt32(value float64) int32 {
	switch {
	case math.IsNaN(value):
		return 0
	case value >= math.MaxInt32:
		return math.MaxInt32
	case value <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(value)
	}
}

// Dimension is a value together with the unit it is measured in.
type Dimension struct {
	Value float64 `yaml:"value" json:"value"`
	Unit  string  `yaml:"unit" json:"unit"`
}

func (d Dimension) Pixels(c *Converter) int32 {
	return c.Pixels(d.Value, d.Unit)
}
