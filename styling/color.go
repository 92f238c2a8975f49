package styling

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/image/colornames"
)

// ParseColor reads a colour as written in a style sheet.
// Supported forms: "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)", "rgba(r, g, b, a)",
// "hsl(h, s%, l%)", "hsla(h, s%, l%, a)", "transparent" and the SVG 1.1 colour names.
func ParseColor(value string) (color.Color, errorsx.Error) {
	value = strings.ToLower(strings.TrimSpace(value))

	switch {
	case value == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(value, "#"):
		return parseHexColor(value[1:])
	case strings.HasPrefix(value, "rgba(") && strings.HasSuffix(value, ")"):
		return parseRGBFunc(value[len("rgba("):len(value)-1], true)
	case strings.HasPrefix(value, "rgb(") && strings.HasSuffix(value, ")"):
		return parseRGBFunc(value[len("rgb("):len(value)-1], false)
	case strings.HasPrefix(value, "hsla(") && strings.HasSuffix(value, ")"):
		return parseHSLFunc(value[len("hsla("):len(value)-1], true)
	case strings.HasPrefix(value, "hsl(") && strings.HasSuffix(value, ")"):
		return parseHSLFunc(value[len("hsl("):len(value)-1], false)
	}

	c, ok := colornames.Map[value]
	if !ok {
		return nil, errorsx.Errorf("unknown colour: %q", value)
	}

	return c, nil
}

func parseHexColor(hex string) (color.Color, errorsx.Error) {
	switch len(hex) {
	case 3:
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return nil, errorsx.Errorf("bad hex colour length: %q", hex)
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, errorsx.Wrap(err, "hex", hex)
	}

	return color.NRGBA{
		R: uint8(val >> 24),
		G: uint8(val >> 16),
		B: uint8(val >> 8),
		A: uint8(val),
	}, nil
}

func parseRGBFunc(args string, hasAlpha bool) (color.Color, errorsx.Error) {
	parts := strings.Split(args, ",")
	expectedParts := 3
	if hasAlpha {
		expectedParts = 4
	}

	if len(parts) != expectedParts {
		return nil, errorsx.Errorf("expected %d colour components but found %d in %q", expectedParts, len(parts), args)
	}

	var components [3]uint8
	for i := 0; i < 3; i++ {
		component, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return nil, errorsx.Wrap(err, "component", parts[i])
		}
		if component < 0 || component > 255 {
			return nil, errorsx.Errorf("colour component out of range: %d", component)
		}
		components[i] = uint8(component)
	}

	alpha := uint8(0xff)
	if hasAlpha {
		var err errorsx.Error
		alpha, err = parseAlpha(parts[3])
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: components[0], G: components[1], B: components[2], A: alpha}, nil
}

func parseAlpha(value string) (uint8, errorsx.Error) {
	a, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errorsx.Wrap(err, "alpha", value)
	}
	if a < 0 || a > 1 {
		return 0, errorsx.Errorf("alpha out of range: %f", a)
	}
	return uint8(math.Round(a * 0xff)), nil
}

func parsePercentage(value string) (float64, errorsx.Error) {
	value = strings.TrimSpace(value)
	if !strings.HasSuffix(value, "%") {
		return 0, errorsx.Errorf("expected a percentage but found %q", value)
	}
	p, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil {
		return 0, errorsx.Wrap(err, "percentage", value)
	}
	if p < 0 || p > 100 {
		return 0, errorsx.Errorf("percentage out of range: %q", value)
	}
	return p / 100, nil
}

func parseHSLFunc(args string, hasAlpha bool) (color.Color, errorsx.Error) {
	parts := strings.Split(args, ",")
	expectedParts := 3
	if hasAlpha {
		expectedParts = 4
	}

	if len(parts) != expectedParts {
		return nil, errorsx.Errorf("expected %d colour components but found %d in %q", expectedParts, len(parts), args)
	}

	hue, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errorsx.Wrap(err, "hue", parts[0])
	}
	saturation, errx := parsePercentage(parts[1])
	if errx != nil {
		return nil, errx
	}
	lightness, errx := parsePercentage(parts[2])
	if errx != nil {
		return nil, errx
	}

	alpha := uint8(0xff)
	if hasAlpha {
		alpha, errx = parseAlpha(parts[3])
		if errx != nil {
			return nil, errx
		}
	}

	hue = math.Mod(math.Mod(hue, 360)+360, 360) / 360
	var m2 float64
	if lightness <= 0.5 {
		m2 = lightness * (saturation + 1)
	} else {
		m2 = lightness + saturation - lightness*saturation
	}
	m1 := lightness*2 - m2

	toByte := func(v float64) uint8 {
		return uint8(math.Round(v * 0xff))
	}

	return color.NRGBA{
		R: toByte(hueToRGB(m1, m2, hue+1.0/3)),
		G: toByte(hueToRGB(m1, m2, hue)),
		B: toByte(hueToRGB(m1, m2, hue-1.0/3)),
		A: alpha,
	}, nil
}

func hueToRGB(m1, m2, h float64) float64 {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	switch {
	case h*6 < 1:
		return m1 + (m2-m1)*h*6
	case h*2 < 1:
		return m2
	case h*3 < 2:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

// BlendColors mixes two colours. amount 0 gives a, 1 gives b.
func BlendColors(a, b color.Color, amount float64) color.Color {
	if amount <= 0 {
		return a
	}
	if amount >= 1 {
		return b
	}

	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint16 {
		return uint16(math.Round(float64(x)*(1-amount) + float64(y)*amount))
	}

	return color.RGBA64{
		R: mix(ar, br),
		G: mix(ag, bg),
		B: mix(ab, bb),
		A: mix(aa, ba),
	}
}
