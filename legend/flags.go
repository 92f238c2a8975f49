package legend

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// StyleFlags choose the lines a new legend starts with, and how it looks.
type StyleFlags struct {
	// Title adds the data set name as the first line
	Title bool
	// ScaleInTitle adds the map scale to the title, e.g. "1:50,000"
	ScaleInTitle bool
	// MapObjects adds samples of common map objects
	MapObjects bool
	// ScaleBar adds a scale bar line
	ScaleBar bool
	// TurnStyle styles the legend for turn instructions
	TurnStyle bool
	// ScaleStyle styles the legend for a scale bar drawn on its own
	ScaleStyle bool
}

var (
	StandardStyle = StyleFlags{Title: true, ScaleInTitle: true, MapObjects: true, ScaleBar: true}
	TurnStyle     = StyleFlags{TurnStyle: true}
	ScaleStyle    = StyleFlags{ScaleStyle: true}
	EmptyStyle    = StyleFlags{}
)

const (
	flagBitTitle uint32 = 1 << iota
	flagBitScaleInTitle
	flagBitMapObjects
	flagBitScaleBar
	flagBitTurnStyle
	flagBitScaleStyle
)

// StyleFlagsFromBits reads flags from the bit mask used by other legend implementations.
func StyleFlagsFromBits(bits uint32) StyleFlags {
	return StyleFlags{
		Title:        bits&flagBitTitle != 0,
		ScaleInTitle: bits&flagBitScaleInTitle != 0,
		MapObjects:   bits&flagBitMapObjects != 0,
		ScaleBar:     bits&flagBitScaleBar != 0,
		TurnStyle:    bits&flagBitTurnStyle != 0,
		ScaleStyle:   bits&flagBitScaleStyle != 0,
	}
}

func (f StyleFlags) Bits() uint32 {
	var bits uint32
	for _, flag := range []struct {
		set bool
		bit uint32
	}{
		{f.Title, flagBitTitle},
		{f.ScaleInTitle, flagBitScaleInTitle},
		{f.MapObjects, flagBitMapObjects},
		{f.ScaleBar, flagBitScaleBar},
		{f.TurnStyle, flagBitTurnStyle},
		{f.ScaleStyle, flagBitScaleStyle},
	} {
		if flag.set {
			bits |= flag.bit
		}
	}
	return bits
}

// ParseStyleFlags reads a preset name: "standard", "turn", "scale" or "empty".
func ParseStyleFlags(name string) (StyleFlags, errorsx.Error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return StandardStyle, nil
	case "turn":
		return TurnStyle, nil
	case "scale":
		return ScaleStyle, nil
	case "empty":
		return EmptyStyle, nil
	default:
		return EmptyStyle, errorsx.Errorf("unknown legend style: %q", name)
	}
}
