package legend

import (
	"image/color"

	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/ownmaprenderer"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
)

type Alignment = ownmaprenderer.Alignment

const (
	AlignLeft   = ownmaprenderer.AlignLeft
	AlignCenter = ownmaprenderer.AlignCenter
	AlignRight  = ownmaprenderer.AlignRight
)

const (
	mainStyleSheetID  = "legend-main"
	extraStyleSheetID = "legend-extra"
)

var (
	defaultTextColor    = color.RGBA{0x80, 0x80, 0x80, 0xff}
	defaultDiagramColor = color.RGBA{0x40, 0x40, 0x40, 0xff}
)

type Border struct {
	Color       color.Color
	StrokeWidth units.Dimension
	Radius      units.Dimension
}

// Config is how a legend is drawn.
type Config struct {
	// MainStyleSheet replaces the map's style sheet for samples. Nil uses the map's.
	MainStyleSheet *styling.Sheet
	// ExtraStyleSheet is blended over the other style sheets
	ExtraStyleSheet *styling.Sheet
	BackgroundColor color.Color
	Border          Border
	Margin          units.Dimension
	MinLineHeight   units.Dimension
	// LabelWrapWidth limits the width of text. 0 only limits text to the width of the legend.
	LabelWrapWidth units.Dimension
	FontFamily     string
	FontStyle      fonts.FontStyle
	FontSize       units.Dimension
	TextColor      color.Color
	DiagramColor   color.Color
	Alignment      Alignment
	// PolygonRotation rotates polygon samples clockwise, in degrees
	PolygonRotation float64
}

func DefaultConfig() Config {
	return Config{
		BackgroundColor: color.White,
		Border: Border{
			Color:       color.Gray{0x80},
			StrokeWidth: units.Dimension{Value: 1, Unit: units.UnitPoint},
			Radius:      units.Dimension{Value: 2, Unit: units.UnitPoint},
		},
		Margin:        units.Dimension{Value: 4, Unit: units.UnitPoint},
		MinLineHeight: units.Dimension{Value: 12, Unit: units.UnitPoint},
		FontFamily:    fonts.DefaultFamily,
		FontStyle:     fonts.FontStyleRegular,
		FontSize:      units.Dimension{Value: 10, Unit: units.UnitPoint},
		TextColor:     defaultTextColor,
		DiagramColor:  defaultDiagramColor,
		Alignment:     AlignLeft,
	}
}

func (l *Legend) Config() Config {
	return l.config
}

func (l *Legend) setConfig(fn func(config *Config)) {
	fn(&l.config)
	l.bumpSerial()
}

func newSheet(id string, data []byte) *styling.Sheet {
	if len(data) == 0 {
		return nil
	}
	return &styling.Sheet{ID: id, Data: append([]byte(nil), data...)}
}

// SetMainStyleSheet sets the style sheet samples are drawn with. Empty data goes back to the map's style sheet.
// The style sheet is parsed when the legend is drawn.
func (l *Legend) SetMainStyleSheet(data []byte) {
	l.setConfig(func(config *Config) {
		config.MainStyleSheet = newSheet(mainStyleSheetID, data)
	})
}

// SetExtraStyleSheet sets a style sheet blended over the main style sheet. Empty data removes it.
func (l *Legend) SetExtraStyleSheet(data []byte) {
	l.setConfig(func(config *Config) {
		config.ExtraStyleSheet = newSheet(extraStyleSheetID, data)
	})
}

// orTransparent makes a nil colour draw nothing.
func orTransparent(c color.Color) color.Color {
	if c == nil {
		return color.Transparent
	}
	return c
}

// SetBackgroundColor sets the fill inside the border. Nil leaves the background unfilled.
func (l *Legend) SetBackgroundColor(c color.Color) {
	l.setConfig(func(config *Config) {
		config.BackgroundColor = orTransparent(c)
	})
}

func (l *Legend) SetBorder(c color.Color, strokeWidth, radius float64, unit string) {
	l.setConfig(func(config *Config) {
		config.Border = Border{
			Color:       c,
			StrokeWidth: units.Dimension{Value: strokeWidth, Unit: unit},
			Radius:      units.Dimension{Value: radius, Unit: unit},
		}
	})
}

func (l *Legend) SetMarginWidth(value float64, unit string) {
	l.setConfig(func(config *Config) {
		config.Margin = units.Dimension{Value: value, Unit: unit}
	})
}

func (l *Legend) SetMinLineHeight(value float64, unit string) {
	l.setConfig(func(config *Config) {
		config.MinLineHeight = units.Dimension{Value: value, Unit: unit}
	})
}

func (l *Legend) SetLabelWrapWidth(value float64, unit string) {
	l.setConfig(func(config *Config) {
		config.LabelWrapWidth = units.Dimension{Value: value, Unit: unit}
	})
}

func (l *Legend) SetFontFamily(family string) {
	l.setConfig(func(config *Config) {
		config.FontFamily = family
	})
	l.deriveRenderer()
}

func (l *Legend) SetFontStyle(style fonts.FontStyle) {
	l.setConfig(func(config *Config) {
		config.FontStyle = style
	})
	l.deriveRenderer()
}

func (l *Legend) SetFontSize(value float64, unit string) {
	l.setConfig(func(config *Config) {
		config.FontSize = units.Dimension{Value: value, Unit: unit}
	})
	l.deriveRenderer()
}

func (l *Legend) SetTextColor(c color.Color) {
	l.setConfig(func(config *Config) {
		config.TextColor = orTransparent(c)
	})
}

// SetDiagramColor sets the colour of turn diagrams and the scale bar. Nil hides them.
func (l *Legend) SetDiagramColor(c color.Color) {
	l.setConfig(func(config *Config) {
		config.DiagramColor = orTransparent(c)
	})
}

func (l *Legend) DiagramColor() color.Color {
	return l.config.DiagramColor
}

func (l *Legend) SetAlignment(alignment Alignment) {
	l.setConfig(func(config *Config) {
		config.Alignment = alignment
	})
}

func (l *Legend) SetPolygonRotation(degrees float64) {
	l.setConfig(func(config *Config) {
		config.PolygonRotation = degrees
	})
}
