package ownmaprenderer

import (
	"image"
	"image/color"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/image/font"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

func ParseAlignment(value string) (Alignment, errorsx.Error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, errorsx.Errorf("unknown alignment: %q", value)
	}
}

// TextLayout is text broken into lines that fit a width.
type TextLayout struct {
	Lines      []string
	LineWidths []int
	LineHeight int
	Ascent     int
}

func (tl TextLayout) Height() int {
	return len(tl.Lines) * tl.LineHeight
}

// Width is the width of the widest line.
func (tl TextLayout) Width() int {
	var width int
	for _, lineWidth := range tl.LineWidths {
		width = max(width, lineWidth)
	}
	return width
}

func (rr *RasterRenderer) newFace() font.Face {
	return truetype.NewFace(rr.font, &truetype.Options{
		Size:    rr.fontSpec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// LineHeight is the height of one line of text.
func (rr *RasterRenderer) LineHeight() int {
	face := rr.newFace()
	defer face.Close()

	return face.Metrics().Height.Ceil()
}

func (rr *RasterRenderer) MeasureString(text string) int {
	face := rr.newFace()
	defer face.Close()

	return font.MeasureString(face, text).Ceil()
}

// LayoutText wraps text at spaces so each line fits maxWidth. Words wider than maxWidth are
// broken between characters. A maxWidth of 0 or less only breaks at new lines.
// Empty text has no lines.
func (rr *RasterRenderer) LayoutText(text string, maxWidth int) TextLayout {
	face := rr.newFace()
	defer face.Close()

	metrics := face.Metrics()
	layout := TextLayout{
		LineHeight: metrics.Height.Ceil(),
		Ascent:     metrics.Ascent.Ceil(),
	}

	if strings.TrimSpace(text) == "" {
		return layout
	}

	measure := func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}

	addLine := func(line string) {
		layout.Lines = append(layout.Lines, line)
		layout.LineWidths = append(layout.LineWidths, measure(line))
	}

	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			addLine("")
			continue
		}

		if maxWidth <= 0 {
			addLine(strings.Join(words, " "))
			continue
		}

		var current string
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}

			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}

			// doesn't fit, start a new line
			if current != "" {
				addLine(current)
				current = ""
			}

			for measure(word) > maxWidth {
				head, tail := splitToWidth(word, maxWidth, measure)
				addLine(head)
				word = tail
			}
			current = word
		}

		if current != "" {
			addLine(current)
		}
	}

	return layout
}

// splitToWidth splits off the longest start of word that fits. At least one character is always split off.
func splitToWidth(word string, maxWidth int, measure func(string) int) (string, string) {
	runes := []rune(word)
	end := 1
	for end < len(runes) && measure(string(runes[:end+1])) <= maxWidth {
		end++
	}
	return string(runes[:end]), string(runes[end:])
}

// DrawText draws each line of the layout inside rect, aligned horizontally.
func (rr *RasterRenderer) DrawText(img *image.RGBA, layout TextLayout, rect image.Rectangle, alignment Alignment, c color.Color) errorsx.Error {
	for i, line := range layout.Lines {
		if line == "" {
			continue
		}

		x := rect.Min.X
		switch alignment {
		case AlignCenter:
			x += (rect.Dx() - layout.LineWidths[i]) / 2
		case AlignRight:
			x += rect.Dx() - layout.LineWidths[i]
		}
		y := rect.Min.Y + i*layout.LineHeight + layout.Ascent

		err := rr.drawString(img, rect, line, image.Point{X: x, Y: y}, rr.fontSpec.Size, c)
		if err != nil {
			return errorsx.Wrap(err, "line", line)
		}
	}

	return nil
}
