package legend

import (
	"github.com/jamesrr39/ownmap-legend/ownmap"
)

// Line is one row of a legend. It is one of MapObjectLine, TextLine, ScaleLine or TurnLine.
type Line interface {
	isLine()
}

// MapObjectLine shows a sample of a map object, drawn in the map's style, with a label.
type MapObjectLine struct {
	Type        ownmap.ObjectType
	Layer       string
	FeatureInfo ownmap.FeatureInfo
	// StringAttribute holds extra tags, e.g. "surface=gravel;Main Street"
	StringAttribute string
	Label           string
}

type TextLine struct {
	Text string
}

// ScaleLine is a scale bar with its length as a label.
type ScaleLine struct{}

// TurnLine shows the current turn instruction.
type TurnLine struct {
	Abbreviate bool
}

func (MapObjectLine) isLine() {}
func (TextLine) isLine()      {}
func (ScaleLine) isLine()     {}
func (TurnLine) isLine()      {}

func (l *Legend) addLine(line Line) {
	l.lines = append(l.lines, line)
	l.bumpSerial()
}

func (l *Legend) AddMapObjectLine(objectType ownmap.ObjectType, layer string, featureInfo ownmap.FeatureInfo, stringAttribute, label string) {
	l.addLine(MapObjectLine{
		Type:            objectType,
		Layer:           layer,
		FeatureInfo:     featureInfo,
		StringAttribute: stringAttribute,
		Label:           label,
	})
}

func (l *Legend) AddTextLine(text string) {
	l.addLine(TextLine{Text: text})
}

func (l *Legend) AddScaleLine() {
	l.addLine(ScaleLine{})
}

func (l *Legend) AddTurnLine(abbreviate bool) {
	l.addLine(TurnLine{Abbreviate: abbreviate})
}

// Clear removes all the lines.
func (l *Legend) Clear() {
	l.lines = nil
	l.bumpSerial()
}

// Lines returns a copy of the lines, in the order they are drawn.
func (l *Legend) Lines() []Line {
	return append([]Line(nil), l.lines...)
}

func (l *Legend) HasScale() bool {
	for _, line := range l.lines {
		if _, ok := line.(ScaleLine); ok {
			return true
		}
	}
	return false
}

func (l *Legend) HasTurnInstruction() bool {
	return l.firstTurnLine() != nil
}

func (l *Legend) firstTurnLine() *TurnLine {
	for _, line := range l.lines {
		if turnLine, ok := line.(TurnLine); ok {
			return &turnLine
		}
	}
	return nil
}
