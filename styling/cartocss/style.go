package cartocss

import (
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/paulmach/osm"
)

var _ styling.Style = &Style{}

func (s *Style) GetStyleID() string {
	return s.id
}

func (s *Style) GetBackground() color.Color {
	return s.background
}

// GetWayStyle merges the properties of every matching rule, in the order they appear in the style sheet.
func (s *Style) GetWayStyle(layer string, tags osm.Tags) (*styling.WayStyle, errorsx.Error) {
	var wayStyle *styling.WayStyle
	for _, r := range s.matchingRules(layer, tags) {
		props := r.Props
		if props.LineColor == nil && props.LineWidth == 0 && props.LineDash == nil && props.PolygonFill == nil {
			continue
		}

		if wayStyle == nil {
			wayStyle = new(styling.WayStyle)
		}
		if props.LineColor != nil {
			wayStyle.LineColor = props.LineColor
		}
		if props.LineWidth != 0 {
			wayStyle.LineWidth = props.LineWidth
		}
		if props.LineDash != nil {
			wayStyle.LineDashPolicy = props.LineDash
		}
		if props.PolygonFill != nil {
			wayStyle.FillColor = props.PolygonFill
		}
	}

	return wayStyle, nil
}

func (s *Style) GetNodeStyle(layer string, tags osm.Tags) (*styling.NodeStyle, errorsx.Error) {
	var nodeStyle *styling.NodeStyle
	for _, r := range s.matchingRules(layer, tags) {
		props := r.Props
		if props.MarkerFill == nil && props.MarkerWidth == 0 && props.TextFill == nil && props.TextSize == 0 {
			continue
		}

		if nodeStyle == nil {
			nodeStyle = new(styling.NodeStyle)
		}
		if props.MarkerFill != nil {
			nodeStyle.MarkerColor = props.MarkerFill
		}
		if props.MarkerWidth != 0 {
			nodeStyle.MarkerSize = props.MarkerWidth
		}
		if props.TextFill != nil {
			nodeStyle.TextColor = props.TextFill
		}
		if props.TextSize != 0 {
			nodeStyle.TextSize = int(props.TextSize)
		}
	}

	return nodeStyle, nil
}

func (s *Style) matchingRules(layer string, tags osm.Tags) []*rule {
	var matching []*rule
	for _, r := range s.rules {
		for _, sel := range r.Selectors {
			if sel.matches(layer, tags) {
				matching = append(matching, r)
				break
			}
		}
	}
	return matching
}

func (sel selector) matches(layer string, tags osm.Tags) bool {
	if sel.Layer != "" && sel.Layer != layer {
		return false
	}

	for _, f := range sel.Filters {
		value := tags.Find(f.Key)
		isEqual := value == f.Value || (f.Value == "*" && tags.HasTag(f.Key))
		if isEqual == f.Negate {
			return false
		}
	}

	return true
}
