package styling

import (
	"image/color"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

type blendedStyle struct {
	layers []Style // bottom first
}

// Blend overlays styles on top of a base style. Properties set by a later overlay
// replace the same properties from the styles beneath it; unset properties show through.
func Blend(base Style, overlays ...Style) Style {
	layers := []Style{base}
	for _, overlay := range overlays {
		if overlay == nil {
			continue
		}
		layers = append(layers, overlay)
	}

	if len(layers) == 1 {
		return base
	}

	return &blendedStyle{layers}
}

func (bs *blendedStyle) GetStyleID() string {
	var ids []string
	for _, layer := range bs.layers {
		ids = append(ids, layer.GetStyleID())
	}
	return strings.Join(ids, "+")
}

func (bs *blendedStyle) GetBackground() color.Color {
	var background color.Color
	for _, layer := range bs.layers {
		if c := layer.GetBackground(); c != nil {
			background = c
		}
	}
	return background
}

func (bs *blendedStyle) GetWayStyle(layerName string, tags osm.Tags) (*WayStyle, errorsx.Error) {
	var merged *WayStyle
	for _, layer := range bs.layers {
		wayStyle, err := layer.GetWayStyle(layerName, tags)
		if err != nil {
			return nil, errorsx.Wrap(err, "styleID", layer.GetStyleID())
		}

		if wayStyle == nil {
			continue
		}

		if merged == nil {
			merged = new(WayStyle)
		}

		if wayStyle.FillColor != nil {
			merged.FillColor = wayStyle.FillColor
		}
		if wayStyle.LineColor != nil {
			merged.LineColor = wayStyle.LineColor
		}
		if wayStyle.LineDashPolicy != nil {
			merged.LineDashPolicy = wayStyle.LineDashPolicy
		}
		if wayStyle.LineWidth != 0 {
			merged.LineWidth = wayStyle.LineWidth
		}
	}

	return merged, nil
}

func (bs *blendedStyle) GetNodeStyle(layerName string, tags osm.Tags) (*NodeStyle, errorsx.Error) {
	var merged *NodeStyle
	for _, layer := range bs.layers {
		nodeStyle, err := layer.GetNodeStyle(layerName, tags)
		if err != nil {
			return nil, errorsx.Wrap(err, "styleID", layer.GetStyleID())
		}

		if nodeStyle == nil {
			continue
		}

		if merged == nil {
			merged = new(NodeStyle)
		}

		if nodeStyle.TextSize != 0 {
			merged.TextSize = nodeStyle.TextSize
		}
		if nodeStyle.TextColor != nil {
			merged.TextColor = nodeStyle.TextColor
		}
		if nodeStyle.MarkerColor != nil {
			merged.MarkerColor = nodeStyle.MarkerColor
		}
		if nodeStyle.MarkerSize != 0 {
			merged.MarkerSize = nodeStyle.MarkerSize
		}
	}

	return merged, nil
}
