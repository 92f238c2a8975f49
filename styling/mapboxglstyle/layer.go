package mapboxglstyle

import (
	"encoding/json"
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/paulmach/osm"
)

type LayerType string

const (
	LayerTypeBackground    LayerType = "background"
	LayerTypeFill          LayerType = "fill"
	LayerTypeLine          LayerType = "line"
	LayerTypeSymbol        LayerType = "symbol"
	LayerTypeRaster        LayerType = "raster"
	LayerTypeCircle        LayerType = "circle"
	LayerTypeFillExtrusion LayerType = "fill-extrusion"
	LayerTypeHeatmap       LayerType = "heatmap"
	LayerTypeHillshade     LayerType = "hillshade"
)

type Layer struct {
	RawFilter   json.RawMessage `json:"filter"`
	ID          string          `json:"id"`
	Layout      Layout          `json:"layout"`
	MaxZoom     *float64        `json:"maxzoom"`
	MinZoom     *float64        `json:"minzoom"`
	Paint       Paint           `json:"paint"`
	Source      string          `json:"source"`
	SourceLayer string          `json:"source-layer"`
	Type        LayerType       `json:"type"`

	filter Filter
}

func (l *Layer) Validate() errorsx.Error {
	if l.MaxZoom != nil && l.MinZoom != nil {
		if *l.MaxZoom < *l.MinZoom {
			return errorsx.Errorf("max zoom is smaller than min zoom")
		}
	}

	if l.MaxZoom != nil && (*l.MaxZoom < 0 || *l.MaxZoom > 24) {
		return errorsx.Errorf("max zoom must be between 0 and 24 (inclusive) but was %f", *l.MaxZoom)
	}

	if l.MinZoom != nil && (*l.MinZoom < 0 || *l.MinZoom > 24) {
		return errorsx.Errorf("min zoom must be between 0 and 24 (inclusive) but was %f", *l.MinZoom)
	}

	var rawFilter interface{}
	if len(l.RawFilter) != 0 {
		err := json.Unmarshal(l.RawFilter, &rawFilter)
		if err != nil {
			return errorsx.Wrap(err)
		}
	}

	filter, err := compileFilter(rawFilter)
	if err != nil {
		return err
	}
	l.filter = filter

	return nil
}

func (l *Layer) isVisibleAt(zoomLevel float64) bool {
	if l.Layout.Visibility == VisibilityNone {
		return false
	}
	if l.MinZoom != nil && zoomLevel < *l.MinZoom {
		return false
	}
	if l.MaxZoom != nil && zoomLevel >= *l.MaxZoom {
		return false
	}
	return true
}

// isObjectShown reports whether an object in the requested layer is drawn by this layer.
// An empty requested layer matches any source layer the tags would be found in.
func (l *Layer) isObjectShown(layer string, tags osm.Tags, geometryTypes ...string) bool {
	if layer == "" {
		if !areTagsInSourceLayer(l.SourceLayer, tags) {
			// object doesn't "belong" in this sourceLayer, skip everything
			return false
		}
	} else if layer != l.SourceLayer {
		return false
	}

	return l.filter.matches(&filterObject{
		sourceLayer:   l.SourceLayer,
		tags:          tags,
		geometryTypes: geometryTypes,
	})
}

// applyWayStyle merges the paint properties of a fill or line layer into wayStyle.
func (l *Layer) applyWayStyle(wayStyle *styling.WayStyle, zoomLevel float64) *styling.WayStyle {
	switch l.Type {
	case LayerTypeFill:
		fillColor := withOpacity(l.Paint.FillColor.GetColorAtZoomLevel(zoomLevel), l.Paint.FillOpacity, zoomLevel)
		if fillColor == nil {
			return wayStyle
		}
		if wayStyle == nil {
			wayStyle = new(styling.WayStyle)
		}
		wayStyle.FillColor = fillColor
	case LayerTypeLine:
		lineColor := withOpacity(l.Paint.LineColor.GetColorAtZoomLevel(zoomLevel), l.Paint.LineOpacity, zoomLevel)
		lineWidth := 1.0
		if l.Paint.LineWidth.IsSet() {
			lineWidth = l.Paint.LineWidth.GetValueAtZoomLevel(zoomLevel)
		}
		if lineColor == nil || lineWidth == 0 {
			// there is no visible line, so don't show this item
			return wayStyle
		}
		if wayStyle == nil {
			wayStyle = new(styling.WayStyle)
		}
		wayStyle.LineColor = lineColor
		wayStyle.LineWidth = lineWidth
		wayStyle.LineDashPolicy = nil
		// dash lengths are in line widths
		for _, dash := range l.Paint.LineDashArray {
			wayStyle.LineDashPolicy = append(wayStyle.LineDashPolicy, dash*lineWidth)
		}
	}

	return wayStyle
}

// applyNodeStyle merges the paint properties of a circle or symbol layer into nodeStyle.
func (l *Layer) applyNodeStyle(nodeStyle *styling.NodeStyle, zoomLevel float64) *styling.NodeStyle {
	if nodeStyle == nil {
		nodeStyle = new(styling.NodeStyle)
	}

	switch l.Type {
	case LayerTypeCircle:
		radius := float64(defaultCircleRadius)
		if l.Paint.CircleRadius.IsSet() {
			radius = l.Paint.CircleRadius.GetValueAtZoomLevel(zoomLevel)
		}
		nodeStyle.MarkerColor = l.Paint.CircleColor.GetColorAtZoomLevel(zoomLevel)
		if nodeStyle.MarkerColor == nil {
			nodeStyle.MarkerColor = color.Black
		}
		nodeStyle.MarkerSize = radius * 2
	case LayerTypeSymbol:
		if textColor := l.Paint.TextColor.GetColorAtZoomLevel(zoomLevel); textColor != nil {
			nodeStyle.TextColor = textColor
		}
		if l.Layout.TextSize.IsSet() {
			nodeStyle.TextSize = int(l.Layout.TextSize.GetValueAtZoomLevel(zoomLevel))
		}
	}

	return nodeStyle
}

type Source struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Sources map[string]Source
