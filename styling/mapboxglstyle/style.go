package mapboxglstyle

import (
	"encoding/json"
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/paulmach/osm"
)

// DefaultZoomLevel is the zoom level zoom functions are evaluated at. Legend samples are
// drawn at a fixed size, so a street-level zoom gives representative widths and colours.
const DefaultZoomLevel = 14

// MapboxGLStyle is a parsed Mapbox GL JSON style (https://docs.mapbox.com/mapbox-gl-js/style-spec/).
type MapboxGLStyle struct {
	Version int      `json:"version"`
	Name    string   `json:"name"`
	Sources Sources  `json:"sources"`
	Layers  []*Layer `json:"layers"`

	id         string
	zoomLevel  float64
	background color.Color
}

var _ styling.Style = &MapboxGLStyle{}

func Parse(id string, data []byte) (*MapboxGLStyle, errorsx.Error) {
	style := &MapboxGLStyle{
		id:        id,
		zoomLevel: DefaultZoomLevel,
	}

	err := json.Unmarshal(data, style)
	if err != nil {
		return nil, errorsx.Wrap(styling.ErrParse, "format", "mapbox-gl", "reason", err.Error())
	}

	if style.Version != 8 {
		return nil, errorsx.Wrap(styling.ErrParse, "format", "mapbox-gl", "reason", "unsupported version", "version", style.Version)
	}

	for i, layer := range style.Layers {
		errx := layer.Validate()
		if errx != nil {
			return nil, errorsx.Wrap(styling.ErrParse, "format", "mapbox-gl", "layerIndex", i, "layerID", layer.ID, "reason", errx.Error())
		}

		if layer.Type == LayerTypeBackground && layer.isVisibleAt(style.zoomLevel) {
			if backgroundColor := layer.Paint.BackgroundColor.GetColorAtZoomLevel(style.zoomLevel); backgroundColor != nil {
				style.background = backgroundColor
			}
		}
	}

	return style, nil
}

func (s *MapboxGLStyle) GetStyleID() string {
	return s.id
}

func (s *MapboxGLStyle) GetBackground() color.Color {
	return s.background
}

// GetWayStyle merges every visible fill and line layer showing the object. Later layers are drawn on top.
func (s *MapboxGLStyle) GetWayStyle(layer string, tags osm.Tags) (*styling.WayStyle, errorsx.Error) {
	var wayStyle *styling.WayStyle
	for _, l := range s.Layers {
		if !l.isVisibleAt(s.zoomLevel) {
			continue
		}

		switch l.Type {
		case LayerTypeFill:
			if l.isObjectShown(layer, tags, FilterThingTypePolygon) {
				wayStyle = l.applyWayStyle(wayStyle, s.zoomLevel)
			}
		case LayerTypeLine:
			if l.isObjectShown(layer, tags, FilterThingTypeLineString, FilterThingTypePolygon) {
				wayStyle = l.applyWayStyle(wayStyle, s.zoomLevel)
			}
		}
	}

	return wayStyle, nil
}

func (s *MapboxGLStyle) GetNodeStyle(layer string, tags osm.Tags) (*styling.NodeStyle, errorsx.Error) {
	var nodeStyle *styling.NodeStyle
	for _, l := range s.Layers {
		if !l.isVisibleAt(s.zoomLevel) {
			continue
		}

		switch l.Type {
		case LayerTypeCircle, LayerTypeSymbol:
			if l.isObjectShown(layer, tags, FilterThingTypePoint) {
				nodeStyle = l.applyNodeStyle(nodeStyle, s.zoomLevel)
			}
		}
	}

	return nodeStyle, nil
}
