package styling

import (
	"image/color"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

// CustomBasicStyle is the style used when neither the legend nor the map supply a style sheet.
// It ignores layer names and styles objects by their tags alone.
type CustomBasicStyle struct{}

func (_ *CustomBasicStyle) GetBackground() color.Color {
	return color.White
}

func (_ *CustomBasicStyle) GetStyleID() string {
	return BUILTIN_STYLEID
}

func (_ *CustomBasicStyle) GetNodeStyle(layer string, tags osm.Tags) (*NodeStyle, errorsx.Error) {
	switch {
	case tags.Find("railway") == "station":
		return &NodeStyle{
			TextSize:    12,
			TextColor:   color.Black,
			MarkerColor: color.RGBA{0x7c, 0x5c, 0xd6, 0xff},
			MarkerSize:  6,
		}, nil
	case tags.HasTag("place"):
		return &NodeStyle{
			TextSize:  16,
			TextColor: color.Black,
		}, nil
	}

	return nil, nil
}

var forestStyle = &WayStyle{
	FillColor: color.RGBA{172, 200, 160, 0xff},
}

func (_ *CustomBasicStyle) GetWayStyle(layer string, tags osm.Tags) (*WayStyle, errorsx.Error) {
	var highwayType string
	for _, tag := range tags {
		switch tag.Key {
		case "highway":
			highwayType = tag.Value
		case "railway":
			if tag.Value == "station" {
				continue
			}
			return &WayStyle{
				LineColor:      color.RGBA{110, 110, 110, 0xff},
				LineDashPolicy: []float64{6, 3},
				LineWidth:      3,
			}, nil
		case "natural":
			switch tag.Value {
			case "wood":
				return forestStyle, nil
			case "water":
				return &WayStyle{
					FillColor: color.RGBA{0xaa, 0xd3, 0xdf, 0xff},
					LineColor: color.RGBA{0x8c, 0xb8, 0xc6, 0xff},
					LineWidth: 1,
				}, nil
			}
		case "landuse":
			switch tag.Value {
			case "forest":
				return forestStyle, nil
			case "grass":
				return &WayStyle{
					FillColor: color.RGBA{0xcd, 0xeb, 0xb0, 0xff},
				}, nil
			case "residential":
				return &WayStyle{
					FillColor: color.RGBA{223, 223, 223, 0xff},
				}, nil
			}
		case "leisure":
			if tag.Value == "park" {
				return &WayStyle{
					FillColor: color.RGBA{0xc8, 0xfa, 0xcc, 0xff},
					LineColor: color.RGBA{0x8f, 0xc9, 0x93, 0xff},
					LineWidth: 1,
				}, nil
			}
		}
	}

	if highwayType == "" {
		// not shown
		return nil, nil
	}

	// highway
	wayStyle := &WayStyle{
		LineWidth: 4,
	}
	switch highwayType {
	case "motorway":
		wayStyle.LineColor = color.RGBA{0xe8, 0x92, 0xa2, 0xff}
		wayStyle.LineWidth = 6
	case "trunk":
		wayStyle.LineColor = color.RGBA{0xf9, 0xb2, 0x9c, 0xff}
		wayStyle.LineWidth = 5
	case "primary", "primary_link":
		wayStyle.LineColor = color.RGBA{0xfc, 0xd6, 0xa4, 0xff}
		wayStyle.LineWidth = 5
	case "secondary":
		wayStyle.LineColor = color.RGBA{0xf6, 0xf9, 0xbf, 0xff}
	case "tertiary":
		wayStyle.LineColor = color.RGBA{0xfe, 0xfe, 0xb2, 0xff}
	case "unclassified", "residential", "service":
		wayStyle.LineColor = color.RGBA{0xbc, 0xac, 0xa5, 0xff}
		wayStyle.LineWidth = 3
	case "track":
		wayStyle.LineColor = color.RGBA{0x99, 0x6e, 0x00, 0xff}
		wayStyle.LineDashPolicy = []float64{5, 2}
		wayStyle.LineWidth = 2
	case "footway", "path", "steps":
		wayStyle.LineColor = color.RGBA{0xfa, 0x80, 0x72, 0xff}
		wayStyle.LineDashPolicy = []float64{1, 2, 3}
		wayStyle.LineWidth = 2
	case "bridleway", "cycleway":
		wayStyle.LineColor = color.RGBA{0, 0, 0xff, 0xff}
		wayStyle.LineDashPolicy = []float64{20, 5}
		wayStyle.LineWidth = 2
	default:
		return nil, errorsx.Errorf("unhandled highway type: %q", highwayType)
	}

	return wayStyle, nil
}
