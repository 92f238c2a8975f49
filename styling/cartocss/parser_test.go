package cartocss

import (
	"image/color"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawTestSheet = `Map {
	background-color: @land-color;
}
// another comment

@water-color: #aad3df;
@land-color: #f2efe9;

/* For the main linear features, such as roads and railways. */

@primary-fill: #fcd6a4;
@service-fill: @primary-fill;

#transportation[highway='primary'],
#transportation[highway = "trunk"] {
	line-color: @primary-fill;
	line-width: 5;
}

#transportation[highway='primary'][ref!='A1'] {
	line-dasharray: 4, 2;
}

#water {
	polygon-fill: @water-color;
	line-color: rgb(140, 184, 198)
}

#poi[railway=station] { marker-fill: red; marker-width: 6px; text-size: 11; comp-op: multiply; }
`

func TestParse(t *testing.T) {
	style, err := Parse("test", rawTestSheet)
	require.NoError(t, err)

	assert.Equal(t, "test", style.GetStyleID())
	assert.Equal(t, color.NRGBA{0xf2, 0xef, 0xe9, 0xff}, style.GetBackground())
	assert.Equal(t, map[string]string{
		"water-color":  "#aad3df",
		"land-color":   "#f2efe9",
		"primary-fill": "#fcd6a4",
		"service-fill": "@primary-fill",
	}, style.variables)
	assert.Len(t, style.rules, 4)
}

func TestStyle_GetWayStyle(t *testing.T) {
	style, err := Parse("test", rawTestSheet)
	require.NoError(t, err)

	primaryFill := color.NRGBA{0xfc, 0xd6, 0xa4, 0xff}

	type args struct {
		layer string
		tags  osm.Tags
	}
	tests := []struct {
		name string
		args args
		want *styling.WayStyle
	}{
		{
			"trunk",
			args{"transportation", osm.Tags{{Key: "highway", Value: "trunk"}}},
			&styling.WayStyle{LineColor: primaryFill, LineWidth: 5},
		}, {
			"primary, not A1",
			args{"transportation", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "ref", Value: "A2"}}},
			&styling.WayStyle{LineColor: primaryFill, LineWidth: 5, LineDashPolicy: []float64{4, 2}},
		}, {
			"primary, A1",
			args{"transportation", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "ref", Value: "A1"}}},
			&styling.WayStyle{LineColor: primaryFill, LineWidth: 5},
		}, {
			"wrong layer",
			args{"roads", osm.Tags{{Key: "highway", Value: "primary"}}},
			nil,
		}, {
			"water",
			args{"water", osm.Tags{{Key: "natural", Value: "water"}}},
			&styling.WayStyle{FillColor: color.NRGBA{0xaa, 0xd3, 0xdf, 0xff}, LineColor: color.NRGBA{140, 184, 198, 0xff}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := style.GetWayStyle(tt.args.layer, tt.args.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyle_GetNodeStyle(t *testing.T) {
	style, err := Parse("test", rawTestSheet)
	require.NoError(t, err)

	nodeStyle, err := style.GetNodeStyle("poi", osm.Tags{{Key: "railway", Value: "station"}})
	require.NoError(t, err)
	assert.Equal(t, &styling.NodeStyle{
		MarkerColor: color.RGBA{0xff, 0, 0, 0xff},
		MarkerSize:  6,
		TextSize:    11,
	}, nodeStyle)

	nodeStyle, err = style.GetNodeStyle("poi", osm.Tags{{Key: "amenity", Value: "cafe"}})
	require.NoError(t, err)
	assert.Nil(t, nodeStyle)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		stylesheet string
	}{
		{"unterminated block", "#water { polygon-fill: blue;"},
		{"unexpected close", "#water { polygon-fill: blue; } }"},
		{"nested block", "#water { [natural='water'] { polygon-fill: blue; } }"},
		{"unknown variable", "#water { polygon-fill: @sea; }"},
		{"self referencing variable", "@a: @a; #water { polygon-fill: @a; }"},
		{"bad colour", "#water { polygon-fill: blurple; }"},
		{"bad number", "#road { line-width: wide; }"},
		{"missing colon", "#road { line-width 3; }"},
		{"bare statement", "line-width: 3;"},
		{"unterminated comment", "/* comment"},
		{"unterminated string", "#road[highway='primary] { line-width: 3; }"},
		{"unterminated filter", "#road[highway='primary' { line-width: 3; }"},
		{"bad selector", "road { line-width: 3; }"},
		{"map with layer", "Map, #road { background-color: white; }"},
		{"trailing statement", "@a: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad", tt.stylesheet)
			require.Error(t, err)
			assert.Equal(t, styling.ErrParse, errorsx.Cause(err))
		})
	}
}

func TestParse_ErrorLine(t *testing.T) {
	_, err := Parse("bad", "@a: red;\n/* a\ncomment */\n#road {\n\tline-color: @b;\n}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line=5")
}
