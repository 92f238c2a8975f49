package styling

import (
	"image/color"
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStyle struct {
	id         string
	background color.Color
	wayStyle   *WayStyle
	nodeStyle  *NodeStyle
	err        errorsx.Error
}

func (s *fixedStyle) GetNodeStyle(layer string, tags osm.Tags) (*NodeStyle, errorsx.Error) {
	return s.nodeStyle, s.err
}

func (s *fixedStyle) GetWayStyle(layer string, tags osm.Tags) (*WayStyle, errorsx.Error) {
	return s.wayStyle, s.err
}

func (s *fixedStyle) GetBackground() color.Color {
	return s.background
}

func (s *fixedStyle) GetStyleID() string {
	return s.id
}

func TestBlend(t *testing.T) {
	base := &fixedStyle{
		id:         "base",
		background: color.White,
		wayStyle:   &WayStyle{LineColor: color.Black, LineWidth: 3, FillColor: color.White},
	}
	overlay := &fixedStyle{
		id:       "overlay",
		wayStyle: &WayStyle{LineColor: color.RGBA{0xff, 0, 0, 0xff}},
	}

	blended := Blend(base, nil, overlay)
	assert.Equal(t, "base+overlay", blended.GetStyleID())
	assert.Equal(t, color.White, blended.GetBackground())

	wayStyle, err := blended.GetWayStyle("transportation", nil)
	require.NoError(t, err)
	assert.Equal(t, &WayStyle{
		LineColor: color.RGBA{0xff, 0, 0, 0xff},
		LineWidth: 3,
		FillColor: color.White,
	}, wayStyle)

	nodeStyle, err := blended.GetNodeStyle("poi", nil)
	require.NoError(t, err)
	assert.Nil(t, nodeStyle)
}

func TestBlend_NoOverlays(t *testing.T) {
	base := &CustomBasicStyle{}
	assert.Same(t, base, Blend(base, nil))
}

func TestBlend_Error(t *testing.T) {
	blended := Blend(&CustomBasicStyle{}, &fixedStyle{id: "broken", err: errorsx.Errorf("bad rule")})

	_, err := blended.GetWayStyle("transportation", osm.Tags{{Key: "highway", Value: "primary"}})
	require.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		value   string
		want    color.Color
		wantErr bool
	}{
		{value: "#fff", want: color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{value: "#aad3df", want: color.NRGBA{0xaa, 0xd3, 0xdf, 0xff}},
		{value: "#aad3df80", want: color.NRGBA{0xaa, 0xd3, 0xdf, 0x80}},
		{value: "rgb(1, 2, 3)", want: color.NRGBA{1, 2, 3, 0xff}},
		{value: "rgba(1,2,3,0)", want: color.NRGBA{1, 2, 3, 0}},
		{value: "Pink", want: color.RGBA{0xff, 0xc0, 0xcb, 0xff}},
		{value: "transparent", want: color.Transparent},
		{value: "hsl(0, 100%, 50%)", want: color.NRGBA{0xff, 0, 0, 0xff}},
		{value: "hsl(120, 100%, 25%)", want: color.NRGBA{0, 0x80, 0, 0xff}},
		{value: "hsla(240, 100%, 50%, 0.5)", want: color.NRGBA{0, 0, 0xff, 0x80}},
		{value: "hsl(0, 100, 50%)", wantErr: true},
		{value: "#ab", wantErr: true},
		{value: "#zzzzzz", wantErr: true},
		{value: "rgb(1,2)", wantErr: true},
		{value: "rgb(1,2,300)", wantErr: true},
		{value: "rgba(1,2,3,2)", wantErr: true},
		{value: "blurple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c, err := ParseColor(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestBlendColors(t *testing.T) {
	assert.Equal(t, color.Black, BlendColors(color.Black, color.White, 0))
	assert.Equal(t, color.White, BlendColors(color.Black, color.White, 1))

	r, g, b, a := BlendColors(color.Black, color.White, 0.5).RGBA()
	assert.InDelta(t, 0x7fff, r, 1)
	assert.InDelta(t, 0x7fff, g, 1)
	assert.InDelta(t, 0x7fff, b, 1)
	assert.Equal(t, uint32(0xffff), a)
}

func TestCustomBasicStyle(t *testing.T) {
	style := &CustomBasicStyle{}

	wayStyle, err := style.GetWayStyle("", osm.Tags{{Key: "highway", Value: "motorway"}})
	require.NoError(t, err)
	require.NotNil(t, wayStyle)
	assert.Equal(t, float64(6), wayStyle.LineWidth)

	wayStyle, err = style.GetWayStyle("", osm.Tags{{Key: "building", Value: "yes"}})
	require.NoError(t, err)
	assert.Nil(t, wayStyle)

	_, err = style.GetWayStyle("", osm.Tags{{Key: "highway", Value: "raceway"}})
	require.Error(t, err)

	nodeStyle, err := style.GetNodeStyle("", osm.Tags{{Key: "railway", Value: "station"}})
	require.NoError(t, err)
	require.NotNil(t, nodeStyle)
	assert.NotNil(t, nodeStyle.MarkerColor)
}

func TestNewStyleSet(t *testing.T) {
	sheets := []*Sheet{
		{ID: BUILTIN_STYLEID, Style: &CustomBasicStyle{}},
		{ID: "night", Data: []byte("Map { background-color: black; }")},
	}

	styleSet, err := NewStyleSet(sheets, "night")
	require.NoError(t, err)
	assert.Equal(t, "night", styleSet.GetDefaultSheet().ID)
	assert.ElementsMatch(t, []string{BUILTIN_STYLEID, "night"}, styleSet.GetAllStyleIDs())
	assert.Nil(t, styleSet.GetSheetByID("day"))

	_, err = NewStyleSet(sheets, "day")
	require.Error(t, err)

	_, err = NewStyleSet(append(sheets, &Sheet{ID: "night"}), "night")
	require.Error(t, err)
}

func TestStyleSet_AddSheet(t *testing.T) {
	styleSet, err := NewStyleSet([]*Sheet{{ID: BUILTIN_STYLEID, Style: &CustomBasicStyle{}}}, BUILTIN_STYLEID)
	require.NoError(t, err)

	require.NoError(t, styleSet.AddSheet(&Sheet{ID: "night"}))
	require.NoError(t, styleSet.AddSheet(&Sheet{ID: "day"}))
	assert.Equal(t, []string{BUILTIN_STYLEID, "day", "night"}, styleSet.GetAllStyleIDs())

	replacement := &Sheet{ID: "night", Data: []byte("Map { background-color: black; }")}
	require.NoError(t, styleSet.AddSheet(replacement))
	assert.Same(t, replacement, styleSet.GetSheetByID("night"))

	require.Error(t, styleSet.AddSheet(&Sheet{ID: BUILTIN_STYLEID}))
}
