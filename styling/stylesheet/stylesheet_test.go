package stylesheet

import (
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/cartocss"
	"github.com/jamesrr39/ownmap-legend/styling/mapboxglstyle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	style, err := Parse("carto", []byte("#water { polygon-fill: blue; }"))
	require.NoError(t, err)
	assert.IsType(t, &cartocss.Style{}, style)
	assert.Equal(t, "carto", style.GetStyleID())

	style, err = Parse("gl", []byte("\n  {\"version\": 8, \"layers\": []}"))
	require.NoError(t, err)
	assert.IsType(t, &mapboxglstyle.MapboxGLStyle{}, style)

	_, err = Parse("bad", []byte("{\"version\": 8, \"layers\": "))
	require.Error(t, err)
	assert.Equal(t, styling.ErrParse, errorsx.Cause(err))

	_, err = Parse("bad", []byte("#water { polygon-fill: blue;"))
	require.Error(t, err)
	assert.Equal(t, styling.ErrParse, errorsx.Cause(err))
}

func TestParseSheet(t *testing.T) {
	sheet := &styling.Sheet{ID: "carto", Data: []byte("Map { background-color: white; }")}
	err := ParseSheet(sheet)
	require.NoError(t, err)
	require.NotNil(t, sheet.Style)
	assert.NotNil(t, sheet.Style.GetBackground())
}
