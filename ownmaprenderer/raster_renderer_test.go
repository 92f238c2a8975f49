package ownmaprenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRed  = color.RGBA{0xff, 0, 0, 0xff}
	testBlue = color.RGBA{0, 0, 0xff, 0xff}
)

func newTestRenderer() *RasterRenderer {
	return NewRasterRenderer(fonts.FontSpec{Family: "Go", Size: 12})
}

func countPixels(img *image.RGBA, rect image.Rectangle, c color.Color) int {
	var count int
	wantR, wantG, wantB, wantA := c.RGBA()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r == wantR && g == wantG && b == wantB && a == wantA {
				count++
			}
		}
	}
	return count
}

func countNonBackground(img *image.RGBA, rect image.Rectangle) int {
	return rect.Dx()*rect.Dy() - countPixels(img, rect, color.White)
}

func TestRasterRenderer_DrawSample_line(t *testing.T) {
	img := NewImageWithBackground(image.Rect(0, 0, 60, 30), color.White)
	box := image.Rect(10, 10, 50, 20)

	err := newTestRenderer().DrawSample(img, box, Sample{
		ObjectType: ownmap.ObjectTypeLine,
		WayStyle:   &styling.WayStyle{LineColor: testRed, LineWidth: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, testRed, img.RGBAAt(30, 15))
	// nothing drawn far away from the line
	assert.Equal(t, 0, countNonBackground(img, image.Rect(0, 0, 60, 8)))
	assert.Equal(t, 0, countNonBackground(img, image.Rect(0, 22, 60, 30)))
}

func TestRasterRenderer_DrawSample_polygon(t *testing.T) {
	img := NewImageWithBackground(image.Rect(0, 0, 60, 40), color.White)
	box := image.Rect(10, 10, 50, 30)

	err := newTestRenderer().DrawSample(img, box, Sample{
		ObjectType: ownmap.ObjectTypePolygon,
		WayStyle:   &styling.WayStyle{FillColor: testBlue, LineColor: testRed, LineWidth: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, testBlue, img.RGBAAt(30, 20))
	assert.Equal(t, testRed, img.RGBAAt(30, 11))
	assert.Equal(t, 0, countNonBackground(img, image.Rect(0, 0, 60, 9)))
}

func TestRasterRenderer_DrawSample_rotatedPolygonStaysInBox(t *testing.T) {
	img := NewImageWithBackground(image.Rect(0, 0, 60, 60), color.White)
	box := image.Rect(20, 20, 40, 40)

	err := newTestRenderer().DrawSample(img, box, Sample{
		ObjectType: ownmap.ObjectTypePolygon,
		WayStyle:   &styling.WayStyle{FillColor: testBlue},
		Rotation:   45,
	})
	require.NoError(t, err)

	assert.Equal(t, testBlue, img.RGBAAt(30, 30))
	inBox := countNonBackground(img, box)
	assert.Greater(t, inBox, 0)
	// allow for anti-aliasing on the edge of the box
	assert.Equal(t, inBox, countNonBackground(img, box.Inset(-1)))
}

func TestRasterRenderer_DrawSample_point(t *testing.T) {
	rr := newTestRenderer()

	t.Run("marker", func(t *testing.T) {
		img := NewImageWithBackground(image.Rect(0, 0, 20, 20), color.White)
		err := rr.DrawSample(img, img.Bounds(), Sample{
			ObjectType: ownmap.ObjectTypePoint,
			NodeStyle:  &styling.NodeStyle{MarkerColor: testRed, MarkerSize: 8},
		})
		require.NoError(t, err)
		assert.Equal(t, testRed, img.RGBAAt(10, 10))
		assert.Equal(t, 0, countNonBackground(img, image.Rect(0, 0, 20, 4)))
	})

	t.Run("text only", func(t *testing.T) {
		img := NewImageWithBackground(image.Rect(0, 0, 40, 20), color.White)
		err := rr.DrawSample(img, img.Bounds(), Sample{
			ObjectType: ownmap.ObjectTypePoint,
			NodeStyle:  &styling.NodeStyle{TextColor: testBlue, TextSize: 10},
		})
		require.NoError(t, err)
		assert.Greater(t, countNonBackground(img, img.Bounds()), 0)
	})

	t.Run("no style", func(t *testing.T) {
		img := NewImageWithBackground(image.Rect(0, 0, 20, 20), color.White)
		err := rr.DrawSample(img, img.Bounds(), Sample{ObjectType: ownmap.ObjectTypePoint})
		require.NoError(t, err)
		assert.Equal(t, 0, countNonBackground(img, img.Bounds()))
	})
}

func TestRasterRenderer_DrawSample_unknownType(t *testing.T) {
	img := NewImageWithBackground(image.Rect(0, 0, 20, 20), color.White)
	err := newTestRenderer().DrawSample(img, img.Bounds(), Sample{})
	require.Error(t, err)
}

func Test_rotateRing(t *testing.T) {
	ring := orb.Ring{{1, 0}, {0, 1}}
	rotated := rotateRing(ring, orb.Point{0, 0}, 90)

	assert.InDelta(t, 0, rotated[0].X(), 1e-9)
	assert.InDelta(t, 1, rotated[0].Y(), 1e-9)
	assert.InDelta(t, -1, rotated[1].X(), 1e-9)
	assert.InDelta(t, 0, rotated[1].Y(), 1e-9)
}
