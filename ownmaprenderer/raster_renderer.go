package ownmaprenderer

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"golang.org/x/image/font"
)

const (
	defaultMarkerSize = 6
	pointSampleText   = "Aa"
)

// RasterRenderer draws legend content: map object samples and text.
type RasterRenderer struct {
	fontSpec fonts.FontSpec
	font     *truetype.Font
}

func NewRasterRenderer(fontSpec fonts.FontSpec) *RasterRenderer {
	return &RasterRenderer{
		fontSpec: fontSpec,
		font:     fontSpec.Font(),
	}
}

func (rr *RasterRenderer) FontSpec() fonts.FontSpec {
	return rr.fontSpec
}

// Sample is a map object drawn in the style it would have on the map.
type Sample struct {
	ObjectType ownmap.ObjectType
	WayStyle   *styling.WayStyle
	NodeStyle  *styling.NodeStyle
	// Rotation of polygon samples, clockwise, in degrees
	Rotation float64
}

// DrawSample draws the sample inside box. Samples without a style draw nothing.
func (rr *RasterRenderer) DrawSample(img *image.RGBA, box image.Rectangle, sample Sample) errorsx.Error {
	if box.Empty() {
		return nil
	}

	switch sample.ObjectType {
	case ownmap.ObjectTypePoint:
		return rr.drawPointSample(img, box, sample.NodeStyle)
	case ownmap.ObjectTypePolygon:
		if sample.WayStyle == nil {
			return nil
		}
		return drawPolygonSample(img, box, sample.WayStyle, sample.Rotation)
	case ownmap.ObjectTypeLine:
		if sample.WayStyle == nil {
			return nil
		}
		return drawLineSample(img, box, sample.WayStyle)
	default:
		return errorsx.Errorf("can't draw a sample of object type %q", sample.ObjectType)
	}
}

func boxBound(box image.Rectangle) orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(box.Min.X), float64(box.Min.Y)},
		Max: orb.Point{float64(box.Max.X), float64(box.Max.Y)},
	}
}

func drawLineSample(img *image.RGBA, box image.Rectangle, wayStyle *styling.WayStyle) errorsx.Error {
	bound := boxBound(box)
	centreY := bound.Center().Y()

	lineStyle := *wayStyle
	if lineStyle.LineColor == nil {
		// a line with only a fill colour is drawn with the fill colour
		lineStyle.LineColor = lineStyle.FillColor
	}
	lineStyle.FillColor = nil

	points := orb.LineString{
		{bound.Min.X(), centreY},
		{bound.Max.X(), centreY},
	}

	gc := draw2dimg.NewGraphicContext(img)
	defer gc.Close()

	return drawLine(gc, points, &lineStyle)
}

func drawPolygonSample(img *image.RGBA, box image.Rectangle, wayStyle *styling.WayStyle, rotation float64) errorsx.Error {
	bound := boxBound(box)

	inset := wayStyle.LineWidth / 2
	ring := orb.Ring{
		{bound.Min.X() + inset, bound.Min.Y() + inset},
		{bound.Max.X() - inset, bound.Min.Y() + inset},
		{bound.Max.X() - inset, bound.Max.Y() - inset},
		{bound.Min.X() + inset, bound.Max.Y() - inset},
		{bound.Min.X() + inset, bound.Min.Y() + inset},
	}

	if rotation != 0 {
		ring = clip.Ring(bound, rotateRing(ring, bound.Center(), rotation))
	}

	if len(ring) == 0 {
		return nil
	}

	gc := draw2dimg.NewGraphicContext(img)
	defer gc.Close()

	return drawLine(gc, orb.LineString(ring), wayStyle)
}

// rotateRing rotates each point of the ring clockwise around the centre (y grows downwards).
func rotateRing(ring orb.Ring, centre orb.Point, degrees float64) orb.Ring {
	radians := degrees * math.Pi / 180
	sin, cos := math.Sincos(radians)

	rotated := make(orb.Ring, len(ring))
	for i, p := range ring {
		dx := p.X() - centre.X()
		dy := p.Y() - centre.Y()
		rotated[i] = orb.Point{
			centre.X() + dx*cos - dy*sin,
			centre.Y() + dx*sin + dy*cos,
		}
	}

	return rotated
}

func (rr *RasterRenderer) drawPointSample(img *image.RGBA, box image.Rectangle, nodeStyle *styling.NodeStyle) errorsx.Error {
	if nodeStyle == nil {
		return nil
	}

	centre := boxBound(box).Center()

	if nodeStyle.MarkerColor != nil {
		size := nodeStyle.MarkerSize
		if size == 0 {
			size = defaultMarkerSize
		}
		size = math.Min(size, float64(min(box.Dx(), box.Dy())))

		gc := draw2dimg.NewGraphicContext(img)
		defer gc.Close()

		gc.SetFillColor(nodeStyle.MarkerColor)
		gc.BeginPath()
		draw2dkit.Circle(gc, centre.X(), centre.Y(), size/2)
		gc.Fill()
		return nil
	}

	if nodeStyle.TextColor == nil {
		return nil
	}

	// a text-only style is shown with sample text
	fontSize := float64(nodeStyle.TextSize)
	if fontSize == 0 {
		fontSize = rr.fontSpec.Size
	}

	face := truetype.NewFace(rr.font, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	width := font.MeasureString(face, pointSampleText).Ceil()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	x := int(centre.X()) - width/2
	y := int(centre.Y()) - textHeight/2 + metrics.Ascent.Ceil()

	return rr.drawString(img, box, pointSampleText, image.Point{X: x, Y: y}, fontSize, nodeStyle.TextColor)
}

// drawString draws text with its baseline starting at pt, clipped to clipRect.
func (rr *RasterRenderer) drawString(img *image.RGBA, clipRect image.Rectangle, text string, pt image.Point, fontSize float64, c color.Color) errorsx.Error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(rr.font)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(clipRect)
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(c))

	_, err := ctx.DrawString(text, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return errorsx.Wrap(err)
	}

	return nil
}

func drawLine(gc *draw2dimg.GraphicContext, points orb.LineString, lineStyle *styling.WayStyle) errorsx.Error {
	if len(points) == 0 {
		return nil
	}

	if lineStyle.FillColor != nil {
		gc.SetFillColor(lineStyle.FillColor)
	}
	if lineStyle.LineColor != nil {
		gc.SetStrokeColor(lineStyle.LineColor)
	}
	lineWidth := lineStyle.LineWidth
	if lineWidth == 0 {
		lineWidth = 1
	}
	gc.SetLineWidth(lineWidth)
	if lineStyle.LineDashPolicy != nil {
		gc.SetLineDash(lineStyle.LineDashPolicy, 0)
	}
	gc.BeginPath()

	for i, point := range points {
		if i == 0 {
			gc.MoveTo(point.X(), point.Y())
		} else {
			gc.LineTo(point.X(), point.Y())
		}
	}

	switch {
	case lineStyle.FillColor != nil && lineStyle.LineColor != nil:
		gc.Close()
		gc.FillStroke()
	case lineStyle.FillColor != nil:
		gc.Close()
		gc.Fill()
	case lineStyle.LineColor != nil:
		gc.Stroke()
	}

	return nil
}
