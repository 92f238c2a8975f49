package legend

import (
	"image"
	"image/color"
	"math"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/navigation"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/jamesrr39/ownmap-legend/ownmaprenderer"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/stylesheet"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/paulmach/orb"
)

// Limits on the size of a legend bitmap. Anything bigger is a layout error.
const (
	maxBitmapDimension = 1 << 14
	maxBitmapPixels    = 1 << 25
)

// resolvedConfig is the configuration with every dimension in pixels.
type resolvedConfig struct {
	width          int
	margin         int
	borderWidth    int
	borderRadius   int
	minLineHeight  int
	labelWrapWidth int
	lineHeight     int
}

func (l *Legend) resolveConfig(width float64, unit string) (resolvedConfig, errorsx.Error) {
	rc := resolvedConfig{
		width:          int(l.converter.Pixels(width, unit)),
		margin:         max(0, int(l.config.Margin.Pixels(l.converter))),
		borderWidth:    max(0, int(l.config.Border.StrokeWidth.Pixels(l.converter))),
		borderRadius:   max(0, int(l.config.Border.Radius.Pixels(l.converter))),
		minLineHeight:  max(0, int(l.config.MinLineHeight.Pixels(l.converter))),
		labelWrapWidth: max(0, int(l.config.LabelWrapWidth.Pixels(l.converter))),
		lineHeight:     l.renderer.LineHeight(),
	}

	if rc.width <= 0 || rc.width > maxBitmapDimension {
		return rc, errorsx.Wrap(ErrLayout, "widthPx", rc.width, "maxWidthPx", maxBitmapDimension)
	}

	if rc.contentWidth() <= 0 {
		return rc, errorsx.Wrap(ErrLayout, "widthPx", rc.width, "contentWidthPx", rc.contentWidth())
	}

	return rc, nil
}

func (rc resolvedConfig) inset() int {
	return rc.margin + rc.borderWidth
}

func (rc resolvedConfig) contentWidth() int {
	return rc.width - 2*rc.inset()
}

// textWidth is the width text is wrapped at.
func (rc resolvedConfig) textWidth(available int) int {
	if rc.labelWrapWidth > 0 {
		return min(rc.labelWrapWidth, available)
	}
	return available
}

// sampleBox is the size of a map object sample
func (rc resolvedConfig) sampleBox() image.Point {
	height := max(rc.minLineHeight, rc.lineHeight)
	return image.Point{X: 2 * height, Y: height}
}

func (rc resolvedConfig) sampleGap() int {
	return rc.lineHeight / 2
}

func (rc resolvedConfig) scaleLineHeight() int {
	return max(rc.minLineHeight, 2*rc.lineHeight)
}

func (rc resolvedConfig) turnDiagramSize() int {
	return 2 * rc.lineHeight
}

// mergedStyle is the style samples are drawn with: the legend's main style sheet or the map's, with
// the map's blend style sheet and the legend's extra style sheet over it.
func (l *Legend) mergedStyle() (styling.Style, errorsx.Error) {
	hostMap := l.hostMap.Value()

	mainSheet := l.config.MainStyleSheet
	if mainSheet == nil && hostMap != nil {
		mainSheet = hostMap.MainStyleSheet()
	}

	var base styling.Style = &styling.CustomBasicStyle{}
	if mainSheet != nil {
		style, err := sheetStyle(mainSheet)
		if err != nil {
			return nil, err
		}
		base = style
	}

	var overlaySheets []*styling.Sheet
	if hostMap != nil {
		overlaySheets = append(overlaySheets, hostMap.BlendStyleSheet())
	}
	overlaySheets = append(overlaySheets, l.config.ExtraStyleSheet)

	var overlays []styling.Style
	for _, sheet := range overlaySheets {
		if sheet == nil {
			continue
		}
		style, err := sheetStyle(sheet)
		if err != nil {
			return nil, err
		}
		overlays = append(overlays, style)
	}

	return styling.Blend(base, overlays...), nil
}

// sheetStyle returns the style of a sheet, parsing it if it hasn't been parsed. The sheet is not changed,
// as it may be shared with the map or other legends.
func sheetStyle(sheet *styling.Sheet) (styling.Style, errorsx.Error) {
	if sheet.Style != nil {
		return sheet.Style, nil
	}

	style, err := stylesheet.Parse(sheet.ID, sheet.Data)
	if err != nil {
		return nil, errorsx.Wrap(ErrStyle, "styleID", sheet.ID, "reason", err.Error())
	}

	return style, nil
}

// measuredLine is a line with everything needed to draw it.
type measuredLine struct {
	line   Line
	height int
	text   ownmaprenderer.TextLayout
	// turn is the turn a diagram is drawn for. Nil draws no diagram.
	turn *navigation.Turn
}

func (l *Legend) measureLines(rc resolvedConfig, navigationState navigation.State) []measuredLine {
	var measured []measuredLine
	for _, line := range l.lines {
		m := measuredLine{line: line}

		switch line := line.(type) {
		case TextLine:
			m.text = l.renderer.LayoutText(line.Text, rc.textWidth(rc.contentWidth()))
			m.height = m.text.Height()
		case MapObjectLine:
			sampleBox := rc.sampleBox()
			labelWidth := max(1, rc.contentWidth()-sampleBox.X-rc.sampleGap())
			m.text = l.renderer.LayoutText(line.Label, rc.textWidth(labelWidth))
			m.height = max(sampleBox.Y, m.text.Height())
		case ScaleLine:
			m.height = rc.scaleLineHeight()
		case TurnLine:
			text := navigation.Instruction(navigationState, line.Abbreviate, l.unitSystem())
			textWidth := rc.contentWidth()
			if !line.Abbreviate {
				m.turn = navigation.CurrentTurn(navigationState)
			}
			if m.turn != nil {
				textWidth = max(1, textWidth-rc.turnDiagramSize()-rc.sampleGap())
			}
			m.text = l.renderer.LayoutText(text, rc.textWidth(textWidth))
			m.height = m.text.Height()
			if m.turn != nil {
				m.height = max(m.height, rc.turnDiagramSize())
			}
		}

		measured = append(measured, m)
	}
	return measured
}

// CreateBitmap draws the legend, width wide. topLeft is the position of the legend on the map; it is
// where the scale is read from. A scaleDenominator of 0 uses the map's scale.
//
// The legend is not changed. On failure no image is returned, and the cause of the error is ErrLayout or ErrStyle.
func (l *Legend) CreateBitmap(width float64, unit string, topLeft image.Point, scaleDenominator float64) (*image.RGBA, errorsx.Error) {
	img, err := l.createBitmapInternal(width, unit, topLeft, scaleDenominator)
	if err != nil {
		l.logger.Debug("couldn't create legend bitmap: %s", err)
		return nil, errorsx.Wrap(err, "width", width, "unit", unit)
	}

	return img, nil
}

func (l *Legend) createBitmapInternal(width float64, unit string, topLeft image.Point, scaleDenominator float64) (*image.RGBA, errorsx.Error) {
	rc, err := l.resolveConfig(width, unit)
	if err != nil {
		return nil, err
	}

	style, err := l.mergedStyle()
	if err != nil {
		return nil, err
	}

	navigationState := l.navigationState.Load().Snapshot()
	measured := l.measureLines(rc, navigationState)

	height := 2 * rc.inset()
	for _, m := range measured {
		height += m.height
	}
	if height <= 0 {
		return nil, errorsx.Wrap(ErrLayout, "heightPx", height)
	}
	if height > maxBitmapDimension || rc.width*height > maxBitmapPixels {
		return nil, errorsx.Wrap(ErrLayout, "widthPx", rc.width, "heightPx", height, "maxPixels", maxBitmapPixels)
	}

	img := ownmaprenderer.NewImageWithBackground(image.Rect(0, 0, rc.width, height), color.Transparent)
	gc := draw2dimg.NewGraphicContext(img)

	l.drawBackground(gc, rc, height)

	x := rc.inset()
	y := rc.inset()
	for _, m := range measured {
		if m.height == 0 {
			continue
		}

		area := image.Rect(x, y, x+rc.contentWidth(), y+m.height)
		switch line := m.line.(type) {
		case TextLine:
			err = l.drawTextLayout(img, m.text, area)
		case MapObjectLine:
			err = l.drawMapObjectLine(img, rc, style, line, m, area)
		case ScaleLine:
			l.drawScale(gc, img, scaleParam{
				ScaleDenominator: scaleDenominator,
				Renderer:         l.renderer,
				LineHeight:       rc.lineHeight,
				Height:           m.height,
				Alignment:        l.config.Alignment,
				DiagramColor:     l.config.DiagramColor,
				TextColor:        l.config.TextColor,
			}, area.Min.X, area.Min.Y, area.Dx(), l.scaleBlendColor(), topLeft)
		case TurnLine:
			err = l.drawTurnLine(gc, img, rc, m, area)
		}
		if err != nil {
			return nil, errorsx.Wrap(err, "lineType", lineTypeName(m.line))
		}

		y += m.height
	}

	return img, nil
}

func lineTypeName(line Line) string {
	switch line.(type) {
	case MapObjectLine:
		return "map object"
	case TextLine:
		return "text"
	case ScaleLine:
		return "scale"
	case TurnLine:
		return "turn"
	default:
		return "unknown"
	}
}

// scaleBlendColor is the colour the scale bar is blended with, so it shows up against the legend background.
func (l *Legend) scaleBlendColor() color.Color {
	_, _, _, a := l.config.BackgroundColor.RGBA()
	if a == 0 {
		return color.White
	}
	r, g, b, _ := l.config.BackgroundColor.RGBA()
	return color.RGBA64{R: uint16(r * 0xffff / a), G: uint16(g * 0xffff / a), B: uint16(b * 0xffff / a), A: 0xffff}
}

func (l *Legend) drawBackground(gc *draw2dimg.GraphicContext, rc resolvedConfig, height int) {
	// the stroke is centred on the path, so inset it by half its width
	halfBorder := float64(rc.borderWidth) / 2
	x1, y1 := halfBorder, halfBorder
	x2, y2 := float64(rc.width)-halfBorder, float64(height)-halfBorder
	radius := float64(rc.borderRadius) * 2

	gc.SetFillColor(l.config.BackgroundColor)
	gc.BeginPath()
	if radius > 0 {
		draw2dkit.RoundedRectangle(gc, x1, y1, x2, y2, radius, radius)
	} else {
		draw2dkit.Rectangle(gc, x1, y1, x2, y2)
	}

	if rc.borderWidth == 0 || l.config.Border.Color == nil {
		gc.Fill()
		return
	}

	gc.SetStrokeColor(l.config.Border.Color)
	gc.SetLineWidth(float64(rc.borderWidth))
	gc.FillStroke()
}

func (l *Legend) drawTextLayout(img *image.RGBA, layout ownmaprenderer.TextLayout, area image.Rectangle) errorsx.Error {
	return l.renderer.DrawText(img, layout, area, l.config.Alignment, l.config.TextColor)
}

func (l *Legend) drawMapObjectLine(img *image.RGBA, rc resolvedConfig, style styling.Style, line MapObjectLine, m measuredLine, area image.Rectangle) errorsx.Error {
	sampleBox := rc.sampleBox()
	sampleRect := image.Rect(area.Min.X, area.Min.Y, area.Min.X+sampleBox.X, area.Min.Y+sampleBox.Y)
	if m.height > sampleBox.Y {
		sampleRect = sampleRect.Add(image.Point{Y: (m.height - sampleBox.Y) / 2})
	}

	sample := ownmaprenderer.Sample{
		ObjectType: line.Type,
		Rotation:   l.config.PolygonRotation,
	}

	tags := ownmap.FeatureTags(line.FeatureInfo, line.StringAttribute)
	var styleErr errorsx.Error
	switch line.Type {
	case ownmap.ObjectTypePoint:
		sample.NodeStyle, styleErr = style.GetNodeStyle(line.Layer, tags)
	case ownmap.ObjectTypeLine, ownmap.ObjectTypePolygon:
		sample.WayStyle, styleErr = style.GetWayStyle(line.Layer, tags)
	}

	if styleErr != nil {
		l.logger.Warn("couldn't get the style of legend sample %q: %s", line.Label, styleErr)
	} else {
		err := l.renderer.DrawSample(img, sampleRect, sample)
		if err != nil {
			return errorsx.Wrap(err, "label", line.Label)
		}
	}

	labelX := sampleRect.Max.X + rc.sampleGap()
	labelTop := area.Min.Y + (m.height-m.text.Height())/2
	labelRect := image.Rect(labelX, labelTop, area.Max.X, labelTop+m.text.Height())

	return l.renderer.DrawText(img, m.text, labelRect, AlignLeft, l.config.TextColor)
}

func (l *Legend) drawTurnLine(gc *draw2dimg.GraphicContext, img *image.RGBA, rc resolvedConfig, m measuredLine, area image.Rectangle) errorsx.Error {
	textArea := area
	if m.turn != nil {
		size := rc.turnDiagramSize()
		diagramRect := image.Rect(area.Min.X, area.Min.Y, area.Min.X+size, area.Min.Y+size)
		drawTurnDiagram(gc, diagramRect, m.turn.Direction, l.config.DiagramColor)
		textArea.Min.X = diagramRect.Max.X + rc.sampleGap()
	}

	textTop := textArea.Min.Y + (m.height-m.text.Height())/2
	textArea = image.Rect(textArea.Min.X, textTop, textArea.Max.X, textTop+m.text.Height())

	return l.drawTextLayout(img, m.text, textArea)
}

// turnAngles is the direction of the arrow for each turn, in degrees clockwise from straight ahead.
var turnAngles = map[navigation.TurnDirection]float64{
	navigation.TurnAhead:      0,
	navigation.TurnBearRight:  45,
	navigation.TurnRight:      90,
	navigation.TurnSharpRight: 135,
	navigation.TurnAround:     180,
	navigation.TurnSharpLeft:  -135,
	navigation.TurnLeft:       -90,
	navigation.TurnBearLeft:   -45,
	navigation.TurnRoundabout: 0,
}

// drawTurnDiagram draws an arrow coming up from the bottom of rect and bending in the direction of the turn.
func drawTurnDiagram(gc *draw2dimg.GraphicContext, rect image.Rectangle, direction navigation.TurnDirection, c color.Color) {
	angle, ok := turnAngles[direction]
	if !ok {
		return
	}

	size := float64(rect.Dx())
	centre := orb.Point{float64(rect.Min.X) + size/2, float64(rect.Min.Y) + size/2}
	lineWidth := math.Max(2, size/8)
	armLength := size * 0.4

	radians := angle * math.Pi / 180
	tip := orb.Point{
		centre[0] + armLength*math.Sin(radians),
		centre[1] - armLength*math.Cos(radians),
	}

	gc.SetStrokeColor(c)
	gc.SetFillColor(c)
	gc.SetLineWidth(lineWidth)

	if direction == navigation.TurnRoundabout {
		gc.BeginPath()
		draw2dkit.Circle(gc, centre[0], centre[1], size/5)
		gc.Stroke()
	}

	// the road coming in
	gc.BeginPath()
	gc.MoveTo(centre[0], float64(rect.Max.Y))
	gc.LineTo(centre[0], centre[1])
	gc.LineTo(tip[0], tip[1])
	gc.Stroke()

	// the arrow head
	headLength := size / 4
	back := radians + math.Pi
	left := orb.Point{
		tip[0] + headLength*math.Sin(back-math.Pi/6),
		tip[1] - headLength*math.Cos(back-math.Pi/6),
	}
	right := orb.Point{
		tip[0] + headLength*math.Sin(back+math.Pi/6),
		tip[1] - headLength*math.Cos(back+math.Pi/6),
	}

	gc.BeginPath()
	gc.MoveTo(tip[0], tip[1])
	gc.LineTo(left[0], left[1])
	gc.LineTo(right[0], right[1])
	gc.Close()
	gc.Fill()
}
