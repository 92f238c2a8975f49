package legend

import (
	"image"
	"image/color"
	"math"

	"github.com/jamesrr39/ownmap-legend/ownmaprenderer"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// ScaleBar is the length a scale bar shows.
type ScaleBar struct {
	// Metres is the real world length of the bar
	Metres   float64
	LengthPx int
	Label    string
}

type scaleStep struct {
	metres float64
	label  string
}

var (
	metricScaleSteps   = makeScaleSteps([]float64{1, 2, 5, 10, 20, 50, 100, 200, 500}, 1, "m", "m", []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}, 1000, "km", "km")
	imperialScaleSteps = makeScaleSteps([]float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000}, units.MetresPerFoot, "ft", "ft", []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000}, units.MetresPerMile, "mile", "miles")
)

// makeScaleSteps makes the ladder of round lengths, shortest first.
func makeScaleSteps(smallValues []float64, smallUnitMetres float64, smallSingular, smallPlural string, largeValues []float64, largeUnitMetres float64, largeSingular, largePlural string) []scaleStep {
	var steps []scaleStep
	addSteps := func(values []float64, unitMetres float64, singular, plural string) {
		for _, value := range values {
			unitName := plural
			if value == 1 {
				unitName = singular
			}
			steps = append(steps, scaleStep{
				metres: value * unitMetres,
				label:  units.FormatNumber(value, 0) + " " + unitName,
			})
		}
	}
	addSteps(smallValues, smallUnitMetres, smallSingular, smallPlural)
	addSteps(largeValues, largeUnitMetres, largeSingular, largePlural)
	return steps
}

// ScaleBarGeometry chooses the longest round length that fits in maxWidthPx at the scale.
// It returns false if there is no scale, or not even the shortest length fits.
func ScaleBarGeometry(scaleDenominator, dpi float64, maxWidthPx int, unitSystem units.UnitSystem) (ScaleBar, bool) {
	if scaleDenominator <= 0 || dpi <= 0 || maxWidthPx <= 0 {
		return ScaleBar{}, false
	}

	metresPerPixel := scaleDenominator * units.NewConverter(dpi).MetresPerPixel()

	steps := metricScaleSteps
	if unitSystem == units.Imperial {
		steps = imperialScaleSteps
	}

	var chosen *scaleStep
	for i := range steps {
		if steps[i].metres/metresPerPixel > float64(maxWidthPx) {
			break
		}
		chosen = &steps[i]
	}

	if chosen == nil {
		return ScaleBar{}, false
	}

	return ScaleBar{
		Metres:   chosen.metres,
		LengthPx: int(math.Round(chosen.metres / metresPerPixel)),
		Label:    chosen.label,
	}, true
}

// scaleParam is what a scale bar is drawn with.
type scaleParam struct {
	// ScaleDenominator from the caller. 0 uses the map's scale.
	ScaleDenominator float64
	Renderer         *ownmaprenderer.RasterRenderer
	LineHeight       int
	Height           int
	Alignment        Alignment
	DiagramColor     color.Color
	TextColor        color.Color
}

// drawScale draws a scale bar with its label above it, in the area starting at (x, y).
// It draws nothing and returns false if there is no scale, because neither the caller nor the map supplied it.
func (l *Legend) drawScale(gc *draw2dimg.GraphicContext, img *image.RGBA, param scaleParam, x, y, width int, blendColor color.Color, topLeft image.Point) bool {
	scaleDenominator := param.ScaleDenominator
	if scaleDenominator == 0 {
		hostMap := l.hostMap.Value()
		if hostMap == nil {
			return false
		}
		scaleDenominator = hostMap.ScaleDenominatorAt(topLeft)
	}

	barHeight := max(2, param.LineHeight/4)
	tickHeight := barHeight * 2
	haloWidth := max(1, barHeight/2)

	// leave room for the halo at each end
	scaleBar, ok := ScaleBarGeometry(scaleDenominator, l.converter.DPI(), width-2*haloWidth, l.unitSystem())
	if !ok {
		return false
	}

	barX := x + haloWidth
	switch param.Alignment {
	case AlignCenter:
		barX += (width - 2*haloWidth - scaleBar.LengthPx) / 2
	case AlignRight:
		barX += width - 2*haloWidth - scaleBar.LengthPx
	}

	barBottom := float64(y + param.Height - haloWidth)
	barTop := barBottom - float64(barHeight)
	left := float64(barX)
	right := float64(barX + scaleBar.LengthPx)

	bodyColor := styling.BlendColors(param.DiagramColor, blendColor, 0.25)

	// halo, so the bar can be seen on any background
	gc.SetFillColor(blendColor)
	gc.SetStrokeColor(blendColor)
	gc.SetLineWidth(float64(haloWidth * 2))
	gc.BeginPath()
	drawScaleBarOutline(gc, left, right, barTop, barBottom, float64(tickHeight))
	gc.FillStroke()

	gc.SetFillColor(bodyColor)
	gc.BeginPath()
	drawScaleBarOutline(gc, left, right, barTop, barBottom, float64(tickHeight))
	gc.Fill()

	labelLayout := param.Renderer.LayoutText(scaleBar.Label, 0)
	labelWidth := labelLayout.Width()
	labelX := int(left+right)/2 - labelWidth/2
	labelX = max(x, min(labelX, x+width-labelWidth))
	labelTop := int(barBottom) - tickHeight - labelLayout.Height()
	labelRect := image.Rect(labelX, labelTop, labelX+labelWidth, labelTop+labelLayout.Height())

	err := param.Renderer.DrawText(img, labelLayout, labelRect, AlignLeft, param.TextColor)
	if err != nil {
		l.logger.Warn("couldn't draw scale bar label %q: %s", scaleBar.Label, err)
	}

	return true
}

// drawScaleBarOutline adds the bar and its end ticks to the path.
func drawScaleBarOutline(gc *draw2dimg.GraphicContext, left, right, top, bottom, tickHeight float64) {
	barHeight := bottom - top
	tickWidth := barHeight
	draw2dkit.Rectangle(gc, left, top, right, bottom)
	draw2dkit.Rectangle(gc, left, bottom-tickHeight, left+tickWidth, bottom)
	draw2dkit.Rectangle(gc, right-tickWidth, bottom-tickHeight, right, bottom)
}
