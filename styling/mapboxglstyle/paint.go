package mapboxglstyle

import (
	"image/color"
)

type Paint struct {
	BackgroundColor *ColorOrFunctionWrapperType  `json:"background-color"`
	FillColor       *ColorOrFunctionWrapperType  `json:"fill-color"`
	FillOpacity     *NumberOrFunctionWrapperType `json:"fill-opacity"`
	LineColor       *ColorOrFunctionWrapperType  `json:"line-color"`
	LineWidth       *NumberOrFunctionWrapperType `json:"line-width"`
	LineOpacity     *NumberOrFunctionWrapperType `json:"line-opacity"`
	LineDashArray   []float64                    `json:"line-dasharray"`
	CircleColor     *ColorOrFunctionWrapperType  `json:"circle-color"`
	CircleRadius    *NumberOrFunctionWrapperType `json:"circle-radius"`
	TextColor       *ColorOrFunctionWrapperType  `json:"text-color"`
}

const defaultCircleRadius = 5

// withOpacity scales the alpha of c. An unset opacity leaves c unchanged.
func withOpacity(c color.Color, opacity *NumberOrFunctionWrapperType, zoomLevel float64) color.Color {
	if c == nil || !opacity.IsSet() {
		return c
	}

	value := opacity.GetValueAtZoomLevel(zoomLevel)
	if value >= 1 {
		return c
	}
	if value < 0 {
		value = 0
	}

	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = uint8(float64(nrgba.A) * value)
	return nrgba
}
