package webservices

import (
	"math"

	"github.com/jamesrr39/ownmap-legend/units"
)

// earthCircumference is the equatorial circumference used by web mercator tiles, in metres
const (
	earthCircumference = 40075016.686
	tileSize           = 256
)

// GroundResolution is the metres per pixel of a 256 pixel web mercator tile at the zoom level and latitude.
func GroundResolution(lat float64, zoomLevel float64) float64 {
	return math.Cos(lat*math.Pi/180.0) * earthCircumference / (tileSize * math.Exp2(zoomLevel))
}

// ScaleDenominatorForZoom is the map scale when web mercator tiles at the zoom level are shown on a screen with dpi dots per inch.
func ScaleDenominatorForZoom(lat, zoomLevel, dpi float64) float64 {
	return GroundResolution(lat, zoomLevel) / units.NewConverter(dpi).MetresPerPixel()
}
