package mapboxglstyle

import (
	"bytes"
	"encoding/json"
	"image/color"
	"math"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
)

// NumberOrFunctionWrapperType is a number property, either a constant: `4`
// or a zoom function: `{"base": 1.4, "stops": [[10, 8], [20, 14]]}`
type NumberOrFunctionWrapperType struct {
	Value *float64
	Base  float64
	Stops [][2]float64
}

func (n *NumberOrFunctionWrapperType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(data, []byte("{")):
		var fn struct {
			Base  *float64     `json:"base"`
			Stops [][2]float64 `json:"stops"`
		}
		err := json.Unmarshal(data, &fn)
		if err != nil {
			return err
		}
		if len(fn.Stops) == 0 {
			return errorsx.Errorf("zoom function has no stops: %s", data)
		}
		n.Base = 1
		if fn.Base != nil {
			n.Base = *fn.Base
		}
		n.Stops = fn.Stops
		return nil
	case bytes.HasPrefix(data, []byte("[")):
		// expressions are not evaluated, the property is left unset
		return nil
	default:
		var value float64
		err := json.Unmarshal(data, &value)
		if err != nil {
			return err
		}
		n.Value = &value
		return nil
	}
}

func (n *NumberOrFunctionWrapperType) IsSet() bool {
	return n != nil && (n.Value != nil || len(n.Stops) != 0)
}

// GetValueAtZoomLevel returns 0 for an unset property
func (n *NumberOrFunctionWrapperType) GetValueAtZoomLevel(zoomLevel float64) float64 {
	if !n.IsSet() {
		return 0
	}

	if n.Value != nil {
		return *n.Value
	}

	lower, upper, t := stopPosition(n.Stops, n.Base, zoomLevel, func(stop [2]float64) float64 { return stop[0] })
	return n.Stops[lower][1] + (n.Stops[upper][1]-n.Stops[lower][1])*t
}

type colorStop struct {
	Zoom  float64
	Color color.Color
}

// ColorOrFunctionWrapperType is a colour property, either a constant: `"#aad3df"`
// or a zoom function: `{"stops": [[6, "#fff"], [12, "#eee"]]}`
type ColorOrFunctionWrapperType struct {
	Value color.Color
	Base  float64
	Stops []colorStop
}

func (c *ColorOrFunctionWrapperType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(data, []byte("{")):
		var fn struct {
			Base  *float64            `json:"base"`
			Stops [][]json.RawMessage `json:"stops"`
		}
		err := json.Unmarshal(data, &fn)
		if err != nil {
			return err
		}
		if len(fn.Stops) == 0 {
			return errorsx.Errorf("zoom function has no stops: %s", data)
		}

		c.Base = 1
		if fn.Base != nil {
			c.Base = *fn.Base
		}
		for _, rawStop := range fn.Stops {
			if len(rawStop) != 2 {
				return errorsx.Errorf("expected a stop of [zoom, colour] but found %d values", len(rawStop))
			}
			var zoom float64
			var colorText string
			err = json.Unmarshal(rawStop[0], &zoom)
			if err != nil {
				return err
			}
			err = json.Unmarshal(rawStop[1], &colorText)
			if err != nil {
				return err
			}
			stopColor, errx := styling.ParseColor(colorText)
			if errx != nil {
				return errx
			}
			c.Stops = append(c.Stops, colorStop{zoom, stopColor})
		}
		return nil
	case bytes.HasPrefix(data, []byte("[")):
		return nil
	default:
		var colorText string
		err := json.Unmarshal(data, &colorText)
		if err != nil {
			return err
		}
		value, errx := styling.ParseColor(colorText)
		if errx != nil {
			return errx
		}
		c.Value = value
		return nil
	}
}

// GetColorAtZoomLevel returns nil for an unset property
func (c *ColorOrFunctionWrapperType) GetColorAtZoomLevel(zoomLevel float64) color.Color {
	if c == nil {
		return nil
	}

	if c.Value != nil || len(c.Stops) == 0 {
		return c.Value
	}

	lower, upper, t := stopPosition(c.Stops, c.Base, zoomLevel, func(stop colorStop) float64 { return stop.Zoom })
	return styling.BlendColors(c.Stops[lower].Color, c.Stops[upper].Color, t)
}

// stopPosition finds the stops either side of the zoom level, and how far between them it is.
// Stops are expected in ascending zoom order.
func stopPosition[T any](stops []T, base, zoomLevel float64, zoomOf func(T) float64) (int, int, float64) {
	if zoomLevel <= zoomOf(stops[0]) {
		return 0, 0, 0
	}

	last := len(stops) - 1
	if zoomLevel >= zoomOf(stops[last]) {
		return last, last, 0
	}

	upper := 1
	for zoomOf(stops[upper]) < zoomLevel {
		upper++
	}
	lower := upper - 1

	lowerZoom, upperZoom := zoomOf(stops[lower]), zoomOf(stops[upper])
	return lower, upper, interpolationFactor(base, zoomLevel-lowerZoom, upperZoom-lowerZoom)
}

func interpolationFactor(base, progress, difference float64) float64 {
	if difference == 0 {
		return 0
	}
	if base == 1 {
		return progress / difference
	}
	return (math.Pow(base, progress) - 1) / (math.Pow(base, difference) - 1)
}
