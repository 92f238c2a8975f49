package cartocss

import (
	"image/color"
)

type filter struct {
	Key    string
	Value  string
	Negate bool
}

type selector struct {
	Layer   string // empty matches every layer
	Filters []filter
}

type declaration struct {
	Property string
	Value    string
	Line     int
}

type ruleProps struct {
	LineColor   color.Color
	LineWidth   float64
	LineDash    []float64
	PolygonFill color.Color
	MarkerFill  color.Color
	MarkerWidth float64
	TextFill    color.Color
	TextSize    float64
}

type rule struct {
	Selectors []selector
	Props     ruleProps
}

type rawRule struct {
	Selectors    []selector
	IsMap        bool
	Declarations []declaration
}

// Style is a parsed cartocss style sheet.
type Style struct {
	id         string
	variables  map[string]string
	background color.Color
	rules      []*rule
}
