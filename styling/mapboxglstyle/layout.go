package mapboxglstyle

const VisibilityNone = "none"

type Layout struct {
	Visibility      string                       `json:"visibility"`
	LineCap         string                       `json:"line-cap"`
	LineJoin        string                       `json:"line-join"`
	TextSize        *NumberOrFunctionWrapperType `json:"text-size"` // float64 or {"base": 1.4, "stops": [[10, 8], [20, 14]]}
	SymbolPlacement string                       `json:"symbol-placement"`
	TextTransform   string                       `json:"text-transform"`
}
