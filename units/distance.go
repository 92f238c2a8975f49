package units

import (
	"math"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// UnitSystem is the system real world distances are shown in.
type UnitSystem int

const (
	Metric UnitSystem = iota
	Imperial
)

const (
	MetresPerFoot = 0.3048
	MetresPerMile = 1609.344

	feetPerMile = 5280
)

func (u UnitSystem) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

func ParseUnitSystem(value string) (UnitSystem, errorsx.Error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return Metric, errorsx.Errorf("unknown unit system: %q", value)
	}
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// FormatNumber formats with thousands separators and at most maxFractionDigits decimals.
func FormatNumber(value float64, maxFractionDigits int) string {
	return newPrinter().Sprint(number.Decimal(value, number.MaxFractionDigits(maxFractionDigits)))
}

// FormatDistance formats a distance for a person to read: "200 m", "1.5 km", "500 ft", "2.3 miles".
// Short distances are rounded to 10 m or 10 ft.
func FormatDistance(metres float64, unitSystem UnitSystem) string {
	metres = math.Max(metres, 0)

	if unitSystem == Imperial {
		feet := metres / MetresPerFoot
		if feet < feetPerMile/10 {
			return FormatNumber(math.Round(feet/10)*10, 0) + " ft"
		}
		return formatLarge(metres/MetresPerMile, "mile", "miles")
	}

	if rounded := math.Round(metres/10) * 10; rounded < 1000 {
		return FormatNumber(rounded, 0) + " m"
	}
	return formatLarge(metres/1000, "km", "km")
}

func formatLarge(value float64, singular, plural string) string {
	fractionDigits := 1
	if value >= 10 {
		fractionDigits = 0
	}

	text := FormatNumber(value, fractionDigits)
	if text == "1" {
		return text + " " + singular
	}
	return text + " " + plural
}
