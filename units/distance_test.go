package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		metres     float64
		unitSystem UnitSystem
		want       string
	}{
		{-5, Metric, "0 m"},
		{203, Metric, "200 m"},
		{996, Metric, "1 km"},
		{1520, Metric, "1.5 km"},
		{12345, Metric, "12 km"},
		{1234567, Metric, "1,235 km"},
		{152.4, Imperial, "500 ft"},
		{MetresPerMile, Imperial, "1 mile"},
		{2.3 * MetresPerMile, Imperial, "2.3 miles"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDistance(tt.metres, tt.unitSystem))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "50,000", FormatNumber(50000, 0))
	assert.Equal(t, "2.5", FormatNumber(2.5, 1))
}

func TestParseUnitSystem(t *testing.T) {
	unitSystem, err := ParseUnitSystem("Imperial")
	require.NoError(t, err)
	assert.Equal(t, Imperial, unitSystem)
	assert.Equal(t, "imperial", unitSystem.String())

	unitSystem, err = ParseUnitSystem("")
	require.NoError(t, err)
	assert.Equal(t, Metric, unitSystem)

	_, err = ParseUnitSystem("nautical")
	require.Error(t, err)
}
