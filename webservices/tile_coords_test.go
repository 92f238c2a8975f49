package webservices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroundResolution(t *testing.T) {
	assert.InDelta(t, 156543.03, GroundResolution(0, 0), 0.01)
	assert.InDelta(t, 152.874, GroundResolution(0, 10), 0.001)
	assert.InDelta(t, GroundResolution(0, 10)/2, GroundResolution(60, 10), 0.001)
	assert.InDelta(t, GroundResolution(0, 11), GroundResolution(0, 10)/2, 0.001)
}

func TestScaleDenominatorForZoom(t *testing.T) {
	assert.InDelta(t, 577790, ScaleDenominatorForZoom(0, 10, 96), 1)
	assert.InDelta(t, ScaleDenominatorForZoom(0, 10, 96)*2, ScaleDenominatorForZoom(0, 10, 48), 0.001)
}
