package ownmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectType(t *testing.T) {
	objectType, err := ParseObjectType("Polygon")
	require.NoError(t, err)
	assert.Equal(t, ObjectTypePolygon, objectType)

	_, err = ParseObjectType("blob")
	require.Error(t, err)
}

func TestParseFeatureInfo(t *testing.T) {
	for fi := FeatureInfoMotorway; fi <= FeatureInfoStation; fi++ {
		parsed, err := ParseFeatureInfo(fi.String())
		require.NoError(t, err)
		assert.Equal(t, fi, parsed)
	}

	fi, err := ParseFeatureInfo("")
	require.NoError(t, err)
	assert.Equal(t, FeatureInfoUnknown, fi)

	_, err = ParseFeatureInfo("spaceport")
	require.Error(t, err)
}
