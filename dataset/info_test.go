package dataset

import (
	"errors"
	"testing"
	"time"

	"github.com/jamesrr39/ownmap-legend/dataset/testmocks"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInfo(t *testing.T) {
	replicationTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	header := &osmpbf.Header{
		Bounds:               &osm.Bounds{MinLat: 63, MaxLat: 64, MinLon: 10, MaxLon: 11},
		WritingProgram:       "osmium/1.14.0",
		ReplicationTimestamp: replicationTime,
	}

	reader := testmocks.NewMockPBFReaderFromObjects(
		header,
		&osm.Node{ID: 1, Tags: osm.Tags{{Key: "railway", Value: "station"}, {Key: "name", Value: "Trondheim S"}}},
		&osm.Node{ID: 2},
		&osm.Way{ID: 3, Tags: osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "ref", Value: "E6"}}},
		&osm.Way{ID: 4, Tags: osm.Tags{{Key: "highway", Value: "motorway"}}},
		&osm.Way{ID: 5, Tags: osm.Tags{{Key: "building", Value: "yes"}}},
		&osm.Relation{ID: 6, Tags: osm.Tags{{Key: "leisure", Value: "park"}}},
	)

	info, err := ReadInfo("trondelag", reader)
	require.NoError(t, err)

	assert.Equal(t, &Info{
		Name:            "trondelag",
		Bounds:          header.Bounds,
		ReplicationTime: replicationTime,
		WritingProgram:  "osmium/1.14.0",
		ObjectCount:     6,
		FeatureCounts: map[string]int{
			"station":  1,
			"motorway": 2,
			"park":     1,
		},
	}, info)
	assert.Equal(t, 63.5, info.CentreLatitude())
}

func TestReadInfo_NoHeader(t *testing.T) {
	info, err := ReadInfo("empty", testmocks.NewMockPBFReaderFromObjects(nil))
	require.NoError(t, err)
	assert.Nil(t, info.Bounds)
	assert.Equal(t, 0.0, info.CentreLatitude())
	assert.Equal(t, 0, info.ObjectCount)
}

func TestReadInfo_Errors(t *testing.T) {
	reader := testmocks.NewMockPBFReaderFromObjects(nil)
	reader.HeaderFunc = func() (*osmpbf.Header, error) {
		return nil, errors.New("not a pbf file")
	}
	_, err := ReadInfo("bad", reader)
	require.Error(t, err)

	reader = testmocks.NewMockPBFReaderFromObjects(nil, &osm.Node{ID: 1})
	reader.ErrFunc = func() error {
		return errors.New("unexpected EOF")
	}
	_, err = ReadInfo("truncated", reader)
	require.Error(t, err)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "norway-latest", NameFromPath("/data/norway-latest.osm.pbf"))
	assert.Equal(t, "oslo", NameFromPath("oslo.pbf"))
	assert.Equal(t, "extract", NameFromPath("extract"))
}
