package webservices

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/dataset"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getInfo(t *testing.T, ts *testServer) infoType {
	t.Helper()

	w := ts.do(http.MethodGet, "/api/info", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var info infoType
	decodeJSON(t, w, &info)
	return info
}

func TestInfoService(t *testing.T) {
	ts := newTestServer(t)

	info := getInfo(t, ts)
	assert.Equal(t, 96.0, info.DPI)
	require.NotNil(t, info.Map)
	assert.Equal(t, mapInfoType{DataSetName: "Trondheim", ScaleDenominator: 50000, UnitSystem: "metric"}, *info.Map)
	assert.Equal(t, stylesType{
		DefaultStyleID: styling.BUILTIN_STYLEID,
		StyleIDs:       []string{styling.BUILTIN_STYLEID, "night"},
	}, info.Style)
	assert.Equal(t, []string{}, info.LegendIDs)

	id := createLegend(t, ts, "", "style: empty\nlines:\n  - type: text\n    text: Key\n")

	w := ts.do(http.MethodPut, "/api/map/style", `{"mainStyleId": "night"}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	info = getInfo(t, ts)
	assert.Equal(t, []string{id}, info.LegendIDs)
	assert.Equal(t, "night", info.Style.MainStyleID)
	assert.Equal(t, "", info.Style.BlendStyleID)

	ts.fw.Close()

	info = getInfo(t, ts)
	assert.Nil(t, info.Map)
	assert.Equal(t, "", info.Style.MainStyleID)
}

func TestInfoService_DataSet(t *testing.T) {
	ts := newTestServer(t)

	dataSetInfo := &dataset.Info{
		Name:          "trondelag",
		ObjectCount:   3,
		FeatureCounts: map[string]int{"park": 1, "motorway": 2},
	}
	service := NewInfoService(logpkg.NewLogger(io.Discard, logpkg.LogLevelInfo), ts.fw, ts.styleSet, ts.registry, dataSetInfo)

	w := httptest.NewRecorder()
	service.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var info infoType
	decodeJSON(t, w, &info)
	require.NotNil(t, info.DataSet)
	assert.Equal(t, "trondelag", info.DataSet.Name)
	assert.Equal(t, 3, info.DataSet.ObjectCount)
	assert.Equal(t, dataSetInfo.FeatureCounts, info.DataSet.FeatureCounts)
	assert.Nil(t, info.DataSet.Bounds)
}
