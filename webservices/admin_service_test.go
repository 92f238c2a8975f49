package webservices

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleSheetUploadBody(t *testing.T, styleID, fileName string, data []byte) (*bytes.Buffer, string) {
	body := bytes.NewBuffer(nil)
	writer := multipart.NewWriter(body)

	require.NoError(t, writer.WriteField("styleId", styleID))
	part, err := writer.CreateFormFile("styleSheet", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestAdminService_PostStyleSheet(t *testing.T) {
	ts := newTestServer(t)

	data := []byte("#water { polygon-fill: #000080; }")
	body, contentType := styleSheetUploadBody(t, "dusk", "dusk.mss", data)
	w := ts.doRequest(http.MethodPost, "/admin/styleSheet", contentType, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	sheet := ts.styleSet.GetSheetByID("dusk")
	require.NotNil(t, sheet)
	assert.NotNil(t, sheet.Style)

	written, err := ts.fs.ReadFile(testStylesDir + "/dusk.mss")
	require.NoError(t, err)
	assert.Equal(t, data, written)

	mapboxData := []byte(`{"version": 8, "layers": []}`)
	body, contentType = styleSheetUploadBody(t, "outdoors", "style.json", mapboxData)
	w = ts.doRequest(http.MethodPost, "/admin/styleSheet", contentType, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	written, err = ts.fs.ReadFile(testStylesDir + "/outdoors.json")
	require.NoError(t, err)
	assert.Equal(t, mapboxData, written)

	// uploaded sheets can be used by the map straight away
	w = ts.do(http.MethodPut, "/api/map/style", `{"mainStyleId": "dusk"}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/admin/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dusk")
	assert.Contains(t, w.Body.String(), "outdoors")
}

func TestAdminService_PostStyleSheetErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		styleID    string
		data       string
		wantStatus int
	}{
		{"path in style ID", "../dusk", "#water { polygon-fill: #000080; }", http.StatusBadRequest},
		{"empty style ID", "", "#water { polygon-fill: #000080; }", http.StatusBadRequest},
		{"builtin style ID", styling.BUILTIN_STYLEID, "#water { polygon-fill: #000080; }", http.StatusBadRequest},
		{"bad cartocss", "dusk", "#water { polygon-fill: #000080;", http.StatusUnprocessableEntity},
		{"bad mapbox gl style", "dusk", `{"version": 8, "layers": [`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := styleSheetUploadBody(t, tt.styleID, "upload", []byte(tt.data))
			w := ts.doRequest(http.MethodPost, "/admin/styleSheet", contentType, body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	assert.Nil(t, ts.styleSet.GetSheetByID("dusk"))

	w := ts.doRequest(http.MethodPost, "/admin/styleSheet", "text/plain", bytes.NewBufferString("not a form"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocalhostOnlyMiddleware(t *testing.T) {
	ts := newTestServer(t)

	for remoteAddr, wantStatus := range map[string]int{
		"127.0.0.1:40000": http.StatusOK,
		"[::1]:40000":     http.StatusOK,
		"192.0.2.10:5000": http.StatusForbidden,
		"not an address":  http.StatusForbidden,
	} {
		t.Run(remoteAddr, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/", nil)
			r.RemoteAddr = remoteAddr

			w := httptest.NewRecorder()
			ts.handler.ServeHTTP(w, r)
			assert.Equal(t, wantStatus, w.Code)
		})
	}
}
