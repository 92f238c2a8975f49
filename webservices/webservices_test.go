package webservices

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/stylesheet"
	"github.com/stretchr/testify/require"
)

const testStylesDir = "/styles"

type testServer struct {
	logBuf   *bytes.Buffer
	fw       *framework.Framework
	hostMap  *framework.Map
	registry *LegendRegistry
	styleSet *styling.StyleSet
	fs       mockfs.MockFs
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	logBuf := bytes.NewBuffer(nil)
	logger := logpkg.NewLogger(logBuf, logpkg.LogLevelDebug)

	fs := mockfs.NewMockFs()
	require.NoError(t, fs.MkdirAll(testStylesDir, 0700))
	require.NoError(t, fs.WriteFile(testStylesDir+"/night.mss", []byte("#park { polygon-fill: #000033; }"), 0600))
	require.NoError(t, fs.WriteFile(testStylesDir+"/broken.json", []byte(`{"version": 8, "layers": [`), 0600))

	styleSet, err := stylesheet.LoadStyleSet(logger, fs, testStylesDir, styling.BUILTIN_STYLEID)
	require.NoError(t, err)

	hostMap := framework.NewMap("Trondheim", 50000)
	fw := framework.New(logger, 96, hostMap)
	t.Cleanup(func() {
		runtime.KeepAlive(hostMap)
		runtime.KeepAlive(fw)
	})

	registry := NewLegendRegistry(fw)

	router := chi.NewRouter()
	router.Use(tracing.Middleware(tracing.NewTracer(io.Discard)))
	router.Mount("/api/legends", NewLegendService(logger, fw, registry, fs, testStylesDir, false))
	router.Mount("/api/navigation", NewNavigationService(logger, fw))
	router.Mount("/api/info", NewInfoService(logger, fw, styleSet, registry, nil))
	router.Mount("/api/map", NewMapService(logger, fw, styleSet))
	router.Route("/admin", func(r chi.Router) {
		r.Use(LocalhostOnlyMiddleware)
		r.Mount("/", NewAdminService(logger, fs, testStylesDir, styleSet, registry, "admin"))
	})

	return &testServer{logBuf, fw, hostMap, registry, styleSet, fs, router}
}

func (ts *testServer) doRequest(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, body)
	r.RemoteAddr = "127.0.0.1:40000"
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	return w
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var contentType string
	if strings.HasPrefix(body, "{") {
		contentType = "application/json"
	}
	return ts.doRequest(method, path, contentType, strings.NewReader(body))
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dest))
}
