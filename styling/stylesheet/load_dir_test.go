package stylesheet

import (
	"bytes"
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyleSet(t *testing.T) {
	logBuf := bytes.NewBuffer(nil)
	logger := logpkg.NewLogger(logBuf, logpkg.LogLevelDebug)

	fs := mockfs.NewMockFs()
	require.NoError(t, fs.MkdirAll("/styles/subdir", 0700))
	require.NoError(t, fs.WriteFile("/styles/night.mss", []byte("#water { polygon-fill: #000033; }"), 0600))
	require.NoError(t, fs.WriteFile("/styles/outdoors.json", []byte(`{"version": 8, "layers": []}`), 0600))
	require.NoError(t, fs.WriteFile("/styles/broken.mss", []byte("#water { polygon-fill: blue;"), 0600))
	require.NoError(t, fs.WriteFile("/styles/README.md", []byte("# styles"), 0600))

	styleSet, err := LoadStyleSet(logger, fs, "/styles", "night")
	require.NoError(t, err)

	assert.Equal(t, []string{styling.BUILTIN_STYLEID, "night", "outdoors"}, styleSet.GetAllStyleIDs())
	assert.Equal(t, "night", styleSet.GetDefaultSheet().ID)
	assert.NotNil(t, styleSet.GetSheetByID("outdoors").Style)
	assert.Contains(t, logBuf.String(), "broken.mss")

	t.Run("missing dir", func(t *testing.T) {
		styleSet, err := LoadStyleSet(logger, fs, "/not-there", styling.BUILTIN_STYLEID)
		require.NoError(t, err)
		assert.Equal(t, []string{styling.BUILTIN_STYLEID}, styleSet.GetAllStyleIDs())
	})

	t.Run("unknown default style", func(t *testing.T) {
		_, err := LoadStyleSet(logger, fs, "/styles", "broken")
		require.Error(t, err)
	})
}
