package stylesheet

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/styling"
)

var styleFileExtensions = map[string]bool{
	".json": true,
	".mss":  true,
}

// LoadStyleSet loads every style sheet file in dir, keyed by its file name without the extension.
// The builtin style is always part of the set. Files that fail to parse are logged and skipped.
// A missing dir gives a set with only the builtin style.
func LoadStyleSet(logger *logpkg.Logger, fs gofs.Fs, dir string, defaultStyleID string) (*styling.StyleSet, errorsx.Error) {
	sheets := []*styling.Sheet{
		{ID: styling.BUILTIN_STYLEID, Style: &styling.CustomBasicStyle{}},
	}

	fileInfos, err := fs.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errorsx.Wrap(err, "dir", dir)
	}

	sort.Slice(fileInfos, func(a, b int) bool {
		return fileInfos[a].Name() < fileInfos[b].Name()
	})

	for _, fileInfo := range fileInfos {
		ext := filepath.Ext(fileInfo.Name())
		if fileInfo.IsDir() || !styleFileExtensions[ext] {
			continue
		}

		filePath := filepath.Join(dir, fileInfo.Name())
		data, err := fs.ReadFile(filePath)
		if err != nil {
			logger.Warn("error reading style sheet %q. Error: %q", filePath, err)
			continue
		}

		sheet := &styling.Sheet{
			ID:   strings.TrimSuffix(fileInfo.Name(), ext),
			Data: data,
		}

		parseErr := ParseSheet(sheet)
		if parseErr != nil {
			logger.Warn("error loading style sheet %q. Error: %q", filePath, parseErr)
			continue
		}

		if sheet.ID == styling.BUILTIN_STYLEID {
			logger.Warn("style sheet %q can't replace the builtin style", filePath)
			continue
		}

		sheets = append(sheets, sheet)
		logger.Debug("loaded style sheet %q", sheet.ID)
	}

	styleSet, setErr := styling.NewStyleSet(sheets, defaultStyleID)
	if setErr != nil {
		return nil, setErr
	}

	return styleSet, nil
}
