package stylesheet

import (
	"bytes"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/cartocss"
	"github.com/jamesrr39/ownmap-legend/styling/mapboxglstyle"
)

// Parse reads a style sheet in either of the supported formats. Mapbox GL styles are JSON
// documents, so anything starting with "{" is read as one; everything else is read as cartocss.
func Parse(id string, data []byte) (styling.Style, errorsx.Error) {
	if IsMapboxGLStyle(data) {
		style, err := mapboxglstyle.Parse(id, data)
		if err != nil {
			return nil, err
		}
		return style, nil
	}

	style, err := cartocss.Parse(id, string(data))
	if err != nil {
		return nil, err
	}
	return style, nil
}

// IsMapboxGLStyle reports whether data is read as a Mapbox GL style rather than cartocss.
func IsMapboxGLStyle(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

// ParseSheet parses the data of the sheet, and sets the sheet's Style.
func ParseSheet(sheet *styling.Sheet) errorsx.Error {
	style, err := Parse(sheet.ID, sheet.Data)
	if err != nil {
		return errorsx.Wrap(err, "styleID", sheet.ID)
	}
	sheet.Style = style
	return nil
}
