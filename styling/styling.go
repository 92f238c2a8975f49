package styling

import (
	"errors"
	"image/color"
	"sort"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

const BUILTIN_STYLEID = "__ownmap_builtin"

// ErrParse is the cause of every error returned by a style sheet parser.
var ErrParse = errors.New("style sheet parse error")

// WayStyle is the style of a line or polygon.
type WayStyle struct {
	FillColor      color.Color
	LineColor      color.Color
	LineDashPolicy []float64
	LineWidth      float64
}

// NodeStyle is the style of a point object.
type NodeStyle struct {
	TextSize    int
	TextColor   color.Color
	MarkerColor color.Color
	MarkerSize  float64
}

type Style interface {
	GetNodeStyle(layer string, tags osm.Tags) (*NodeStyle, errorsx.Error)
	GetWayStyle(layer string, tags osm.Tags) (*WayStyle, errorsx.Error)
	// GetBackground returns nil if the style does not set a background
	GetBackground() color.Color
	GetStyleID() string
}

// Sheet is the raw text of a style sheet, together with the style parsed from it.
type Sheet struct {
	ID    string
	Data  []byte
	Style Style
}

type StyleSet struct {
	mu             sync.RWMutex
	sheetsMap      map[string]*Sheet // map[Style ID]Sheet
	defaultStyleID string
}

func NewStyleSet(sheets []*Sheet, defaultStyleID string) (*StyleSet, errorsx.Error) {
	styleSet := &StyleSet{
		sheetsMap:      make(map[string]*Sheet),
		defaultStyleID: defaultStyleID,
	}

	defaultIDFound := false

	for _, sheet := range sheets {
		_, ok := styleSet.sheetsMap[sheet.ID]
		if ok {
			return nil, errorsx.Errorf("duplicate style ID found: %q", sheet.ID)
		}

		styleSet.sheetsMap[sheet.ID] = sheet

		if defaultStyleID == sheet.ID {
			defaultIDFound = true
		}
	}

	if !defaultIDFound {
		return nil, errorsx.Errorf("default ID %q not found in any supplied styles", defaultStyleID)
	}

	return styleSet, nil
}

// AddSheet adds a sheet, or replaces the sheet with the same ID.
func (s *StyleSet) AddSheet(sheet *Sheet) errorsx.Error {
	if sheet.ID == BUILTIN_STYLEID {
		return errorsx.Errorf("the builtin style can't be replaced")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sheetsMap[sheet.ID] = sheet
	return nil
}

func (s *StyleSet) GetSheetByID(id string) *Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sheetsMap[id]
}

func (s *StyleSet) GetDefaultSheet() *Sheet {
	return s.GetSheetByID(s.defaultStyleID)
}

func (s *StyleSet) DefaultStyleID() string {
	return s.defaultStyleID
}

// GetAllStyleIDs returns the style IDs, sorted.
func (s *StyleSet) GetAllStyleIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var styleIDs []string
	for id := range s.sheetsMap {
		styleIDs = append(styleIDs, id)
	}
	sort.Strings(styleIDs)

	return styleIDs
}
