package framework

import (
	"image"
	"sync"

	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
)

// Map is the map a legend is drawn for.
type Map struct {
	mu               sync.RWMutex
	dataSetName      string
	scaleDenominator float64
	unitSystem       units.UnitSystem
	mainStyleSheet   *styling.Sheet
	blendStyleSheet  *styling.Sheet
	notices          *NoticeManager
}

func NewMap(dataSetName string, scaleDenominator float64) *Map {
	return &Map{
		dataSetName:      dataSetName,
		scaleDenominator: scaleDenominator,
		notices:          NewNoticeManager(),
	}
}

func (m *Map) DataSetName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.dataSetName
}

func (m *Map) SetDataSetName(dataSetName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dataSetName = dataSetName
}

func (m *Map) ScaleDenominator() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.scaleDenominator
}

func (m *Map) SetScaleDenominator(scaleDenominator float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scaleDenominator = scaleDenominator
}

// ScaleDenominatorAt returns the scale at a point of the map view. Projections are not modelled,
// so the scale is the same everywhere.
func (m *Map) ScaleDenominatorAt(p image.Point) float64 {
	return m.ScaleDenominator()
}

func (m *Map) UnitSystem() units.UnitSystem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.unitSystem
}

func (m *Map) SetUnitSystem(unitSystem units.UnitSystem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unitSystem = unitSystem
}

// MainStyleSheet returns nil when the map uses the builtin style.
func (m *Map) MainStyleSheet() *styling.Sheet {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.mainStyleSheet
}

func (m *Map) SetMainStyleSheet(sheet *styling.Sheet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mainStyleSheet = sheet
}

// BlendStyleSheet is drawn over the main style sheet, for example for night mode colours.
func (m *Map) BlendStyleSheet() *styling.Sheet {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.blendStyleSheet
}

func (m *Map) SetBlendStyleSheet(sheet *styling.Sheet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blendStyleSheet = sheet
}

func (m *Map) Notices() *NoticeManager {
	return m.notices
}
