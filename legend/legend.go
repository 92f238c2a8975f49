package legend

import (
	"sync/atomic"
	"weak"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/navigation"
	"github.com/jamesrr39/ownmap-legend/ownmaprenderer"
	"github.com/jamesrr39/ownmap-legend/units"
)

// Legend draws a key to a map: samples of map objects, text, a scale bar and turn instructions.
//
// A legend is not safe for concurrent use, except for the navigation.Observer methods,
// which may be called from any goroutine.
type Legend struct {
	logger    *logpkg.Logger
	converter *units.Converter
	// the map may hold the legend through its notices, so it is only weakly referenced
	hostMap  weak.Pointer[framework.Map]
	renderer *ownmaprenderer.RasterRenderer
	lines    []Line
	config   Config

	navigationState atomic.Pointer[navigation.ThreadSafeState]
	serial          atomic.Uint64
}

var _ navigation.Observer = &Legend{}
var _ framework.Notice = &Legend{}

// New creates a legend for the framework's map. Unless flags is EmptyStyle, the legend starts with the lines the flags ask for.
func New(fw *framework.Framework, flags StyleFlags) *Legend {
	l := &Legend{
		logger:    fw.Logger(),
		converter: units.NewConverter(fw.DPI()),
		config:    DefaultConfig(),
	}
	l.navigationState.Store(navigation.NewThreadSafeState())

	var dataSetName string
	var scaleDenominator float64
	if hostMap := fw.Map(); hostMap != nil {
		l.hostMap = weak.Make(hostMap)
		dataSetName = hostMap.DataSetName()
		scaleDenominator = hostMap.ScaleDenominator()
	}

	l.applyStyleFlags(flags)
	l.deriveRenderer()

	if flags != EmptyStyle {
		l.populate(flags, dataSetName, scaleDenominator)
	}

	return l
}

// Clone returns a copy of the legend. Lines and configuration are copied; the navigation state and the map are shared.
func (l *Legend) Clone() *Legend {
	c := &Legend{}
	c.copyFrom(l)
	c.serial.Store(l.serial.Load())
	return c
}

// Assign makes the legend a copy of other, in the same way as Clone.
func (l *Legend) Assign(other *Legend) {
	if l == other {
		return
	}

	serial := l.Serial()
	l.copyFrom(other)
	l.setSerialAbove(serial)
}

func (l *Legend) copyFrom(other *Legend) {
	l.logger = other.logger
	l.converter = other.converter
	l.hostMap = other.hostMap
	l.lines = other.Lines()
	l.config = other.config
	l.navigationState.Store(other.navigationState.Load())
	l.deriveRenderer()
}

// deriveRenderer makes the renderer for the current font configuration.
func (l *Legend) deriveRenderer() {
	l.renderer = ownmaprenderer.NewRasterRenderer(fonts.FontSpec{
		Family: l.config.FontFamily,
		Style:  l.config.FontStyle,
		Size:   float64(l.config.FontSize.Pixels(l.converter)),
	})
}

// Serial changes whenever something that changes the bitmap changes, including the navigation state.
// It never goes down.
func (l *Legend) Serial() uint64 {
	return l.serial.Load() + l.navigationState.Load().Serial()
}

func (l *Legend) bumpSerial() {
	l.serial.Add(1)
}

// setSerialAbove makes the serial greater than previous, whatever the current navigation state serial is.
func (l *Legend) setSerialAbove(previous uint64) {
	l.serial.Store(previous + 1)
}

// Map returns nil if the map has gone.
func (l *Legend) Map() *framework.Map {
	return l.hostMap.Value()
}

func (l *Legend) unitSystem() units.UnitSystem {
	if hostMap := l.hostMap.Value(); hostMap != nil {
		return hostMap.UnitSystem()
	}
	return units.Metric
}
