package webservices

import (
	"bytes"
	"image"
	"image/png"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/legend"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
)

type bitmapParams struct {
	Width            float64
	Unit             string
	TopLeft          image.Point
	ScaleDenominator float64
}

// mapState is what the legend reads from the map when it draws. It isn't part of the legend's serial.
type mapState struct {
	alive            bool
	scaleDenominator float64
	unitSystem       units.UnitSystem
	mainSheet        *styling.Sheet
	blendSheet       *styling.Sheet
}

func currentMapState(hostMap *framework.Map) mapState {
	if hostMap == nil {
		return mapState{}
	}

	return mapState{
		alive:            true,
		scaleDenominator: hostMap.ScaleDenominator(),
		unitSystem:       hostMap.UnitSystem(),
		mainSheet:        hostMap.MainStyleSheet(),
		blendSheet:       hostMap.BlendStyleSheet(),
	}
}

type cachedBitmap struct {
	serial   uint64
	params   bitmapParams
	mapState mapState
	png      []byte
}

// registeredLegend is a legend served over HTTP. A legend isn't safe for concurrent use, so access goes through mu.
type registeredLegend struct {
	id string

	mu     sync.Mutex
	legend *legend.Legend
	cache  *cachedBitmap
}

// withLegend runs fn with the legend locked.
func (rl *registeredLegend) withLegend(fn func(l *legend.Legend)) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	fn(rl.legend)
}

// pngBitmap returns the legend as a PNG image. The last image is kept, and returned again until the legend or its map changes.
func (rl *registeredLegend) pngBitmap(params bitmapParams) ([]byte, bool, errorsx.Error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	serial := rl.legend.Serial()
	state := currentMapState(rl.legend.Map())
	if rl.cache != nil && rl.cache.serial == serial && rl.cache.params == params && rl.cache.mapState == state {
		return rl.cache.png, true, nil
	}

	img, err := rl.legend.CreateBitmap(params.Width, params.Unit, params.TopLeft, params.ScaleDenominator)
	if err != nil {
		return nil, false, err
	}

	buf := new(bytes.Buffer)
	encodeErr := png.Encode(buf, img)
	if encodeErr != nil {
		return nil, false, errorsx.Wrap(encodeErr)
	}

	rl.cache = &cachedBitmap{serial, params, state, buf.Bytes()}
	return rl.cache.png, false, nil
}

// LegendRegistry holds the legends created through the API. Registered legends receive the framework's navigation events.
type LegendRegistry struct {
	fw *framework.Framework

	mu      sync.RWMutex
	legends map[string]*registeredLegend
}

func NewLegendRegistry(fw *framework.Framework) *LegendRegistry {
	return &LegendRegistry{
		fw:      fw,
		legends: make(map[string]*registeredLegend),
	}
}

// Add registers the legend, and shows it over the map if notice is set.
// A turn instructions notice replaces the previous one, which stops receiving navigation events.
func (r *LegendRegistry) Add(l *legend.Legend, notice framework.NoticeKind) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.legends[id] = &registeredLegend{id: id, legend: l}
	r.mu.Unlock()

	switch notice {
	case framework.NoticeTurnInstructions:
		r.fw.SetTurnInstructions(l)
	case framework.NoticeScaleBar:
		r.fw.SetScaleBar(l)
		r.fw.AddObserver(l)
	default:
		r.fw.AddObserver(l)
	}

	return id
}

// Get returns nil if there is no legend with the ID.
func (r *LegendRegistry) Get(id string) *registeredLegend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.legends[id]
}

// Remove returns false if there was no legend with the ID.
func (r *LegendRegistry) Remove(id string) bool {
	r.mu.Lock()
	rl, ok := r.legends[id]
	delete(r.legends, id)
	r.mu.Unlock()

	if !ok {
		return false
	}

	r.fw.RemoveObserver(rl.legend)
	if hostMap := r.fw.Map(); hostMap != nil {
		notices := hostMap.Notices()
		if notices.Get(framework.NoticeTurnInstructions) == framework.Notice(rl.legend) {
			r.fw.SetTurnInstructions(nil)
		}
		if notices.Get(framework.NoticeScaleBar) == framework.Notice(rl.legend) {
			r.fw.SetScaleBar(nil)
		}
	}
	return true
}

// IDs returns the IDs of the legends, sorted.
func (r *LegendRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id := range r.legends {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
