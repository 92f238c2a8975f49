package framework

import (
	"sync"
	"time"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/navigation"
	"github.com/jamesrr39/ownmap-legend/units"
)

// Framework owns the map and passes navigation events on to its observers.
type Framework struct {
	logger *logpkg.Logger
	dpi    float64

	mu        sync.RWMutex
	hostMap   *Map
	observers []navigation.Observer
}

func New(logger *logpkg.Logger, dpi float64, hostMap *Map) *Framework {
	if dpi <= 0 {
		dpi = units.DefaultDPI
	}

	return &Framework{
		logger:  logger,
		dpi:     dpi,
		hostMap: hostMap,
	}
}

func (fw *Framework) Logger() *logpkg.Logger {
	return fw.logger
}

func (fw *Framework) DPI() float64 {
	return fw.dpi
}

// Map returns nil after the framework has been closed.
func (fw *Framework) Map() *Map {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	return fw.hostMap
}

// Close releases the map and the observers.
func (fw *Framework) Close() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.hostMap = nil
	fw.observers = nil
}

func (fw *Framework) AddObserver(observer navigation.Observer) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.addObserver(observer)
}

func (fw *Framework) addObserver(observer navigation.Observer) {
	for _, existing := range fw.observers {
		if existing == observer {
			return
		}
	}
	fw.observers = append(fw.observers, observer)
}

func (fw *Framework) RemoveObserver(observer navigation.Observer) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.removeObserver(observer)
}

func (fw *Framework) removeObserver(observer navigation.Observer) {
	for i, existing := range fw.observers {
		if existing == observer {
			fw.observers = append(fw.observers[:i:i], fw.observers[i+1:]...)
			return
		}
	}
}

type turnInstructionsNotice interface {
	Notice
	navigation.Observer
}

// SetTurnInstructions shows the notice over the map, and sends it navigation events.
// It replaces any previous turn instructions notice. A nil notice removes it.
func (fw *Framework) SetTurnInstructions(notice turnInstructionsNotice) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.hostMap == nil {
		return
	}

	notices := fw.hostMap.Notices()
	if previous, ok := notices.Get(NoticeTurnInstructions).(navigation.Observer); ok {
		fw.removeObserver(previous)
	}

	if notice == nil {
		notices.Set(NoticeTurnInstructions, nil)
		return
	}

	notices.Set(NoticeTurnInstructions, notice)
	fw.addObserver(notice)
}

// SetScaleBar shows the notice over the map. A nil notice removes it.
func (fw *Framework) SetScaleBar(notice Notice) {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	if fw.hostMap == nil {
		return
	}
	fw.hostMap.Notices().Set(NoticeScaleBar, notice)
}

func (fw *Framework) getObservers() []navigation.Observer {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	return append([]navigation.Observer(nil), fw.observers...)
}

func (fw *Framework) NotifyRoute(route *navigation.Route) {
	fw.logger.Debug("route changed. Has route: %v", route != nil)
	for _, observer := range fw.getObservers() {
		observer.OnRoute(route)
	}
}

func (fw *Framework) NotifyTurn(first, second, continuation *navigation.Turn, distanceLeft float64, timeLeft time.Duration) {
	for _, observer := range fw.getObservers() {
		observer.OnTurn(first, second, continuation, distanceLeft, timeLeft)
	}
}

func (fw *Framework) NotifyState(phase navigation.Phase) {
	fw.logger.Debug("navigation phase changed to %s", phase)
	for _, observer := range fw.getObservers() {
		observer.OnState(phase)
	}
}
