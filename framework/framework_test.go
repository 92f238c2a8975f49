package framework

import (
	"image"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/navigation"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (o *recordingObserver) record(event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Events() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.events...)
}

func (o *recordingObserver) Serial() uint64 {
	return uint64(len(o.Events()))
}

func (o *recordingObserver) OnRoute(route *navigation.Route) {
	o.record("route")
}

func (o *recordingObserver) OnTurn(first, second, continuation *navigation.Turn, distanceLeft float64, timeLeft time.Duration) {
	o.record("turn " + first.Direction.String())
}

func (o *recordingObserver) OnState(phase navigation.Phase) {
	o.record("state " + phase.String())
}

func newTestFramework() *Framework {
	return New(logpkg.NewLogger(io.Discard, logpkg.LogLevelDebug), 96, NewMap("test data", 50000))
}

func TestMap(t *testing.T) {
	m := NewMap("Oslo", 25000)
	assert.Equal(t, "Oslo", m.DataSetName())
	assert.Equal(t, 25000.0, m.ScaleDenominatorAt(image.Point{X: 10, Y: 10}))

	m.SetScaleDenominator(10000)
	m.SetUnitSystem(units.Imperial)
	m.SetBlendStyleSheet(&styling.Sheet{ID: "night"})
	assert.Equal(t, 10000.0, m.ScaleDenominator())
	assert.Equal(t, units.Imperial, m.UnitSystem())
	assert.Equal(t, "night", m.BlendStyleSheet().ID)
	assert.Nil(t, m.MainStyleSheet())
}

func TestFramework_observers(t *testing.T) {
	fw := newTestFramework()

	observer := &recordingObserver{}
	fw.AddObserver(observer)
	fw.AddObserver(observer)

	fw.NotifyRoute(&navigation.Route{Distance: 100})
	fw.NotifyTurn(&navigation.Turn{Direction: navigation.TurnLeft}, nil, nil, 100, time.Minute)
	fw.NotifyState(navigation.PhaseArrived)

	assert.Equal(t, []string{"route", "turn left", "state arrived"}, observer.Events())

	fw.RemoveObserver(observer)
	fw.NotifyState(navigation.PhaseNone)
	assert.Len(t, observer.Events(), 3)
}

func TestFramework_SetTurnInstructions(t *testing.T) {
	fw := newTestFramework()
	notices := fw.Map().Notices()

	first := &recordingObserver{}
	fw.SetTurnInstructions(first)
	assert.Same(t, first, notices.Get(NoticeTurnInstructions))

	second := &recordingObserver{}
	fw.SetTurnInstructions(second)
	assert.Same(t, second, notices.Get(NoticeTurnInstructions))

	fw.NotifyState(navigation.PhaseNavigating)
	assert.Empty(t, first.Events())
	assert.Equal(t, []string{"state navigating"}, second.Events())

	fw.SetTurnInstructions(nil)
	assert.Nil(t, notices.Get(NoticeTurnInstructions))
	fw.NotifyState(navigation.PhaseArrived)
	assert.Len(t, second.Events(), 1)

	scaleBar := &recordingObserver{}
	fw.SetScaleBar(scaleBar)
	assert.Same(t, scaleBar, notices.Get(NoticeScaleBar))
	assert.Equal(t, 1, notices.Len())
}

func TestFramework_Close(t *testing.T) {
	fw := newTestFramework()
	observer := &recordingObserver{}
	fw.AddObserver(observer)

	require.NotNil(t, fw.Map())
	fw.Close()
	assert.Nil(t, fw.Map())

	// no map to draw on any more
	fw.SetTurnInstructions(observer)
	fw.SetScaleBar(observer)
	fw.NotifyState(navigation.PhaseArrived)
	assert.Empty(t, observer.Events())
}

func TestFramework_DPI(t *testing.T) {
	fw := New(logpkg.NewLogger(io.Discard, logpkg.LogLevelInfo), 0, nil)
	assert.Equal(t, float64(units.DefaultDPI), fw.DPI())
	assert.Nil(t, fw.Map())
}
