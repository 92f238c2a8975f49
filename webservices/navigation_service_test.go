package webservices

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jamesrr39/ownmap-legend/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	routes []*navigation.Route
	turns  [][3]*navigation.Turn
	phases []navigation.Phase
	left   []time.Duration
}

func (o *recordingObserver) OnRoute(route *navigation.Route) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
}

func (o *recordingObserver) OnTurn(first, second, continuation *navigation.Turn, distanceLeft float64, timeLeft time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.turns = append(o.turns, [3]*navigation.Turn{first, second, continuation})
	o.left = append(o.left, timeLeft)
}

func (o *recordingObserver) OnState(phase navigation.Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, phase)
}

func TestNavigationService(t *testing.T) {
	ts := newTestServer(t)
	observer := &recordingObserver{}
	ts.fw.AddObserver(observer)

	w := ts.do(http.MethodPost, "/api/navigation/route", `{"hasRoute": true, "distance": 12000, "timeSeconds": 900}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = ts.do(http.MethodPost, "/api/navigation/route", `{"hasRoute": false}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	require.Len(t, observer.routes, 2)
	assert.Equal(t, &navigation.Route{Distance: 12000, Time: 15 * time.Minute}, observer.routes[0])
	assert.Nil(t, observer.routes[1])

	w = ts.do(http.MethodPost, "/api/navigation/turn", `{
		"first": {"direction": "roundabout", "distance": 300, "roundaboutExit": 2},
		"second": {"direction": "bear_left", "distance": 800},
		"distanceLeft": 5000,
		"timeLeftSeconds": 1.5
	}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	require.Len(t, observer.turns, 1)
	assert.Equal(t, &navigation.Turn{Direction: navigation.TurnRoundabout, Distance: 300, RoundaboutExit: 2}, observer.turns[0][0])
	assert.Equal(t, navigation.TurnBearLeft, observer.turns[0][1].Direction)
	assert.Nil(t, observer.turns[0][2])
	assert.Equal(t, 1500*time.Millisecond, observer.left[0])

	w = ts.do(http.MethodPost, "/api/navigation/state", `{"phase": "off_route"}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, []navigation.Phase{navigation.PhaseOffRoute}, observer.phases)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad route json", "/api/navigation/route", `{"hasRoute": "yes"}`},
		{"missing first turn", "/api/navigation/turn", `{"distanceLeft": 10}`},
		{"unknown turn direction", "/api/navigation/turn", `{"first": {"direction": "upwards"}}`},
		{"unknown phase", "/api/navigation/state", `{"phase": "lost"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Len(t, observer.turns, 1)
	assert.Len(t, observer.phases, 1)
}
