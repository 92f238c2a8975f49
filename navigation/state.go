package navigation

import (
	"sync"
	"sync/atomic"
	"time"
)

// State is a copy of the navigation state at one moment.
type State struct {
	HasRoute         bool
	Route            Route
	FirstTurn        *Turn
	SecondTurn       *Turn
	ContinuationTurn *Turn
	DistanceLeft     float64 // metres
	TimeLeft         time.Duration
	Phase            Phase
	// Override replaces the instruction built from the turns, until the next turn or route update
	Override    string
	HasOverride bool
}

// ThreadSafeState is navigation state shared between the navigation events and its readers.
// Every update increments the serial.
type ThreadSafeState struct {
	mu     sync.RWMutex
	state  State
	serial atomic.Uint64
}

func NewThreadSafeState() *ThreadSafeState {
	return &ThreadSafeState{}
}

// Snapshot returns a deep copy of the current state.
func (s *ThreadSafeState) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	state.FirstTurn = copyTurn(state.FirstTurn)
	state.SecondTurn = copyTurn(state.SecondTurn)
	state.ContinuationTurn = copyTurn(state.ContinuationTurn)
	return state
}

func (s *ThreadSafeState) Serial() uint64 {
	return s.serial.Load()
}

func (s *ThreadSafeState) update(fn func(state *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	s.serial.Add(1)
}

// SetRoute replaces the route. A nil route clears it, along with the turns.
func (s *ThreadSafeState) SetRoute(route *Route) {
	s.update(func(state *State) {
		state.HasOverride = false
		state.Override = ""
		if route == nil {
			state.HasRoute = false
			state.Route = Route{}
			state.FirstTurn = nil
			state.SecondTurn = nil
			state.ContinuationTurn = nil
			state.DistanceLeft = 0
			state.TimeLeft = 0
			return
		}

		state.HasRoute = true
		state.Route = *route
		state.DistanceLeft = route.Distance
		state.TimeLeft = route.Time
	})
}

func (s *ThreadSafeState) SetTurns(first, second, continuation *Turn, distanceLeft float64, timeLeft time.Duration) {
	s.update(func(state *State) {
		state.HasOverride = false
		state.Override = ""
		state.FirstTurn = copyTurn(first)
		state.SecondTurn = copyTurn(second)
		state.ContinuationTurn = copyTurn(continuation)
		state.DistanceLeft = distanceLeft
		state.TimeLeft = timeLeft
	})
}

func (s *ThreadSafeState) SetPhase(phase Phase) {
	s.update(func(state *State) {
		state.Phase = phase
	})
}

func (s *ThreadSafeState) SetOverride(text string) {
	s.update(func(state *State) {
		state.Override = text
		state.HasOverride = true
	})
}

func copyTurn(turn *Turn) *Turn {
	if turn == nil {
		return nil
	}
	turnCopy := *turn
	return &turnCopy
}
