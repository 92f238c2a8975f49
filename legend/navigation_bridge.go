package legend

import (
	"time"

	"github.com/jamesrr39/ownmap-legend/navigation"
)

func (l *Legend) OnRoute(route *navigation.Route) {
	l.navigationState.Load().SetRoute(route)
}

func (l *Legend) OnTurn(first, second, continuation *navigation.Turn, distanceLeft float64, timeLeft time.Duration) {
	l.navigationState.Load().SetTurns(first, second, continuation, distanceLeft, timeLeft)
}

func (l *Legend) OnState(phase navigation.Phase) {
	l.navigationState.Load().SetPhase(phase)
}

// TurnInstruction is the text of the first turn line. It is empty before any navigation events.
func (l *Legend) TurnInstruction() string {
	var abbreviate bool
	if turnLine := l.firstTurnLine(); turnLine != nil {
		abbreviate = turnLine.Abbreviate
	}

	return navigation.Instruction(l.navigationState.Load().Snapshot(), abbreviate, l.unitSystem())
}

// SetTurnInstruction shows text instead of the turn instruction, until the next route or turn. A turn line is added if there isn't one.
func (l *Legend) SetTurnInstruction(text string) {
	l.navigationState.Load().SetOverride(text)
	if !l.HasTurnInstruction() {
		l.lines = append(l.lines, TurnLine{})
	}
	l.bumpSerial()
}

// NavigationState returns the navigation state shared by the legend and its copies.
func (l *Legend) NavigationState() *navigation.ThreadSafeState {
	return l.navigationState.Load()
}

// SetNavigationState shares another navigation state.
func (l *Legend) SetNavigationState(state *navigation.ThreadSafeState) {
	if state == nil {
		state = navigation.NewThreadSafeState()
	}

	serial := l.Serial()
	l.navigationState.Store(state)
	l.setSerialAbove(serial)
}
