package navigation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jamesrr39/ownmap-legend/units"
)

type phasePhrases struct {
	full, abbreviated string
}

// phases with a fixed instruction, whatever the turns are
var fixedPhasePhrases = map[Phase]phasePhrases{
	PhaseNoPosition: {"Waiting for a position", "No position"},
	PhaseOffRoute:   {"Off route", "Off route"},
	PhaseRouting:    {"Calculating a route", "Routing"},
	PhaseTurnRound:  {"Turn round when possible", "Turn round"},
	PhaseArrived:    {"You have arrived", "Arrived"},
}

// Instruction builds the turn instruction for the state, e.g. "In 200 m, turn right onto High Street, then turn left"
// (or "then immediately turn left" for a continuation turn),
// or abbreviated "200 m right". It is empty when there is nothing to say.
func Instruction(state State, abbreviate bool, unitSystem units.UnitSystem) string {
	if state.HasOverride {
		return state.Override
	}

	if phrases, ok := fixedPhasePhrases[state.Phase]; ok {
		if abbreviate {
			return phrases.abbreviated
		}
		return phrases.full
	}

	first := state.FirstTurn
	if first == nil || first.Direction == TurnNone {
		return ""
	}

	if abbreviate {
		shortPhrase := abbreviatedTurnPhrase(first)
		if first.Distance <= 0 {
			return shortPhrase
		}
		return units.FormatDistance(first.Distance, unitSystem) + " " + shortPhrase
	}

	var sb strings.Builder
	if first.Distance > 0 {
		sb.WriteString(fmt.Sprintf("In %s, %s", units.FormatDistance(first.Distance, unitSystem), turnPhrase(first)))
	} else {
		sb.WriteString(capitalise(turnPhrase(first)))
	}

	if first.Road != "" {
		sb.WriteString(" onto ")
		sb.WriteString(first.Road)
	}

	// a continuation turn follows straight on from the first turn, with nothing between them
	second := state.SecondTurn
	continuation := state.ContinuationTurn
	switch {
	case second != nil && second.Direction != TurnNone:
		sb.WriteString(", then ")
		sb.WriteString(turnPhrase(second))
	case continuation != nil && continuation.Direction != TurnNone:
		sb.WriteString(", then immediately ")
		sb.WriteString(turnPhrase(continuation))
	}

	return sb.String()
}

func turnPhrase(turn *Turn) string {
	switch turn.Direction {
	case TurnAhead:
		return "continue ahead"
	case TurnBearRight:
		return "bear right"
	case TurnRight:
		return "turn right"
	case TurnSharpRight:
		return "turn sharp right"
	case TurnAround:
		return "make a U-turn"
	case TurnSharpLeft:
		return "turn sharp left"
	case TurnLeft:
		return "turn left"
	case TurnBearLeft:
		return "bear left"
	case TurnRoundabout:
		if turn.RoundaboutExit > 0 {
			return fmt.Sprintf("take exit %d at the roundabout", turn.RoundaboutExit)
		}
		return "go round the roundabout"
	default:
		return ""
	}
}

func abbreviatedTurnPhrase(turn *Turn) string {
	switch turn.Direction {
	case TurnAround:
		return "U-turn"
	case TurnRoundabout:
		if turn.RoundaboutExit > 0 {
			return fmt.Sprintf("exit %d", turn.RoundaboutExit)
		}
		return "roundabout"
	default:
		return strings.ReplaceAll(turn.Direction.String(), "_", " ")
	}
}

func capitalise(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CurrentTurn is the turn the instruction for the state is about, or nil if the instruction
// is not about a turn (overridden, arrived, off route and so on).
func CurrentTurn(state State) *Turn {
	if state.HasOverride {
		return nil
	}
	if _, ok := fixedPhasePhrases[state.Phase]; ok {
		return nil
	}
	if state.FirstTurn == nil || state.FirstTurn.Direction == TurnNone {
		return nil
	}
	return state.FirstTurn
}
