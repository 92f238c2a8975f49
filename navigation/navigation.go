package navigation

import (
	"time"
)

type TurnDirection int

const (
	TurnNone TurnDirection = iota
	TurnAhead
	TurnBearRight
	TurnRight
	TurnSharpRight
	TurnAround
	TurnSharpLeft
	TurnLeft
	TurnBearLeft
	TurnRoundabout
)

var turnDirectionNames = map[TurnDirection]string{
	TurnNone:       "none",
	TurnAhead:      "ahead",
	TurnBearRight:  "bear_right",
	TurnRight:      "right",
	TurnSharpRight: "sharp_right",
	TurnAround:     "around",
	TurnSharpLeft:  "sharp_left",
	TurnLeft:       "left",
	TurnBearLeft:   "bear_left",
	TurnRoundabout: "roundabout",
}

func (d TurnDirection) String() string {
	name, ok := turnDirectionNames[d]
	if !ok {
		return "unknown"
	}
	return name
}

func (d TurnDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *TurnDirection) UnmarshalText(text []byte) error {
	for direction, name := range turnDirectionNames {
		if name == string(text) {
			*d = direction
			return nil
		}
	}
	return errUnknownValue("turn direction", string(text))
}

// Turn is a junction on the route.
type Turn struct {
	Direction TurnDirection `json:"direction"`
	// Distance in metres, from the current position for the first turn, or from the previous turn otherwise
	Distance float64 `json:"distance"`
	// Road is the name of the road taken at the turn, if known
	Road string `json:"road,omitempty"`
	// RoundaboutExit is the exit to take when Direction is TurnRoundabout, counting from 1
	RoundaboutExit int `json:"roundaboutExit,omitempty"`
}

type Route struct {
	Distance float64       `json:"distance"` // metres
	Time     time.Duration `json:"time"`
}

// Phase is the coarse state of navigation.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseNoPosition
	PhaseNavigating
	PhaseOffRoute
	PhaseRouting
	PhaseNewRoute
	PhaseTurnRound
	PhaseArrived
)

var phaseNames = map[Phase]string{
	PhaseNone:       "none",
	PhaseNoPosition: "no_position",
	PhaseNavigating: "navigating",
	PhaseOffRoute:   "off_route",
	PhaseRouting:    "routing",
	PhaseNewRoute:   "new_route",
	PhaseTurnRound:  "turn_round",
	PhaseArrived:    "arrived",
}

func (p Phase) String() string {
	name, ok := phaseNames[p]
	if !ok {
		return "unknown"
	}
	return name
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return errUnknownValue("navigation phase", string(text))
}

// Observer receives navigation events. The methods may be called from any goroutine.
type Observer interface {
	OnRoute(route *Route)
	OnTurn(first, second, continuation *Turn, distanceLeft float64, timeLeft time.Duration)
	OnState(phase Phase)
}
