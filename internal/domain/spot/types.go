package spot

import (
	"strings"
)

type State string

const (
	StateFree     State = "free"
	StateReserved State = "reserved"
	StateOccupied State = "occupied"
	StateRetired  State = "retired"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateFree, StateReserved, StateOccupied, StateRetired:
		return true
	default:
		return false
	}
}

// IsActive reports whether a spot in this state must have an active reservation.
func (s State) IsActive() bool {
	return s == StateReserved || s == StateOccupied
}

func ParseState(v string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", ErrInvalidState
	}
	return s, nil
}

type Kind string

const (
	KindCar        Kind = "car"
	KindMotorcycle Kind = "motorcycle"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindCar, KindMotorcycle:
		return true
	default:
		return false
	}
}

func ParseKind(v string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(v)))
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

type Event string

const (
	EventReserve Event = "reserve"
	EventCheckIn Event = "check_in"
	EventRelease Event = "release"
	EventRetire  Event = "retire"
	EventRestore Event = "restore"
)
