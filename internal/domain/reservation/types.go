package reservation

import (
	"strings"

	"parking-core/internal/pkg/errs"
)

var ErrInvalidStatus = errs.NewKind("unknown reservation status", errs.ErrInvalidInput)

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusEnded:
		return true
	default:
		return false
	}
}

func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
