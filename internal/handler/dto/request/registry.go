package request

import (
	"strings"

	"parking-core/internal/usecase/commands"
)

type CreateFacilityRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

func (r CreateFacilityRequest) ToCommand() commands.CreateFacilityRequest {
	return commands.CreateFacilityRequest{
		Name:     strings.TrimSpace(r.Name),
		Location: strings.TrimSpace(r.Location),
	}
}

type AddSpotRequest struct {
	Number int    `json:"number"`
	Kind   string `json:"kind" binding:"required"`
}

func (r AddSpotRequest) ToCommand() commands.AddSpotRequest {
	return commands.AddSpotRequest{
		Number: r.Number,
		Kind:   strings.ToLower(strings.TrimSpace(r.Kind)),
	}
}

// SpotVersionRequest is the optional body of retire and restore.
type SpotVersionRequest struct {
	ExpectedVersion *int64 `json:"expectedVersion,omitempty" binding:"omitempty,min=0"`
}
