package request

import (
	"strings"
	"time"

	"parking-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	FacilityID    *uuid.UUID `json:"facilityId,omitempty"`
	Description   string     `json:"description" binding:"required"`
	EffectiveFrom *time.Time `json:"effectiveFrom,omitempty"`
	BaseCents     *int64     `json:"baseCents" binding:"required"`
	HourlyCents   *int64     `json:"hourlyCents" binding:"required"`
	DailyCents    *int64     `json:"dailyCents" binding:"required"`
}

func (r CreatePlanRequest) ToCommand() commands.CreatePlanRequest {
	return commands.CreatePlanRequest{
		FacilityID:    r.FacilityID,
		Description:   strings.TrimSpace(r.Description),
		EffectiveFrom: r.EffectiveFrom,
		BaseCents:     *r.BaseCents,
		HourlyCents:   *r.HourlyCents,
		DailyCents:    *r.DailyCents,
	}
}

type UpdatePlanRequest struct {
	Description   *string    `json:"description,omitempty"`
	EffectiveFrom *time.Time `json:"effectiveFrom,omitempty"`
	BaseCents     *int64     `json:"baseCents,omitempty"`
	HourlyCents   *int64     `json:"hourlyCents,omitempty"`
	DailyCents    *int64     `json:"dailyCents,omitempty"`
}

func (r UpdatePlanRequest) ToCommand() commands.UpdatePlanRequest {
	cmd := commands.UpdatePlanRequest{
		EffectiveFrom: r.EffectiveFrom,
		BaseCents:     r.BaseCents,
		HourlyCents:   r.HourlyCents,
		DailyCents:    r.DailyCents,
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		cmd.Description = &d
	}
	return cmd
}

type PlanQuery struct {
	FacilityID string `form:"facilityId"`
	At         string `form:"at"`
}
