package request

import (
	"strings"

	"parking-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveRequest struct {
	FacilityID      uuid.UUID  `json:"facilityId" binding:"required"`
	SpotID          uuid.UUID  `json:"spotId" binding:"required"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	PlanID          *uuid.UUID `json:"planId,omitempty"`
	ExpectedVersion *int64     `json:"expectedVersion,omitempty" binding:"omitempty,min=0"`
}

// ToCommand reserves for the caller when the body names no user.
func (r ReserveRequest) ToCommand(caller uuid.UUID) commands.ReserveRequest {
	userID := caller
	if r.UserID != nil && *r.UserID != uuid.Nil {
		userID = *r.UserID
	}
	return commands.ReserveRequest{
		FacilityID:      r.FacilityID,
		SpotID:          r.SpotID,
		UserID:          userID,
		PlanID:          r.PlanID,
		ExpectedVersion: r.ExpectedVersion,
	}
}

type ReleaseRequest struct {
	SpotID uuid.UUID `json:"spotId" binding:"required"`
}

type PaymentRequest struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
	Method        string    `json:"method" binding:"required"`
	AmountCents   *int64    `json:"amountCents" binding:"required"`
}

func (r PaymentRequest) ToCommand(idempotencyKey string) commands.RecordPaymentRequest {
	return commands.RecordPaymentRequest{
		ReservationID:  r.ReservationID,
		Method:         strings.ToLower(strings.TrimSpace(r.Method)),
		AmountCents:    *r.AmountCents,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

// ReservationListQuery holds raw query values; the handler parses them.
type ReservationListQuery struct {
	FacilityID string `form:"facilityId"`
	SpotID     string `form:"spotId"`
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status"`
	After      string `form:"after"`
	Limit      int    `form:"limit"`
}

type ReportQuery struct {
	FacilityID string `form:"facilityId" binding:"required"`
	AsOf       string `form:"asOf"`
	From       string `form:"from"`
}
