package commands

import (
	"context"
	"log/slog"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/config"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/ptr"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReserveRequest struct {
	FacilityID      uuid.UUID
	SpotID          uuid.UUID
	UserID          uuid.UUID
	PlanID          *uuid.UUID
	ExpectedVersion *int64
}

type ReserveResult struct {
	Reservation    *queries.ReservationView
	Plan           *queries.PlanView
	AmountDueCents int64
}

type RecordPaymentRequest struct {
	ReservationID  uuid.UUID
	Method         string
	AmountCents    int64
	IdempotencyKey string
}

type RecordPaymentResult struct {
	Payment    *queries.PaymentView
	IsReplayed bool
}

type ReservationCommands interface {
	Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error)
	CheckIn(ctx context.Context, spotID uuid.UUID) (*queries.SpotView, error)
	Release(ctx context.Context, spotID uuid.UUID) (*queries.ReservationView, error)
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error)
}

type reservationUseCaseImpl struct {
	spotGuard
	reservationFactory *reservation.Factory
	tolerance          money.Money
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	locker shared.SpotLocker,
	reservationFactory *reservation.Factory,
	billing config.BillingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationUseCaseImpl{
		spotGuard: spotGuard{
			uow:    uow,
			locker: locker,
			clock:  clk,
			logger: logger,
		},
		reservationFactory: reservationFactory,
		tolerance:          money.FromCents(max(billing.PaymentToleranceCents, 0)),
	}
}

func (uc *reservationUseCaseImpl) Reserve(ctx context.Context, req ReserveRequest) (*ReserveResult, error) {
	if req.UserID == uuid.Nil {
		return nil, reservation.ErrMissingUser
	}

	var result *ReserveResult
	err := uc.withSpotLock(ctx, req.SpotID, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindForUpdate(ctx, req.SpotID)
		if err != nil {
			return err
		}
		if !s.BelongsTo(req.FacilityID) {
			return errs.Wrapf(spot.ErrSpotNotFound, "spot %s is not in facility %s", req.SpotID, req.FacilityID)
		}
		if err := uc.transition(ctx, tx, s, spot.EventReserve, req.ExpectedVersion); err != nil {
			return err
		}

		plan, err := uc.planForReservation(ctx, tx, req.FacilityID, req.PlanID)
		if err != nil {
			return err
		}

		active, err := tx.Ledger().FindActiveBySpot(ctx, s.ID())
		if err != nil {
			return err
		}
		if active != nil {
			return uc.inconsistent(ctx, s, "free spot already has active reservation "+active.ID().String())
		}

		r, err := uc.reservationFactory.Open(s, req.UserID, plan)
		if err != nil {
			return err
		}
		if err := tx.Ledger().Append(ctx, r); err != nil {
			return err
		}
		if err := enqueue(ctx, tx, shared.TopicReservationCreated, newReservationEvent(r), r.StartedAt()); err != nil {
			return err
		}

		result = &ReserveResult{
			Reservation:    queries.ToReservationView(r, nil),
			Plan:           queries.ToPlanView(plan),
			AmountDueCents: r.AmountDue(plan.Rates().Base).Cents(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// planForReservation takes a share lock on the chosen plan so it cannot be
// revised while the reservation that freezes it is being written.
func (uc *reservationUseCaseImpl) planForReservation(ctx context.Context, tx shared.Tx, facilityID uuid.UUID, planID *uuid.UUID) (*tariff.Plan, error) {
	now := uc.clock.Now()
	if planID == nil {
		resolved, err := queries.ResolvePlan(ctx, tx, &facilityID, now)
		if err != nil {
			return nil, err
		}
		planID = ptr.Of(resolved.ID())
	}

	// The candidate read above takes no lock, so the plan is checked again
	// once the share lock holds off concurrent revisions.
	plan, err := tx.Plans().FindForShare(ctx, *planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsEffectiveAt(now) {
		return nil, errs.Wrapf(tariff.ErrPlanNotFound, "plan %s is not in effect", plan.ID())
	}
	if !plan.AppliesTo(facilityID) {
		return nil, errs.Wrapf(tariff.ErrPlanNotFound, "plan %s does not apply to facility %s", plan.ID(), facilityID)
	}
	return plan, nil
}

func (uc *reservationUseCaseImpl) CheckIn(ctx context.Context, spotID uuid.UUID) (*queries.SpotView, error) {
	var view *queries.SpotView
	err := uc.withSpotLock(ctx, spotID, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindForUpdate(ctx, spotID)
		if err != nil {
			return err
		}
		if err := uc.transition(ctx, tx, s, spot.EventCheckIn, nil); err != nil {
			return err
		}
		active, err := tx.Ledger().FindActiveBySpot(ctx, spotID)
		if err != nil {
			return err
		}
		if active == nil {
			return uc.inconsistent(ctx, s, "reserved spot has no active reservation")
		}
		view = queries.ToSpotView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (uc *reservationUseCaseImpl) Release(ctx context.Context, spotID uuid.UUID) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	err := uc.withSpotLock(ctx, spotID, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindForUpdate(ctx, spotID)
		if err != nil {
			return err
		}
		r, err := tx.Ledger().FindActiveBySpot(ctx, spotID)
		if err != nil {
			return err
		}
		switch {
		case r == nil && s.IsActive():
			return uc.inconsistent(ctx, s, "spot is active without a reservation")
		case r == nil:
			return spot.ErrNoActiveReservation
		case !s.IsActive():
			return uc.inconsistent(ctx, s, "active reservation "+r.ID().String()+" on an idle spot")
		}

		plan, err := tx.Plans().FindByID(ctx, r.PlanID())
		if err != nil {
			return err
		}
		if err := uc.reservationFactory.Close(r, plan); err != nil {
			return err
		}
		if err := uc.transition(ctx, tx, s, spot.EventRelease, nil); err != nil {
			return err
		}
		if err := tx.Ledger().Finalize(ctx, r); err != nil {
			return err
		}
		if err := enqueue(ctx, tx, shared.TopicReservationReleased, newReservationEvent(r), *r.EndedAt()); err != nil {
			return err
		}

		payment, err := tx.Ledger().FindPayment(ctx, r.ID())
		if err != nil {
			return err
		}
		view = queries.ToReservationView(r, payment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RecordPayment runs under the lock of the reservation's spot so a payment
// and a release of the same reservation are never interleaved.
func (uc *reservationUseCaseImpl) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	key, err := reservation.NewIdempotencyKey(req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	amount := money.FromCents(req.AmountCents)

	var spotID uuid.UUID
	err = uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Ledger().FindByID(ctx, req.ReservationID)
		if err != nil {
			return err
		}
		spotID = r.SpotID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	var result *RecordPaymentResult
	err = uc.withSpotLock(ctx, spotID, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Ledger().FindByID(ctx, req.ReservationID)
		if err != nil {
			return err
		}
		method, methodErr := reservation.ParsePaymentMethod(req.Method)

		existing, err := tx.Ledger().FindPayment(ctx, r.ID())
		if err != nil {
			return err
		}
		if existing != nil {
			if methodErr == nil && existing.IsReplayOf(key, method, amount) {
				result = &RecordPaymentResult{Payment: queries.ToPaymentView(existing), IsReplayed: true}
				return nil
			}
			return reservation.ErrAlreadyPaid
		}
		if methodErr != nil {
			return methodErr
		}

		plan, err := tx.Plans().FindByID(ctx, r.PlanID())
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		due := r.AmountDue(plan.Rates().Base)
		p, err := reservation.NewPayment(r, method, amount, due, uc.tolerance, key, now)
		if err != nil {
			return err
		}
		if err := tx.Ledger().AppendPayment(ctx, p); err != nil {
			return err
		}
		if err := enqueue(ctx, tx, shared.TopicPaymentRecorded, newPaymentEvent(p), now); err != nil {
			return err
		}
		result = &RecordPaymentResult{Payment: queries.ToPaymentView(p)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
