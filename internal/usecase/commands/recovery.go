package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type RecoveryResult struct {
	Findings []*queries.ReconciliationFlagView `json:"findings"`
	Flagged  int                               `json:"flagged"`
	Resolved int                               `json:"resolved"`
}

// RecoveryCommands compares the registry with the ledger after a restart or
// on a schedule. Findings are recorded and logged; nothing is repaired.
type RecoveryCommands interface {
	Run(ctx context.Context) (*RecoveryResult, error)
}

type recoveryUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRecoveryUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) RecoveryCommands {
	return &recoveryUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

type flagKey struct {
	kind    shared.FlagKind
	subject uuid.UUID
}

func (uc *recoveryUseCaseImpl) Run(ctx context.Context) (*RecoveryResult, error) {
	var findings []shared.ReconciliationFlag
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		facilities, err := tx.Facilities().List(ctx)
		if err != nil {
			return err
		}
		spots, err := tx.Spots().ListAll(ctx)
		if err != nil {
			return err
		}
		active, err := tx.Ledger().ListActive(ctx)
		if err != nil {
			return err
		}
		findings = detect(facilities, spots, active, uc.clock)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &RecoveryResult{Findings: make([]*queries.ReconciliationFlagView, 0, len(findings))}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.Flagged, result.Resolved = 0, 0
		current := make(map[flagKey]bool, len(findings))
		for _, f := range findings {
			current[flagKey{f.Kind, f.SubjectID}] = true
			created, err := tx.Reconciliation().Flag(ctx, f)
			if err != nil {
				return err
			}
			if created {
				result.Flagged++
			}
		}

		open, err := tx.Reconciliation().ListOpen(ctx)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		for _, f := range open {
			if current[flagKey{f.Kind, f.SubjectID}] {
				continue
			}
			if err := tx.Reconciliation().Resolve(ctx, f.ID, now); err != nil {
				return err
			}
			result.Resolved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, f := range findings {
		uc.logger.ErrorContext(ctx, "reconciliation finding",
			"kind", string(f.Kind),
			"subject_id", f.SubjectID,
			"detail", f.Detail,
		)
		result.Findings = append(result.Findings, queries.ToReconciliationFlagView(f))
	}
	uc.logger.InfoContext(ctx, "recovery pass finished",
		"findings", len(findings),
		"flagged", result.Flagged,
		"resolved", result.Resolved,
	)
	return result, nil
}

func detect(facilities []*facility.Facility, spots []*spot.Spot, active []*reservation.Reservation, clk clock.Clock) []shared.ReconciliationFlag {
	now := clk.Now()
	var findings []shared.ReconciliationFlag
	flag := func(kind shared.FlagKind, subject uuid.UUID, detail string) {
		findings = append(findings, shared.ReconciliationFlag{
			ID:         uuid.New(),
			Kind:       kind,
			SubjectID:  subject,
			Detail:     detail,
			DetectedAt: now,
		})
	}

	activeBySpot := make(map[uuid.UUID]*reservation.Reservation, len(active))
	for _, r := range active {
		activeBySpot[r.SpotID()] = r
	}
	spotsByID := make(map[uuid.UUID]*spot.Spot, len(spots))

	type counters struct{ inService, free int }
	scanned := make(map[uuid.UUID]*counters, len(facilities))
	for _, f := range facilities {
		scanned[f.ID()] = &counters{}
	}

	for _, s := range spots {
		spotsByID[s.ID()] = s
		if c, ok := scanned[s.FacilityID()]; ok && s.State() != spot.StateRetired {
			c.inService++
			if s.IsFree() {
				c.free++
			}
		}
		if s.IsActive() && activeBySpot[s.ID()] == nil {
			flag(shared.FlagOrphanSpot, s.ID(),
				fmt.Sprintf("spot %d is %s without an active reservation", s.Number(), s.State()))
		}
	}

	for _, r := range active {
		s, ok := spotsByID[r.SpotID()]
		switch {
		case !ok:
			flag(shared.FlagOrphanReservation, r.ID(), fmt.Sprintf("spot %s does not exist", r.SpotID()))
		case !s.IsActive():
			flag(shared.FlagOrphanReservation, r.ID(), fmt.Sprintf("spot %s is %s", s.ID(), s.State()))
		}
	}

	for _, f := range facilities {
		c := scanned[f.ID()]
		if c.inService != f.Capacity() || c.free != f.FreeCount() {
			flag(shared.FlagCounterDrift, f.ID(), fmt.Sprintf(
				"capacity %d free %d, spots in service %d free %d",
				f.Capacity(), f.FreeCount(), c.inService, c.free,
			))
		}
	}
	return findings
}
