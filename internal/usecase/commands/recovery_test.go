package commands_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corrupt applies a write straight to the store, skipping the coordinator.
func corrupt(t *testing.T, h *harness, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, h.store.Within(context.Background(), fn))
}

func TestRecovery_FindsAndResolvesDisagreements(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	h := newHarness(t)
	plan := h.plan(t, 500, 200, 2000)
	f, spots := h.facility(t, 3)
	recovery := commands.NewRecoveryUseCase(h.store, h.clock, logger)
	flags := queries.NewReconciliationQueries(h.store)

	clean, err := recovery.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, clean.Findings)

	// Spot 1 reserved without a reservation, which also leaves the free
	// count one too high; spot 2 free with an active reservation.
	orphanReservation, err := reservation.NewReservation(spots[1].ID, f.ID, uuid.New(), plan.ID, start)
	require.NoError(t, err)
	corrupt(t, h, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindByID(ctx, spots[0].ID)
		if err != nil {
			return err
		}
		prev := s.Version()
		if err := s.Apply(spot.EventReserve, start); err != nil {
			return err
		}
		if err := tx.Spots().Save(ctx, s, prev); err != nil {
			return err
		}
		return tx.Ledger().Append(ctx, orphanReservation)
	})

	first, err := recovery.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Flagged)
	kinds := map[string]uuid.UUID{}
	for _, finding := range first.Findings {
		kinds[finding.Kind] = finding.SubjectID
	}
	assert.Equal(t, map[string]uuid.UUID{
		string(shared.FlagOrphanSpot):        spots[0].ID,
		string(shared.FlagOrphanReservation): orphanReservation.ID(),
		string(shared.FlagCounterDrift):      f.ID,
	}, kinds)
	assert.Contains(t, logs.String(), `"level":"ERROR","msg":"reconciliation finding"`)

	open, err := flags.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	again, err := recovery.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Findings, 3)
	assert.Zero(t, again.Flagged, "open flags are not duplicated")

	_, free, _ := h.facilityState(t, f.ID)
	assert.Equal(t, 3, free, "nothing is repaired automatically")

	h.clock.Add(time.Hour)
	corrupt(t, h, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindByID(ctx, spots[0].ID)
		if err != nil {
			return err
		}
		prev := s.Version()
		if err := s.Apply(spot.EventRelease, h.clock.Now()); err != nil {
			return err
		}
		if err := tx.Spots().Save(ctx, s, prev); err != nil {
			return err
		}
		ended := h.clock.Now()
		amount := money.Zero()
		closed := reservation.Reconstruct(orphanReservation.ID(), spots[1].ID, f.ID, orphanReservation.UserID(), plan.ID, start, &ended, &amount)
		return tx.Ledger().Finalize(ctx, closed)
	})

	resolved, err := recovery.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, resolved.Findings)
	assert.Equal(t, 3, resolved.Resolved)

	open, err = flags.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}
