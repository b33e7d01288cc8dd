package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/ptr"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyReport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.plan(t, 500, 200, 2000)
	f, spots := h.facility(t, 10)

	for _, s := range spots[:3] {
		h.reserve(t, f.ID, s.ID)
	}
	h.clock.Add(2 * time.Hour)
	for _, s := range spots[:3] {
		_, err := h.reservations.Release(ctx, s.ID)
		require.NoError(t, err)
	}

	report, err := h.reports.OccupancyReport(ctx, f.ID, time.Time{}, nil)
	require.NoError(t, err)
	want := &queries.OccupancyReport{
		FacilityID:          f.ID,
		AsOf:                start.Add(2 * time.Hour),
		Capacity:            10,
		FreeCount:           10,
		OccupancyPercent:    0,
		RevenueTotalCents:   0,
		AvgDurationMinutes:  120,
		ReservationsCounted: 3,
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestOccupancyReport_RevenueWindow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.plan(t, 500, 200, 2000)
	f, spots := h.facility(t, 4)

	first := h.reserve(t, f.ID, spots[0].ID)
	h.clock.Add(time.Hour)
	_, err := h.reservations.Release(ctx, spots[0].ID)
	require.NoError(t, err)
	_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
		ReservationID: first.Reservation.ID, Method: "pix", AmountCents: 700,
	})
	require.NoError(t, err)
	windowStart := h.clock.Now().Add(time.Minute)

	h.clock.Add(time.Hour)
	second := h.reserve(t, f.ID, spots[1].ID)
	h.clock.Add(3 * time.Hour)
	_, err = h.reservations.Release(ctx, spots[1].ID)
	require.NoError(t, err)
	_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
		ReservationID: second.Reservation.ID, Method: "pix", AmountCents: 1100,
	})
	require.NoError(t, err)

	// Prepaid but still active: not counted until it ends.
	third := h.reserve(t, f.ID, spots[2].ID)
	_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
		ReservationID: third.Reservation.ID, Method: "pix", AmountCents: 500,
	})
	require.NoError(t, err)

	ignoreAsOf := cmpopts.IgnoreFields(queries.OccupancyReport{}, "AsOf", "From", "FacilityID")

	all, err := h.reports.OccupancyReport(ctx, f.ID, time.Time{}, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(&queries.OccupancyReport{
		Capacity:            4,
		FreeCount:           3,
		OccupancyPercent:    25,
		RevenueTotalCents:   1800,
		AvgDurationMinutes:  120,
		ReservationsCounted: 2,
	}, all, ignoreAsOf); diff != "" {
		t.Errorf("full report mismatch (-want +got):\n%s", diff)
	}

	windowed, err := h.reports.OccupancyReport(ctx, f.ID, time.Time{}, &windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), windowed.RevenueTotalCents)
	assert.Equal(t, 1, windowed.ReservationsCounted)
	assert.InDelta(t, 180.0, windowed.AvgDurationMinutes, 0.001)

	past, err := h.reports.OccupancyReport(ctx, f.ID, windowStart, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(700), past.RevenueTotalCents, "as-of bounds the ended set")

	_, err = h.reports.OccupancyReport(ctx, f.ID, start, ptr.Of(start.Add(time.Hour)))
	assert.True(t, errs.Is(err, queries.ErrInvalidRange))

	_, err = h.reports.OccupancyReport(ctx, uuid.New(), time.Time{}, nil)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
