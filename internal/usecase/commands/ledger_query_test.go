package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/ptr"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationQueries_Pagination(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.plan(t, 500, 200, 2000)
	f, spots := h.facility(t, 5)

	var ids []uuid.UUID
	for _, s := range spots {
		res := h.reserve(t, f.ID, s.ID)
		ids = append(ids, res.Reservation.ID)
		h.clock.Add(10 * time.Minute)
	}
	paid := ids[0]
	_, err := h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{ReservationID: paid, Method: "pix", AmountCents: 500})
	require.NoError(t, err)

	var got []uuid.UUID
	cursor := ""
	for pages := 0; ; pages++ {
		require.Less(t, pages, 5, "pagination does not terminate")
		page, err := h.ledger.List(ctx, queries.ReservationFilter{FacilityID: &f.ID}, cursor, 2)
		require.NoError(t, err)
		for _, item := range page.Items {
			got = append(got, item.ID)
			if item.ID == paid {
				require.NotNil(t, item.Payment)
				assert.Equal(t, int64(500), item.Payment.AmountCents)
			} else {
				assert.Nil(t, item.Payment)
			}
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	assert.Equal(t, []uuid.UUID{ids[4], ids[3], ids[2], ids[1], ids[0]}, got, "newest first")

	t.Run("time range", func(t *testing.T) {
		page, err := h.ledger.List(ctx, queries.ReservationFilter{
			From: ptr.Of(start.Add(10 * time.Minute)),
			To:   ptr.Of(start.Add(20 * time.Minute)),
		}, "", 0)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, ids[2], page.Items[0].ID)
	})

	t.Run("status", func(t *testing.T) {
		_, err := h.reservations.Release(ctx, spots[1].ID)
		require.NoError(t, err)

		ended, err := h.ledger.List(ctx, queries.ReservationFilter{FacilityID: &f.ID, Status: reservation.StatusEnded}, "", 0)
		require.NoError(t, err)
		require.Len(t, ended.Items, 1)
		assert.Equal(t, ids[1], ended.Items[0].ID)

		active, err := h.ledger.List(ctx, queries.ReservationFilter{FacilityID: &f.ID, Status: reservation.StatusActive}, "", 0)
		require.NoError(t, err)
		assert.Len(t, active.Items, 4)
		for _, item := range active.Items {
			assert.Equal(t, "active", item.Status)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := h.ledger.List(ctx, queries.ReservationFilter{
			From: ptr.Of(start.Add(time.Hour)),
			To:   ptr.Of(start),
		}, "", 0)
		assert.True(t, errs.Is(err, queries.ErrInvalidRange))
	})

	t.Run("bad cursor", func(t *testing.T) {
		_, err := h.ledger.List(ctx, queries.ReservationFilter{}, "not-a-cursor", 0)
		assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	})

	t.Run("get by id", func(t *testing.T) {
		view, err := h.ledger.GetByID(ctx, paid)
		require.NoError(t, err)
		assert.Equal(t, "active", view.Status)
		require.NotNil(t, view.Payment)

		_, err = h.ledger.GetByID(ctx, uuid.New())
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
