package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, opts ...harnessOption) (*harness, *commands.ReserveResult) {
		h := newHarness(t, opts...)
		h.plan(t, 500, 200, 2000)
		f, spots := h.facility(t, 1)
		return h, h.reserve(t, f.ID, spots[0].ID)
	}

	t.Run("prepayment of an active reservation is the base rate", func(t *testing.T) {
		h, res := setup(t)
		got, err := h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "PIX", AmountCents: 500,
		})
		require.NoError(t, err)
		assert.Equal(t, "pix", got.Payment.Method)
		assert.False(t, got.IsReplayed)
		assert.Contains(t, h.topics(), shared.TopicPaymentRecorded)

		_, err = h.reservations.Release(ctx, res.Reservation.SpotID)
		require.NoError(t, err, "payment does not change spot state")
	})

	t.Run("ended reservation pays the final amount once", func(t *testing.T) {
		h, res := setup(t)
		h.clock.Add(3*time.Hour + 15*time.Minute)
		_, err := h.reservations.Release(ctx, res.Reservation.SpotID)
		require.NoError(t, err)

		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "credit_card", AmountCents: 500,
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, reservation.ErrAmountMismatch))
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))

		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "credit-card", AmountCents: 1300,
		})
		require.NoError(t, err)

		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "credit_card", AmountCents: 1300,
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, reservation.ErrAlreadyPaid))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))

		err = h.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			payments, err := tx.Ledger().ListPayments(ctx, []uuid.UUID{res.Reservation.ID})
			assert.Len(t, payments, 1)
			return err
		})
		require.NoError(t, err)
	})

	t.Run("replay with the same key returns the original payment", func(t *testing.T) {
		h, res := setup(t)
		req := commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "boleto", AmountCents: 500, IdempotencyKey: "pay-1",
		}
		first, err := h.reservations.RecordPayment(ctx, req)
		require.NoError(t, err)

		h.clock.Add(time.Minute)
		again, err := h.reservations.RecordPayment(ctx, req)
		require.NoError(t, err)
		assert.True(t, again.IsReplayed)
		assert.Equal(t, first.Payment, again.Payment)

		req.AmountCents = 501
		_, err = h.reservations.RecordPayment(ctx, req)
		assert.True(t, errs.Is(err, reservation.ErrAlreadyPaid), "same key, different body")
	})

	t.Run("tolerance", func(t *testing.T) {
		h, res := setup(t, withTolerance(50))
		_, err := h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "pix", AmountCents: 551,
		})
		assert.True(t, errs.Is(err, reservation.ErrAmountMismatch))
		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "pix", AmountCents: 450,
		})
		assert.NoError(t, err)
	})

	t.Run("input errors", func(t *testing.T) {
		h, res := setup(t)
		_, err := h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: uuid.New(), Method: "pix", AmountCents: 500,
		})
		assert.True(t, errs.Is(err, reservation.ErrReservationNotFound))
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "cash", AmountCents: 500,
		})
		assert.True(t, errs.Is(err, reservation.ErrInvalidPaymentMethod))

		_, err = h.reservations.RecordPayment(ctx, commands.RecordPaymentRequest{
			ReservationID: res.Reservation.ID, Method: "pix", AmountCents: -500,
		})
		assert.True(t, errs.Is(err, reservation.ErrInvalidAmount))
		assert.Empty(t, filterTopic(h.store.Events(), shared.TopicPaymentRecorded))
	})
}

func filterTopic(events []shared.OutboxEvent, topic string) []shared.OutboxEvent {
	var out []shared.OutboxEvent
	for _, ev := range events {
		if ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}
