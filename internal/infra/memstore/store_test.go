package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/infra/memstore"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now        = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	errRefused = errors.New("refused")
)

type fixture struct {
	store    *memstore.Store
	facility *facility.Facility
	spot     *spot.Spot
	plan     *tariff.Plan
}

func seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.NewStore()

	f, err := facility.NewFacility("Centro", "Rua A, 100", now)
	require.NoError(t, err)
	s, err := spot.NewSpot(f.ID(), 1, spot.KindCar, now)
	require.NoError(t, err)
	rates, err := tariff.NewRates(500, 200, 2000)
	require.NoError(t, err)
	p, err := tariff.NewPlan(nil, "standard", now, rates, now)
	require.NoError(t, err)

	err = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Facilities().Create(ctx, f); err != nil {
			return err
		}
		if err := tx.Spots().Create(ctx, s); err != nil {
			return err
		}
		if err := tx.Facilities().AdjustCounters(ctx, f.ID(), 1, 1); err != nil {
			return err
		}
		return tx.Plans().Create(ctx, p)
	})
	require.NoError(t, err)
	return fixture{store: store, facility: f, spot: s, plan: p}
}

func TestStore_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		fx := seed(t)

		err := fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			s, err := tx.Spots().FindForUpdate(ctx, fx.spot.ID())
			require.NoError(t, err)
			prev := s.Version()
			require.NoError(t, s.Apply(spot.EventReserve, now))
			require.NoError(t, tx.Spots().Save(ctx, s, prev))
			require.NoError(t, tx.Facilities().AdjustCounters(ctx, fx.facility.ID(), 0, -1))
			return errRefused
		})
		require.ErrorIs(t, err, errRefused)

		err = fx.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			s, err := tx.Spots().FindByID(ctx, fx.spot.ID())
			require.NoError(t, err)
			assert.Equal(t, spot.StateFree, s.State())
			assert.Equal(t, int64(1), s.Version())

			f, err := tx.Facilities().FindByID(ctx, fx.facility.ID())
			require.NoError(t, err)
			assert.Equal(t, 1, f.FreeCount())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("read-only transactions refuse writes", func(t *testing.T) {
		fx := seed(t)

		err := fx.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Facilities().AdjustCounters(ctx, fx.facility.ID(), 0, -1)
		})
		assert.True(t, errs.Is(err, memstore.ErrReadOnly))
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})

	t.Run("cancelled context never runs fn", func(t *testing.T) {
		fx := seed(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		called := false
		err := fx.store.Within(cctx, func(context.Context, shared.Tx) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestStore_Constraints(t *testing.T) {
	ctx := context.Background()

	within := func(fx fixture, fn func(ctx context.Context, tx shared.Tx) error) error {
		return fx.store.Within(ctx, fn)
	}

	t.Run("spot numbers are unique within a facility", func(t *testing.T) {
		fx := seed(t)
		dup, err := spot.NewSpot(fx.facility.ID(), 1, spot.KindMotorcycle, now)
		require.NoError(t, err)

		err = within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Spots().Create(ctx, dup)
		})
		assert.True(t, errs.Is(err, spot.ErrDuplicateNumber))
	})

	t.Run("save rejects a stale version", func(t *testing.T) {
		fx := seed(t)

		err := within(fx, func(ctx context.Context, tx shared.Tx) error {
			s, err := tx.Spots().FindForUpdate(ctx, fx.spot.ID())
			require.NoError(t, err)
			require.NoError(t, s.Apply(spot.EventReserve, now))
			return tx.Spots().Save(ctx, s, s.Version()+5)
		})
		assert.True(t, errs.Is(err, spot.ErrVersionMismatch))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("counters cannot leave their bounds", func(t *testing.T) {
		fx := seed(t)

		err := within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Facilities().AdjustCounters(ctx, fx.facility.ID(), 0, 1)
		})
		assert.True(t, errs.Is(err, memstore.ErrConstraint))

		err = within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Facilities().AdjustCounters(ctx, fx.facility.ID(), 0, -2)
		})
		assert.True(t, errs.Is(err, memstore.ErrConstraint))
	})

	t.Run("one active reservation per spot", func(t *testing.T) {
		fx := seed(t)
		first, err := reservation.NewReservation(fx.spot.ID(), fx.facility.ID(), uuid.New(), fx.plan.ID(), now)
		require.NoError(t, err)
		second, err := reservation.NewReservation(fx.spot.ID(), fx.facility.ID(), uuid.New(), fx.plan.ID(), now)
		require.NoError(t, err)

		err = within(fx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Ledger().Append(ctx, first); err != nil {
				return err
			}
			return tx.Ledger().Append(ctx, second)
		})
		assert.True(t, errs.Is(err, reservation.ErrActiveReservationExists))
	})

	t.Run("finalize and payment happen once", func(t *testing.T) {
		fx := seed(t)
		res, err := reservation.NewReservation(fx.spot.ID(), fx.facility.ID(), uuid.New(), fx.plan.ID(), now)
		require.NoError(t, err)
		require.NoError(t, within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Ledger().Append(ctx, res)
		}))

		ended := reservation.Reconstruct(res.ID(), res.SpotID(), res.FacilityID(), res.UserID(), res.PlanID(),
			res.StartedAt(), ptrTime(now.Add(2*time.Hour)), ptrMoney(money.FromCents(900)))
		require.NoError(t, within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Ledger().Finalize(ctx, ended)
		}))
		err = within(fx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Ledger().Finalize(ctx, ended)
		})
		assert.True(t, errs.Is(err, reservation.ErrReservationAlreadyEnded))

		pay := func() error {
			p, err := reservation.NewPayment(ended, reservation.MethodPix, money.FromCents(900), money.FromCents(900), money.Zero(), reservation.IdempotencyKey{}, now)
			require.NoError(t, err)
			return within(fx, func(ctx context.Context, tx shared.Tx) error {
				return tx.Ledger().AppendPayment(ctx, p)
			})
		}
		require.NoError(t, pay())
		assert.True(t, errs.Is(pay(), reservation.ErrAlreadyPaid))

		err = fx.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			payments, err := tx.Ledger().ListPayments(ctx, []uuid.UUID{res.ID()})
			require.NoError(t, err)
			assert.Len(t, payments, 1)

			stored, err := tx.Ledger().FindByID(ctx, res.ID())
			require.NoError(t, err)
			require.NotNil(t, stored.Amount())
			assert.Equal(t, int64(900), stored.Amount().Cents())
			return nil
		})
		require.NoError(t, err)
	})
}

func TestStore_Outbox(t *testing.T) {
	ctx := context.Background()
	fx := seed(t)

	for i := range 3 {
		ev := shared.OutboxEvent{
			ID:        uuid.New(),
			Topic:     shared.TopicSpotChanged,
			Payload:   []byte(`{}`),
			RunAt:     now,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Outbox().Enqueue(ctx, ev)
		}))
	}

	var claimed []shared.OutboxEvent
	require.NoError(t, fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		claimed, err = tx.Outbox().ClaimPending(ctx, now, time.Minute, 2)
		return err
	}))
	require.Len(t, claimed, 2)
	assert.Equal(t, 1, claimed[0].Attempts)

	var again []shared.OutboxEvent
	require.NoError(t, fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		again, err = tx.Outbox().ClaimPending(ctx, now.Add(time.Second), time.Minute, 10)
		return err
	}))
	require.Len(t, again, 1, "leased events are skipped")
	assert.NotEqual(t, claimed[0].ID, again[0].ID)
	assert.NotEqual(t, claimed[1].ID, again[0].ID)
}

func TestStore_Reconciliation(t *testing.T) {
	ctx := context.Background()
	fx := seed(t)
	subject := uuid.New()

	var created []bool
	for range 2 {
		require.NoError(t, fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err := tx.Reconciliation().Flag(ctx, shared.ReconciliationFlag{
				Kind: shared.FlagOrphanSpot, SubjectID: subject, Detail: "reserved without reservation", DetectedAt: now,
			})
			created = append(created, ok)
			return err
		}))
	}
	assert.Equal(t, []bool{true, false}, created)

	require.NoError(t, fx.store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reconciliation().ListOpen(ctx)
		require.NoError(t, err)
		require.Len(t, open, 1)
		return tx.Reconciliation().Resolve(ctx, open[0].ID, now.Add(time.Minute))
	}))
	require.NoError(t, fx.store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reconciliation().ListOpen(ctx)
		require.NoError(t, err)
		assert.Empty(t, open)
		return nil
	}))
}

func ptrTime(t time.Time) *time.Time      { return &t }
func ptrMoney(m money.Money) *money.Money { return &m }
