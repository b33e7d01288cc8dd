package reservation_test

import (
	"testing"
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	clock   *clock.MockClock
	factory *reservation.Factory
	spot    *spot.Spot
	plan    *tariff.Plan
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(start)

	rates, err := tariff.NewRates(500, 200, 2000)
	require.NoError(t, err)
	plan, err := tariff.NewPlan(nil, "standard", start, rates, start)
	require.NoError(t, err)

	s, err := spot.NewSpot(uuid.New(), 1, spot.KindCar, start)
	require.NoError(t, err)

	return fixture{
		clock:   clk,
		factory: reservation.NewFactory(clk, reservation.NewPlanPriceCalculator()),
		spot:    s,
		plan:    plan,
	}
}

func TestFactory(t *testing.T) {
	t.Run("open freezes the plan and start time", func(t *testing.T) {
		f := newFixture(t)
		userID := uuid.New()

		r, err := f.factory.Open(f.spot, userID, f.plan)
		require.NoError(t, err)
		assert.Equal(t, f.spot.ID(), r.SpotID())
		assert.Equal(t, f.spot.FacilityID(), r.FacilityID())
		assert.Equal(t, userID, r.UserID())
		assert.Equal(t, f.plan.ID(), r.PlanID())
		assert.Equal(t, f.clock.Now(), r.StartedAt())
		assert.True(t, r.IsActive())
		assert.Equal(t, reservation.StatusActive, r.Status())
		assert.Nil(t, r.Amount())
		assert.Zero(t, r.Duration())
	})

	t.Run("open requires a user", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.factory.Open(f.spot, uuid.Nil, f.plan)
		assert.True(t, errs.Is(err, reservation.ErrMissingUser))
	})

	t.Run("close bills elapsed time", func(t *testing.T) {
		f := newFixture(t)
		r, err := f.factory.Open(f.spot, uuid.New(), f.plan)
		require.NoError(t, err)

		f.clock.Add(3*time.Hour + 15*time.Minute)
		require.NoError(t, f.factory.Close(r, f.plan))

		require.NotNil(t, r.Amount())
		assert.Equal(t, int64(1300), r.Amount().Cents())
		assert.Equal(t, reservation.StatusEnded, r.Status())
		assert.Equal(t, int64(195), r.DurationMinutes())
	})

	t.Run("close twice is rejected", func(t *testing.T) {
		f := newFixture(t)
		r, err := f.factory.Open(f.spot, uuid.New(), f.plan)
		require.NoError(t, err)
		require.NoError(t, f.factory.Close(r, f.plan))

		err = f.factory.Close(r, f.plan)
		assert.True(t, errs.Is(err, reservation.ErrReservationAlreadyEnded))
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})

	t.Run("close with another plan is an internal error", func(t *testing.T) {
		f := newFixture(t)
		r, err := f.factory.Open(f.spot, uuid.New(), f.plan)
		require.NoError(t, err)

		other, err := tariff.NewPlan(nil, "other", f.clock.Now(), f.plan.Rates(), f.clock.Now())
		require.NoError(t, err)
		err = f.factory.Close(r, other)
		assert.True(t, errs.Is(err, reservation.ErrPlanMismatch))
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		assert.True(t, r.IsActive())
	})
}

func TestAmountDue(t *testing.T) {
	base := money.FromCents(500)
	started := time.Now()

	active := reservation.Reconstruct(uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), started, nil, nil)
	assert.Equal(t, base, active.AmountDue(base))

	ended := started.Add(time.Hour)
	amount := money.FromCents(700)
	closed := reservation.Reconstruct(uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), started, &ended, &amount)
	assert.Equal(t, amount, closed.AmountDue(base))
}
