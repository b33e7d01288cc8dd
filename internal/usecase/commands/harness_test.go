package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/infra/lock"
	"parking-core/internal/infra/memstore"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/config"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	store        *memstore.Store
	clock        *clock.MockClock
	locker       *lock.KeyedLocker
	reservations commands.ReservationCommands
	registry     commands.RegistryCommands
	tariffs      commands.TariffCommands
	reports      queries.ReportQueries
	plans        queries.TariffQueries
	ledger       queries.ReservationQueries
}

type harnessOption func(*harnessConfig)

type harnessConfig struct {
	billing config.BillingConfig
	logger  *slog.Logger
}

func withTolerance(cents int64) harnessOption {
	return func(c *harnessConfig) { c.billing.PaymentToleranceCents = cents }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	cfg := harnessConfig{logger: discardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := memstore.NewStore()
	clk := clock.NewMockClock(start)
	locker := lock.NewKeyedLocker(5 * time.Second)
	factory := reservation.NewFactory(clk, reservation.NewPlanPriceCalculator())

	return &harness{
		store:        store,
		clock:        clk,
		locker:       locker,
		reservations: commands.NewReservationUseCase(store, locker, factory, cfg.billing, clk, cfg.logger),
		registry:     commands.NewRegistryUseCase(store, locker, clk, cfg.logger),
		tariffs:      commands.NewTariffUseCase(store, clk),
		reports:      queries.NewReportQueries(store, clk),
		plans:        queries.NewTariffQueries(store, clk),
		ledger:       queries.NewReservationQueries(store),
	}
}

func (h *harness) facility(t *testing.T, spots int) (*queries.FacilityView, []*queries.SpotView) {
	t.Helper()
	ctx := context.Background()
	f, err := h.registry.CreateFacility(ctx, commands.CreateFacilityRequest{Name: "Centro", Location: "Rua A, 100"})
	require.NoError(t, err)

	views := make([]*queries.SpotView, 0, spots)
	for i := 1; i <= spots; i++ {
		s, err := h.registry.AddSpot(ctx, f.ID, commands.AddSpotRequest{Number: i, Kind: "car"})
		require.NoError(t, err)
		views = append(views, s)
	}
	return f, views
}

// plan creates a global plan effective from the clock's now.
func (h *harness) plan(t *testing.T, base, hourly, daily int64) *queries.PlanView {
	t.Helper()
	p, err := h.tariffs.CreatePlan(context.Background(), commands.CreatePlanRequest{
		Description: "standard",
		BaseCents:   base,
		HourlyCents: hourly,
		DailyCents:  daily,
	})
	require.NoError(t, err)
	return p
}

func (h *harness) reserve(t *testing.T, facilityID, spotID uuid.UUID) *commands.ReserveResult {
	t.Helper()
	res, err := h.reservations.Reserve(context.Background(), commands.ReserveRequest{
		FacilityID: facilityID,
		SpotID:     spotID,
		UserID:     uuid.New(),
	})
	require.NoError(t, err)
	return res
}

func (h *harness) facilityState(t *testing.T, facilityID uuid.UUID) (capacity, free, scannedFree int) {
	t.Helper()
	err := h.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		f, err := tx.Facilities().FindByID(ctx, facilityID)
		if err != nil {
			return err
		}
		capacity, free = f.Capacity(), f.FreeCount()
		spots, err := tx.Spots().ListByFacility(ctx, facilityID)
		if err != nil {
			return err
		}
		for _, s := range spots {
			if s.IsFree() {
				scannedFree++
			}
		}
		return nil
	})
	require.NoError(t, err)
	return capacity, free, scannedFree
}

func (h *harness) topics() []string {
	events := h.store.Events()
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Topic)
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
