package queries

import (
	"context"
	"time"

	"parking-core/internal/pkg/clock"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReportQueries interface {
	// OccupancyReport uses the clock's now when asOf is zero. A nil from
	// counts every reservation ended up to asOf.
	OccupancyReport(ctx context.Context, facilityID uuid.UUID, asOf time.Time, from *time.Time) (*OccupancyReport, error)
}

type reportQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReportQueries(uow shared.UnitOfWork, clk clock.Clock) ReportQueries {
	return &reportQueriesImpl{uow: uow, clock: clk}
}

func (q *reportQueriesImpl) OccupancyReport(ctx context.Context, facilityID uuid.UUID, asOf time.Time, from *time.Time) (*OccupancyReport, error) {
	if asOf.IsZero() {
		asOf = q.clock.Now()
	}
	if from != nil && from.After(asOf) {
		return nil, ErrInvalidRange
	}

	var report *OccupancyReport
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := tx.Facilities().FindByID(ctx, facilityID)
		if err != nil {
			return err
		}
		ended, err := tx.Ledger().Find(ctx, shared.LedgerFilter{
			FacilityID: &facilityID,
			EndedOnly:  true,
			From:       from,
			To:         &asOf,
		})
		if err != nil {
			return err
		}
		payments, err := paymentsByReservation(ctx, tx, ended)
		if err != nil {
			return err
		}

		report = &OccupancyReport{
			FacilityID:          facilityID,
			AsOf:                asOf,
			From:                from,
			Capacity:            f.Capacity(),
			FreeCount:           f.FreeCount(),
			OccupancyPercent:    f.OccupancyPercent(),
			ReservationsCounted: len(ended),
		}
		var totalMinutes float64
		for _, r := range ended {
			totalMinutes += r.Duration().Minutes()
			if p, ok := payments[r.ID()]; ok {
				report.RevenueTotalCents += p.Amount().Cents()
			}
		}
		if len(ended) > 0 {
			report.AvgDurationMinutes = totalMinutes / float64(len(ended))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
