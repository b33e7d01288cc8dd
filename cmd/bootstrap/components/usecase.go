package components

import (
	"parking-core/internal/domain/reservation"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/usecase"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewPlanPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewRegistryUseCase,
		commands.NewTariffUseCase,
		commands.NewRecoveryUseCase,
		commands.NewOutboxDispatcher,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewFacilityQueries,
		queries.NewSpotQueries,
		queries.NewTariffQueries,
		queries.NewReservationQueries,
		queries.NewReportQueries,
		queries.NewReconciliationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
