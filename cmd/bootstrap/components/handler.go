package components

import (
	"parking-core/internal/handler"
	"parking-core/internal/handler/api"
	"parking-core/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewRegistryHandler,
		api.NewTariffHandler,
		api.NewReportHandler,
		api.NewAdminHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	reservation *api.ReservationHandler,
	registry *api.RegistryHandler,
	tariff *api.TariffHandler,
	report *api.ReportHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Reservation: reservation,
		Registry:    registry,
		Tariff:      tariff,
		Report:      report,
		Admin:       admin,
	}
}
