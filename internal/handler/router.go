package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parking-core/internal/domain/user"
	"parking-core/internal/handler/api"
	"parking-core/internal/handler/middleware"
	"parking-core/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Reservation *api.ReservationHandler
	Registry    *api.RegistryHandler
	Tariff      *api.TariffHandler
	Report      *api.ReportHandler
	Admin       *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		// attendants release and check in; drivers only reserve and pay
		operator := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleOperator)}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/reserve", Handler: h.Reservation.Reserve},
			{Method: http.MethodPost, Path: "/release", Handler: h.Reservation.Release, Mw: operator},
			{Method: http.MethodPost, Path: "/payment", Handler: h.Reservation.RecordPayment},
			{Method: http.MethodGet, Path: "/report", Handler: h.Report.Report},
			{Method: http.MethodGet, Path: "/spots", Handler: h.Registry.ListSpots},
			{Method: http.MethodPost, Path: "/spots/:id/check-in", Handler: h.Reservation.CheckIn, Mw: operator},
			{Method: http.MethodGet, Path: "/reservations", Handler: h.Reservation.List},
			{Method: http.MethodGet, Path: "/reservations/:id", Handler: h.Reservation.Get},
			{Method: http.MethodGet, Path: "/plans", Handler: h.Tariff.ListPlans},
			{Method: http.MethodGet, Path: "/plans/effective", Handler: h.Tariff.EffectivePlan},
			{Method: http.MethodGet, Path: "/facilities", Handler: h.Registry.ListFacilities},
			{Method: http.MethodGet, Path: "/facilities/:id", Handler: h.Registry.GetFacility},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/facilities", Handler: h.Registry.CreateFacility},
			{Method: http.MethodPost, Path: "/facilities/:id/spots", Handler: h.Registry.AddSpot},
			{Method: http.MethodPost, Path: "/spots/:id/retire", Handler: h.Registry.RetireSpot},
			{Method: http.MethodPost, Path: "/spots/:id/restore", Handler: h.Registry.RestoreSpot},
			{Method: http.MethodPost, Path: "/plans", Handler: h.Tariff.CreatePlan},
			{Method: http.MethodPut, Path: "/plans/:id", Handler: h.Tariff.UpdatePlan},
			{Method: http.MethodDelete, Path: "/plans/:id", Handler: h.Tariff.RetirePlan},
			{Method: http.MethodGet, Path: "/inconsistencies", Handler: h.Admin.ListInconsistencies},
			{Method: http.MethodPost, Path: "/recovery", Handler: h.Admin.RunRecovery},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
