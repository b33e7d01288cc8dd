package handler_test

import (
	"net/http"
	"testing"
	"time"

	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/user"
	"parking-core/internal/handler"
	"parking-core/internal/handler/api"
	"parking-core/internal/handler/middleware"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/config"
	"parking-core/internal/pkg/jwt"
	"parking-core/internal/testutil/authtest"
	"parking-core/internal/testutil/httptest"
	commandsmock "parking-core/internal/testutil/mock/commands"
	queriesmock "parking-core/internal/testutil/mock/queries"
	"parking-core/internal/usecase"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RouterTestSuite struct {
	suite.Suite
	router      *gin.Engine
	ctrl        *gomock.Controller
	reservation *commandsmock.MockReservationCommands
	facilities  *queriesmock.MockFacilityQueries
	flags       *queriesmock.MockReconciliationQueries
	tokens      *authtest.JWTHelper
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	s.ctrl = gomock.NewController(s.T())
	s.reservation = commandsmock.NewMockReservationCommands(s.ctrl)
	s.facilities = queriesmock.NewMockFacilityQueries(s.ctrl)
	s.flags = queriesmock.NewMockReconciliationQueries(s.ctrl)
	s.tokens = authtest.NewJWTHelper(cfg.JWT)

	handlers := handler.Handlers{
		Reservation: api.NewReservationHandler(s.reservation, queriesmock.NewMockReservationQueries(s.ctrl)),
		Registry:    api.NewRegistryHandler(commandsmock.NewMockRegistryCommands(s.ctrl), s.facilities, queriesmock.NewMockSpotQueries(s.ctrl)),
		Tariff:      api.NewTariffHandler(commandsmock.NewMockTariffCommands(s.ctrl), queriesmock.NewMockTariffQueries(s.ctrl)),
		Report:      api.NewReportHandler(queriesmock.NewMockReportQueries(s.ctrl)),
		Admin:       api.NewAdminHandler(commandsmock.NewMockRecoveryCommands(s.ctrl), s.flags),
	}
	jwtService := jwt.NewService(cfg.JWT.Secret, time.Hour, clock.NewRealClock())
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtService))

	s.router = gin.New()
	handler.NewRouter(s.router, cfg, middleware.NewLogger(cfg.Log), handlers, auth)
}

func (s *RouterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *RouterTestSuite) TestAuthentication() {
	s.Run("missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/facilities", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("expired token", func() {
		expired := s.tokens.CreateExpiredToken(s.T(), uuid.New(), user.RoleAdmin)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/facilities", nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("viewer can read", func() {
		s.facilities.EXPECT().List(gomock.Any()).Return([]*queries.FacilityView{}, nil).Times(1)

		viewer := s.tokens.GenerateToken(s.T(), uuid.New(), user.RoleViewer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/facilities", nil, viewer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *RouterTestSuite) TestRoles() {
	spotID := uuid.New()
	release := map[string]any{"spotId": spotID.String()}

	s.Run("viewer cannot release", func() {
		viewer := s.tokens.GenerateToken(s.T(), uuid.New(), user.RoleViewer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/release", release, viewer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("operator reaches the coordinator", func() {
		s.reservation.EXPECT().Release(gomock.Any(), spotID).Return(nil, spot.ErrNoActiveReservation).Times(1)

		operator := s.tokens.GenerateToken(s.T(), uuid.New(), user.RoleOperator)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/release", release, operator)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "no_active_reservation")
	})

	s.Run("operator is not an admin", func() {
		operator := s.tokens.GenerateToken(s.T(), uuid.New(), user.RoleOperator)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/inconsistencies", nil, operator)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("admin lists inconsistencies", func() {
		s.flags.EXPECT().ListOpen(gomock.Any()).Return(nil, nil).Times(1)

		admin := s.tokens.GenerateToken(s.T(), uuid.New(), user.RoleAdmin)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/inconsistencies", nil, admin)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
