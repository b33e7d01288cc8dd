package api_test

import (
	"net/http"
	"testing"
	"time"

	"parking-core/internal/domain/tariff"
	"parking-core/internal/domain/user"
	"parking-core/internal/handler/api"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/testutil"
	"parking-core/internal/testutil/builder"
	"parking-core/internal/testutil/httptest"
	commandsmock "parking-core/internal/testutil/mock/commands"
	queriesmock "parking-core/internal/testutil/mock/queries"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TariffHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTariffCommands
	mockQueries  *queriesmock.MockTariffQueries
}

func (s *TariffHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTariffCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTariffQueries(s.mockCtrl)
	h := api.NewTariffHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(uuid.New(), user.RoleAdmin)
	s.router.GET("/api/plans", auth, h.ListPlans)
	s.router.GET("/api/plans/effective", auth, h.EffectivePlan)
	s.router.POST("/api/admin/plans", auth, h.CreatePlan)
	s.router.PUT("/api/admin/plans/:id", auth, h.UpdatePlan)
	s.router.DELETE("/api/admin/plans/:id", auth, h.RetirePlan)
}

func (s *TariffHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTariffHandlerSuite(t *testing.T) {
	suite.Run(t, new(TariffHandlerTestSuite))
}

func (s *TariffHandlerTestSuite) TestEffectivePlan() {
	planA := builder.NewPlanBuilder().BuildView()

	s.Run("success: resolves at the given instant", func() {
		at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().ResolveEffectivePlan(gomock.Any(), (*uuid.UUID)(nil), at).Return(planA, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/plans/effective?at=2024-03-01T00:00:00Z", nil, token)

		var body resdto.PlanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(planA.ID, body.ID)
		s.Equal("5.00", body.Base)
		s.Equal("2.00", body.Hourly)
		s.Equal("30.00", body.Daily)
	})

	s.Run("success: zero instant means now", func() {
		facilityID := uuid.New()
		s.mockQueries.EXPECT().ResolveEffectivePlan(gomock.Any(), &facilityID, time.Time{}).Return(planA, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/plans/effective?facilityId="+facilityID.String(), nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: nothing effective yet", func() {
		s.mockQueries.EXPECT().ResolveEffectivePlan(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tariff.ErrPlanNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/plans/effective", nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "plan_not_found")
	})
}

func (s *TariffHandlerTestSuite) TestListPlans() {
	s.mockQueries.EXPECT().ListPlans(gomock.Any(), (*uuid.UUID)(nil)).
		Return([]*queries.PlanView{builder.NewPlanBuilder().BuildView(), builder.NewPlanBuilder().BuildView()}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/plans", nil, token)

	var body []resdto.PlanResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
}

func (s *TariffHandlerTestSuite) TestCreatePlan() {
	url := "/api/admin/plans"
	b := builder.NewPlanBuilder()
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: 201 with the stored plan", func() {
		s.mockCommands.EXPECT().CreatePlan(gomock.Any(), gomock.Cond(func(x any) bool {
			req := x.(commands.CreatePlanRequest)
			return req.BaseCents == 500 && req.HourlyCents == 200 && req.DailyCents == 3000 && req.Description == "Standard"
		})).Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, field := range []string{"description", "baseCents", "hourlyCents", "dailyCents"} {
			s.Run("missing "+field, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil)), token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: negative rate", func() {
		s.mockCommands.EXPECT().CreatePlan(gomock.Any(), gomock.Any()).Return(nil, tariff.ErrInvalidRate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("hourlyCents", -1)), token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_rate")
	})
}

func (s *TariffHandlerTestSuite) TestUpdatePlan() {
	planID := uuid.New()
	url := "/api/admin/plans/" + planID.String()

	s.Run("success: only given fields are sent", func() {
		s.mockCommands.EXPECT().UpdatePlan(gomock.Any(), planID, gomock.Cond(func(x any) bool {
			req := x.(commands.UpdatePlanRequest)
			return req.BaseCents != nil && *req.BaseCents == 800 && req.Description == nil && req.HourlyCents == nil
		})).Return(builder.NewPlanBuilder().BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"baseCents": 800}, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: plan already billed", func() {
		s.mockCommands.EXPECT().UpdatePlan(gomock.Any(), planID, gomock.Any()).Return(nil, tariff.ErrPlanInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"baseCents": 800}, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "plan_in_use")
	})
}

func (s *TariffHandlerTestSuite) TestRetirePlan() {
	planID := uuid.New()

	s.mockCommands.EXPECT().RetirePlan(gomock.Any(), planID).Return(nil, tariff.ErrPlanRetired).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/plans/"+planID.String(), nil, token)
	httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "plan_retired")
}
