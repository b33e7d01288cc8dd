package api_test

import (
	"net/http"
	"testing"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/domain/user"
	"parking-core/internal/handler/api"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/infra/lock"
	"parking-core/internal/pkg/errs"
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

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	callerID     uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.callerID = uuid.New()

	auth := fakeAuth(s.callerID, user.RoleOperator)
	s.router.POST("/api/reserve", auth, s.handler.Reserve)
	s.router.POST("/api/release", auth, s.handler.Release)
	s.router.POST("/api/payment", auth, s.handler.RecordPayment)
	s.router.POST("/api/spots/:id/check-in", auth, s.handler.CheckIn)
	s.router.GET("/api/reservations", auth, s.handler.List)
	s.router.GET("/api/reservations/:id", auth, s.handler.Get)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type errorCase struct {
	name       string
	err        error
	wantStatus int
	wantCode   string
}

// ================================================================================
// TestReserve
// ================================================================================

func (s *ReservationHandlerTestSuite) TestReserve() {
	url := "/api/reserve"

	b := builder.NewReservationBuilder()
	plan := builder.NewPlanBuilder().BuildView()
	reqBody := b.BuildReserveRequestDTO()
	result := b.BuildReserveResult(plan)

	s.Run("success: reserves for the caller when userId is omitted", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), commands.ReserveRequest{
			FacilityID: b.FacilityID,
			SpotID:     b.SpotID,
			UserID:     s.callerID,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)

		var body resdto.ReserveResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(b.ID, body.ReservationID)
		s.Equal("5.00", body.AmountDue)
		s.Equal(int64(500), body.AmountDueCents)
		s.Equal(plan.ID, body.Plan.ID)
		s.Equal("active", body.Reservation.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservations/" + b.ID.String()})
	})

	s.Run("success: explicit userId, plan and version pass through", func() {
		other := uuid.New()
		body := testutil.DtoMap(s.T(), reqBody,
			testutil.Field("userId", other.String()),
			testutil.Field("planId", plan.ID.String()),
			testutil.Field("expectedVersion", 3),
		)
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Cond(func(x any) bool {
			req := x.(commands.ReserveRequest)
			return req.UserID == other && *req.PlanID == plan.ID && *req.ExpectedVersion == 3
		})).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: facilityId (required)", mutate: testutil.Field("facilityId", nil)},
			{name: "missing field: spotId (required)", mutate: testutil.Field("spotId", nil)},
			{name: "malformed spotId", mutate: testutil.Field("spotId", "spot-7")},
			{name: "negative expectedVersion", mutate: testutil.Field("expectedVersion", -1)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps use case errors to status and code", func() {
		cases := []errorCase{
			{name: "spot taken", err: errs.Wrapf(spot.ErrSpotNotAvailable, "spot %s is reserved", b.SpotID), wantStatus: http.StatusConflict, wantCode: "spot_not_available"},
			{name: "stale version", err: spot.ErrVersionMismatch, wantStatus: http.StatusConflict, wantCode: "version_mismatch"},
			{name: "unknown spot", err: spot.ErrSpotNotFound, wantStatus: http.StatusNotFound, wantCode: "spot_not_found"},
			{name: "no effective plan", err: tariff.ErrPlanNotFound, wantStatus: http.StatusNotFound, wantCode: "plan_not_found"},
			{name: "lock timeout", err: lock.ErrTimeout, wantStatus: http.StatusServiceUnavailable, wantCode: "busy"},
			{name: "registry disagrees with ledger", err: errs.Wrap(commands.ErrInconsistentState, "spot reserved twice"), wantStatus: http.StatusInternalServerError, wantCode: "inconsistent_state"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
				httptest.AssertErrorCode(s.T(), rec, tc.wantStatus, tc.wantCode)
			})
		}
	})

	s.Run("error: 503 carries Retry-After", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, lock.ErrTimeout).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": httperr.RetryAfterSeconds})
	})
}

// ================================================================================
// TestRelease
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRelease() {
	url := "/api/release"
	spotID := uuid.New()
	reqBody := map[string]any{"spotId": spotID.String()}

	s.Run("success: returns amount and duration", func() {
		ended := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.SpotID = spotID
		}).Ended(3*time.Hour+15*time.Minute, 1300).BuildView()
		s.mockCommands.EXPECT().Release(gomock.Any(), spotID).Return(ended, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)

		var body resdto.ReleaseResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(ended.ID, body.ReservationID)
		s.Equal("13.00", body.Amount)
		s.Equal(int64(1300), body.AmountCents)
		s.Equal(int64(195), body.DurationMinutes)
		s.Nil(body.Payment)
	})

	s.Run("error: second release finds no active reservation", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), spotID).Return(nil, spot.ErrNoActiveReservation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "no_active_reservation")
	})

	s.Run("error: 400 when spotId is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestCheckIn
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCheckIn() {
	view := builder.NewSpotView(uuid.New(), 4, "occupied")
	url := "/api/spots/" + view.ID.String() + "/check-in"

	s.Run("success: returns the occupied spot", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, token)

		var body resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("occupied", body.State)
	})

	s.Run("error: free spot cannot be checked in", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), view.ID).Return(nil, spot.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "invalid_transition")
	})

	s.Run("error: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/spots/abc/check-in", nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})
}

// ================================================================================
// TestRecordPayment
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRecordPayment() {
	url := "/api/payment"
	reservationID := uuid.New()
	reqBody := map[string]any{
		"reservationId": reservationID.String(),
		"method":        "PIX",
		"amountCents":   500,
	}
	payment := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.ID = reservationID
	}).Paid("pix", 500).BuildView().Payment

	s.Run("success: 201 and the key is forwarded", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), commands.RecordPaymentRequest{
			ReservationID:  reservationID,
			Method:         "pix",
			AmountCents:    500,
			IdempotencyKey: "pay-1",
		}).Return(&commands.RecordPaymentResult{Payment: payment}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, token,
			map[string]string{"Idempotency-Key": "pay-1"})

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(payment.ID, body.ID)
		s.Equal("5.00", body.Amount)
		s.False(body.Replayed)
	})

	s.Run("success: replay answers 200", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).
			Return(&commands.RecordPaymentResult{Payment: payment, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, token,
			map[string]string{"Idempotency-Key": "pay-1"})

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
	})

	s.Run("success: zero amount is a valid payment", func() {
		s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Cond(func(x any) bool {
			return x.(commands.RecordPaymentRequest).AmountCents == 0
		})).Return(&commands.RecordPaymentResult{Payment: payment}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("amountCents", 0)), token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, field := range []string{"reservationId", "method", "amountCents"} {
			s.Run("missing "+field, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil)), token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps payment rules", func() {
		cases := []errorCase{
			{name: "paid twice", err: reservation.ErrAlreadyPaid, wantStatus: http.StatusConflict, wantCode: "already_paid"},
			{name: "wrong amount", err: errs.Wrapf(reservation.ErrAmountMismatch, "paid 400, due 500"), wantStatus: http.StatusUnprocessableEntity, wantCode: "amount_mismatch"},
			{name: "unknown method", err: reservation.ErrInvalidPaymentMethod, wantStatus: http.StatusBadRequest, wantCode: "invalid_payment_method"},
			{name: "unknown reservation", err: reservation.ErrReservationNotFound, wantStatus: http.StatusNotFound, wantCode: "reservation_not_found"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
				httptest.AssertErrorCode(s.T(), rec, tc.wantStatus, tc.wantCode)
			})
		}
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().Ended(30*time.Hour, 3700).Paid("credit_card", 3700).BuildView()
	url := "/api/reservations/" + view.ID.String()

	s.Run("success: returns the reservation with its payment", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("ended", body.Status)
		s.Equal(int64(1800), body.DurationMinutes)
		s.Require().NotNil(body.Amount)
		s.Equal("37.00", *body.Amount)
		s.Require().NotNil(body.Payment)
		s.Equal("credit_card", body.Payment.Method)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, reservation.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})
}

func (s *ReservationHandlerTestSuite) TestList() {
	facilityID := uuid.New()
	items := []*queries.ReservationView{
		builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.FacilityID = facilityID }).BuildView(),
	}

	s.Run("success: filters and cursor pass through", func() {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ReservationFilter{
			FacilityID: &facilityID,
			From:       &from,
		}, "cursor-1", 10).Return(&queries.ReservationPage{Items: items, NextCursor: "cursor-2"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations?facilityId="+facilityID.String()+"&from=2024-03-01T00:00:00Z&after=cursor-1&limit=10", nil, token)

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal("cursor-2", body.NextCursor)
	})

	s.Run("success: limit defaults", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ReservationFilter{}, "", queries.DefaultListLimit).
			Return(&queries.ReservationPage{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: status filter is parsed", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ReservationFilter{
			SpotID: &items[0].SpotID,
			Status: reservation.StatusActive,
		}, "", queries.DefaultListLimit).Return(&queries.ReservationPage{Items: items}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations?spotId="+items[0].SpotID.String()+"&status=Active", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?status=pending", nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_reservation_status")
	})

	s.Run("error: malformed timestamp", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?to=yesterday", nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_input")
	})

	s.Run("error: bad cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), "zzz", gomock.Any()).Return(nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?after=zzz", nil, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_cursor")
	})
}
