package api

import (
	"net/http"

	"parking-core/internal/domain/reservation"
	reqdto "parking-core/internal/handler/dto/request"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/handler/middleware"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const idempotencyKeyHeader = "Idempotency-Key"

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Reserve a spot
// @Description Reserve a free spot under the effective (or given) tariff plan. userId defaults to the caller.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveRequest true "Reserve request"
// @Success 201 {object} resdto.ReserveResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reserve [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCaller, "Unauthorized", nil)
		return
	}
	var req reqdto.ReserveRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cmds.Reserve(c.Request.Context(), req.ToCommand(callerID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+result.Reservation.ID.String())
	c.JSON(http.StatusCreated, resdto.FromReserveResult(result))
}

// @Summary Release a spot
// @Description Close the active reservation of a spot, bill it and free the spot
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReleaseRequest true "Release request"
// @Success 200 {object} resdto.ReleaseResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	var req reqdto.ReleaseRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.Release(c.Request.Context(), req.SpotID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReleasedReservation(view))
}

// @Summary Check in
// @Description Mark a reserved spot as occupied
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {object} resdto.SpotResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/spots/{id}/check-in [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.cmds.CheckIn(c.Request.Context(), spotID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpotView(view))
}

// @Summary Record payment
// @Description Record the single payment of a reservation. A repeated Idempotency-Key returns the stored payment.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body reqdto.PaymentRequest true "Payment request"
// @Success 201 {object} resdto.PaymentResponse
// @Success 200 {object} resdto.PaymentResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/payment [post]
func (h *ReservationHandler) RecordPayment(c *gin.Context) {
	var req reqdto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cmds.RecordPayment(c.Request.Context(), req.ToCommand(c.GetHeader(idempotencyKeyHeader)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromRecordPaymentResult(result))
}

// @Summary Get reservation
// @Description Get a reservation with its payment
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description Newest first, filtered by facility, spot and start time
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param facilityId query string false "Facility ID"
// @Param spotId query string false "Spot ID"
// @Param from query string false "Started at or after (RFC 3339)"
// @Param to query string false "Started before (RFC 3339)"
// @Param status query string false "active or ended"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var q reqdto.ReservationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", err.Error())
		return
	}

	filter, err := reservationFilter(q)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	page, err := h.q.List(c.Request.Context(), filter, q.After, queries.ValidateLimit(q.Limit))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

func reservationFilter(q reqdto.ReservationListQuery) (queries.ReservationFilter, error) {
	var (
		f   queries.ReservationFilter
		err error
	)
	if f.FacilityID, err = parseOptionalID("facilityId", q.FacilityID); err != nil {
		return f, err
	}
	if f.SpotID, err = parseOptionalID("spotId", q.SpotID); err != nil {
		return f, err
	}
	if f.From, err = parseOptionalTime("from", q.From); err != nil {
		return f, err
	}
	if f.To, err = parseOptionalTime("to", q.To); err != nil {
		return f, err
	}
	if q.Status != "" {
		if f.Status, err = reservation.ParseStatus(q.Status); err != nil {
			return f, errs.Wrapf(err, "status %q", q.Status)
		}
	}
	return f, nil
}
