package httperr

import (
	"context"
	"net/http"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds is sent with every 503 so clients back off before retrying.
const RetryAfterSeconds = "1"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, msg, "", detail)
}

// Abort renders a use case error: the status follows its kind and the code
// names the specific failure.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", RetryAfterSeconds)
	}
	abort(c, status, err, msg, CodeOf(err), nil)
}

func abort(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func StatusOf(err error) int {
	if errs.Is(err, reservation.ErrAmountMismatch) {
		return http.StatusUnprocessableEntity
	}
	if errs.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Ordered so that more specific sentinels win over the ones they are marked with.
var codes = []struct {
	err  error
	code string
}{
	{spot.ErrVersionMismatch, "version_mismatch"},
	{spot.ErrSpotNotAvailable, "spot_not_available"},
	{spot.ErrSpotNotFound, "spot_not_found"},
	{spot.ErrSpotBusy, "spot_busy"},
	{spot.ErrNoActiveReservation, "no_active_reservation"},
	{spot.ErrInvalidTransition, "invalid_transition"},
	{spot.ErrDuplicateNumber, "duplicate_spot_number"},
	{spot.ErrInvalidNumber, "invalid_spot_number"},
	{spot.ErrInvalidKind, "invalid_spot_kind"},
	{spot.ErrInvalidState, "invalid_spot_state"},
	{facility.ErrFacilityNotFound, "facility_not_found"},
	{facility.ErrEmptyName, "invalid_facility"},
	{facility.ErrNameTooLong, "invalid_facility"},
	{facility.ErrLocationTooLong, "invalid_facility"},
	{tariff.ErrPlanNotFound, "plan_not_found"},
	{tariff.ErrPlanInUse, "plan_in_use"},
	{tariff.ErrPlanRetired, "plan_retired"},
	{tariff.ErrInvalidRate, "invalid_rate"},
	{tariff.ErrInvalidDate, "invalid_date"},
	{tariff.ErrEmptyDescription, "invalid_description"},
	{tariff.ErrDescriptionTooLong, "invalid_description"},
	{reservation.ErrReservationNotFound, "reservation_not_found"},
	{reservation.ErrReservationAlreadyEnded, "reservation_already_ended"},
	{reservation.ErrActiveReservationExists, "active_reservation_exists"},
	{reservation.ErrMissingUser, "missing_user"},
	{reservation.ErrInvalidStatus, "invalid_reservation_status"},
	{reservation.ErrAlreadyPaid, "already_paid"},
	{reservation.ErrAmountMismatch, "amount_mismatch"},
	{reservation.ErrInvalidAmount, "invalid_amount"},
	{reservation.ErrInvalidPaymentMethod, "invalid_payment_method"},
	{reservation.ErrIdempotencyKeyTooLong, "invalid_idempotency_key"},
	{queries.ErrInvalidCursor, "invalid_cursor"},
	{queries.ErrInvalidRange, "invalid_range"},
	{commands.ErrInconsistentState, "inconsistent_state"},
}

func CodeOf(err error) string {
	for _, c := range codes {
		if errs.Is(err, c.err) {
			return c.code
		}
	}
	switch StatusOf(err) {
	case http.StatusServiceUnavailable:
		return "busy"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return string(errs.KindOf(err))
	}
}
