package api

import (
	"net/http"

	reqdto "parking-core/internal/handler/dto/request"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	q queries.ReportQueries
}

func NewReportHandler(q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Facility report
// @Description Occupancy right now, plus revenue and average duration of reservations ended in [from, asOf]
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param facilityId query string true "Facility ID"
// @Param asOf query string false "End of the window (RFC 3339), defaults to now"
// @Param from query string false "Start of the window (RFC 3339)"
// @Success 200 {object} resdto.ReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/report [get]
func (h *ReportHandler) Report(c *gin.Context) {
	var q reqdto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "facilityId is required", nil)
		return
	}

	facilityID, err := parseOptionalID("facilityId", q.FacilityID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	asOf, err := parseOptionalTime("asOf", q.AsOf)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	from, err := parseOptionalTime("from", q.From)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	report, err := h.q.OccupancyReport(c.Request.Context(), *facilityID, timeOrZero(asOf), from)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOccupancyReport(report))
}
