package api

import (
	"net/http"

	reqdto "parking-core/internal/handler/dto/request"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TariffHandler struct {
	cmds commands.TariffCommands
	q    queries.TariffQueries
}

func NewTariffHandler(cmds commands.TariffCommands, q queries.TariffQueries) *TariffHandler {
	return &TariffHandler{cmds: cmds, q: q}
}

// @Summary List plans
// @Description Global plans plus the facility's own when facilityId is given
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param facilityId query string false "Facility ID"
// @Success 200 {array} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Router /api/plans [get]
func (h *TariffHandler) ListPlans(c *gin.Context) {
	facilityID, err := parseOptionalID("facilityId", c.Query("facilityId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListPlans(c.Request.Context(), facilityID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPlanViews(views))
}

// @Summary Effective plan
// @Description The plan that applies to a facility at the given instant (now by default)
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param facilityId query string false "Facility ID"
// @Param at query string false "Instant (RFC 3339)"
// @Success 200 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/plans/effective [get]
func (h *TariffHandler) EffectivePlan(c *gin.Context) {
	var q reqdto.PlanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", err.Error())
		return
	}
	facilityID, err := parseOptionalID("facilityId", q.FacilityID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	at, err := parseOptionalTime("at", q.At)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.q.ResolveEffectivePlan(c.Request.Context(), facilityID, timeOrZero(at))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPlanView(view))
}

// @Summary Create plan
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePlanRequest true "Plan"
// @Success 201 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/plans [post]
func (h *TariffHandler) CreatePlan(c *gin.Context) {
	var req reqdto.CreatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.CreatePlan(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPlanView(view))
}

// @Summary Update plan
// @Description Edit a plan no reservation references yet
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body reqdto.UpdatePlanRequest true "Fields to change"
// @Success 200 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/plans/{id} [put]
func (h *TariffHandler) UpdatePlan(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.UpdatePlan(c.Request.Context(), planID, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPlanView(view))
}

// @Summary Retire plan
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} resdto.PlanResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/plans/{id} [delete]
func (h *TariffHandler) RetirePlan(c *gin.Context) {
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.cmds.RetirePlan(c.Request.Context(), planID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPlanView(view))
}
