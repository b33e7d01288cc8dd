package api

import (
	"context"
	"net/http"
	"slices"

	"parking-core/internal/domain/spot"
	reqdto "parking-core/internal/handler/dto/request"
	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrFacilityRequired = errs.NewKind("facilityId is required", errs.ErrInvalidInput)

type RegistryHandler struct {
	cmds       commands.RegistryCommands
	facilities queries.FacilityQueries
	spots      queries.SpotQueries
}

func NewRegistryHandler(cmds commands.RegistryCommands, facilities queries.FacilityQueries, spots queries.SpotQueries) *RegistryHandler {
	return &RegistryHandler{cmds: cmds, facilities: facilities, spots: spots}
}

// @Summary List facilities
// @Tags facilities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.FacilityResponse
// @Router /api/facilities [get]
func (h *RegistryHandler) ListFacilities(c *gin.Context) {
	views, err := h.facilities.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFacilityViews(views))
}

// @Summary Get facility
// @Tags facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Success 200 {object} resdto.FacilityResponse
// @Failure 404 {object} httperr.Response
// @Router /api/facilities/{id} [get]
func (h *RegistryHandler) GetFacility(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.facilities.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFacilityView(view))
}

// @Summary List spots
// @Description Spots of a facility ordered by number, retired ones included
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param facilityId query string true "Facility ID"
// @Param state query string false "free, reserved, occupied or retired"
// @Success 200 {array} resdto.SpotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/spots [get]
func (h *RegistryHandler) ListSpots(c *gin.Context) {
	facilityID, err := parseOptionalID("facilityId", c.Query("facilityId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if facilityID == nil {
		httperr.Abort(c, ErrFacilityRequired)
		return
	}
	var state spot.State
	if raw := c.Query("state"); raw != "" {
		if state, err = spot.ParseState(raw); err != nil {
			httperr.Abort(c, errs.Wrapf(err, "state %q", raw))
			return
		}
	}

	views, err := h.spots.ListByFacility(c.Request.Context(), *facilityID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if state != "" {
		views = slices.DeleteFunc(views, func(v *queries.SpotView) bool {
			return v.State != state.String()
		})
	}
	c.JSON(http.StatusOK, resdto.FromSpotViews(views))
}

// @Summary Create facility
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateFacilityRequest true "Facility"
// @Success 201 {object} resdto.FacilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/facilities [post]
func (h *RegistryHandler) CreateFacility(c *gin.Context) {
	var req reqdto.CreateFacilityRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.CreateFacility(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/facilities/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromFacilityView(view))
}

// @Summary Add spot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Param request body reqdto.AddSpotRequest true "Spot"
// @Success 201 {object} resdto.SpotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/facilities/{id}/spots [post]
func (h *RegistryHandler) AddSpot(c *gin.Context) {
	facilityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddSpotRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.cmds.AddSpot(c.Request.Context(), facilityID, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSpotView(view))
}

// @Summary Retire spot
// @Description Take a free spot out of service
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body reqdto.SpotVersionRequest false "Expected version"
// @Success 200 {object} resdto.SpotResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/spots/{id}/retire [post]
func (h *RegistryHandler) RetireSpot(c *gin.Context) {
	h.administer(c, h.cmds.RetireSpot)
}

// @Summary Restore spot
// @Description Return a retired spot to service
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body reqdto.SpotVersionRequest false "Expected version"
// @Success 200 {object} resdto.SpotResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/spots/{id}/restore [post]
func (h *RegistryHandler) RestoreSpot(c *gin.Context) {
	h.administer(c, h.cmds.RestoreSpot)
}

type spotCommand func(ctx context.Context, spotID uuid.UUID, expectedVersion *int64) (*queries.SpotView, error)

func (h *RegistryHandler) administer(c *gin.Context, run spotCommand) {
	spotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SpotVersionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	view, err := run(c.Request.Context(), spotID, req.ExpectedVersion)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpotView(view))
}
