package api

import (
	"net/http"

	resdto "parking-core/internal/handler/dto/response"
	"parking-core/internal/handler/httperr"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	recovery commands.RecoveryCommands
	flags    queries.ReconciliationQueries
}

func NewAdminHandler(recovery commands.RecoveryCommands, flags queries.ReconciliationQueries) *AdminHandler {
	return &AdminHandler{recovery: recovery, flags: flags}
}

// @Summary Open inconsistencies
// @Description Registry and ledger disagreements recorded by the recovery pass and not yet resolved
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.InconsistencyResponse
// @Router /api/admin/inconsistencies [get]
func (h *AdminHandler) ListInconsistencies(c *gin.Context) {
	views, err := h.flags.ListOpen(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconciliationFlagViews(views))
}

// @Summary Run recovery
// @Description Compare registry and ledger now; findings are recorded, never repaired
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RecoveryResponse
// @Router /api/admin/recovery [post]
func (h *AdminHandler) RunRecovery(c *gin.Context) {
	result, err := h.recovery.Run(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecoveryResult(result))
}
