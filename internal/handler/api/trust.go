package api

import (
	"net/http"

	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/handler/httperr"
	"collabflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TrustHandler struct {
	queries queries.TrustQueries
}

func NewTrustHandler(qs queries.TrustQueries) *TrustHandler {
	return &TrustHandler{queries: qs}
}

// @Summary Creator exposure
// @Description Whether the creator may currently be shown to brands. Suspended creators yield 423.
// @Tags trust
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creator ID"
// @Success 200 {object} resdto.ExposureResponse
// @Failure 423 {object} httperr.Response
// @Router /creators/{id}/exposure [get]
func (h *TrustHandler) Exposure(c *gin.Context) {
	creatorID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.Exposure(c.Request.Context(), creatorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromExposureView(view)
	respond(c, http.StatusOK, out, err)
}

// @Summary Own trust standing
// @Tags trust
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TrustResponse
// @Router /creators/me/trust [get]
func (h *TrustHandler) Me(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	view, err := h.queries.Standing(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromTrustView(view)
	respond(c, http.StatusOK, out, err)
}
