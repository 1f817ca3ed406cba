package api

import (
	"net/http"

	reqdto "collabflow/internal/handler/dto/request"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/handler/httperr"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errNotOwnProfile = errs.Forbidden("creators may only edit their own availability")

type AvailabilityHandler struct {
	commands commands.AvailabilityCommands
	queries  queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, qs queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{commands: cmds, queries: qs}
}

// @Summary Check creator availability
// @Description Runs the conflict validator for a proposed date range without creating anything.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AvailabilityCheckRequest true "Proposed range"
// @Success 200 {object} resdto.CheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 423 {object} httperr.Response
// @Router /availability/check [post]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.AvailabilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	start, end, err := req.Dates()
	if err != nil {
		httperr.BadRequest(c, err, "Dates must be formatted as YYYY-MM-DD")
		return
	}
	res, err := h.queries.Check(c.Request.Context(), req.CreatorID, start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromCheckResult(res)
	respond(c, http.StatusOK, out, err)
}

// @Summary Creator availability profile
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creator ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 423 {object} httperr.Response
// @Router /creators/{id}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	actor, creatorID, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := h.queries.Profile(c.Request.Context(), creatorID, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromAvailabilityView(view)
	respond(c, http.StatusOK, out, err)
}

// @Summary Update own availability
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Creator ID"
// @Param request body reqdto.UpdateAvailabilityRequest true "Availability"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /creators/{id}/availability [put]
func (h *AvailabilityHandler) Update(c *gin.Context) {
	actor, creatorID, ok := actorAndID(c)
	if !ok {
		return
	}
	if creatorID != actor.ID {
		httperr.Respond(c, errNotOwnProfile)
		return
	}
	var req reqdto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	view, err := h.commands.Update(c.Request.Context(), creatorID, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromAvailabilityView(view)
	respond(c, http.StatusOK, out, err)
}

// @Summary Block a date range
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddSlotRequest true "Blocked range"
// @Success 201 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /creators/me/availability/slots [post]
func (h *AvailabilityHandler) AddSlot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, "Dates must be formatted as YYYY-MM-DD")
		return
	}
	view, err := h.commands.AddBlockedSlot(c.Request.Context(), actor.ID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromAvailabilityView(view)
	respond(c, http.StatusCreated, out, err)
}

// @Summary Remove a blocked range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param slotId path string true "Slot ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /creators/me/availability/slots/{slotId} [delete]
func (h *AvailabilityHandler) RemoveSlot(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	slotID, ok := pathUUID(c, "slotId")
	if !ok {
		return
	}
	view, err := h.commands.RemoveSlot(c.Request.Context(), actor.ID, slotID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromAvailabilityView(view)
	respond(c, http.StatusOK, out, err)
}
