package api

import (
	"context"
	"net/http"

	"collabflow/internal/domain/request"
	reqdto "collabflow/internal/handler/dto/request"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/handler/httperr"
	"collabflow/internal/handler/middleware"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.New("actor missing from context")

type RequestHandler struct {
	commands commands.RequestCommands
	payments commands.PaymentCommands
	queries  queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, payments commands.PaymentCommands, qs queries.RequestQueries) *RequestHandler {
	return &RequestHandler{commands: cmds, payments: payments, queries: qs}
}

// @Summary Create collaboration request
// @Description Brand proposes a collaboration to a creator. The response window starts immediately.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCollaborationRequest true "Collaboration request"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 423 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, "Dates must be formatted as YYYY-MM-DD")
		return
	}
	view, err := h.commands.Create(c.Request.Context(), actor.ID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromRequestView(view)
	respond(c, http.StatusCreated, out, err)
}

// @Summary List collaboration requests
// @Description Requests where the caller is a party, newest first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query []string false "Status filter" collectionFormat(multi)
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	filter := queries.ListFilter{Limit: q.Limit, Offset: q.Offset}
	for _, s := range q.Status {
		st := request.Status(s)
		if !st.IsValid() {
			httperr.BadRequest(c, request.ErrInvalidStatus, "Unknown status "+s)
			return
		}
		filter.Statuses = append(filter.Statuses, st)
	}
	views, err := h.queries.List(c.Request.Context(), actor, filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromRequestViews(views)
	respond(c, http.StatusOK, out, err)
}

// @Summary Get collaboration request
// @Description A creator opening a pending request marks it viewed.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	view, err := h.queries.Get(ctx, id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if actor.Role == request.RoleCreator && view.Status == string(request.StatusPending) {
		viewed, err := h.commands.View(ctx, id, actor)
		switch {
		case err == nil:
			view = viewed
		case errs.IsInvalidTransition(err):
			// lost a race with another transition; reread
			if view, err = h.queries.Get(ctx, id, actor); err != nil {
				httperr.Respond(c, err)
				return
			}
		default:
			httperr.Respond(c, err)
			return
		}
	}
	out, err := resdto.FromRequestView(view)
	respond(c, http.StatusOK, out, err)
}

// @Summary Mark request viewed
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/view [post]
func (h *RequestHandler) View(c *gin.Context) {
	h.transition(c, h.commands.View)
}

// @Summary Counter offer
// @Description Either party proposes a new amount. Only the latest offer can be accepted, and never by its author.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.CounterOfferRequest true "Offer"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/counter-offer [post]
func (h *RequestHandler) CounterOffer(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.CounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	view, err := h.commands.CounterOffer(c.Request.Context(), id, actor, commands.CounterOfferInput{
		AmountMinor: req.AmountMinor,
		Message:     req.Message,
	})
	respondView(c, view, err)
}

// @Summary Accept request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/accept [post]
func (h *RequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.commands.Accept)
}

// @Summary Decline request
// @Description Creator declines. The response reports any trust warning or suspension that resulted.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.DeclineRequest true "Decline"
// @Success 200 {object} resdto.DeclineResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/decline [post]
func (h *RequestHandler) Decline(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.DeclineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	res, err := h.commands.Decline(c.Request.Context(), id, actor, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromDeclineResult(res)
	respond(c, http.StatusOK, out, err)
}

// @Summary Cancel request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.commands.Cancel)
}

// @Summary Sign contract
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/sign [post]
func (h *RequestHandler) Sign(c *gin.Context) {
	h.transition(c, h.commands.SignContract)
}

// @Summary Initialize payment
// @Description Opens an escrow charge for the agreed budget.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.SettlementResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/payment [post]
func (h *RequestHandler) InitializePayment(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	res, err := h.payments.InitializePayment(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromPaymentResult(res)
	respond(c, http.StatusOK, out, err)
}

// @Summary Verify payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.SettlementResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/payment/verify [post]
func (h *RequestHandler) VerifyPayment(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	res, err := h.payments.VerifyPayment(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromPaymentResult(res)
	respond(c, http.StatusOK, out, err)
}

// @Summary Submit content
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.SubmitContentRequest true "Content"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/content [post]
func (h *RequestHandler) SubmitContent(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	view, err := h.commands.SubmitContent(c.Request.Context(), id, actor, req.ContentURLs)
	respondView(c, view, err)
}

// @Summary Request revision
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RevisionRequest true "Revision notes"
// @Success 200 {object} resdto.RequestResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /requests/{id}/revision [post]
func (h *RequestHandler) RequestRevision(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	view, err := h.commands.RequestRevision(c.Request.Context(), id, actor, req.Notes)
	respondView(c, view, err)
}

// @Summary Resume work after a revision request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Router /requests/{id}/resume [post]
func (h *RequestHandler) Resume(c *gin.Context) {
	h.transition(c, h.commands.ResumeWork)
}

// @Summary Approve content
// @Description Approves the submitted content and releases escrow to the creator.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.SettlementResponse
// @Failure 409 {object} httperr.Response
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	res, err := h.commands.Approve(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromApproveResult(res)
	respond(c, http.StatusOK, out, err)
}

// @Summary Complete collaboration
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Router /requests/{id}/complete [post]
func (h *RequestHandler) Complete(c *gin.Context) {
	h.transition(c, h.commands.Complete)
}

// @Summary Negotiation history
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} resdto.NegotiationEntryResponse
// @Router /requests/{id}/negotiations [get]
func (h *RequestHandler) Negotiations(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	entries, err := h.queries.Negotiations(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromNegotiationViews(entries)
	respond(c, http.StatusOK, out, err)
}

// @Summary Escrow record
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.EscrowResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id}/escrow [get]
func (h *RequestHandler) Escrow(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := h.queries.Escrow(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromEscrowView(view)
	respond(c, http.StatusOK, out, err)
}

type transitionFunc func(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)

func (h *RequestHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	view, err := fn(c.Request.Context(), id, actor)
	respondView(c, view, err)
}

func respondView(c *gin.Context, view *queries.RequestView, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromRequestView(view)
	respond(c, http.StatusOK, out, err)
}

// respond writes a mapped response body, or the mapping error.
func respond[T any](c *gin.Context, status int, out T, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, out)
}

func actorOrAbort(c *gin.Context) (request.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errNoActor, "Internal server error", nil)
	}
	return actor, ok
}

func actorAndID(c *gin.Context) (request.Actor, uuid.UUID, bool) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return request.Actor{}, uuid.Nil, false
	}
	id, ok := pathUUID(c, "id")
	return actor, id, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
