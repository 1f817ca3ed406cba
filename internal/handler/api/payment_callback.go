package api

import (
	"io"
	"net/http"

	reqdto "collabflow/internal/handler/dto/request"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/handler/httperr"
	"collabflow/internal/infra/payment"
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxCallbackBody = 64 << 10

var errBadSignature = errs.New("payment callback signature mismatch")

type PaymentCallbackHandler struct {
	payments commands.PaymentCommands
	secret   string
}

func NewPaymentCallbackHandler(payments commands.PaymentCommands, cfg config.PaymentConfig) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{payments: payments, secret: cfg.WebhookSecret}
}

// @Summary Payment gateway callback
// @Description Signed with HMAC-SHA256 over the raw body. The outcome is re-verified with the gateway before any state changes.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "hex HMAC-SHA256 of the body"
// @Param request body reqdto.PaymentCallback true "Callback"
// @Success 200 {object} resdto.SettlementResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/callback [post]
func (h *PaymentCallbackHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody))
	if err != nil {
		httperr.BadRequest(c, err, "Unreadable body")
		return
	}
	if !payment.VerifySignature(h.secret, body, c.GetHeader(payment.SignatureHeader)) {
		httperr.AbortWithError(c, http.StatusUnauthorized, errBadSignature, "Invalid signature", nil)
		return
	}
	var cb reqdto.PaymentCallback
	if err := binding.JSON.BindBody(body, &cb); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}
	res, err := h.payments.HandleCallback(c.Request.Context(), cb.Reference)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out, err := resdto.FromPaymentResult(res)
	respond(c, http.StatusOK, out, err)
}
