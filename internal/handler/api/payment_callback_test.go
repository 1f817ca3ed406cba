//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"collabflow/internal/handler/api"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/infra/payment"
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/tests/common/builder"
	"collabflow/tests/common/httptest"
	commandsmock "collabflow/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookSecret = "whsec-test"

type PaymentCallbackTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPayments *commandsmock.MockPaymentCommands
}

func (s *PaymentCallbackTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	h := api.NewPaymentCallbackHandler(s.mockPayments, config.PaymentConfig{WebhookSecret: webhookSecret})
	s.router.POST("/payments/callback", h.Handle)
}

func (s *PaymentCallbackTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentCallbackSuite(t *testing.T) {
	suite.Run(t, new(PaymentCallbackTestSuite))
}

func (s *PaymentCallbackTestSuite) TestHandle() {
	body := []byte(`{"event":"charge.success","reference":"PAY-ABC"}`)

	s.Run("success: settles the referenced charge", func() {
		view := builder.NewRequestView(uuid.New(), uuid.New())
		view.Status = "in_progress"
		s.mockPayments.EXPECT().HandleCallback(gomock.Any(), "PAY-ABC").
			Return(&commands.PaymentResult{Request: view, Escrow: builder.NewEscrowView(view.ID)}, nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body,
			httptest.SignedHeaders(webhookSecret, body))

		var res resdto.SettlementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("in_progress", res.Request.Status)
	})

	s.Run("error: 401 on missing signature", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "signature")
	})

	s.Run("error: 401 when the body was altered after signing", func() {
		sig := payment.Sign(webhookSecret, body)
		tampered := []byte(`{"event":"charge.success","reference":"PAY-XYZ"}`)
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/callback", tampered,
			map[string]string{payment.SignatureHeader: sig})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "signature")
	})

	s.Run("error: 400 on signed body without reference", func() {
		empty := []byte(`{"event":"charge.success"}`)
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/callback", empty,
			httptest.SignedHeaders(webhookSecret, empty))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 for an unknown reference", func() {
		s.mockPayments.EXPECT().HandleCallback(gomock.Any(), "PAY-ABC").
			Return(nil, errs.NotFound("escrow record not found")).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body,
			httptest.SignedHeaders(webhookSecret, body))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "escrow")
	})
}
