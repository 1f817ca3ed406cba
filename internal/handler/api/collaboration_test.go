//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/handler/api"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"
	"collabflow/tests/common/builder"
	"collabflow/tests/common/httptest"
	"collabflow/tests/common/testutil"
	commandsmock "collabflow/tests/mock/commands"
	queriesmock "collabflow/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	brandToken   = "brand"
	creatorToken = "creator"
)

// fakeAuth resolves the bearer token to one of two fixed actors.
func fakeAuth(brand, creator request.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") {
		case brandToken:
			c.Set("actor", brand)
		case creatorToken:
			c.Set("actor", creator)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Next()
	}
}

type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRequestCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockRequestQueries
	brand        request.Actor
	creator      request.Actor
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRequestCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRequestQueries(s.mockCtrl)
	h := api.NewRequestHandler(s.mockCommands, s.mockPayments, s.mockQueries)

	s.brand = request.Brand(uuid.New())
	s.creator = request.Creator(uuid.New())

	g := s.router.Group("/requests", fakeAuth(s.brand, s.creator))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("/:id/counter-offer", h.CounterOffer)
	g.POST("/:id/accept", h.Accept)
	g.POST("/:id/decline", h.Decline)
	g.POST("/:id/payment", h.InitializePayment)
	g.POST("/:id/revision", h.RequestRevision)
	g.POST("/:id/approve", h.Approve)
	g.GET("/:id/escrow", h.Escrow)
}

func (s *RequestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

type testCaseRequest struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RequestHandlerTestSuite) TestCreate() {
	url := "/requests"
	reqBody := builder.NewCreateRequestDTO(s.creator.ID)
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)

	s.Run("success: returns 201 with the created request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.brand.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.CreateRequestInput) (*queries.RequestView, error) {
				s.Equal(int64(50000), in.BudgetMinor)
				s.Equal("2024-01-10", in.ProposedStart.String())
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, brandToken)

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("pending", body.Status)
		s.Equal(view.RemainingSeconds, body.RemainingSeconds)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseRequest{
			{name: "missing creatorId", mutate: testutil.Field("creatorId", nil), expectCode: http.StatusBadRequest},
			{name: "zero budget", mutate: testutil.Field("budgetMinor", 0), expectCode: http.StatusBadRequest},
			{name: "negative budget", mutate: testutil.Field("budgetMinor", -1), expectCode: http.StatusBadRequest},
			{name: "missing description", mutate: testutil.Field("description", nil), expectCode: http.StatusBadRequest},
			{name: "empty platforms", mutate: testutil.Field("targetPlatforms", []string{}), expectCode: http.StatusBadRequest},
			{name: "missing deliverables", mutate: testutil.Field("deliverables", nil), expectCode: http.StatusBadRequest},
			{name: "unparseable start date", mutate: testutil.Field("proposedStart", "10/01/2024"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), brandToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "budget below minimum", err: request.ErrBudgetBelowMinimum, expectedStatus: http.StatusBadRequest, expectedMsg: "minimum"},
			{
				name:           "creator suspended",
				err:            errs.Mark(&trust.SuspendedError{CreatorID: s.creator.ID, Until: time.Now().Add(time.Hour)}, errs.ErrConflict),
				expectedStatus: http.StatusLocked,
				expectedMsg:    "SUSPENDED",
			},
			{
				name:           "availability conflict",
				err:            (&availability.Conflict{Type: availability.ConflictUnavailable, Message: "creator is not accepting new work"}).AsError(),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not accepting",
			},
			{name: "unknown rate card", err: errs.NotFound("rate card not found"), expectedStatus: http.StatusNotFound, expectedMsg: "rate card"},
			{name: "integrity violation hides details", err: errs.Integrity("ledger broken"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
			{name: "unexpected error", err: errs.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.brand.ID, gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, brandToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *RequestHandlerTestSuite) TestList() {
	s.Run("success: passes status filters and paging", func() {
		view := builder.NewRequestView(s.brand.ID, s.creator.ID)
		want := queries.ListFilter{
			Statuses: []request.Status{request.StatusPending, request.StatusViewed},
			Limit:    10,
			Offset:   20,
		}
		s.mockQueries.EXPECT().List(gomock.Any(), s.brand, want).
			Return([]*queries.RequestView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?status=pending&status=viewed&limit=10&offset=20", nil, brandToken)

		var body []resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("success: empty result encodes as an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.creator, gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests", nil, creatorToken)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 on unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests?status=archived", nil, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "archived")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RequestHandlerTestSuite) TestGet() {
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)
	url := "/requests/" + view.ID.String()

	s.Run("success: creator opening a pending request marks it viewed", func() {
		viewed := builder.WithStatus(view, request.StatusViewed)
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, s.creator).Return(view, nil).Times(1)
		s.mockCommands.EXPECT().View(gomock.Any(), view.ID, s.creator).Return(viewed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, creatorToken)

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("viewed", body.Status)
	})

	s.Run("success: brand reads without side effects", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, s.brand).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pending", body.Status)
	})

	s.Run("success: rereads when the view races another transition", func() {
		accepted := builder.WithStatus(view, request.StatusAccepted)
		gomock.InOrder(
			s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, s.creator).Return(view, nil),
			s.mockCommands.EXPECT().View(gomock.Any(), view.ID, s.creator).Return(nil, request.ErrInvalidTransition),
			s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, s.creator).Return(accepted, nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, creatorToken)

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body.Status)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/not-a-uuid", nil, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 403 for a non-party", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), view.ID, s.brand).Return(nil, request.ErrNotParty).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not a party")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *RequestHandlerTestSuite) TestAccept() {
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)
	url := "/requests/" + view.ID.String() + "/accept"

	s.Run("success", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), view.ID, s.creator).
			Return(builder.WithStatus(view, request.StatusAccepted), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, creatorToken)
		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body.Status)
	})

	s.Run("error: 409 when accepting own offer", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), view.ID, s.brand).Return(nil, request.ErrOwnOffer).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "offer you made")
	})

	s.Run("error: 409 after the response window closed", func() {
		s.mockCommands.EXPECT().Accept(gomock.Any(), view.ID, s.creator).Return(nil, request.ErrResponseWindowClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "window")
	})
}

func (s *RequestHandlerTestSuite) TestCounterOffer() {
	id := uuid.New()
	url := "/requests/" + id.String() + "/counter-offer"

	s.Run("success: forwards amount and message", func() {
		s.mockCommands.EXPECT().CounterOffer(gomock.Any(), id, s.creator,
			commands.CounterOfferInput{AmountMinor: 60000, Message: "two reels"}).
			Return(builder.NewRequestView(s.brand.ID, s.creator.ID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"amountMinor": 60000, "message": "two reels"}, creatorToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on non-positive amount", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"amountMinor": 0}, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *RequestHandlerTestSuite) TestDecline() {
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)
	url := "/requests/" + view.ID.String() + "/decline"
	until := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

	s.Run("success: reports the trust outcome", func() {
		s.mockCommands.EXPECT().Decline(gomock.Any(), view.ID, s.creator,
			commands.DeclineInput{Category: trust.CategoryBudget, Reason: "too low"}).
			Return(&commands.DeclineResult{
				Request: builder.WithStatus(view, request.StatusDeclined),
				Trust:   trust.Outcome{QualifyingCount: 5, Suspended: true, SuspendedUntil: &until},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"category": "budget", "reason": "too low"}, creatorToken)

		var body resdto.DeclineResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("declined", body.Request.Status)
		s.Equal(5, body.Trust.QualifyingCount)
		s.True(body.Trust.Suspended)
		s.Require().NotNil(body.Trust.SuspendedUntil)
		s.True(until.Equal(*body.Trust.SuspendedUntil))
	})

	s.Run("error: 400 on missing reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"category": "budget"}, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on unknown category", func() {
		s.mockCommands.EXPECT().Decline(gomock.Any(), view.ID, s.creator, gomock.Any()).
			Return(nil, trust.ErrInvalidCategory).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"category": "weather", "reason": "rain"}, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "category")
	})
}

func (s *RequestHandlerTestSuite) TestRequestRevision() {
	id := uuid.New()
	url := "/requests/" + id.String() + "/revision"

	s.Run("error: 422 when the revision limit is reached", func() {
		s.mockCommands.EXPECT().RequestRevision(gomock.Any(), id, s.brand, "brighter").
			Return(nil, request.ErrRevisionLimitReached).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"notes": "brighter"}, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "revision limit")
	})
}

func (s *RequestHandlerTestSuite) TestApprove() {
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)
	url := "/requests/" + view.ID.String() + "/approve"

	s.Run("success: returns the released escrow", func() {
		esc := builder.NewEscrowView(view.ID)
		esc.Status = "released"
		s.mockCommands.EXPECT().Approve(gomock.Any(), view.ID, s.brand).
			Return(&commands.ApproveResult{Request: builder.WithStatus(view, request.StatusContentApproved), Escrow: esc}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, brandToken)

		var body resdto.SettlementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("content_approved", body.Request.Status)
		s.Require().NotNil(body.Escrow)
		s.Equal("released", body.Escrow.Status)
		s.Equal(int64(45000), body.Escrow.CreatorPayoutMinor)
	})
}

func (s *RequestHandlerTestSuite) TestEscrow() {
	id := uuid.New()

	s.Run("success", func() {
		s.mockQueries.EXPECT().Escrow(gomock.Any(), id, s.creator).Return(builder.NewEscrowView(id), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/"+id.String()+"/escrow", nil, creatorToken)

		var body resdto.EscrowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(5000), body.PlatformFeeMinor)
		s.Equal(body.AmountMinor, body.PlatformFeeMinor+body.CreatorPayoutMinor)
	})

	s.Run("error: 404 before payment", func() {
		s.mockQueries.EXPECT().Escrow(gomock.Any(), id, s.creator).Return(nil, errs.NotFound("escrow record not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/"+id.String()+"/escrow", nil, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "escrow")
	})
}

func (s *RequestHandlerTestSuite) TestInitializePayment() {
	view := builder.NewRequestView(s.brand.ID, s.creator.ID)

	s.Run("success", func() {
		s.mockPayments.EXPECT().InitializePayment(gomock.Any(), view.ID, s.brand).
			Return(&commands.PaymentResult{Request: builder.WithStatus(view, request.StatusPaymentPending), Escrow: builder.NewEscrowView(view.ID)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/requests/"+view.ID.String()+"/payment", nil, brandToken)

		var body resdto.SettlementResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("payment_pending", body.Request.Status)
	})
}
