//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/handler/api"
	resdto "collabflow/internal/handler/dto/response"
	"collabflow/internal/handler/httperr"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"
	"collabflow/tests/common/httptest"
	commandsmock "collabflow/tests/mock/commands"
	queriesmock "collabflow/tests/mock/queries"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAvailabilityCommands
	mockQueries  *queriesmock.MockAvailabilityQueries
	mockTrust    *queriesmock.MockTrustQueries
	brand        request.Actor
	creator      request.Actor
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAvailabilityCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockTrust = queriesmock.NewMockTrustQueries(s.mockCtrl)
	h := api.NewAvailabilityHandler(s.mockCommands, s.mockQueries)
	th := api.NewTrustHandler(s.mockTrust)

	s.brand = request.Brand(uuid.New())
	s.creator = request.Creator(uuid.New())

	auth := fakeAuth(s.brand, s.creator)
	s.router.POST("/availability/check", auth, h.Check)
	s.router.GET("/creators/me/trust", auth, th.Me)
	s.router.POST("/creators/me/availability/slots", auth, h.AddSlot)
	s.router.DELETE("/creators/me/availability/slots/:slotId", auth, h.RemoveSlot)
	s.router.GET("/creators/:id/availability", auth, h.Get)
	s.router.PUT("/creators/:id/availability", auth, h.Update)
	s.router.GET("/creators/:id/exposure", auth, th.Exposure)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) profile() *queries.AvailabilityView {
	return &queries.AvailabilityView{
		CreatorID:    s.creator.ID,
		IsAvailable:  true,
		LeadTimeDays: 3,
		Slots:        []queries.SlotView{},
		UpdatedAt:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *AvailabilityHandlerTestSuite) TestCheck() {
	body := map[string]any{
		"creatorId":     s.creator.ID,
		"proposedStart": "2024-01-10",
		"proposedEnd":   "2024-01-12",
	}
	start := civil.Date{Year: 2024, Month: time.January, Day: 10}
	end := civil.Date{Year: 2024, Month: time.January, Day: 12}

	s.Run("success: reports the conflict with its earliest start", func() {
		minStart := "2024-01-11"
		s.mockQueries.EXPECT().Check(gomock.Any(), s.creator.ID, start, end).
			Return(&queries.CheckResult{
				Allowed: false,
				Conflict: &queries.ConflictView{
					Type:     "LEAD_TIME",
					Message:  "creator needs at least 3 days notice",
					MinStart: &minStart,
				},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", body, brandToken)

		var res resdto.CheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.Allowed)
		s.Require().NotNil(res.Conflict)
		s.Equal("LEAD_TIME", res.Conflict.Type)
		s.Require().NotNil(res.Conflict.MinStart)
		s.Equal(minStart, *res.Conflict.MinStart)
	})

	s.Run("error: 400 on inverted range", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), s.creator.ID, gomock.Any(), gomock.Any()).
			Return(nil, errs.Validation("start date must not be after end date")).Times(1)

		inverted := map[string]any{"creatorId": s.creator.ID, "proposedStart": "2024-01-12", "proposedEnd": "2024-01-10"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", inverted, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "start date")
	})

	s.Run("error: 400 on malformed date", func() {
		bad := map[string]any{"creatorId": s.creator.ID, "proposedStart": "tomorrow", "proposedEnd": "2024-01-10"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", bad, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error: 423 while the creator is suspended", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), s.creator.ID, start, end).
			Return(nil, trust.CheckExposure(s.suspendedStanding(), time.Now())).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", body, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusLocked, "SUSPENDED")
	})
}

func (s *AvailabilityHandlerTestSuite) suspendedStanding() *trust.Standing {
	until := time.Now().Add(24 * time.Hour)
	return trust.ReconstructStanding(s.creator.ID, &until, 1, nil, time.Now())
}

func (s *AvailabilityHandlerTestSuite) TestGet() {
	url := "/creators/" + s.creator.ID.String() + "/availability"

	s.Run("success: passes the viewer through", func() {
		s.mockQueries.EXPECT().Profile(gomock.Any(), s.creator.ID, s.brand).Return(s.profile(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(s.creator.ID, res.CreatorID)
		s.Equal(3, res.LeadTimeDays)
	})

	s.Run("error: 423 for a suspended creator", func() {
		s.mockQueries.EXPECT().Profile(gomock.Any(), s.creator.ID, s.brand).
			Return(nil, trust.CheckExposure(s.suspendedStanding(), time.Now())).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusLocked, "SUSPENDED")
	})
}

func (s *AvailabilityHandlerTestSuite) TestUpdate() {
	s.Run("success: creator edits own profile", func() {
		paused := false
		s.mockCommands.EXPECT().Update(gomock.Any(), s.creator.ID, commands.UpdateAvailabilityInput{IsAvailable: &paused}).
			DoAndReturn(func(_ any, _ uuid.UUID, _ commands.UpdateAvailabilityInput) (*queries.AvailabilityView, error) {
				v := s.profile()
				v.IsAvailable = false
				return v, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/creators/"+s.creator.ID.String()+"/availability",
			map[string]any{"isAvailable": false}, creatorToken)

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.IsAvailable)
	})

	s.Run("error: 403 on another creator's profile", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/creators/"+uuid.NewString()+"/availability",
			map[string]any{"isAvailable": false}, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "own availability")
	})
}

func (s *AvailabilityHandlerTestSuite) TestSlots() {
	s.Run("success: add returns 201", func() {
		s.mockCommands.EXPECT().AddBlockedSlot(gomock.Any(), s.creator.ID, commands.AddSlotInput{
			StartDate: civil.Date{Year: 2024, Month: time.February, Day: 1},
			EndDate:   civil.Date{Year: 2024, Month: time.February, Day: 3},
			Reason:    "travel",
		}).Return(s.profile(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/creators/me/availability/slots",
			map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-03", "reason": "travel"}, creatorToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 404 removing an unknown slot", func() {
		slotID := uuid.New()
		s.mockCommands.EXPECT().RemoveSlot(gomock.Any(), s.creator.ID, slotID).
			Return(nil, errs.NotFound("slot not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/creators/me/availability/slots/"+slotID.String(), nil, creatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "slot")
	})
}

func (s *AvailabilityHandlerTestSuite) TestExposure() {
	url := "/creators/" + s.creator.ID.String() + "/exposure"

	s.Run("success: unavailable creator is reported, not rejected", func() {
		s.mockTrust.EXPECT().Exposure(gomock.Any(), s.creator.ID).
			Return(&queries.ExposureView{CreatorID: s.creator.ID, Exposed: false, Condition: queries.ConditionUnavailable}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)

		var res resdto.ExposureResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("UNAVAILABLE", res.Condition)
	})

	s.Run("error: 423 while suspended", func() {
		until := time.Now().Add(72 * time.Hour)
		s.mockTrust.EXPECT().Exposure(gomock.Any(), s.creator.ID).
			Return(nil, errs.Mark(&trust.SuspendedError{
				CreatorID: s.creator.ID,
				Until:     until,
				Remaining: 90 * time.Minute,
			}, errs.ErrConflict)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, brandToken)
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusLocked, "SUSPENDED")

		var detail httperr.SuspendedDetail
		body.DecodeDetail(s.T(), &detail)
		s.Equal("SUSPENDED", detail.Condition)
		s.Equal(int64(90*60), detail.RemainingSeconds, "countdown comes from the error, not the wall clock")
		s.True(until.Equal(detail.SuspendedUntil))
	})
}

func (s *AvailabilityHandlerTestSuite) TestTrustMe() {
	s.mockTrust.EXPECT().Standing(gomock.Any(), s.creator.ID).
		Return(&queries.TrustView{CreatorID: s.creator.ID, QualifyingDeclines: 2, WarningThreshold: 3, SuspensionThreshold: 5}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/creators/me/trust", nil, creatorToken)

	var res resdto.TrustResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
	s.Equal(2, res.QualifyingDeclines)
	s.False(res.Suspended)
}
