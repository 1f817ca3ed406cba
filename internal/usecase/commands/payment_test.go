//go:build unit

package commands_test

import (
	"context"
	"testing"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/money"
	"collabflow/internal/domain/request"
	"collabflow/internal/infra/payment"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	e   *engine
	ctx context.Context
}

func TestPaymentCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.e = newEngine(s.T(), string(payment.ModeManual))
	s.ctx = context.Background()
}

func (s *PaymentCommandsTestSuite) initialize(budget int64) (uuid.UUID, string) {
	id := s.e.signed(s.T(), budget)
	res, err := s.e.payments.InitializePayment(s.ctx, id, s.e.brand)
	s.Require().NoError(err)
	return id, res.Escrow.Reference
}

func (s *PaymentCommandsTestSuite) TestCallbackConfirmsOnce() {
	_, ref := s.initialize(50000)

	_, err := s.e.payments.HandleCallback(s.ctx, ref)
	s.True(errs.Is(err, payment.ErrChargePending), "got %v", err)

	s.Require().NoError(s.e.gateway.Resolve(ref, true, nil, ""))
	first, err := s.e.payments.HandleCallback(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(string(request.StatusInProgress), first.Request.Status)
	s.Equal(string(escrow.StatusEscrow), first.Escrow.Status)

	second, err := s.e.payments.HandleCallback(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(string(request.StatusInProgress), second.Request.Status)
	s.Equal(first.Request.Version, second.Request.Version)
	s.Equal(1, s.e.notifier.count(shared.EventPaymentConfirmed))
}

func (s *PaymentCommandsTestSuite) TestFailureAllowsRetry() {
	_, ref := s.initialize(50000)
	s.Require().NoError(s.e.gateway.Resolve(ref, false, nil, "insufficient funds"))

	failed, err := s.e.payments.HandleCallback(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(string(request.StatusContractSigned), failed.Request.Status)
	s.Equal(string(escrow.StatusFailed), failed.Escrow.Status)
	s.Equal("insufficient funds", failed.Escrow.FailureReason)

	again, err := s.e.payments.HandleCallback(s.ctx, ref)
	s.Require().NoError(err)
	s.Equal(string(escrow.StatusFailed), again.Escrow.Status)
	s.Equal(1, s.e.notifier.count(shared.EventPaymentFailed))

	retry, err := s.e.payments.InitializePayment(s.ctx, failed.Request.ID, s.e.brand)
	s.Require().NoError(err)
	s.Equal(string(request.StatusPaymentPending), retry.Request.Status)
	s.Equal(string(escrow.StatusPending), retry.Escrow.Status)
	s.Equal(2, retry.Escrow.Attempts)
	s.Equal(failed.Escrow.ID, retry.Escrow.ID)
	s.NotEqual(ref, retry.Escrow.Reference)
	s.Empty(retry.Escrow.FailureReason)
}

func (s *PaymentCommandsTestSuite) TestCaptureMismatchChangesNothing() {
	id, ref := s.initialize(50000)
	short := money.MustNew(40000, "NGN")
	s.Require().NoError(s.e.gateway.Resolve(ref, true, &short, ""))
	before := s.e.load(s.T(), id)

	res, err := s.e.payments.VerifyPayment(s.ctx, id, s.e.creator)
	s.True(errs.IsIntegrity(err), "got %v", err)
	s.Nil(res)

	snap := s.e.load(s.T(), id)
	if diff := cmp.Diff(before, snap); diff != "" {
		s.T().Errorf("request changed (-before +after):\n%s", diff)
	}
	s.Equal(request.StatusPaymentPending, snap.Status)
	esc, err := s.e.reads.Escrow(s.ctx, snap.ID, s.e.brand)
	s.Require().NoError(err)
	s.Equal(string(escrow.StatusPending), esc.Status)
}

func (s *PaymentCommandsTestSuite) TestInitializeRequiresSignedContract() {
	id := s.e.create(s.T(), 50000).ID
	before := s.e.load(s.T(), id)

	_, err := s.e.payments.InitializePayment(s.ctx, id, s.e.brand)
	s.True(errs.IsInvalidTransition(err), "got %v", err)
	if diff := cmp.Diff(before, s.e.load(s.T(), id)); diff != "" {
		s.T().Errorf("request changed (-before +after):\n%s", diff)
	}
}

func (s *PaymentCommandsTestSuite) TestInitializeByCreatorForbidden() {
	id := s.e.signed(s.T(), 50000)
	_, err := s.e.payments.InitializePayment(s.ctx, id, s.e.creator)
	s.True(errs.IsForbidden(err), "got %v", err)
}

func (s *PaymentCommandsTestSuite) TestFeeFollowsCreatorTier() {
	s.e.tiers.Set(s.e.creator.ID, "pro")
	id, ref := s.initialize(50000)

	meta, ok := s.e.gateway.Metadata(ref)
	s.Require().True(ok)
	s.NotEmpty(meta["reference_number"])

	s.Equal(id, s.requestOf(ref))

	esc, err := s.e.reads.Escrow(s.ctx, id, s.e.brand)
	s.Require().NoError(err)
	s.Equal("pro", esc.Tier)
	s.Equal(800, esc.FeeBasisPoints)
	s.Equal(int64(4000), esc.PlatformFeeMinor)
	s.Equal(int64(46000), esc.CreatorPayoutMinor)
}

func (s *PaymentCommandsTestSuite) TestApproveBeforeConfirmationRejected() {
	id, _ := s.initialize(50000)

	_, err := s.e.requests.Approve(s.ctx, id, s.e.brand)
	s.True(errs.IsInvalidTransition(err), "got %v", err)
}

// requestOf reads the request id the charge was opened for.
func (s *PaymentCommandsTestSuite) requestOf(ref string) uuid.UUID {
	meta, ok := s.e.gateway.Metadata(ref)
	s.Require().True(ok)
	return uuid.MustParse(meta["request_id"])
}
