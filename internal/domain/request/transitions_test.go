//go:build unit

package request_test

import (
	"testing"

	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	expected := map[request.Status][]request.Status{
		request.StatusPending:           {request.StatusViewed, request.StatusAccepted, request.StatusDeclined, request.StatusCancelled},
		request.StatusViewed:            {request.StatusNegotiating, request.StatusAccepted, request.StatusDeclined, request.StatusCancelled},
		request.StatusNegotiating:       {request.StatusNegotiating, request.StatusAccepted, request.StatusDeclined, request.StatusCancelled},
		request.StatusAccepted:          {request.StatusContractPending},
		request.StatusContractPending:   {request.StatusContractSigned},
		request.StatusContractSigned:    {request.StatusPaymentPending},
		request.StatusPaymentPending:    {request.StatusContractSigned, request.StatusInProgress},
		request.StatusInProgress:        {request.StatusContentSubmitted},
		request.StatusContentSubmitted:  {request.StatusContentApproved, request.StatusRevisionRequested},
		request.StatusRevisionRequested: {request.StatusInProgress},
		request.StatusContentApproved:   {request.StatusCompleted},
	}
	roles := []request.Role{request.RoleBrand, request.RoleCreator, request.RoleSystem}
	actions := []request.Action{
		request.ActionView, request.ActionCounterOffer, request.ActionAccept, request.ActionDecline,
		request.ActionCancel, request.ActionExpire, request.ActionSignContract, request.ActionInitializePayment,
		request.ActionPaymentFailed, request.ActionConfirmPayment, request.ActionSubmitContent,
		request.ActionApprove, request.ActionRequestRevision, request.ActionResumeWork, request.ActionComplete,
	}

	for _, from := range request.Statuses() {
		reached := map[request.Status]bool{}
		for _, a := range actions {
			for _, role := range roles {
				to, err := request.Next(from, a, role)
				if err != nil {
					assert.True(t, errs.IsInvalidTransition(err) || errs.IsForbidden(err), "%s %s %s", from, a, role)
					continue
				}
				reached[to] = true
			}
		}
		want := map[request.Status]bool{}
		for _, s := range expected[from] {
			want[s] = true
		}
		assert.Equal(t, want, reached, "targets from %s", from)
		if from.IsTerminal() {
			assert.Empty(t, reached, "terminal %s must absorb", from)
		}
	}
}

func TestNextErrors(t *testing.T) {
	_, err := request.Next(request.StatusCompleted, request.ActionApprove, request.RoleBrand)
	require.Error(t, err)
	assert.ErrorIs(t, err, request.ErrInvalidTransition)

	_, err = request.Next(request.StatusPending, request.ActionAccept, request.RoleBrand)
	assert.ErrorIs(t, err, request.ErrActionNotAllowed)

	_, err = request.Next(request.StatusPending, request.ActionExpire, request.RoleCreator)
	assert.ErrorIs(t, err, request.ErrActionNotAllowed)
}

func TestActions(t *testing.T) {
	assert.Equal(t,
		[]request.Action{request.ActionView, request.ActionAccept, request.ActionDecline},
		request.Actions(request.StatusPending, request.RoleCreator))
	assert.Equal(t,
		[]request.Action{request.ActionCounterOffer, request.ActionAccept, request.ActionCancel},
		request.Actions(request.StatusNegotiating, request.RoleBrand))
}
