package request

import "slices"

type edge struct {
	from   Status
	action Action
}

type rule struct {
	to     Status
	actors []Role
}

// transitions is the only place legal status changes are defined.
// Party-specific guards (who authored the latest offer, who already
// signed, revision cap) are enforced by the entity on top of it.
var transitions = map[edge]rule{
	{StatusPending, ActionView}: {StatusViewed, []Role{RoleCreator}},

	{StatusViewed, ActionCounterOffer}:      {StatusNegotiating, []Role{RoleCreator}},
	{StatusNegotiating, ActionCounterOffer}: {StatusNegotiating, []Role{RoleBrand, RoleCreator}},

	{StatusPending, ActionAccept}:     {StatusAccepted, []Role{RoleCreator}},
	{StatusViewed, ActionAccept}:      {StatusAccepted, []Role{RoleCreator}},
	{StatusNegotiating, ActionAccept}: {StatusAccepted, []Role{RoleBrand, RoleCreator}},

	{StatusPending, ActionDecline}:     {StatusDeclined, []Role{RoleCreator}},
	{StatusViewed, ActionDecline}:      {StatusDeclined, []Role{RoleCreator}},
	{StatusNegotiating, ActionDecline}: {StatusDeclined, []Role{RoleCreator}},

	{StatusPending, ActionCancel}:     {StatusCancelled, []Role{RoleBrand}},
	{StatusViewed, ActionCancel}:      {StatusCancelled, []Role{RoleBrand}},
	{StatusNegotiating, ActionCancel}: {StatusCancelled, []Role{RoleBrand}},

	{StatusPending, ActionExpire}: {StatusDeclined, []Role{RoleSystem}},
	{StatusViewed, ActionExpire}:  {StatusDeclined, []Role{RoleSystem}},

	{StatusAccepted, ActionSignContract}:        {StatusContractPending, []Role{RoleBrand, RoleCreator}},
	{StatusContractPending, ActionSignContract}: {StatusContractSigned, []Role{RoleBrand, RoleCreator}},

	{StatusContractSigned, ActionInitializePayment}: {StatusPaymentPending, []Role{RoleBrand}},
	{StatusPaymentPending, ActionPaymentFailed}:     {StatusContractSigned, []Role{RoleSystem}},
	{StatusPaymentPending, ActionConfirmPayment}:    {StatusInProgress, []Role{RoleSystem}},

	{StatusInProgress, ActionSubmitContent}:         {StatusContentSubmitted, []Role{RoleCreator}},
	{StatusContentSubmitted, ActionApprove}:         {StatusContentApproved, []Role{RoleBrand}},
	{StatusContentSubmitted, ActionRequestRevision}: {StatusRevisionRequested, []Role{RoleBrand}},
	{StatusRevisionRequested, ActionResumeWork}:     {StatusInProgress, []Role{RoleCreator}},
	{StatusContentApproved, ActionComplete}:         {StatusCompleted, []Role{RoleBrand}},
}

// Next resolves the target status of action taken by role from status.
func Next(from Status, action Action, role Role) (Status, error) {
	r, ok := transitions[edge{from, action}]
	if !ok {
		return "", invalidTransition(from, action)
	}
	if !slices.Contains(r.actors, role) {
		return "", notPermitted(role, action)
	}
	return r.to, nil
}

// Actions lists the actions role may attempt from status, in table order
// of the Action constants.
func Actions(from Status, role Role) []Action {
	var out []Action
	for _, a := range allActions {
		if r, ok := transitions[edge{from, a}]; ok && slices.Contains(r.actors, role) {
			out = append(out, a)
		}
	}
	return out
}

var allActions = []Action{
	ActionView, ActionCounterOffer, ActionAccept, ActionDecline, ActionCancel, ActionExpire,
	ActionSignContract, ActionInitializePayment, ActionPaymentFailed, ActionConfirmPayment,
	ActionSubmitContent, ActionApprove, ActionRequestRevision, ActionResumeWork, ActionComplete,
}
