package request

import (
	"collabflow/internal/pkg/errs"
)

var (
	ErrInvalidTransition = errs.InvalidTransition("action is not allowed in the current status")
	ErrActionNotAllowed  = errs.Forbidden("actor may not perform this action")
	ErrNotParty          = errs.Forbidden("actor is not a party to this request")

	ErrResponseWindowClosed = errs.InvalidTransition("response window has closed")
	ErrNotExpired           = errs.InvalidTransition("response window is still open")
	ErrOwnOffer             = errs.InvalidTransition("cannot accept an offer you made")
	ErrAlreadySigned        = errs.InvalidTransition("contract already signed by this party")

	ErrRevisionLimitReached = errs.Validation("revision limit reached")
	ErrBudgetBelowMinimum   = errs.Validation("budget is below the minimum")
	ErrInvalidDates         = errs.Validation("proposed start date must not be after end date")
	ErrDescriptionRequired  = errs.Validation("description is required")
	ErrDescriptionTooLong   = errs.Validation("description exceeds maximum length")
	ErrDeliverablesRequired = errs.Validation("at least one deliverable is required")
	ErrPlatformsRequired    = errs.Validation("at least one target platform is required")
	ErrInvalidPlatform      = errs.Validation("unknown target platform")
	ErrSameParty            = errs.Validation("brand and creator must differ")
	ErrContentURLsRequired  = errs.Validation("at least one content URL is required")
	ErrInvalidContentURL    = errs.Validation("content URLs must be absolute http(s) URLs")
	ErrTooManyContentURLs   = errs.Validation("too many content URLs")
	ErrInvalidMaxRevisions  = errs.Validation("max revisions must not be negative")
	ErrInvalidStatus        = errs.Validation("unknown status")
	ErrReferenceRequired    = errs.Validation("reference number is required")
	ErrMissingLedger        = errs.Integrity("negotiation history is required while negotiating")
)

func invalidTransition(from Status, action Action) error {
	return errs.Wrapf(ErrInvalidTransition, "%s from %s", action, from)
}

func notPermitted(role Role, action Action) error {
	return errs.Wrapf(ErrActionNotAllowed, "%s cannot %s", role, action)
}
