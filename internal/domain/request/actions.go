package request

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"collabflow/internal/domain/money"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/errs"
)

const (
	MinRevisionNotesLength = 10
	MaxRevisionNotesLength = 2000
)

var (
	ErrRevisionNotesTooShort = errs.Validation("revision notes must be at least 10 characters")
	ErrRevisionNotesTooLong  = errs.Validation("revision notes exceed maximum length")
)

// begin checks that actor may take action now and returns the target status.
// It never writes.
func (r *Request) begin(actor Actor, action Action, now time.Time) (Status, error) {
	switch actor.Role {
	case RoleSystem:
	case RoleBrand:
		if actor.ID != r.s.BrandID {
			return "", ErrNotParty
		}
	case RoleCreator:
		if actor.ID != r.s.CreatorID {
			return "", ErrNotParty
		}
	default:
		return "", ErrNotParty
	}
	to, err := Next(r.s.Status, action, actor.Role)
	if err != nil {
		return "", err
	}
	if action != ActionExpire && r.IsExpired(now) {
		return "", ErrResponseWindowClosed
	}
	return to, nil
}

func (r *Request) commit(to Status, now time.Time) {
	r.s.Status = to
	r.s.UpdatedAt = now
	if !to.IsRespondable() {
		r.s.ExpiresAt = nil
	}
}

func (r *Request) View(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionView, now)
	if err != nil {
		return err
	}
	r.s.ViewedAt = &now
	r.commit(to, now)
	return nil
}

// CounterOffer appends an offer to ledger and puts it on the table.
func (r *Request) CounterOffer(actor Actor, amount money.Money, message string, ledger *negotiation.Ledger, minBudgetMinor int64, now time.Time) (negotiation.Entry, error) {
	to, err := r.begin(actor, ActionCounterOffer, now)
	if err != nil {
		return negotiation.Entry{}, err
	}
	if ledger == nil || ledger.RequestID() != r.s.ID {
		return negotiation.Entry{}, ErrMissingLedger
	}
	if amount.IsZero() || amount.Minor() < minBudgetMinor {
		return negotiation.Entry{}, ErrBudgetBelowMinimum
	}
	if amount.Currency() != r.s.ProposedBudget.Currency() {
		return negotiation.Entry{}, negotiation.ErrCurrencyMismatch
	}
	entry, err := ledger.Append(negotiation.Party(actor.Role), actor.ID, amount, message, now)
	if err != nil {
		return negotiation.Entry{}, err
	}
	current, _ := ledger.CurrentOffer()
	r.s.ProposedBudget = current
	r.commit(to, now)
	return entry, nil
}

// Accept locks the budget currently on the table. While negotiating only the
// party that did not author the latest offer may accept it.
func (r *Request) Accept(actor Actor, ledger *negotiation.Ledger, now time.Time) error {
	to, err := r.begin(actor, ActionAccept, now)
	if err != nil {
		return err
	}
	budget := r.s.ProposedBudget
	if r.s.Status == StatusNegotiating {
		if ledger == nil || ledger.RequestID() != r.s.ID {
			return ErrMissingLedger
		}
		latest, ok := ledger.Latest()
		if !ok {
			return ErrMissingLedger
		}
		if latest.Author == negotiation.Party(actor.Role) {
			return ErrOwnOffer
		}
		budget = latest.Amount
	}
	r.s.ProposedBudget = budget
	r.s.FinalBudget = &budget
	r.s.AcceptedAt = &now
	r.commit(to, now)
	return nil
}

// Decline returns the decline record the caller must persist in the same
// transaction and feed to the trust policy.
func (r *Request) Decline(actor Actor, category trust.DeclineCategory, reason string, now time.Time) (trust.Decline, error) {
	to, err := r.begin(actor, ActionDecline, now)
	if err != nil {
		return trust.Decline{}, err
	}
	d, err := trust.NewDecline(r.s.ID, r.s.CreatorID, category, reason, now)
	if err != nil {
		return trust.Decline{}, err
	}
	r.s.DeclineCategory = string(d.Category)
	r.s.DeclineReason = d.Reason
	r.commit(to, now)
	return d, nil
}

func (r *Request) Cancel(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionCancel, now)
	if err != nil {
		return err
	}
	r.s.CancelledAt = &now
	r.commit(to, now)
	return nil
}

// SignContract records one party's signature. The first signature moves the
// request to contract_pending, the second to contract_signed.
func (r *Request) SignContract(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionSignContract, now)
	if err != nil {
		return err
	}
	switch actor.Role {
	case RoleBrand:
		if r.s.BrandSignedAt != nil {
			return ErrAlreadySigned
		}
		r.s.BrandSignedAt = &now
	case RoleCreator:
		if r.s.CreatorSignedAt != nil {
			return ErrAlreadySigned
		}
		r.s.CreatorSignedAt = &now
	}
	r.commit(to, now)
	return nil
}

func (r *Request) InitializePayment(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionInitializePayment, now)
	if err != nil {
		return err
	}
	r.commit(to, now)
	return nil
}

// PaymentFailed returns the request to contract_signed so payment can be retried.
func (r *Request) PaymentFailed(now time.Time) error {
	to, err := r.begin(SystemActor, ActionPaymentFailed, now)
	if err != nil {
		return err
	}
	r.commit(to, now)
	return nil
}

func (r *Request) ConfirmPayment(now time.Time) error {
	to, err := r.begin(SystemActor, ActionConfirmPayment, now)
	if err != nil {
		return err
	}
	r.commit(to, now)
	return nil
}

func (r *Request) SubmitContent(actor Actor, urls []string, now time.Time) error {
	to, err := r.begin(actor, ActionSubmitContent, now)
	if err != nil {
		return err
	}
	clean, err := validateContentURLs(urls)
	if err != nil {
		return err
	}
	r.s.ContentURLs = clean
	r.s.SubmittedAt = &now
	r.commit(to, now)
	return nil
}

func (r *Request) RequestRevision(actor Actor, notes string, now time.Time) error {
	to, err := r.begin(actor, ActionRequestRevision, now)
	if err != nil {
		return err
	}
	if r.s.RevisionCount >= r.s.MaxRevisions {
		return ErrRevisionLimitReached
	}
	notes = strings.TrimSpace(notes)
	switch n := utf8.RuneCountInString(notes); {
	case n < MinRevisionNotesLength:
		return ErrRevisionNotesTooShort
	case n > MaxRevisionNotesLength:
		return ErrRevisionNotesTooLong
	}
	r.s.RevisionCount++
	r.s.RevisionNotes = notes
	r.commit(to, now)
	return nil
}

func (r *Request) ResumeWork(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionResumeWork, now)
	if err != nil {
		return err
	}
	r.commit(to, now)
	return nil
}

// Approve accepts the submitted content. The caller releases escrow in the
// same transaction.
func (r *Request) Approve(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionApprove, now)
	if err != nil {
		return err
	}
	r.s.ApprovedAt = &now
	r.commit(to, now)
	return nil
}

func (r *Request) Complete(actor Actor, now time.Time) error {
	to, err := r.begin(actor, ActionComplete, now)
	if err != nil {
		return err
	}
	r.s.CompletedAt = &now
	r.commit(to, now)
	return nil
}

func validateContentURLs(urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidContentURL
		}
		out = append(out, raw)
	}
	if len(out) == 0 {
		return nil, ErrContentURLsRequired
	}
	if len(out) > MaxContentURLs {
		return nil, ErrTooManyContentURLs
	}
	return out, nil
}
