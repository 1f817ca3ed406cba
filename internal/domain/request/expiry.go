package request

import (
	"time"

	"collabflow/internal/domain/trust"
)

// IsExpired reports whether the response window of a respondable request
// has passed at now.
func (r *Request) IsExpired(now time.Time) bool {
	return r.s.Status.IsRespondable() && r.s.ExpiresAt != nil && !now.Before(*r.s.ExpiresAt)
}

// Remaining is the countdown shown to users. It is zero outside the
// response window.
func (r *Request) Remaining(now time.Time) time.Duration {
	if !r.s.Status.IsRespondable() || r.s.ExpiresAt == nil {
		return 0
	}
	if d := r.s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Expire force-declines a request whose response window has passed. The
// returned record is categorised system_expired and must not reach the
// trust policy.
func (r *Request) Expire(now time.Time) (trust.Decline, error) {
	to, err := r.begin(SystemActor, ActionExpire, now)
	if err != nil {
		return trust.Decline{}, err
	}
	if !r.IsExpired(now) {
		return trust.Decline{}, ErrNotExpired
	}
	d := trust.NewSystemExpiry(r.s.ID, r.s.CreatorID, now)
	r.s.DeclineCategory = string(d.Category)
	r.s.DeclineReason = d.Reason
	r.commit(to, now)
	return d, nil
}

// AvailableActions lists what role may attempt now, for display.
func (r *Request) AvailableActions(role Role, now time.Time) []Action {
	if r.IsExpired(now) {
		return nil
	}
	var out []Action
	for _, a := range Actions(r.s.Status, role) {
		if a == ActionRequestRevision && r.s.RevisionCount >= r.s.MaxRevisions {
			continue
		}
		if a == ActionSignContract {
			if (role == RoleBrand && r.s.BrandSignedAt != nil) || (role == RoleCreator && r.s.CreatorSignedAt != nil) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
