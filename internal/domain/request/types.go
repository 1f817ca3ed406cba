package request

import "github.com/google/uuid"

type Status string

const (
	StatusPending           Status = "pending"
	StatusViewed            Status = "viewed"
	StatusNegotiating       Status = "negotiating"
	StatusAccepted          Status = "accepted"
	StatusDeclined          Status = "declined"
	StatusCancelled         Status = "cancelled"
	StatusContractPending   Status = "contract_pending"
	StatusContractSigned    Status = "contract_signed"
	StatusPaymentPending    Status = "payment_pending"
	StatusInProgress        Status = "in_progress"
	StatusContentSubmitted  Status = "content_submitted"
	StatusRevisionRequested Status = "revision_requested"
	StatusContentApproved   Status = "content_approved"
	StatusCompleted         Status = "completed"
)

var allStatuses = []Status{
	StatusPending, StatusViewed, StatusNegotiating, StatusAccepted, StatusDeclined,
	StatusCancelled, StatusContractPending, StatusContractSigned, StatusPaymentPending,
	StatusInProgress, StatusContentSubmitted, StatusRevisionRequested, StatusContentApproved,
	StatusCompleted,
}

func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsRespondable reports whether the response window is running.
func (s Status) IsRespondable() bool {
	return s == StatusPending || s == StatusViewed
}

func (s Status) IsTerminal() bool {
	return s == StatusDeclined || s == StatusCancelled || s == StatusCompleted
}

type Action string

const (
	ActionView              Action = "view"
	ActionCounterOffer      Action = "counter_offer"
	ActionAccept            Action = "accept"
	ActionDecline           Action = "decline"
	ActionCancel            Action = "cancel"
	ActionExpire            Action = "expire"
	ActionSignContract      Action = "sign_contract"
	ActionInitializePayment Action = "initialize_payment"
	ActionPaymentFailed     Action = "payment_failed"
	ActionConfirmPayment    Action = "confirm_payment"
	ActionSubmitContent     Action = "submit_content"
	ActionApprove           Action = "approve"
	ActionRequestRevision   Action = "request_revision"
	ActionResumeWork        Action = "resume_work"
	ActionComplete          Action = "complete"
)

func (a Action) String() string { return string(a) }

type Role string

const (
	RoleBrand   Role = "brand"
	RoleCreator Role = "creator"
	RoleSystem  Role = "system"
	// RoleAdmin may read any request but takes no part in transitions.
	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }

// Actor is the party performing an action.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var SystemActor = Actor{Role: RoleSystem}

func Brand(id uuid.UUID) Actor   { return Actor{ID: id, Role: RoleBrand} }
func Creator(id uuid.UUID) Actor { return Actor{ID: id, Role: RoleCreator} }

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformSnapchat  Platform = "snapchat"
	PlatformTwitch    Platform = "twitch"
	PlatformOther     Platform = "other"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformTwitter, PlatformFacebook,
		PlatformLinkedIn, PlatformSnapchat, PlatformTwitch, PlatformOther:
		return true
	default:
		return false
	}
}

// ServiceSnapshot is a rate card copied into the request at creation.
type ServiceSnapshot struct {
	RateCardID uuid.UUID
	Name       string
	Platform   Platform
	PriceMinor int64
}
