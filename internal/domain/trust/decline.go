package trust

import (
	"strings"
	"time"
	"unicode/utf8"

	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MinReasonLength = 10
	MaxReasonLength = 1000

	SystemExpiredReason = "Request expired without a response from the creator"
)

var (
	ErrInvalidCategory = errs.Validation("invalid decline category")
	ErrReasonTooShort  = errs.Validation("decline reason must be at least 10 characters")
	ErrReasonTooLong   = errs.Validation("decline reason exceeds maximum length")
)

type DeclineCategory string

const (
	CategorySchedule      DeclineCategory = "schedule"
	CategoryBudget        DeclineCategory = "budget"
	CategoryNiche         DeclineCategory = "niche"
	CategoryBrandFit      DeclineCategory = "brand_fit"
	CategoryRequirements  DeclineCategory = "requirements"
	CategoryOther         DeclineCategory = "other"
	CategorySystemExpired DeclineCategory = "system_expired"
)

func (c DeclineCategory) String() string { return string(c) }

// IsCreatorChoice reports whether a creator may pick c when declining.
func (c DeclineCategory) IsCreatorChoice() bool {
	switch c {
	case CategorySchedule, CategoryBudget, CategoryNiche, CategoryBrandFit, CategoryRequirements, CategoryOther:
		return true
	default:
		return false
	}
}

func (c DeclineCategory) IsValid() bool {
	return c.IsCreatorChoice() || c == CategorySystemExpired
}

// Counts reports whether declines of this category feed the trust score.
func (c DeclineCategory) Counts() bool {
	return c.IsCreatorChoice()
}

// Decline is one append-only entry of a creator's trust ledger.
type Decline struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	CreatorID uuid.UUID
	Category  DeclineCategory
	Reason    string
	CreatedAt time.Time
}

func NewDecline(requestID, creatorID uuid.UUID, category DeclineCategory, reason string, now time.Time) (Decline, error) {
	if !category.IsCreatorChoice() {
		return Decline{}, ErrInvalidCategory
	}
	reason, err := ValidateReason(reason)
	if err != nil {
		return Decline{}, err
	}
	return Decline{
		ID:        uuid.New(),
		RequestID: requestID,
		CreatorID: creatorID,
		Category:  category,
		Reason:    reason,
		CreatedAt: now,
	}, nil
}

func NewSystemExpiry(requestID, creatorID uuid.UUID, now time.Time) Decline {
	return Decline{
		ID:        uuid.New(),
		RequestID: requestID,
		CreatorID: creatorID,
		Category:  CategorySystemExpired,
		Reason:    SystemExpiredReason,
		CreatedAt: now,
	}
}

// ValidateReason trims s and enforces the length bounds. Shared by revision
// notes, which follow the same rule.
func ValidateReason(s string) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < MinReasonLength {
		return "", ErrReasonTooShort
	}
	if n > MaxReasonLength {
		return "", ErrReasonTooLong
	}
	return s, nil
}
