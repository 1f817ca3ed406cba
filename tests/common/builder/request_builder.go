//go:build unit || e2e

package builder

import (
	"time"

	"collabflow/internal/domain/money"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var DefaultTerms = request.Terms{
	ResponseWindow: 48 * time.Hour,
	MaxRevisions:   2,
	MinBudgetMinor: 1000,
}

type RequestBuilder struct {
	ReferenceNumber     string
	BrandID             uuid.UUID
	CreatorID           uuid.UUID
	BudgetMinor         int64
	Currency            string
	Start               civil.Date
	End                 civil.Date
	Description         string
	ContentRequirements string
	Platforms           []request.Platform
	Deliverables        []string
	Services            []request.ServiceSnapshot
	Terms               request.Terms
	Now                 time.Time
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		ReferenceNumber:     "COL-" + uuid.NewString()[:8],
		BrandID:             uuid.New(),
		CreatorID:           uuid.New(),
		BudgetMinor:         50000,
		Currency:            "NGN",
		Start:               civil.Date{Year: 2024, Month: time.January, Day: 10},
		End:                 civil.Date{Year: 2024, Month: time.January, Day: 12},
		Description:         "Launch campaign for our new running shoe",
		ContentRequirements: "Show the shoe on a morning run",
		Platforms:           []request.Platform{request.PlatformInstagram, request.PlatformTikTok},
		Deliverables:        []string{"1 reel", "3 stories"},
		Terms:               DefaultTerms,
		Now:                 time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) Params() request.NewParams {
	return request.NewParams{
		ReferenceNumber:     b.ReferenceNumber,
		BrandID:             b.BrandID,
		CreatorID:           b.CreatorID,
		Budget:              money.MustNew(b.BudgetMinor, b.Currency),
		ProposedStart:       b.Start,
		ProposedEnd:         b.End,
		Description:         b.Description,
		ContentRequirements: b.ContentRequirements,
		TargetPlatforms:     b.Platforms,
		Deliverables:        b.Deliverables,
		Services:            b.Services,
	}
}

func (b *RequestBuilder) BuildDomain() (*request.Request, *negotiation.Ledger, error) {
	return request.NewRequest(b.Params(), b.Terms, b.Now)
}

func (b *RequestBuilder) Brand() request.Actor   { return request.Brand(b.BrandID) }
func (b *RequestBuilder) Creator() request.Actor { return request.Creator(b.CreatorID) }
