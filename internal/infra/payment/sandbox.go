// Package payment holds the sandbox payment gateway. Charges live in
// memory and resolve according to the configured mode.
package payment

import (
	"context"
	"strings"
	"sync"

	"collabflow/internal/domain/money"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeSuccess Mode = "success"
	ModeFail    Mode = "fail"
	// ModeManual leaves charges unresolved until Resolve is called.
	ModeManual Mode = "manual"
)

const sandboxFailureReason = "card declined (sandbox)"

var (
	ErrUnknownMode    = errs.New("unknown sandbox mode")
	ErrChargeNotFound = errs.NotFound("charge not found")
	ErrChargePending  = errs.Conflict("charge has not been resolved yet")
)

type charge struct {
	amount   money.Money
	metadata map[string]string
	resolved bool
	outcome  shared.ChargeVerification
}

type Sandbox struct {
	mu      sync.Mutex
	mode    Mode
	charges map[string]*charge
}

func NewSandbox(mode string) (*Sandbox, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(mode)))
	switch m {
	case ModeSuccess, ModeFail, ModeManual:
	default:
		return nil, errs.Wrapf(ErrUnknownMode, "mode %q", mode)
	}
	return &Sandbox{mode: m, charges: make(map[string]*charge)}, nil
}

var _ shared.PaymentGateway = (*Sandbox)(nil)

func (s *Sandbox) InitializeCharge(ctx context.Context, amount money.Money, metadata map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))

	c := &charge{amount: amount, metadata: metadata}
	switch s.mode {
	case ModeSuccess:
		c.resolved = true
		c.outcome = shared.ChargeVerification{Success: true, AmountCaptured: amount}
	case ModeFail:
		c.resolved = true
		c.outcome = shared.ChargeVerification{Success: false, FailureReason: sandboxFailureReason}
	}

	s.mu.Lock()
	s.charges[ref] = c
	s.mu.Unlock()
	return ref, nil
}

func (s *Sandbox) VerifyCharge(ctx context.Context, reference string) (shared.ChargeVerification, error) {
	if err := ctx.Err(); err != nil {
		return shared.ChargeVerification{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.charges[reference]
	if !ok {
		return shared.ChargeVerification{}, errs.Wrapf(ErrChargeNotFound, "reference %s", reference)
	}
	if !c.resolved {
		return shared.ChargeVerification{}, errs.Wrapf(ErrChargePending, "reference %s", reference)
	}
	return c.outcome, nil
}

// Resolve settles a charge by hand. A nil captured amount means the full
// charge was captured.
func (s *Sandbox) Resolve(reference string, success bool, captured *money.Money, failureReason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.charges[reference]
	if !ok {
		return errs.Wrapf(ErrChargeNotFound, "reference %s", reference)
	}
	c.resolved = true
	if !success {
		if failureReason == "" {
			failureReason = sandboxFailureReason
		}
		c.outcome = shared.ChargeVerification{Success: false, FailureReason: failureReason}
		return nil
	}
	amount := c.amount
	if captured != nil {
		amount = *captured
	}
	c.outcome = shared.ChargeVerification{Success: true, AmountCaptured: amount}
	return nil
}

// Metadata returns what was attached to a charge at initialization.
func (s *Sandbox) Metadata(reference string) (map[string]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[reference]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		out[k] = v
	}
	return out, true
}
