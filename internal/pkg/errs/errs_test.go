//go:build unit

package errs_test

import (
	"testing"

	"collabflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIsKeepsSentinelsOfOneClassApart(t *testing.T) {
	limit := errs.Validation("revision limit reached")
	budget := errs.Validation("budget is below the minimum")
	window := errs.InvalidTransition("response window has closed")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{name: "same sentinel", err: limit, target: limit, want: true},
		{name: "wrapped sentinel", err: errs.Wrap(limit, "request revision"), target: limit, want: true},
		{name: "sibling of the same class", err: budget, target: limit, want: false},
		{name: "wrapped sibling", err: errs.Wrapf(budget, "create %d", 1), target: limit, want: false},
		{name: "other class", err: window, target: limit, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Is(tt.err, tt.target))
		})
	}
}

func TestClassHelpersFollowMarks(t *testing.T) {
	budget := errs.Validation("budget is below the minimum")

	assert.True(t, errs.IsValidation(budget))
	assert.True(t, errs.IsValidation(errs.Wrap(budget, "create")))
	assert.False(t, errs.IsConflict(budget))

	marked := errs.Mark(errs.New("ledger mismatch"), errs.ErrIntegrity)
	assert.True(t, errs.IsIntegrity(marked))
	assert.False(t, errs.IsValidation(marked))
	assert.False(t, errs.Is(marked, budget))
}
