//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"collabflow/internal/infra"
	"collabflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		expectKind  infra.RepositoryErrorKind
		expectClass func(error) bool
	}{
		{name: "no rows", err: pgx.ErrNoRows, expectKind: infra.KindNotFound, expectClass: errs.IsNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), expectKind: infra.KindNotFound, expectClass: errs.IsNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expectKind: infra.KindDuplicateKey, expectClass: errs.IsConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expectKind: infra.KindForeignKeyViolated},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, expectKind: infra.KindCheckViolated, expectClass: errs.IsIntegrity},
		{name: "anything else", err: errors.New("boom"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := infra.WrapRepoErr("op", tc.err)
			assert.True(t, infra.IsKind(got, tc.expectKind), "got %v", got)
			if tc.expectClass != nil {
				assert.True(t, tc.expectClass(got))
			}
		})
	}
}

func TestNewRepoErr_StaleVersion(t *testing.T) {
	err := infra.NewRepoErr(infra.KindStaleVersion, "modified concurrently", nil)
	assert.True(t, infra.IsKind(err, infra.KindStaleVersion))
	assert.True(t, errs.IsInvalidTransition(err))
}
