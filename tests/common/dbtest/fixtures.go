//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"testing"
	"time"

	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// CreateRateCard inserts an active rate card for creatorID and returns its id.
func CreateRateCard(t *testing.T, db DBLike, creatorID uuid.UUID, name, platform string, priceMinor int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO rate_cards (id, creator_id, name, platform, price_minor, is_active) VALUES ($1, $2, $3, $4, $5, true)",
		id, creatorID, name, platform, priceMinor)
	require.NoError(t, err)
	return id
}

func SetCreatorTier(t *testing.T, db DBLike, creatorID uuid.UUID, tier string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO creator_tiers (creator_id, tier) VALUES ($1, $2)
		ON CONFLICT (creator_id) DO UPDATE SET tier = EXCLUDED.tier, updated_at = now()`,
		creatorID, tier)
	require.NoError(t, err)
}

// CountRows returns the number of rows in table matching where.
func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE "+where, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties every application table. The table list is read from
// the catalog so new migrations need no change here.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := db.Query(ctx, `
		SELECT 'public.' || quote_ident(tablename)
		FROM pg_tables
		WHERE schemaname = 'public'
		  AND tablename <> 'atlas_schema_revisions'
		ORDER BY tablename`)
	if err != nil {
		return errs.Wrap(err, "list tables")
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return errs.Wrap(err, "scan tables")
	}
	if len(tables) == 0 {
		return nil
	}
	_, err = db.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	return errs.Wrap(err, "truncate")
}
