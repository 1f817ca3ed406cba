// Package tier resolves a creator's commission tier and its fee rate.
package tier

import (
	"context"
	"errors"
	"sync"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnknownTier = errs.Integrity("tier has no configured fee")

// Lookup returns the tier name assigned to a creator, or "" if none.
type Lookup interface {
	TierOf(ctx context.Context, creatorID uuid.UUID) (string, error)
}

type Provider struct {
	lookup      Lookup
	fees        map[string]int
	defaultTier string
}

func NewProvider(lookup Lookup, fees map[string]int, defaultTier string) (*Provider, error) {
	if _, ok := fees[defaultTier]; !ok {
		return nil, errs.Wrapf(ErrUnknownTier, "default tier %q", defaultTier)
	}
	for name, bps := range fees {
		if err := (escrow.Tier{Name: name, FeeBasisPoints: bps}).Validate(); err != nil {
			return nil, errs.Wrapf(err, "tier %q", name)
		}
	}
	return &Provider{lookup: lookup, fees: fees, defaultTier: defaultTier}, nil
}

func (p *Provider) CurrentTier(ctx context.Context, creatorID uuid.UUID) (escrow.Tier, error) {
	name, err := p.lookup.TierOf(ctx, creatorID)
	if err != nil {
		return escrow.Tier{}, err
	}
	if name == "" {
		name = p.defaultTier
	}
	bps, ok := p.fees[name]
	if !ok {
		return escrow.Tier{}, errs.Wrapf(ErrUnknownTier, "tier %q", name)
	}
	return escrow.Tier{Name: name, FeeBasisPoints: bps}, nil
}

type PostgresLookup struct {
	pool *pgxpool.Pool
}

func NewPostgresLookup(pool *pgxpool.Pool) *PostgresLookup {
	return &PostgresLookup{pool: pool}
}

func (l *PostgresLookup) TierOf(ctx context.Context, creatorID uuid.UUID) (string, error) {
	var name string
	err := l.pool.QueryRow(ctx, `SELECT tier FROM creator_tiers WHERE creator_id = $1`, creatorID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errs.Wrap(err, "failed to read creator tier")
	}
	return name, nil
}

type MemoryLookup struct {
	mu    sync.RWMutex
	tiers map[uuid.UUID]string
}

func NewMemoryLookup() *MemoryLookup {
	return &MemoryLookup{tiers: make(map[uuid.UUID]string)}
}

func (l *MemoryLookup) Set(creatorID uuid.UUID, tier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tiers[creatorID] = tier
}

func (l *MemoryLookup) TierOf(_ context.Context, creatorID uuid.UUID) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tiers[creatorID], nil
}
