package messaging

import (
	"context"
	"sync"

	"collabflow/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMessenger keeps one conversation per (brand, creator, request).
type PostgresMessenger struct {
	pool *pgxpool.Pool
}

func NewPostgresMessenger(pool *pgxpool.Pool) *PostgresMessenger {
	return &PostgresMessenger{pool: pool}
}

func (m *PostgresMessenger) EnsureConversation(ctx context.Context, brandID, creatorID, requestID uuid.UUID) (string, error) {
	var id uuid.UUID
	err := m.pool.QueryRow(ctx, `INSERT INTO conversations (id, brand_id, creator_id, request_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (brand_id, creator_id, request_id) DO UPDATE SET brand_id = EXCLUDED.brand_id
RETURNING id`, uuid.New(), brandID, creatorID, requestID).Scan(&id)
	if err != nil {
		return "", infra.WrapRepoErr("failed to ensure conversation", err)
	}
	return id.String(), nil
}

type conversationKey struct {
	brandID, creatorID, requestID uuid.UUID
}

type MemoryMessenger struct {
	mu            sync.Mutex
	conversations map[conversationKey]string
}

func NewMemoryMessenger() *MemoryMessenger {
	return &MemoryMessenger{conversations: make(map[conversationKey]string)}
}

func (m *MemoryMessenger) EnsureConversation(_ context.Context, brandID, creatorID, requestID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := conversationKey{brandID, creatorID, requestID}
	if id, ok := m.conversations[key]; ok {
		return id, nil
	}
	id := uuid.NewString()
	m.conversations[key] = id
	return id, nil
}
