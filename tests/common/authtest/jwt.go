//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const defaultTTL = time.Hour

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, actor request.Actor) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(actor.ID, actor.Role.String(), defaultTTL)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) Brand(t *testing.T) (request.Actor, string) {
	t.Helper()
	actor := request.Brand(uuid.New())
	return actor, h.GenerateToken(t, actor)
}

func (h *JWTHelper) Creator(t *testing.T) (request.Actor, string) {
	t.Helper()
	actor := request.Creator(uuid.New())
	return actor, h.GenerateToken(t, actor)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, actor request.Actor) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer)
	token, err := service.GenerateToken(actor.ID, actor.Role.String(), -time.Minute)
	require.NoError(t, err)
	return token
}
