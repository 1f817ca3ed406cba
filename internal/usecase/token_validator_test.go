//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/pkg/jwt"
	"collabflow/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("test-secret", "collabflow")
	validator := usecase.NewTokenValidator(svc)
	userID := uuid.New()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		want    request.Actor
		wantErr error
	}{
		{
			name: "brand token",
			token: func(t *testing.T) string {
				tok, err := svc.GenerateToken(userID, "brand", time.Hour)
				require.NoError(t, err)
				return tok
			},
			want: request.Actor{ID: userID, Role: request.RoleBrand},
		},
		{
			name: "creator token",
			token: func(t *testing.T) string {
				tok, err := svc.GenerateToken(userID, "creator", time.Hour)
				require.NoError(t, err)
				return tok
			},
			want: request.Actor{ID: userID, Role: request.RoleCreator},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := svc.GenerateToken(userID, "brand", -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService("test-secret", "someone-else").GenerateToken(userID, "brand", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService("other-secret", "collabflow").GenerateToken(userID, "brand", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not.a.jwt" },
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				tok, err := svc.GenerateToken(userID, "auditor", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: usecase.ErrUnknownRole,
		},
		{
			name: "nil subject",
			token: func(t *testing.T) string {
				tok, err := svc.GenerateToken(uuid.Nil, "brand", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, err := validator.ValidateToken(tt.token(t))
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, request.Actor{}, actor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, actor)
		})
	}
}
