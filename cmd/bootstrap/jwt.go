package bootstrap

import (
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/pkg/jwt"
	"collabflow/internal/usecase"

	"go.uber.org/fx"
)

// JWTModule verifies bearer tokens minted by the identity service.
var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	if cfg.JWT.Secret == "" {
		return nil, errs.New("JWT_SECRET must be set")
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer), nil
}
