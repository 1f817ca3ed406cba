package usecase

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator_mock.go -package=usecasemock

import (
	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/pkg/jwt"
)

var ErrUnknownRole = errs.New("unknown role in token")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (request.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (request.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return request.Actor{}, err
	}

	role := request.Role(claims.Role)
	switch role {
	case request.RoleBrand, request.RoleCreator, request.RoleAdmin:
	default:
		return request.Actor{}, ErrUnknownRole
	}

	return request.Actor{ID: claims.UserID, Role: role}, nil
}
