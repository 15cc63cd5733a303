package usecase

import (
	"servicemarket/internal/domain/user"
	"servicemarket/internal/pkg/jwt"

	"github.com/google/uuid"
)

type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

// JWTTokenValidator accepts access tokens only; refresh tokens cannot
// authenticate requests.
type JWTTokenValidator struct {
	tokens *jwt.Service
}

func NewJWTTokenValidator(tokens *jwt.Service) *JWTTokenValidator {
	return &JWTTokenValidator{tokens: tokens}
}

func (v *JWTTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}
	return claims.UserID, role, nil
}
