package commands

import (
	"context"

	"servicemarket/internal/domain/user"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/pkg/jwt"
	"servicemarket/internal/pkg/password"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// Credentials is the minimal read model for authentication.
type Credentials struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         user.Role
}

type CredentialReadStore interface {
	FindByEmail(ctx context.Context, email string) (*Credentials, error)
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	// BusinessName is required when registering as a professional.
	BusinessName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type AuthCommand struct {
	uow         shared.UnitOfWork
	credentials CredentialReadStore
	tokens      *jwt.Service
}

func NewAuthCommand(uow shared.UnitOfWork, credentials CredentialReadStore, tokens *jwt.Service) *AuthCommand {
	return &AuthCommand{uow: uow, credentials: credentials, tokens: tokens}
}

// Register creates the user account and, for professionals, the linked
// profile row in the same transaction.
func (c *AuthCommand) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(email, hash, in.FirstName, in.LastName, in.Phone, role)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID, err := tx.Users().Create(ctx, u)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrEmailAlreadyRegistered)
			}
			return err
		}

		if role == user.RoleProfessional {
			if _, err := tx.Professionals().Create(ctx, userID, in.BusinessName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.issueTokens(u.ID(), role)
}

func (c *AuthCommand) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	creds, err := c.credentials.FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := password.Compare(creds.PasswordHash, in.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	return c.issueTokens(creds.ID, creds.Role)
}

// Refresh exchanges a valid refresh token for a fresh token pair. Access
// tokens are rejected here; only refresh tokens may mint new ones.
func (c *AuthCommand) Refresh(_ context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := c.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, jwt.ErrInvalidToken
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	return c.issueTokens(claims.UserID, role)
}

func (c *AuthCommand) issueTokens(userID uuid.UUID, role user.Role) (*AuthResult, error) {
	access, err := c.tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign access token")
	}
	refresh, err := c.tokens.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign refresh token")
	}

	return &AuthResult{
		UserID:       userID,
		Role:         role.String(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
