package response

import (
	"servicemarket/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

func FromAuthResult(result *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		UserID:       result.UserID,
		Role:         result.Role,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}
