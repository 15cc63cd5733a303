package readstore

import (
	"context"

	"servicemarket/internal/domain/user"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*commands.Credentials, error) {
	const query = `
		SELECT id, email, password_hash, role
		FROM users
		WHERE email = $1
	`

	var (
		creds    commands.Credentials
		roleText string
	)
	if err := s.db.QueryRow(ctx, query, email).Scan(&creds.ID, &creds.Email, &creds.PasswordHash, &roleText); err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	role, err := user.NewRole(roleText)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored role", err)
	}
	creds.Role = role
	return &creds, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
		SELECT id, email, first_name, last_name, phone, role, created_at
		FROM users
		WHERE id = $1
	`

	var v queries.UserView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.Phone, &v.Role, &v.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &v, nil
}
