package queries

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type UserQueryService struct {
	users UserReadStore
}

func NewUserQueryService(users UserReadStore) *UserQueryService {
	return &UserQueryService{users: users}
}

func (s *UserQueryService) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := s.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, err
	}
	return view, nil
}
