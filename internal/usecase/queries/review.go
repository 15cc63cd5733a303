package queries

import (
	"context"

	"github.com/google/uuid"
)

type ReviewReadStore interface {
	ListForProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]ReviewView, int64, error)
}

type ReviewQueryService struct {
	reviews ReviewReadStore
}

func NewReviewQueryService(reviews ReviewReadStore) *ReviewQueryService {
	return &ReviewQueryService{reviews: reviews}
}

func (s *ReviewQueryService) ListForProfessional(ctx context.Context, professionalID uuid.UUID, f ListFilter) (*ReviewList, error) {
	f = f.Normalize()

	items, total, err := s.reviews.ListForProfessional(ctx, professionalID, f.Limit, f.Offset())
	if err != nil {
		return nil, err
	}
	return &ReviewList{Items: items, Pagination: NewPagination(total, f.Page, f.Limit)}, nil
}
