package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	ListAvailable(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]SlotView, error)
}

type SlotQueryService struct {
	slots SlotReadStore
}

func NewSlotQueryService(slots SlotReadStore) *SlotQueryService {
	return &SlotQueryService{slots: slots}
}

// ListAvailable returns open slots in [from, to) ordered by start time.
// A zero to defaults to thirty days after from.
func (s *SlotQueryService) ListAvailable(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]SlotView, error) {
	if to.IsZero() {
		to = from.AddDate(0, 0, 30)
	}
	return s.slots.ListAvailable(ctx, professionalID, from, to)
}
