package readstore

import (
	"context"
	"time"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

func (s *SlotReadStore) ListAvailable(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]queries.SlotView, error) {
	const query = `
		SELECT id, start_at, end_at
		FROM slots
		WHERE professional_id = $1
		  AND state = 'AVAILABLE'
		  AND start_at >= $2
		  AND start_at < $3
		ORDER BY start_at
	`

	rows, err := s.db.Query(ctx, query, professionalID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available slots", err)
	}
	defer rows.Close()

	views := make([]queries.SlotView, 0)
	for rows.Next() {
		var v queries.SlotView
		if err := rows.Scan(&v.ID, &v.StartAt, &v.EndAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return views, nil
}
