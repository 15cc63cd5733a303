package repository

import (
	"context"
	"time"

	"servicemarket/internal/domain/slot"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"

	"github.com/google/uuid"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

// Claim is the single conditional write that decides slot contention: the
// UPDATE only matches a row that is still AVAILABLE and owned by the
// professional, so of N concurrent claimants exactly one sees a row come
// back.
func (r *SlotRepository) Claim(ctx context.Context, slotID, professionalID uuid.UUID) (*slot.Slot, error) {
	const query = `
		UPDATE slots
		SET state = 'BOOKED', updated_at = now()
		WHERE id = $1
		  AND professional_id = $2
		  AND state = 'AVAILABLE'
		RETURNING id, professional_id, start_at, end_at, state
	`

	s, err := scanSlot(r.db.QueryRow(ctx, query, slotID, professionalID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim slot", err)
	}
	return s, nil
}

func (r *SlotRepository) SyncForBookingStatus(ctx context.Context, professionalID uuid.UUID, startAt time.Time, state slot.State) error {
	const query = `
		UPDATE slots
		SET state = $3, updated_at = now()
		WHERE professional_id = $1
		  AND start_at = $2
	`

	if _, err := r.db.Exec(ctx, query, professionalID, startAt, state.String()); err != nil {
		return infra.WrapRepoErr("failed to sync slot state", err)
	}
	return nil
}

// BulkInsert adds generated slots; windows already on the calendar are
// left untouched. Returns how many rows were actually inserted.
func (r *SlotRepository) BulkInsert(ctx context.Context, slots []slot.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	const query = `
		INSERT INTO slots (id, professional_id, start_at, end_at, state)
		SELECT unnest($1::uuid[]), $2, unnest($3::timestamptz[]), unnest($4::timestamptz[]), 'AVAILABLE'
		ON CONFLICT (professional_id, start_at) DO NOTHING
	`

	ids := make([]uuid.UUID, len(slots))
	starts := make([]time.Time, len(slots))
	ends := make([]time.Time, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
		starts[i] = s.StartAt
		ends[i] = s.EndAt
	}

	tag, err := r.db.Exec(ctx, query, ids, slots[0].ProfessionalID, starts, ends)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to bulk insert slots", err)
	}
	return tag.RowsAffected(), nil
}

type slotRow interface {
	Scan(dest ...any) error
}

func scanSlot(row slotRow) (*slot.Slot, error) {
	var (
		s         slot.Slot
		stateText string
	)
	if err := row.Scan(&s.ID, &s.ProfessionalID, &s.StartAt, &s.EndAt, &stateText); err != nil {
		return nil, err
	}

	state, err := slot.NewState(stateText)
	if err != nil {
		return nil, err
	}
	s.State = state
	return &s, nil
}
