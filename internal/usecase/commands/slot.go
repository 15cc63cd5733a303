package commands

import (
	"context"

	"servicemarket/internal/domain/slot"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/clock"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type GenerateSlotsResult struct {
	Generated int64 `json:"generated"`
}

// GenerateSlotsCommand materializes bookable slots from the professional's
// recurring weekly availability. Re-running is safe: existing windows are
// skipped at insert time.
type GenerateSlotsCommand struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	horizonDays int
}

func NewGenerateSlotsCommand(uow shared.UnitOfWork, clk clock.Clock, horizonDays int) *GenerateSlotsCommand {
	return &GenerateSlotsCommand{uow: uow, clock: clk, horizonDays: horizonDays}
}

func (c *GenerateSlotsCommand) Execute(ctx context.Context, userID uuid.UUID) (*GenerateSlotsResult, error) {
	var result GenerateSlotsResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pro, err := tx.Reads().ProfessionalByUserID(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProfessionalNotFound)
			}
			return err
		}

		windows, err := tx.Reads().AvailabilityForProfessional(ctx, pro.ID)
		if err != nil {
			return err
		}
		if len(windows) == 0 {
			return ErrNoAvailability
		}

		slots := slot.Generate(pro.ID, windows, c.clock.Now(), c.horizonDays)

		inserted, err := tx.Slots().BulkInsert(ctx, slots)
		if err != nil {
			return err
		}
		result.Generated = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
