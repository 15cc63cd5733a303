package commands

import (
	"context"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/review"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewInput struct {
	CustomerID uuid.UUID
	BookingID  uuid.UUID
	Rating     int
	Comment    string
}

type CreateReviewCommand struct {
	uow shared.UnitOfWork
}

func NewCreateReviewCommand(uow shared.UnitOfWork) *CreateReviewCommand {
	return &CreateReviewCommand{uow: uow}
}

// Execute records a review for a completed booking owned by the customer.
// The unique index on booking_id makes the one-review-per-booking rule hold
// under concurrent submissions.
func (c *CreateReviewCommand) Execute(ctx context.Context, in CreateReviewInput) (uuid.UUID, error) {
	var reviewID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, in.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return err
		}
		if !b.IsOwnedByCustomer(in.CustomerID) {
			return ErrBookingNotOwned
		}
		if b.Status() != booking.StatusCompleted {
			return review.ErrBookingNotCompleted
		}

		rv, err := review.NewReview(in.BookingID, in.CustomerID, b.ProfessionalID(), in.Rating, in.Comment)
		if err != nil {
			return err
		}

		reviewID, err = tx.Reviews().Create(ctx, rv)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrReviewAlreadyExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reviewID, nil
}
