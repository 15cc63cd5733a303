package review

import (
	"strings"
	"time"

	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating       = errs.New("rating must be between 1 and 5")
	ErrEmptyComment        = errs.New("comment cannot be empty")
	ErrCommentTooLong      = errs.New("comment exceeds maximum length")
	ErrBookingNotCompleted = errs.New("only completed bookings can be reviewed")
)

const MaxCommentLength = 1000

type Rating struct {
	value int
}

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int {
	return r.value
}

type Comment struct {
	value string
}

func NewComment(value string) (Comment, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Comment{}, ErrEmptyComment
	}
	if len(trimmed) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{value: trimmed}, nil
}

func (c Comment) String() string {
	return c.value
}

// Review of a completed booking; at most one per booking, written by the
// booking's customer.
type Review struct {
	id             uuid.UUID
	bookingID      uuid.UUID
	customerID     uuid.UUID
	professionalID uuid.UUID
	rating         Rating
	comment        Comment
	createdAt      time.Time
}

func NewReview(bookingID, customerID, professionalID uuid.UUID, ratingValue int, commentText string) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:             uuid.New(),
		bookingID:      bookingID,
		customerID:     customerID,
		professionalID: professionalID,
		rating:         rating,
		comment:        comment,
	}, nil
}

func (r *Review) ID() uuid.UUID             { return r.id }
func (r *Review) BookingID() uuid.UUID      { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID     { return r.customerID }
func (r *Review) ProfessionalID() uuid.UUID { return r.professionalID }
func (r *Review) Rating() Rating            { return r.rating }
func (r *Review) Comment() Comment          { return r.comment }
func (r *Review) CreatedAt() time.Time      { return r.createdAt }
