package queries

import (
	"context"

	"servicemarket/internal/domain/user"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, f ListFilter) ([]BookingView, int64, error)
	ListForProfessional(ctx context.Context, professionalID uuid.UUID, f ListFilter) ([]BookingView, int64, error)
}

type ProfessionalReadStore interface {
	ByUserID(ctx context.Context, userID uuid.UUID) (*shared.ProfessionalSnapshot, error)
}

type BookingQueryService struct {
	bookings      BookingReadStore
	professionals ProfessionalReadStore
}

func NewBookingQueryService(bookings BookingReadStore, professionals ProfessionalReadStore) *BookingQueryService {
	return &BookingQueryService{bookings: bookings, professionals: professionals}
}

// GetByID returns one booking, visible only to its customer, its assigned
// professional, or an admin.
func (s *BookingQueryService) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*BookingView, error) {
	view, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}

	switch actorRole {
	case user.RoleAdmin:
		return view, nil
	case user.RoleCustomer:
		if view.CustomerID == actorID {
			return view, nil
		}
	case user.RoleProfessional:
		pro, err := s.professionals.ByUserID(ctx, actorID)
		if err == nil && view.ProfessionalID == pro.ID {
			return view, nil
		}
	}
	return nil, ErrForbidden
}

func (s *BookingQueryService) ListForCustomer(ctx context.Context, customerID uuid.UUID, f ListFilter) (*BookingList, error) {
	f = f.Normalize()

	items, total, err := s.bookings.ListForCustomer(ctx, customerID, f)
	if err != nil {
		return nil, err
	}
	return &BookingList{Items: items, Pagination: NewPagination(total, f.Page, f.Limit)}, nil
}

// ListForProfessional resolves the acting user to their professional
// profile first; a user without one cannot have assigned bookings.
func (s *BookingQueryService) ListForProfessional(ctx context.Context, userID uuid.UUID, f ListFilter) (*BookingList, error) {
	pro, err := s.professionals.ByUserID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProfessionalNotFound)
		}
		return nil, err
	}

	f = f.Normalize()
	items, total, err := s.bookings.ListForProfessional(ctx, pro.ID, f)
	if err != nil {
		return nil, err
	}
	return &BookingList{Items: items, Pagination: NewPagination(total, f.Page, f.Limit)}, nil
}
