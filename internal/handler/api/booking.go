package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	reqdto "servicemarket/internal/handler/dto/request"
	resdto "servicemarket/internal/handler/dto/response"
	"servicemarket/internal/handler/httperr"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"

	"servicemarket/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingIdentity = errs.New("authenticated identity missing from context")

type bookingCreator interface {
	Execute(ctx context.Context, in commands.CreateBookingInput) (*commands.CreateBookingResult, error)
}

type bookingStatusChanger interface {
	UpdateByProfessional(ctx context.Context, in commands.UpdateStatusInput) error
	CancelByCustomer(ctx context.Context, in commands.CancelBookingInput) error
}

type bookingReader interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*queries.BookingView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, f queries.ListFilter) (*queries.BookingList, error)
	ListForProfessional(ctx context.Context, userID uuid.UUID, f queries.ListFilter) (*queries.BookingList, error)
}

type priceEstimator interface {
	Estimate(ctx context.Context, professionalID, serviceID uuid.UUID, addonIDs []uuid.UUID) (*pricing.Quote, error)
}

type BookingHandler struct {
	creator   bookingCreator
	status    bookingStatusChanger
	reader    bookingReader
	estimator priceEstimator
}

func NewBookingHandler(creator bookingCreator, status bookingStatusChanger, reader bookingReader, estimator priceEstimator) *BookingHandler {
	return &BookingHandler{
		creator:   creator,
		status:    status,
		reader:    reader,
		estimator: estimator,
	}
}

func (h *BookingHandler) Estimate(c *gin.Context) {
	var req reqdto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	quote, err := h.estimator.Estimate(c.Request.Context(), req.ProfessionalID, req.ServiceID, req.AddonIDs)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrServiceNotOffered):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not offered by this professional", nil)
		case errors.Is(err, queries.ErrAddonNotOffered):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Addon not offered by this professional", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": quote})
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.creator.Execute(c.Request.Context(), commands.CreateBookingInput{
		CustomerID:     userID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		SlotID:         req.SlotID,
		AddressID:      req.AddressID,
		AddonIDs:       req.AddonIDs,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
		case errors.Is(err, commands.ErrAddressNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Address not found", nil)
		case errors.Is(err, commands.ErrServiceNotOffered):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not offered by this professional", nil)
		case errors.Is(err, commands.ErrAddonNotOffered):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Addon not offered by this professional", nil)
		case errors.Is(err, commands.ErrForbiddenAddress):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Address belongs to another user", nil)
		case errors.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is no longer available", nil)
		case errors.Is(err, commands.ErrBookingAlreadyProcessed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking request was already processed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.reader.GetByID(c.Request.Context(), userID, user.RoleCustomer, result.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.reader.GetByID(c.Request.Context(), actorID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "You may not view this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	filter, ok := listFilter(c)
	if !ok {
		return
	}

	list, err := h.reader.ListForCustomer(c.Request.Context(), userID, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(list))
}

func (h *BookingHandler) GetProfessionalBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	filter, ok := listFilter(c)
	if !ok {
		return
	}

	list, err := h.reader.ListForProfessional(c.Request.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProfessionalNotFound):
			httperr.AbortWithError(c, http.StatusForbidden, err, "No professional profile for this account", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(list))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	toStatus, err := booking.NewStatus(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking status", nil)
		return
	}

	err = h.status.UpdateByProfessional(c.Request.Context(), commands.UpdateStatusInput{
		UserID:    userID,
		BookingID: id,
		ToStatus:  toStatus,
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	h.respondWithBooking(c, userID, id)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.status.CancelByCustomer(c.Request.Context(), commands.CancelBookingInput{
		CustomerID: userID,
		BookingID:  id,
		Reason:     req.Reason,
	})
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	h.respondWithBooking(c, userID, id)
}

func (h *BookingHandler) respondStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrBookingNotOwned), errors.Is(err, commands.ErrProfessionalNotFound):
		httperr.AbortWithError(c, http.StatusForbidden, err, "You may not change this booking", nil)
	case errors.Is(err, booking.ErrInvalidStatusTransition),
		errors.Is(err, booking.ErrCannotCancel),
		errors.Is(err, booking.ErrCancellationTooLate),
		errors.Is(err, booking.ErrEmptyCancellationReason):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *BookingHandler) respondWithBooking(c *gin.Context, actorID uuid.UUID, bookingID uuid.UUID) {
	role, _ := middleware.GetUserRole(c)
	view, err := h.reader.GetByID(c.Request.Context(), actorID, role, bookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func actor(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func listFilter(c *gin.Context) (queries.ListFilter, bool) {
	var filter queries.ListFilter

	if raw := c.Query("status"); raw != "" {
		status, err := booking.NewStatus(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return filter, false
		}
		filter.Status = &status
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return filter, true
}
