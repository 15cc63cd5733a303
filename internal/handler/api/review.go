package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"servicemarket/internal/domain/review"
	reqdto "servicemarket/internal/handler/dto/request"
	"servicemarket/internal/handler/httperr"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reviewCreator interface {
	Execute(ctx context.Context, in commands.CreateReviewInput) (uuid.UUID, error)
}

type reviewReader interface {
	ListForProfessional(ctx context.Context, professionalID uuid.UUID, f queries.ListFilter) (*queries.ReviewList, error)
}

type ReviewHandler struct {
	creator reviewCreator
	reader  reviewReader
}

func NewReviewHandler(creator reviewCreator, reader reviewReader) *ReviewHandler {
	return &ReviewHandler{creator: creator, reader: reader}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.creator.Execute(c.Request.Context(), commands.CreateReviewInput{
		CustomerID: userID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrBookingNotOwned):
			httperr.AbortWithError(c, http.StatusForbidden, err, "You may not review this booking", nil)
		case errors.Is(err, review.ErrBookingNotCompleted):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Only completed bookings can be reviewed", nil)
		case errors.Is(err, review.ErrInvalidRating),
			errors.Is(err, review.ErrEmptyComment),
			errors.Is(err, review.ErrCommentTooLong):
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		case errors.Is(err, commands.ErrReviewAlreadyExists):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking already reviewed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ReviewHandler) GetProfessionalReviews(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid professional ID format", nil)
		return
	}

	var filter queries.ListFilter
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, err := h.reader.ListForProfessional(c.Request.Context(), professionalID, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, list)
}
