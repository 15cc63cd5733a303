package api

import (
	"context"
	"net/http"

	reqdto "servicemarket/internal/handler/dto/request"
	"servicemarket/internal/handler/httperr"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/usecase/queries"
	"servicemarket/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addressCreator interface {
	Execute(ctx context.Context, userID uuid.UUID, params shared.AddressParams) (uuid.UUID, error)
}

type addressReader interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]queries.AddressView, error)
}

type AddressHandler struct {
	creator addressCreator
	reader  addressReader
}

func NewAddressHandler(creator addressCreator, reader addressReader) *AddressHandler {
	return &AddressHandler{creator: creator, reader: reader}
}

func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.creator.Execute(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *AddressHandler) GetMyAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	views, err := h.reader.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, views)
}
