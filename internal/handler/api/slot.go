package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"servicemarket/internal/handler/httperr"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type slotGenerator interface {
	Execute(ctx context.Context, userID uuid.UUID) (*commands.GenerateSlotsResult, error)
}

type slotReader interface {
	ListAvailable(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]queries.SlotView, error)
}

type SlotHandler struct {
	generator slotGenerator
	reader    slotReader
}

func NewSlotHandler(generator slotGenerator, reader slotReader) *SlotHandler {
	return &SlotHandler{generator: generator, reader: reader}
}

func (h *SlotHandler) GenerateSlots(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	result, err := h.generator.Execute(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProfessionalNotFound):
			httperr.AbortWithError(c, http.StatusForbidden, err, "No professional profile for this account", nil)
		case errors.Is(err, commands.ErrNoAvailability):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No recurring availability configured", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SlotHandler) GetAvailableSlots(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid professional ID format", nil)
		return
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from parameter", nil)
			return
		}
	}

	var to time.Time
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to parameter", nil)
			return
		}
	}

	views, err := h.reader.ListAvailable(c.Request.Context(), professionalID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, views)
}
