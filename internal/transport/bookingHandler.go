package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/backend/internal/entity"
	"github.com/wanderbook/backend/internal/service"
)

type BookingHandler struct {
	commands service.BookingCommands
}

func NewBookingHandler(commands service.BookingCommands) *BookingHandler {
	return &BookingHandler{commands: commands}
}

// writeError maps domain errors onto HTTP statuses: validation failures are
// client errors, missing aggregates are 404, everything else is a fault.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrBookingNotFound), errors.Is(err, entity.ErrTripNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrBookingNotCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *BookingHandler) BookFlight(c *gin.Context) {
	var req service.BookFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.commands.BookFlight(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) BookHotel(c *gin.Context) {
	var req service.BookHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.commands.BookHotel(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) BookActivity(c *gin.Context) {
	var req service.BookActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.commands.BookActivity(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) BookPackage(c *gin.Context) {
	var req service.BookPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := h.commands.BookPackage(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	req := service.CancelBookingRequest{
		BookingID: c.Param("id"),
	}

	var body struct {
		Reason string `json:"reason"`
		UserID int64  `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		req.Reason = body.Reason
		req.UserID = body.UserID
	}

	confirmation, err := h.commands.CancelBooking(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
