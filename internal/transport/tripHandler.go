package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/backend/internal/service"
)

type TripHandler struct {
	queries service.TripQueries
}

func NewTripHandler(queries service.TripQueries) *TripHandler {
	return &TripHandler{queries: queries}
}

func (h *TripHandler) GetUserTrips(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	trips, err := h.queries.GetUserTrips(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) GetTripDetails(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	details, err := h.queries.GetTripDetails(c.Request.Context(), c.Param("trip_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
