package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/backend/internal/service"
)

type SearchHandler struct {
	queries service.FlightQueries
}

func NewSearchHandler(queries service.FlightQueries) *SearchHandler {
	return &SearchHandler{queries: queries}
}

func (h *SearchHandler) SearchFlights(c *gin.Context) {
	req := service.SearchFlightsRequest{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		DepartDate:  c.Query("depart_date"),
		ReturnDate:  c.Query("return_date"),
		Adults:      1,
	}

	if adultsStr := c.Query("adults"); adultsStr != "" {
		adults, err := strconv.Atoi(adultsStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adults parameter"})
			return
		}
		req.Adults = adults
	}

	if budgetStr := c.Query("budget"); budgetStr != "" {
		budget, err := strconv.ParseFloat(budgetStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget parameter"})
			return
		}
		req.Budget = &budget
	}

	if stopsStr := c.Query("max_stops"); stopsStr != "" {
		stops, err := strconv.Atoi(stopsStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_stops parameter"})
			return
		}
		req.MaxStops = &stops
	}

	offers, err := h.queries.SearchFlights(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

func (h *SearchHandler) SearchHotels(c *gin.Context) {
	req := service.SearchHotelsRequest{
		CityCode: c.Query("city"),
		CheckIn:  c.Query("check_in"),
		CheckOut: c.Query("check_out"),
	}

	offers, err := h.queries.SearchHotels(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

func (h *SearchHandler) SearchPackages(c *gin.Context) {
	req := service.SearchPackagesRequest{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		DepartDate:  c.Query("depart_date"),
		ReturnDate:  c.Query("return_date"),
		Adults:      1,
	}

	if adultsStr := c.Query("adults"); adultsStr != "" {
		adults, err := strconv.Atoi(adultsStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adults parameter"})
			return
		}
		req.Adults = adults
	}

	if budgetStr := c.Query("budget"); budgetStr != "" {
		budget, err := strconv.ParseFloat(budgetStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget parameter"})
			return
		}
		req.Budget = &budget
	}

	offers, err := h.queries.SearchPackages(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

func (h *SearchHandler) GetOfferDetails(c *gin.Context) {
	details, err := h.queries.GetOfferDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *SearchHandler) GetUserBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	bookings, err := h.queries.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
