package handlers

import (
	"net/http"

	"hallbook/internal/logger"
	"hallbook/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	ctx := logger.ContextWithTenantID(c.Request.Context(), req.TenantID)
	response, err := h.services.Bookings.Create(ctx, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UnavailableDates - GET /api/bookings/unavailable-dates/:tenantId
func (h *Handlers) UnavailableDates(c *gin.Context) {
	tenantID := c.Param("tenantId")
	resourceID := c.Query("resourceId")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	ctx := logger.ContextWithTenantID(c.Request.Context(), tenantID)
	response, err := h.services.Availability.UnavailableDates(ctx, tenantID, resourceID, startDate, endDate)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
