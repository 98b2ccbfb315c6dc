package handlers

import (
	"net/http"

	"hallbook/internal/logger"

	"github.com/gin-gonic/gin"
)

// Public catalog handlers

// PublicResources - GET /api/resources/public/:tenantId
func (h *Handlers) PublicResources(c *gin.Context) {
	tenantID := c.Param("tenantId")
	ctx := logger.ContextWithTenantID(c.Request.Context(), tenantID)
	response, err := h.services.Catalog.PublicResources(ctx, tenantID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// PublicPricing - GET /api/pricing/public/:tenantId
func (h *Handlers) PublicPricing(c *gin.Context) {
	tenantID := c.Param("tenantId")
	ctx := logger.ContextWithTenantID(c.Request.Context(), tenantID)
	response, err := h.services.Catalog.PublicPricing(ctx, tenantID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
