package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/services"
)

// FeaturedDrawHandler handles the curated "last draw"
type FeaturedDrawHandler struct {
	drawService services.DrawService
}

// NewFeaturedDrawHandler creates a new FeaturedDrawHandler
func NewFeaturedDrawHandler(drawService services.DrawService) *FeaturedDrawHandler {
	return &FeaturedDrawHandler{
		drawService: drawService,
	}
}

// GetFeaturedDraw handles GET /last_draw
func (h *FeaturedDrawHandler) GetFeaturedDraw(c *gin.Context) {
	d, err := h.drawService.GetFeaturedDraw(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get last draw: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// SetFeaturedDraw handles POST /last_draw
func (h *FeaturedDrawHandler) SetFeaturedDraw(c *gin.Context) {
	var req models.FeaturedDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Get the admin email from the JWT token
	updatedBy := c.GetString("userEmail")
	if updatedBy == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	d, err := h.drawService.SetFeaturedDraw(c.Request.Context(), &req, updatedBy)
	if err != nil {
		respondError(c, err, "Failed to update last draw")
		return
	}
	c.JSON(http.StatusOK, d)
}
