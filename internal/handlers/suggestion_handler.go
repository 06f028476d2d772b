package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/services"
)

// SuggestionHandler serves generated combinations and strategy predictions
type SuggestionHandler struct {
	combinationService services.CombinationService
	predictionService  services.PredictionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(combinationService services.CombinationService, predictionService services.PredictionService) *SuggestionHandler {
	return &SuggestionHandler{
		combinationService: combinationService,
		predictionService:  predictionService,
	}
}

// GenerateCombinations handles POST /combinations
func (h *SuggestionHandler) GenerateCombinations(c *gin.Context) {
	var req models.CombinationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	resp, err := h.combinationService.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to generate combinations")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Predict handles POST /predict
func (h *SuggestionHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	resp, err := h.predictionService.Predict(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to compute predictions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
