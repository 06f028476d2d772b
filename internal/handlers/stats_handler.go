package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/services"
)

// StatsHandler serves frequency statistics over draw windows
type StatsHandler struct {
	drawService   services.DrawService
	defaultWindow int
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(drawService services.DrawService, defaultWindow int) *StatsHandler {
	if defaultWindow <= 0 {
		defaultWindow = 10
	}
	return &StatsHandler{drawService: drawService, defaultWindow: defaultWindow}
}

func (h *StatsHandler) window(c *gin.Context) (end, count int, ok bool) {
	end, err := queryInt(c, "end", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}
	count, err = queryInt(c, "count", h.defaultWindow)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}
	if count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be at least 1"})
		return 0, 0, false
	}
	return end, count, true
}

// GetNumberFrequency handles GET /stats/frequency?end=&count=&bonus=
func (h *StatsHandler) GetNumberFrequency(c *gin.Context) {
	end, count, ok := h.window(c)
	if !ok {
		return
	}
	includeBonus := c.Query("bonus") == "true" || c.Query("bonus") == "1"

	freq := h.drawService.NumberFrequency(end, count, includeBonus)
	c.JSON(http.StatusOK, gin.H{
		"end":          end,
		"count":        count,
		"includeBonus": includeBonus,
		"total":        freq.Total(),
		"frequency":    freq,
	})
}

// GetRangeFrequency handles GET /stats/ranges?end=&count=&top=
func (h *StatsHandler) GetRangeFrequency(c *gin.Context) {
	end, count, ok := h.window(c)
	if !ok {
		return
	}
	top, err := queryInt(c, "top", 2)
	if err != nil || top < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a non-negative integer"})
		return
	}

	table := h.drawService.RangeFrequency(end, count)
	c.JSON(http.StatusOK, gin.H{
		"end":     end,
		"count":   count,
		"buckets": table.Map(),
		"top":     engine.TopRanges(table, top),
		"bottom":  engine.BottomRange(table),
		"shares":  engine.RangeShares(table),
	})
}

// GetBetween handles GET /stats/between?start=&end=
func (h *StatsHandler) GetBetween(c *gin.Context) {
	start, err := queryInt(c, "start", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := queryInt(c, "end", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if start < 0 || end < 0 || (end > 0 && start > end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw range"})
		return
	}

	draws := h.drawService.Between(start, end)
	table := engine.RangeFrequency(draws)
	c.JSON(http.StatusOK, gin.H{
		"start":  start,
		"end":    end,
		"draws":  len(draws),
		"shares": engine.RangeShares(table),
	})
}
