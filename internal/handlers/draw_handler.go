package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/services"
	"github.com/ArowuTest/lotto645-backend/internal/utils"
)

// maxUploadSize bounds a draw history CSV upload
const maxUploadSize = 10 << 20

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService   services.DrawService
	defaultWindow int
	highThreshold int
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService, defaultWindow, highThreshold int) *DrawHandler {
	if defaultWindow <= 0 {
		defaultWindow = 10
	}
	if highThreshold <= 0 {
		highThreshold = engine.DefaultHighThreshold
	}
	return &DrawHandler{
		drawService:   drawService,
		defaultWindow: defaultWindow,
		highThreshold: highThreshold,
	}
}

func (h *DrawHandler) withDigest(draws []models.Draw, highCut int) []models.DrawWithDigest {
	out := make([]models.DrawWithDigest, 0, len(draws))
	for _, d := range draws {
		dg := engine.DrawDigest(d.Numbers[:], highCut)
		out = append(out, models.DrawWithDigest{Draw: d, Sum: dg.Sum, OddCount: dg.OddCount, HighCount: dg.HighCount})
	}
	return out
}

// GetWindow handles GET /draws?end=&count=&high_cut=
func (h *DrawHandler) GetWindow(c *gin.Context) {
	end, err := queryInt(c, "end", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := queryInt(c, "count", h.defaultWindow)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be at least 1"})
		return
	}
	highCut, err := queryInt(c, "high_cut", h.highThreshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if highCut < 1 || highCut > engine.MaxNumber {
		c.JSON(http.StatusBadRequest, gin.H{"error": "high_cut must be between 1 and 45"})
		return
	}

	draws := h.drawService.Window(end, count)
	if len(draws) > 0 {
		end = draws[len(draws)-1].DrawNumber
	}
	c.JSON(http.StatusOK, gin.H{
		"end":   end,
		"count": len(draws),
		"draws": h.withDigest(draws, highCut),
	})
}

// GetLatest handles GET /draws/latest
func (h *DrawHandler) GetLatest(c *gin.Context) {
	d, ok := h.drawService.Latest()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "no data", "draw": nil})
		return
	}
	c.JSON(http.StatusOK, h.withDigest([]models.Draw{d}, h.highThreshold)[0])
}

// GetDrawByNumber handles GET /draws/:number
func (h *DrawHandler) GetDrawByNumber(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw number"})
		return
	}
	d, ok := h.drawService.GetDraw(n)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draw not found"})
		return
	}
	c.JSON(http.StatusOK, h.withDigest([]models.Draw{d}, h.highThreshold)[0])
}

// GetDigest handles GET /digest?numbers=1,2,3&high_cut=
func (h *DrawHandler) GetDigest(c *gin.Context) {
	nums, err := utils.ParseNumberList(c.Query("numbers"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(nums) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numbers is required"})
		return
	}
	highCut, err := queryInt(c, "high_cut", h.highThreshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"numbers": nums,
		"digest":  engine.DrawDigest(nums, highCut),
	})
}

// UploadCSV handles POST /draws/upload (multipart field "file")
func (h *DrawHandler) UploadCSV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required in field \"file\""})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.drawService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		respondError(c, err, "Failed to import draws")
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncOfficial handles POST /draws/sync
func (h *DrawHandler) SyncOfficial(c *gin.Context) {
	var request struct {
		Start int `json:"start"`
		End   int `json:"end"`
	}
	// an empty body means "everything newer than what is stored"
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Start < 0 || request.End < 0 || (request.End > 0 && request.Start > request.End) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw range"})
		return
	}

	result, err := h.drawService.SyncOfficial(c.Request.Context(), request.Start, request.End)
	if err != nil {
		if result != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Official sync incomplete: " + err.Error(), "result": result})
			return
		}
		respondError(c, err, "Failed to sync official draws")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reload handles POST /draws/reload
func (h *DrawHandler) Reload(c *gin.Context) {
	report, err := h.drawService.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to reload draws")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loaded":   report.Loaded,
		"rejected": len(report.Rejected),
	})
}

// GetOfficialLatest handles GET /official/latest
func (h *DrawHandler) GetOfficialLatest(c *gin.Context) {
	n, err := h.drawService.OfficialLatest(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to determine latest official draw")
		return
	}
	c.JSON(http.StatusOK, gin.H{"latestDrawNumber": n})
}

// GetOfficialDraw handles GET /official/rounds/:number
func (h *DrawHandler) GetOfficialDraw(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw number"})
		return
	}
	d, err := h.drawService.OfficialDraw(c.Request.Context(), n)
	if err != nil {
		respondError(c, err, "Failed to fetch official draw")
		return
	}
	c.JSON(http.StatusOK, d)
}
