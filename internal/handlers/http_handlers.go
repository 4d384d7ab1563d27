package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"lotteryops/internal/barcode"
	"lotteryops/internal/models"
	"lotteryops/internal/services"
)

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	tickets *services.TicketService
	games   *services.GameService
	reports *services.ReportService
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(tickets *services.TicketService, games *services.GameService, reports *services.ReportService) *HTTPHandler {
	return &HTTPHandler{
		tickets: tickets,
		games:   games,
		reports: reports,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/tickets/scan", h.ScanTicket)
	api.GET("/tickets", h.ListTickets)
	api.DELETE("/tickets/:id", h.DeleteTicket)
	api.GET("/tickets/instant-sale", h.GetInstantSale)
	api.GET("/lottery-report", h.GetLotteryReport)
	api.POST("/lottery-report", h.SaveLotteryReport)
	api.GET("/reports/summary", h.GetSummary)
	api.GET("/games", h.ListGames)
	api.POST("/games", h.AddGame)
	api.POST("/admin/games/import", h.ImportGamesCSV)
	api.GET("/deposits", h.ListDeposits)
	api.POST("/deposits", h.AddDeposit)
}

// dayParam reads the "date" query parameter, defaulting to today.
// Returns an empty string after writing a 400 when the value is malformed.
func (h *HTTPHandler) dayParam(c *gin.Context) string {
	day := c.Query("date")
	if day == "" {
		return models.DayOf(time.Now())
	}
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return ""
	}
	return day
}

type scanRequest struct {
	BarcodeData string `json:"barcodeData"`
	Date        string `json:"date"`
	ScannedBy   string `json:"scannedBy"`
	Notes       string `json:"notes"`
}

// ScanTicket records one scanner read against a business day.
func (h *HTTPHandler) ScanTicket(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ScannedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scannedBy is required"})
		return
	}

	day := req.Date
	if day == "" {
		day = models.DayOf(time.Now())
	} else if _, err := time.Parse(models.DayLayout, day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	ticket, parsed, err := h.tickets.ScanTicket(day, req.BarcodeData, req.ScannedBy, req.Notes)
	switch {
	case errors.Is(err, services.ErrUnreadableScan):
		c.JSON(http.StatusBadRequest, gin.H{"error": parsed.ErrorDetail, "parsed": parsed})
		return
	case errors.Is(err, services.ErrDuplicateScan):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "parsed": parsed})
		return
	case err != nil:
		logger.Infof("Error scanning ticket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to scan ticket"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"ticket":  ticket,
		"parsed":  parsed,
		"display": barcode.FormatForDisplay(parsed),
	})
}

// ListTickets returns the tickets scanned on a business day.
func (h *HTTPHandler) ListTickets(c *gin.Context) {
	day := h.dayParam(c)
	if day == "" {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tickets": h.tickets.TicketsForDay(day)})
}

// DeleteTicket removes a scanned ticket by ID.
func (h *HTTPHandler) DeleteTicket(c *gin.Context) {
	if err := h.tickets.DeleteTicket(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetInstantSale returns the instant-sale figure for a business day.
func (h *HTTPHandler) GetInstantSale(c *gin.Context) {
	day := h.dayParam(c)
	if day == "" {
		return
	}
	result := h.tickets.InstantSaleForDay(day)
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"totalInstantSale":  result.TotalInstantSale,
		"ticketCount":       h.tickets.TicketCountForDay(day),
		"priceGroupDetails": result.Breakdown,
	})
}

// GetLotteryReport returns the saved report for a business day, or null.
func (h *HTTPHandler) GetLotteryReport(c *gin.Context) {
	day := h.dayParam(c)
	if day == "" {
		return
	}
	r, ok := h.reports.GetReport(day)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "report": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": r})
}

// SaveLotteryReport upserts the report for a business day. Derived totals
// in the payload are ignored and recomputed server-side.
func (h *HTTPHandler) SaveLotteryReport(c *gin.Context) {
	var req models.DailyLotteryReport
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.reports.SaveReport(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": saved})
}

// GetSummary returns the dashboard roll-up for a date range: either an
// explicit startDate/endDate pair or the last N days (default 7).
func (h *HTTPHandler) GetSummary(c *gin.Context) {
	today := models.DayOf(time.Now())
	startDay := c.Query("startDate")
	endDay := c.Query("endDate")

	if startDay == "" || endDay == "" {
		days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		endDay = today
		startDay = models.DayOf(time.Now().AddDate(0, 0, -days))
	} else {
		for _, d := range []string{startDay, endDay} {
			if _, err := time.Parse(models.DayLayout, d); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": h.reports.Summarize(startDay, endDay, today)})
}

// ListGames returns the game catalog.
func (h *HTTPHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "games": h.games.ListGames()})
}

// AddGame inserts or replaces a game catalog entry.
func (h *HTTPHandler) AddGame(c *gin.Context) {
	var req models.Game
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.games.AddGame(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "game": req})
}

// ImportGamesCSV bulk-loads the game catalog from an uploaded CSV file.
func (h *HTTPHandler) ImportGamesCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("gamesCSV")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "error retrieving file"})
		return
	}
	defer file.Close()

	imported, err := h.games.ImportCSV(file)
	if err != nil {
		logger.Infof("Error reading games CSV: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error reading CSV", "imported": imported})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imported": imported})
}

// ListDeposits returns deposits in a date range, defaulting to the last
// seven days.
func (h *HTTPHandler) ListDeposits(c *gin.Context) {
	startDay := c.Query("startDate")
	endDay := c.Query("endDate")
	if startDay == "" || endDay == "" {
		endDay = models.DayOf(time.Now())
		startDay = models.DayOf(time.Now().AddDate(0, 0, -7))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deposits": h.reports.DepositsInRange(startDay, endDay)})
}

// AddDeposit records a bank deposit.
func (h *HTTPHandler) AddDeposit(c *gin.Context) {
	var req models.Deposit
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	saved, err := h.reports.AddDeposit(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "deposit": saved})
}
