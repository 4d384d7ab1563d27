package main

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"lotteryops/internal/handlers"
	"lotteryops/internal/services"
)

// Scan-day buckets older than this are purged by the janitor.
const retentionDays = 90

func main() {
	defer logger.Init("lotteryops", true, false, io.Discard).Close()

	// 1. Initialize the services
	gameService := services.NewGameService()
	ticketService := services.NewTicketService(gameService)
	reportService := services.NewReportService(ticketService)

	// 2. Initialize the HTTP handler
	httpHandler := handlers.NewHTTPHandler(ticketService, gameService, reportService)

	// 3. Set up the Gin router and register routes
	r := gin.Default()
	httpHandler.RegisterRoutes(r)

	// 4. Start the background janitor to drop scan days past retention
	go func() {
		for {
			time.Sleep(24 * time.Hour)
			ticketService.PurgeOlderThan(retentionDays, time.Now())
			logger.Infof("Performed purge of scan days older than %d days.", retentionDays)
		}
	}()

	// 5. Run the server
	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Server starting on http://localhost%s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
