package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wedding-eticket/controllers"
	"wedding-eticket/middleware"
	"wedding-eticket/sheets"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using system environment variables")
	}

	// The app keeps serving without the sheet backend: guest lookup and
	// RSVP degrade to 503 instead of crashing at startup.
	cfg := sheets.ConfigFromEnv()
	var client *sheets.Client
	if cfg.Configured() {
		c, err := sheets.NewClient(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("sheets client init failed, guest lookup and rsvp degraded")
		} else {
			client = c
		}
	} else {
		logger.Warn().Msg("GOOGLE_SHEET_ID or GUEST_SHEET_CREDENTIALS not set, live guest list disabled")
	}

	snapshot, err := sheets.LoadSnapshot()
	if err != nil {
		logger.Error().Err(err).Msg("guest snapshot unreadable, falling back to live lookups")
		snapshot = map[string]string{}
	}
	logger.Info().Int("guests", len(snapshot)).Msg("static guest snapshot loaded")

	directory := sheets.NewDirectory(client, cfg, snapshot, logger)
	store := sheets.NewRSVPStore(client, directory, logger)

	guestCtl := controllers.NewGuestController(directory, logger)
	rsvpCtl := controllers.NewRSVPController(store, cfg.GuestListSheet, logger)
	previewCtl := controllers.NewPreviewController(directory, controllers.PreviewConfigFromEnv(), logger)

	// Set up router
	router := gin.Default()
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/guest", guestCtl.Lookup)
		api.GET("/rsvp", rsvpCtl.Get)
		api.POST("/rsvp", rsvpCtl.Create)
		api.PATCH("/rsvp", rsvpCtl.Update)
	}

	// Site routes: crawlers get the Open Graph page, guests the real one.
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "public"
	}
	router.GET("/", previewCtl.Home(staticDir))
	router.GET("/index.html", previewCtl.Home(staticDir))
	router.Static("/css", filepath.Join(staticDir, "css"))
	router.Static("/js", filepath.Join(staticDir, "js"))
	router.Static("/images", filepath.Join(staticDir, "images"))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("server running")
	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
