package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"vidnote/client/config"
	_ "vidnote/client/docs"
	"vidnote/client/handlers"
	"vidnote/client/internal/remoteapi"
	"vidnote/client/internal/store"
	"vidnote/client/internal/transcache"
	"vidnote/client/middleware"
)

// @title vidnote client API
// @version 1.0
// @description Video note-taking client: submits URLs to the remote video service and serves the video/notes state to the views.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	config.InitLogger()
	log := config.Log

	cache, err := transcache.Open(cfg.TranscriptCachePath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open transcript cache")
	}

	remote := remoteapi.New(cfg.APIBaseURL, cfg.RequestTimeout, log)
	videoStore := store.New(remote, cache, log)

	// Initial load, same as the dashboard mounting. Failure is not fatal:
	// the views serve an empty collection until a refresh succeeds.
	if err := videoStore.FetchAll(context.Background()); err != nil {
		log.WithError(err).Warn("Initial video fetch failed, starting with empty collection")
	}

	h := handlers.NewApplicationHandler(videoStore, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "vidnote client is healthy",
		})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	apiV1 := app.Group("/api/v1")

	apiV1.Get("/videos", h.ListVideos)
	apiV1.Post("/videos", h.AddVideo)
	apiV1.Get("/videos/:id", h.GetVideo)
	apiV1.Delete("/videos/:id", h.DeleteVideo)
	apiV1.Post("/videos/:id/tags", h.UpdateVideoTags)

	apiV1.Put("/videos/:id/notes", h.SaveNotes)
	apiV1.Get("/videos/:id/notes", h.GetNotes)

	apiV1.Get("/videos/:id/transcript", h.GetTranscript)
	apiV1.Put("/videos/:id/transcript", h.SaveTranscript)

	apiV1.Get("/tags", h.ListTags)

	apiV1.Get("/selection", h.GetSelection)
	apiV1.Put("/selection", h.SetSelection)
	apiV1.Delete("/selection", h.ClearSelection)

	// Shut down on SIGINT/SIGTERM so the transcript cache is flushed.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("HTTP shutdown failed")
		}
	}()

	log.Infof("Starting vidnote client on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.WithError(err).Error("HTTP server stopped")
	}

	if err := videoStore.Close(); err != nil {
		log.WithError(err).Error("Failed to close store")
	}
}
