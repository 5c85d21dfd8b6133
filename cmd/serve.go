package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festival-sync/core/config"
	"festival-sync/core/database"
	"festival-sync/core/loader"
	"festival-sync/core/logger"
	"festival-sync/core/middleware/auth"
	"festival-sync/core/middleware/rayid"
	"festival-sync/feature/festival"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read API server",
	Long:  `Starts the HTTP server exposing festivals, artists and sync runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Middleware: RayID first so everything downstream is traceable.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			logger.WithRayID(logg, c).Info("request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		})

		// API key auth (disabled when no key is configured).
		app.Use(auth.New(cfg.Server.ApiKey))

		// 5. Register Features
		mgr := loader.NewManager()
		mgr.Register(festival.NewFeature(db, logg))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 6. Start server with graceful shutdown
		go func() {
			logg.Info("Server listening", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server stopped", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logg.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logg.Error("Shutdown failed", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
