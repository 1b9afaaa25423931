package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"pokemon-service/core/loader"
	"pokemon-service/core/logger"
	"pokemon-service/core/middleware/rayid"
	"pokemon-service/feature/cleaning"
	"pokemon-service/feature/integrity"
	"pokemon-service/feature/pokemon"
	"pokemon-service/feature/pokemon/lookup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "pokemon-service/docs/swagger"
)

// @title Pokemon Service API
// @version 1.0
// @description Queries over a cleaned pokemon dataset and ingestion from PokeAPI.
// @host localhost:8000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pokemon service",
	Long: `Cleans the dataset (unless server.clean_on_start is false), then starts
the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := setup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()
		logg := env.logger

		// 1. Clean before accepting traffic
		if env.cfg.Server.CleanOnStart {
			if _, err := cleaning.NewEngine(env.store, logg, env.archive).Clean(ctx); err != nil {
				return fmt.Errorf("startup cleaning failed: %w", err)
			}
		} else {
			logg.Info("Startup cleaning disabled")
		}

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request handled",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Register and load features
		mgr := loader.NewManager(logg)
		mgr.Register(pokemon.NewFeature(env.store, lookup.NewClient(env.cfg.Lookup), logg))
		mgr.Register(integrity.NewFeature(env.store, env.archive, logg))
		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 4. Serve until signalled
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", env.cfg.Server.Addr()))
			errCh <- app.Listen(env.cfg.Server.Addr())
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
