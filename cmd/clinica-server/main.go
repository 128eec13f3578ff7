package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinica/clinica/internal/config"
	"github.com/clinica/clinica/internal/domain/medico"
	"github.com/clinica/clinica/internal/domain/paciente"
	"github.com/clinica/clinica/internal/domain/turno"
	"github.com/clinica/clinica/internal/domain/usuario"
	"github.com/clinica/clinica/internal/platform/auth"
	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/middleware"
	"github.com/clinica/clinica/internal/platform/sandbox"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinica-server",
		Short: "Clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write demo data into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			adminEmail, _ := cmd.Flags().GetString("admin-email")
			adminPassword, _ := cmd.Flags().GetString("admin-password")

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store, err := jsonstore.New(cfg.DataDir, logger)
			if err != nil {
				return err
			}

			seedCfg := sandbox.DefaultSeedConfig()
			if adminEmail != "" {
				seedCfg.AdminEmail = adminEmail
			}
			seedCfg.AdminPassword = adminPassword

			if err := sandbox.Seed(context.Background(), store, seedCfg, cfg.BcryptCost); err != nil {
				return err
			}
			fmt.Printf("Demo data written to %s\n", cfg.DataDir)
			return nil
		},
	}
	cmd.Flags().String("admin-email", "", "Email for the seeded admin account")
	cmd.Flags().String("admin-password", "", "Password for the seeded admin account (skipped when empty)")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set; using empty signing secret (development only)")
	}

	// Storage
	store, err := jsonstore.New(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open data directory")
	}
	logger.Info().Str("dir", store.Dir()).Msg("data directory ready")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth services
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authn := auth.Middleware(tokens)
	adminOnly := auth.RequireAdmin()

	// API group with rate limiting
	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	// Auth routes
	usuarioSvc := usuario.NewService(usuario.NewRepository(store), tokens, cfg.BcryptCost)
	usuario.NewHandler(usuarioSvc).RegisterRoutes(api.Group("/auth"), authn)

	// Resource routes
	medico.NewHandler(medico.NewRepository(store)).RegisterRoutes(api.Group("/medicos"), authn, adminOnly)
	paciente.NewHandler(paciente.NewRepository(store)).RegisterRoutes(api.Group("/pacientes"))
	turno.NewHandler(turno.NewRepository(store)).RegisterRoutes(api.Group("/turnos"), authn)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Optional browser frontend
	if cfg.StaticDir != "" {
		e.Static("/static", cfg.StaticDir)
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
