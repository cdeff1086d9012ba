package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pelletion/battlereq/internal/api"
	"github.com/pelletion/battlereq/internal/factory"
	"github.com/pelletion/battlereq/internal/notify"
	"github.com/pelletion/battlereq/internal/twitch"
)

func main() {
	// Local development config from .env; absence is fine
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	notifyCfg := notify.DefaultConfig()
	notifyCfg.APIKey = os.Getenv("RESEND_API_KEY")
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		notifyCfg.AdminEmail = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		notifyCfg.BaseURL = v
	}
	if v := os.Getenv("TWITCH_CHANNEL"); v != "" {
		notifyCfg.Channel = v
	}
	notifyCfg.TestMode = os.Getenv("EMAIL_PRODUCTION") != "true"

	cfg := factory.Config{
		Logger:       logger,
		NotifyConfig: notifyCfg,
		TwitchConfig: twitch.Config{
			ClientID:     os.Getenv("TWITCH_CLIENT_ID"),
			ClientSecret: os.Getenv("TWITCH_CLIENT_SECRET"),
			Channel:      notifyCfg.Channel,
		},
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		BookingController:   app.BookingController,
		AvailabilityService: app.AvailabilityService,
		TwitchClient:        app.TwitchClient,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", portStr))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
