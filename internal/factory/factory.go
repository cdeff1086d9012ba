package factory

import (
	"io"
	"log/slog"

	"github.com/pelletion/battlereq/internal/dependencies/clock"
	"github.com/pelletion/battlereq/internal/dependencies/random"
	"github.com/pelletion/battlereq/internal/notify"
	"github.com/pelletion/battlereq/internal/services/auth"
	"github.com/pelletion/battlereq/internal/services/availability"
	"github.com/pelletion/battlereq/internal/services/booking"
	"github.com/pelletion/battlereq/internal/storage"
	"github.com/pelletion/battlereq/internal/storage/memory"
	"github.com/pelletion/battlereq/internal/twitch"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Notifier notify.Notifier

	// Services
	AvailabilityService *availability.Service
	BookingController   *booking.Controller
	AuthService         *auth.Service
	TwitchClient        *twitch.Client
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Notifier overrides the email notifier (optional)
	// If nil, one is built from NotifyConfig — a Resend mailer when an
	// API key is present, a log-only notifier otherwise
	Notifier notify.Notifier
	// NotifyConfig holds email settings (used when Notifier is nil)
	NotifyConfig notify.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// TwitchConfig holds Twitch API credentials (optional; the proxy
	// endpoints fail upstream when unset)
	TwitchConfig twitch.Config
	// Slots overrides the bookable time slots (optional)
	Slots []string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	notifier := cfg.Notifier
	if notifier == nil {
		if cfg.NotifyConfig.APIKey != "" {
			mailer, err := notify.NewMailer(cfg.NotifyConfig)
			if err != nil {
				return nil, err
			}
			notifier = mailer
		} else {
			logger.Warn("no email API key configured; notifications will only be logged")
			notifier = notify.NewLogNotifier(logger)
		}
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	store := memory.New(clk, rnd)

	return newWithDependencies(store, clk, rnd, notifier, authCfg, cfg.TwitchConfig, cfg.Slots, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	notifier notify.Notifier,
	authCfg auth.Config,
	twitchCfg twitch.Config,
	slots []string,
	logger *slog.Logger,
) *App {
	availabilityService := availability.New(store, slots)
	bookingController := booking.NewController(store, notifier, logger)
	authService := auth.New(store, clk, authCfg)
	twitchClient := twitch.New(twitchCfg)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		Notifier:            notifier,
		AvailabilityService: availabilityService,
		BookingController:   bookingController,
		AuthService:         authService,
		TwitchClient:        twitchClient,
	}
}
