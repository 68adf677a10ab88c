package main

import (
	"context"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/emandor/lemme_relay/internal/cache"
	"github.com/emandor/lemme_relay/internal/config"
	"github.com/emandor/lemme_relay/internal/middleware"
	"github.com/emandor/lemme_relay/internal/providers"
	"github.com/emandor/lemme_relay/internal/relay"
	"github.com/emandor/lemme_relay/internal/telemetry"
	"github.com/emandor/lemme_relay/internal/ws"
)

func main() {
	cfg := config.Load()

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	if err := cfg.Validate(providers.Known); err != nil {
		tlog.Fatal().Err(err).Msg("invalid_config")
	}
	tlog.Info().Str("port", cfg.AppPort).Strs("providers", cfg.EnabledProviders).Msg("booting lemme_relay")

	registry := providers.Registry(cfg)
	for _, p := range registry {
		// a missing key is not fatal, the upstream rejects the call instead
		if p.Key == "" && slices.Contains(cfg.EnabledProviders, string(p.Name)) {
			tlog.Warn().Str("provider", string(p.Name)).Msg("provider_credential_missing")
		}
	}

	caller := providers.NewCaller(registry,
		providers.WithRateLimit(cfg.ProviderRPS),
		providers.WithDryRun(cfg.DryRun),
	)
	svc := relay.NewService(caller, cfg.EnabledProviders)
	rh := relay.NewHandler(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: cfg.AppEnv != "dev",
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.RequestLog())
	if cfg.SecureHeaders {
		app.Use(middleware.SecureHeaders())
	}
	if cfg.RateLimitMax > 0 {
		var storage fiber.Storage
		if cfg.RedisAddr != "" {
			s := cache.NewStorage(cache.MustConnect(cfg.RedisAddr, cfg.RedisDB), "lemme_relay:")
			defer s.Close()
			storage = s
		}
		app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, storage))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/", rh.Ask)
	app.Get("/providers", rh.ListProviders)
	app.Get("/ws", middleware.WSUpgrade(), websocket.New(ws.Handle(svc)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(":" + cfg.AppPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		tlog.Info().Int64("ws_active", ws.Active()).Msg("shutting_down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		tlog.Error().Err(err).Msg("server_stopped")
	}
}
