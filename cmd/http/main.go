package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/nabeelkm/scrawl/internal/domain"
	"github.com/nabeelkm/scrawl/internal/infrastructure/configs"
	"github.com/nabeelkm/scrawl/internal/infrastructure/ratelimiter"
	"github.com/nabeelkm/scrawl/internal/infrastructure/repository"
	"github.com/nabeelkm/scrawl/internal/infrastructure/tracing"
	"github.com/nabeelkm/scrawl/internal/infrastructure/ws"
	"github.com/nabeelkm/scrawl/internal/presentation/api"
	"github.com/nabeelkm/scrawl/internal/presentation/handler/health"
	"github.com/nabeelkm/scrawl/internal/presentation/handler/rooms"
	"go.uber.org/zap"
)

const (
	serviceName = "scrawl-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	registry := repository.NewRoomRegistry(cfg.RoomStore.Capacity, cfg.RoomStore.IdleExpiry)
	words := domain.NewWordList(cfg.Game.Words)

	core := ws.NewCore(registry, words, time.Duration(cfg.Game.RoundSeconds)*time.Second, logger)
	go core.Run()

	roomHandler := rooms.NewHandler(core, registry, logger)
	healthHandler := health.NewHandler()

	rl := ratelimiter.NewFixedWindowRateLimiter(cfg.RateLimiter.RequestsPerTimeFrame, cfg.RateLimiter.TimeFrame)
	defer rl.Close()

	app := api.NewApplication(*cfg, *roomHandler, *healthHandler, logger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
