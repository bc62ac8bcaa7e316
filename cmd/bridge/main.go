// Package main is the entry point for the USD to USDT bridge server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fd1az/usdt-bridge/api"
	"github.com/fd1az/usdt-bridge/api/handlers"
	"github.com/fd1az/usdt-bridge/business/blockchain"
	blockchainDI "github.com/fd1az/usdt-bridge/business/blockchain/di"
	"github.com/fd1az/usdt-bridge/business/bridge"
	bridgeDI "github.com/fd1az/usdt-bridge/business/bridge/di"
	"github.com/fd1az/usdt-bridge/business/pricing"
	"github.com/fd1az/usdt-bridge/internal/apm"
	"github.com/fd1az/usdt-bridge/internal/config"
	"github.com/fd1az/usdt-bridge/internal/health"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/metrics"
	"github.com/fd1az/usdt-bridge/internal/monolith"
	"github.com/fd1az/usdt-bridge/internal/ratelimit"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("usdt-bridge %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting usdt bridge",
		"version", version,
		"environment", cfg.App.Environment,
	)

	if cfg.Telemetry.Enabled {
		traceProvider := apm.NewTraceProvider(log, apm.TraceConfig{
			Provider:    apm.Provider(cfg.Telemetry.TraceProvider),
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Headers:     cfg.Telemetry.OTLPHeaders,
		})
		defer traceProvider.Stop()

		meterProvider, err := metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to init metrics: %w", err)
		}
		defer meterProvider.Shutdown(context.Background())

		promServer := metrics.NewPrometheusServer(cfg.Telemetry.PrometheusPort)
		go func() {
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "prometheus server failed", "error", err)
			}
		}()
		defer promServer.Close()
		log.Info(ctx, "prometheus metrics server started", "port", cfg.Telemetry.PrometheusPort)
	}

	// Create monolith (application container)
	mono, err := monolith.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	bridgeModule := &bridge.Module{}

	// Define modules in dependency order
	modules := []monolith.Module{
		&blockchain.Module{}, // node gateway and signer
		&pricing.Module{},    // quotes, reads through the node
		bridgeModule,         // pipeline, depends on both
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	services := mono.Services()

	healthServer := health.NewServer(cfg.Server.HealthPort, version, log)
	healthServer.RegisterCheck("ethereum_rpc", health.ErrorCheck(func(ctx context.Context) error {
		_, err := blockchainDI.GetNode(services).BlockNumber(ctx)
		return err
	}))
	healthServer.RegisterCheck("record_store", health.ErrorCheck(bridgeModule.StoreCheck))
	healthServer.Start()
	defer healthServer.Stop(context.Background())
	log.Info(ctx, "health server started", "port", cfg.Server.HealthPort)

	svc := bridgeDI.GetBridgeService(services)
	router := api.NewRouter(api.Handlers{
		Bridge: handlers.NewBridgeHandler(svc, svc.Reporter(), log),
		Events: handlers.NewEventsHandler(bridgeDI.GetHub(services), svc.Reporter(), log),
	}, ratelimit.New(cfg.Server.RateLimitPerMin))

	return api.Serve(ctx, ":"+strconv.Itoa(cfg.Server.Port), router, cfg.Server.ShutdownTimeout, log)
}
