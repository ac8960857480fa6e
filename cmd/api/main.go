package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/api/server"
	"github.com/chainfolio/price-indexer/internal/config"
	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/engine"
	"github.com/chainfolio/price-indexer/internal/logger"
	"github.com/chainfolio/price-indexer/internal/lp"
	"github.com/chainfolio/price-indexer/internal/multicall"
	"github.com/chainfolio/price-indexer/internal/providers/pricesource"
	"github.com/chainfolio/price-indexer/internal/ratelimit"
	"github.com/chainfolio/price-indexer/internal/redirect"
	"github.com/chainfolio/price-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "price-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting price API")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Connect to the cache store
	kvClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = kvClient.Close() }()
	lpClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.ClassificationDB)
	defer func() { _ = lpClient.Close() }()

	dataStore := store.NewRedisStore(kvClient, lpClient, jsonAdapter, clock)
	if err := dataStore.Ping(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to cache store", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to cache store", zap.String("addr", cfg.Redis.Addr))

	// Build per-chain multicall clients
	endpoints := make(map[domain.ChainID]multicall.Endpoint, len(cfg.Chains))
	for id, chain := range cfg.Chains {
		endpoints[domain.ChainID(id)] = multicall.Endpoint{
			RPCURL:    chain.RPCURL,
			Multicall: chain.Multicall,
		}
	}
	factory := multicall.NewClientFactory(adapter.NewEthClientDialer(), endpoints, cfg.Engine.CallTimeout)
	defer factory.Close()

	// Load the redirect table
	resolver := redirect.NewResolver(nil)
	if cfg.Engine.RedirectPath != "" {
		resolver, err = redirect.LoadTable(adapter.NewFileSystem(), cfg.Engine.RedirectPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load redirect table",
				zap.Error(err), zap.String("path", cfg.Engine.RedirectPath))
		}
		logger.InfoCtx(ctx, "Loaded redirect table", zap.String("path", cfg.Engine.RedirectPath))
	} else {
		logger.WarnCtx(ctx, "Redirect table not configured, all tokens priced directly")
	}

	// Throttle outbound provider calls when limits are configured
	var limiter ratelimit.Limiter
	if len(cfg.RateLimit.Providers) > 0 {
		limiter, err = ratelimit.NewLimiter(
			cfg.RateLimit,
			adapter.NewRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
			clock,
		)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
		}
		defer func() { _ = limiter.Close() }()
	}

	// Create the external price source client
	priceSource := pricesource.NewClient(
		adapter.NewHTTPClient(cfg.PriceSource.Timeout),
		cfg.PriceSource.URL,
		jsonAdapter,
		limiter,
	)

	// Create the pricing engine
	eng := engine.NewEngine(engine.Config{
		Chains:          config.ChainIDs(cfg.Chains),
		Resolver:        resolver,
		Store:           dataStore,
		Decomposer:      lp.NewDecomposer(factory, dataStore),
		PriceSource:     priceSource,
		Clock:           clock,
		WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
		WorkerQueueSize: cfg.Worker.WorkerQueueSize,
	})
	defer eng.Close()

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, eng, dataStore)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight deferred cache writes settle before closing the pool
	eng.WaitForWrites()

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Price API stopped")
}
