package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rolegate/internal/app/registry"
	"rolegate/internal/domain/entity"
	"rolegate/internal/infrastructure/configloader"
	"rolegate/internal/infrastructure/restapi"
	"rolegate/internal/pkg/logger"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the YAML configuration file")
	ip := flag.String("ip", "", "override the configured listen address's host")
	port := flag.String("port", "", "override the configured listen address's port")
	logLevel := flag.String("log", "", "override the configured log level (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tempZapLogger, errTempLog := zap.NewDevelopment()
	if errTempLog != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize temporary zap logger: %v\n", errTempLog)
		os.Exit(1)
	}

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		tempZapLogger.Fatal("failed to load configuration", zap.String("file", *configPath), zap.Error(err))
	}

	if *ip != "" || *port != "" {
		cfg.Server.Address = overrideAddress(cfg.Server.Address, *ip, *port)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	zapLogger, errLog := zap.NewProduction()
	if errLog != nil {
		tempZapLogger.Fatal("failed to initialize zap logger", zap.Error(errLog))
	}
	defer zapLogger.Sync()

	slogHandlerOptions := slogzap.Option{
		Level:  parseSlogLevel(cfg.Logging.Level),
		Logger: zapLogger,
	}
	stdSlogLogger := slog.New(slogHandlerOptions.NewZapHandler())
	slog.SetDefault(stdSlogLogger)
	logger.InitSlog(cfg.Logging.Level)

	logger.Info("rolegate starting up")
	logger.Info("configuration loaded", "file", *configPath)

	appLogger := logger.NewSlogAdapter()

	chainTags := configloader.ChainTags(cfg)
	if len(chainTags) == 0 {
		logger.Fatal("no chains configured", "field", "chains")
	}

	chains := make([]entity.Chain, 0, len(chainTags))
	for _, tag := range chainTags {
		chains = append(chains, entity.Chain(tag))
	}

	reg, err := registry.New(ctx, registry.Options{
		Chains:            chains,
		IndexerBaseURL:    cfg.Indexer.BaseURL,
		RPCCallsPerSecond: cfg.Performance.RPCCallsPerSecond,
	})
	if err != nil {
		logger.Fatal("failed to build chain registry", "error", err)
	}
	logger.Info("chain registry initialized", "chains", chainTags)

	handler := restapi.NewHandler(reg, appLogger)
	router := restapi.SetupRouter(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.RequestBudget,
	}

	go func() {
		logger.Info("starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	logger.Info("rolegate is running, press Ctrl+C to stop")

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("shutdown signal received, stopping HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped cleanly")
	}

	cancel()
	logger.Info("rolegate stopped")
}

func parseSlogLevel(level string) slog.Level {
	switch level {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "warn":
		return slog.LevelWarn
	case "ERROR", "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// overrideAddress replaces the host and/or port of addr (":8080" style or
// "host:port" style) with whichever of ip/port was supplied on the command
// line, leaving the other half as configured.
func overrideAddress(addr, ip, port string) string {
	host, p, err := splitHostPort(addr)
	if err != nil {
		host, p = "", ""
	}
	if ip != "" {
		host = ip
	}
	if port != "" {
		p = port
	}
	return fmt.Sprintf("%s:%s", host, p)
}

func splitHostPort(addr string) (string, string, error) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("no port in address %q", addr)
}
