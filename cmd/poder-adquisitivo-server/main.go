package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/poder-adquisitivo/internal/config"
	"github.com/iwvelando/poder-adquisitivo/internal/dataset"
	"github.com/iwvelando/poder-adquisitivo/internal/logging"
	"github.com/iwvelando/poder-adquisitivo/internal/server"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf := config.Default()
	if _, err := os.Stat(*configLocation); err == nil || !errors.Is(err, fs.ErrNotExist) {
		loaded, err := config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			os.Exit(1)
		}
		conf = loaded
	}
	if *address != "" {
		conf.Server.Address = *address
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	warnings, err := conf.Validate()
	if err != nil {
		logger.Fatal("invalid configuration", zap.String("op", "main"), zap.Error(err))
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
	}

	srvCfg, err := server.NewConfig(conf)
	if err != nil {
		logger.Fatal("invalid server configuration", zap.String("op", "main"), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opener, err := dataset.NewOpener(ctx, conf)
	if err != nil {
		logger.Fatal("failed to prepare dataset sources", zap.String("op", "main"), zap.Error(err))
	}
	store, err := dataset.Load(ctx, logger, opener, dataset.SpecsFromConfig(conf))
	if err != nil {
		logger.Fatal("failed to load datasets", zap.String("op", "main"), zap.Error(err))
	}

	srv := server.New(logger, server.NewHandler(logger, conf, store, srvCfg), srvCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server stopped", zap.String("op", "main"), zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.String("op", "main"), zap.Error(err))
		}
	}
}
