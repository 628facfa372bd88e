package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/poder-adquisitivo/internal/config"
	"github.com/iwvelando/poder-adquisitivo/internal/logging"
	"github.com/iwvelando/poder-adquisitivo/internal/prepare"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("prepare-dataset", flag.ContinueOnError)
	flags.SetOutput(stderr)
	formatName := flags.String("format", constants.MarketBlue, "raw export format: blue, official")
	input := flags.String("input", "", "raw daily export (default stdin)")
	outputPath := flags.String("output", "", "monthly CSV destination (default stdout)")
	startYear := flags.Int("start-year", constants.DefaultPrepareStartYear, "first year to keep")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger, err := logging.New(config.LoggingConfig{Format: "console"}, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	f, err := prepare.FormatByName(*formatName)
	if err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return 1
	}

	var r io.Reader = stdin
	if *input != "" {
		file, err := os.Open(*input)
		if err != nil {
			logger.Error("failed to open input", zap.String("op", "main"), zap.Error(err))
			return 1
		}
		defer func() {
			_ = file.Close()
		}()
		r = file
	}

	records, stats, err := prepare.Monthly(logger, r, f, prepare.Options{StartYear: *startYear})
	if err != nil {
		logger.Error("failed to aggregate export", zap.String("op", "main"), zap.Error(err))
		return 1
	}

	var w io.Writer = stdout
	if *outputPath != "" {
		file, err := os.Create(*outputPath)
		if err != nil {
			logger.Error("failed to create output", zap.String("op", "main"), zap.Error(err))
			return 1
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				logger.Warn("failed to close output", zap.String("op", "main"), zap.Error(closeErr))
			}
		}()
		w = file
	}

	if err := prepare.Write(w, f.OutputColumn, records); err != nil {
		logger.Error("failed to write monthly CSV", zap.String("op", "main"), zap.Error(err))
		return 1
	}

	logger.Info("prepared monthly dataset",
		zap.String("op", "main"),
		zap.String("format", f.Name),
		zap.Int("rows", stats.Rows),
		zap.Int("months", stats.Months),
		zap.Int("badDate", stats.BadDate),
		zap.Int("badValue", stats.BadValue),
		zap.Int("beforeStart", stats.BeforeStart),
	)
	return 0
}
