package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/config"
	"github.com/iwvelando/poder-adquisitivo/internal/dataset"
	"github.com/iwvelando/poder-adquisitivo/internal/logging"
	"github.com/iwvelando/poder-adquisitivo/internal/navigation"
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/iwvelando/poder-adquisitivo/pkg/output"
	"github.com/iwvelando/poder-adquisitivo/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// loadConfiguration reads path. The default file is optional; an explicitly
// named one must exist.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadConfiguration(path)
}

// selectCalculator resolves the calculator to run and its sample inputs,
// either by entering a menu section or from a variant name.
func selectCalculator(sectionID, variantName string, set map[string]bool) (compare.Variant, compare.Input, error) {
	if set["section"] {
		if set["variant"] {
			return "", compare.Input{}, errors.New("-section and -variant cannot be combined")
		}
		state, err := navigation.Home().Select(sectionID)
		if err != nil {
			return "", compare.Input{}, err
		}
		section, ok := state.Section()
		if !ok {
			return "", compare.Input{}, fmt.Errorf("section %q does not run a calculator", sectionID)
		}
		return section.Variant, section.Defaults, nil
	}

	variant, err := compare.ParseVariant(variantName)
	if err != nil {
		return "", compare.Input{}, err
	}
	var input compare.Input
	if section, ok := navigation.ForVariant(variant); ok {
		input = section.Defaults
	}
	return variant, input, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("poder-adquisitivo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	variantFlag := flags.String("variant", string(compare.PurchasingPower), "calculator to run")
	sectionID := flags.String("section", "", "menu section to run, as listed by -sections")
	basePeriod := flags.String("base", "", "base or purchase period (YYYY-MM)")
	baseAmount := flags.Float64("base-amount", 0, "salary in the base period")
	currentAmount := flags.Float64("current-amount", 0, "current salary")
	dollars := flags.Float64("dollars", 0, "dollars bought in the purchase period")
	market := flags.String("market", "", "exchange-rate market override: blue, official")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	listSections := flags.Bool("sections", false, "list the available calculators and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *listSections {
		if err := output.Sections(stdout, navigation.Sections()); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	conf, err := loadConfiguration(*configLocation, set["config"])
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return 1
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return 1
	}
	if err := validation.ValidateMarket(*market); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return 1
	}

	warnings, err := conf.Validate()
	if err != nil {
		logger.Error("invalid configuration", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
	}

	variant, input, err := selectCalculator(*sectionID, *variantFlag, set)
	if err != nil {
		logger.Error("unknown calculator", zap.String("op", "main"), zap.Error(err))
		return 1
	}

	// Unset flags fall back to the section's sample values.
	if set["base"] {
		input.BasePeriod = *basePeriod
	}
	if set["base-amount"] {
		input.BaseAmount = *baseAmount
	}
	if set["current-amount"] {
		input.CurrentAmount = *currentAmount
	}
	if set["dollars"] {
		input.Dollars = *dollars
	}
	if set["market"] {
		input.Market = *market
	}

	req, err := input.Request(variant)
	if err != nil {
		logger.Error("failed to build request", zap.String("op", "main"), zap.Error(err))
		return 1
	}

	opener, err := dataset.NewOpener(ctx, conf)
	if err != nil {
		logger.Error("failed to prepare dataset sources", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	store, err := dataset.Load(ctx, logger, opener, dataset.SpecsFromConfig(conf))
	if err != nil {
		logger.Error("failed to load datasets", zap.String("op", "main"), zap.Error(err))
		return 1
	}

	bounds := series.Bounds{Min: conf.Periods.Min, Max: conf.Periods.Max}
	comparator := compare.NewComparator(logger, store.Datasets(), bounds)
	result, err := comparator.Compare(req)
	if err != nil {
		if msg, ok := output.ErrorMessage(err, bounds); ok {
			fmt.Fprintln(stderr, msg)
		} else {
			fmt.Fprintf(stderr, "No se pudo calcular: %v\n", err)
		}
		return 1
	}

	if err := output.Write(stdout, outputFormat, result); err != nil {
		logger.Error("failed to write output", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	return 0
}
