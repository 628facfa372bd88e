// Package constants provides shared constants for the poder-adquisitivo application.
package constants

// DateTimeLayout is the period format used by every dataset, request and
// output ("YYYY-MM").
const DateTimeLayout = "2006-01"

// Locale is the language tag used for number formatting.
const Locale = "es-AR"

// Supported period range (inclusive) of the bundled datasets.
const (
	// MinPeriod is the earliest base period a calculation accepts.
	MinPeriod = "2009-01"

	// MaxPeriod is the latest base period a calculation accepts.
	MaxPeriod = "2025-06"
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DisplayDecimals is the default number of decimals shown for a metric
	DisplayDecimals = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Exchange-rate markets.
const (
	// MarketBlue selects the parallel ("blue") exchange-rate series
	MarketBlue = "blue"

	// MarketOfficial selects the official exchange-rate series
	MarketOfficial = "official"
)

// Dataset names as used in configuration and the HTTP API.
const (
	DatasetInflation    = "inflation"
	DatasetOfficialRate = "officialRate"
	DatasetBlueRate     = "blueRate"
	DatasetFare         = "fare"
)

// Default dataset locations and columns, matching the published CSV files.
const (
	DefaultDatasetDir         = "datasets"
	DefaultPeriodColumn       = "mes"
	DefaultInflationFile      = "inflacion_mensual.csv"
	DefaultInflationColumn    = "inflacion"
	DefaultOfficialRateFile   = "dolar_oficial/dolar_oficial_promedio_mensual.csv"
	DefaultOfficialRateColumn = "dolar"
	DefaultBlueRateFile       = "dolar_blue/dolar_blue_avg_mensual.csv"
	DefaultBlueRateColumn     = "dolar_blue"
	DefaultFareFile           = "precio_boleto.csv"
	DefaultFareColumn         = "boleto"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "PODER"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultHTTPTimeoutSeconds is the default timeout for remote dataset fetches
	DefaultHTTPTimeoutSeconds = 30

	// DefaultPrepareStartYear is the first year kept by the dataset preparation tool
	DefaultPrepareStartYear = 2009
)
