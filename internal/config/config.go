// Package config defines the data structures related to configuration and
// includes functions for loading, defaulting and validating it.
package config

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/iwvelando/poder-adquisitivo/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the period format expected in config files, datasets and
// output.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for poder-adquisitivo.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Periods  PeriodsConfig  `yaml:"periods"`
	Datasets DatasetsConfig `yaml:"datasets"`
	S3       S3Config       `yaml:"s3,omitempty"`
	HTTP     HTTPConfig     `yaml:"http,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// PeriodsConfig is the inclusive range of base periods calculations accept.
type PeriodsConfig struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// DatasetConfig locates one CSV dataset. Source is a file path (relative to
// the datasets directory), an http(s) URL or an s3://bucket/key URI.
type DatasetConfig struct {
	Source       string `yaml:"source"`
	PeriodColumn string `yaml:"periodColumn,omitempty"`
	ValueColumn  string `yaml:"valueColumn"`
}

// DatasetsConfig holds the four datasets the calculators read.
type DatasetsConfig struct {
	Dir          string        `yaml:"dir,omitempty"`
	Inflation    DatasetConfig `yaml:"inflation"`
	OfficialRate DatasetConfig `yaml:"officialRate"`
	BlueRate     DatasetConfig `yaml:"blueRate"`
	Fare         DatasetConfig `yaml:"fare"`
}

// S3Config holds the object storage settings for s3:// dataset sources.
// Empty keys fall back to the default AWS credential chain.
type S3Config struct {
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// HTTPConfig holds the client settings for http(s) dataset sources.
type HTTPConfig struct {
	Timeout int `yaml:"timeout,omitempty"` // seconds
}

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Address        string   `yaml:"address,omitempty"`
	MaxBodySize    string   `yaml:"maxBodySize,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	Version        string   `yaml:"version,omitempty"`
}

// Named returns the datasets keyed by their API name.
func (d DatasetsConfig) Named() map[string]DatasetConfig {
	return map[string]DatasetConfig{
		constants.DatasetInflation:    d.Inflation,
		constants.DatasetOfficialRate: d.OfficialRate,
		constants.DatasetBlueRate:     d.BlueRate,
		constants.DatasetFare:         d.Fare,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with PODER_ override
// file values (PODER_SERVER_ADDRESS overrides server.address).
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", constants.OutputFormatPretty)

	v.SetDefault("periods.min", constants.MinPeriod)
	v.SetDefault("periods.max", constants.MaxPeriod)

	v.SetDefault("datasets.dir", constants.DefaultDatasetDir)
	defaults := []struct {
		key, file, column string
	}{
		{constants.DatasetInflation, constants.DefaultInflationFile, constants.DefaultInflationColumn},
		{constants.DatasetOfficialRate, constants.DefaultOfficialRateFile, constants.DefaultOfficialRateColumn},
		{constants.DatasetBlueRate, constants.DefaultBlueRateFile, constants.DefaultBlueRateColumn},
		{constants.DatasetFare, constants.DefaultFareFile, constants.DefaultFareColumn},
	}
	for _, d := range defaults {
		v.SetDefault("datasets."+d.key+".source", d.file)
		v.SetDefault("datasets."+d.key+".periodColumn", constants.DefaultPeriodColumn)
		v.SetDefault("datasets."+d.key+".valueColumn", d.column)
	}

	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.accessKey", "")
	v.SetDefault("s3.secretKey", "")

	v.SetDefault("http.timeout", constants.DefaultHTTPTimeoutSeconds)

	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("server.version", "dev")
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	// yaml:"-" keeps secrets out of exports, so read them explicitly.
	configuration.S3.AccessKey = v.GetString("s3.accessKey")
	configuration.S3.SecretKey = v.GetString("s3.secretKey")
	return &configuration, nil
}

// Validate checks the configuration. Errors make it unusable; warnings flag
// datasets whose calculators will not produce results.
func (c *Configuration) Validate() (warnings []string, err error) {
	if err := validation.ValidatePeriodBounds(c.Periods.Min, c.Periods.Max); err != nil {
		return nil, fmt.Errorf("periods: %w", err)
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	for _, name := range []string{
		constants.DatasetInflation,
		constants.DatasetOfficialRate,
		constants.DatasetBlueRate,
		constants.DatasetFare,
	} {
		d := c.Datasets.Named()[name]
		w, err := validation.ValidateDataset(name, d.Source, d.PeriodColumn, d.ValueColumn)
		if err != nil {
			return warnings, err
		}
		warnings = append(warnings, w...)
	}

	if c.HTTP.Timeout < 0 {
		return warnings, fmt.Errorf("http: timeout must not be negative, got %d", c.HTTP.Timeout)
	}
	return warnings, nil
}

// ResolveSource returns the location a dataset is read from: URLs and
// absolute paths are kept, relative paths are joined to the datasets dir.
func (c *Configuration) ResolveSource(d DatasetConfig) string {
	src := strings.TrimSpace(d.Source)
	if src == "" || strings.Contains(src, "://") || path.IsAbs(src) || c.Datasets.Dir == "" {
		return src
	}
	return path.Join(c.Datasets.Dir, src)
}
