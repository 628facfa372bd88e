package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test config",
			configPath: "../../test/test_config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	conf := Default()

	if conf.Periods.Min != constants.MinPeriod || conf.Periods.Max != constants.MaxPeriod {
		t.Errorf("default periods = %+v, expected %s..%s", conf.Periods, constants.MinPeriod, constants.MaxPeriod)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("default output format = %s, expected pretty", conf.Output.Format)
	}
	if conf.Datasets.Inflation.Source != constants.DefaultInflationFile {
		t.Errorf("default inflation source = %s", conf.Datasets.Inflation.Source)
	}
	if conf.Datasets.BlueRate.ValueColumn != constants.DefaultBlueRateColumn {
		t.Errorf("default blue rate column = %s", conf.Datasets.BlueRate.ValueColumn)
	}
	if conf.Datasets.Fare.PeriodColumn != constants.DefaultPeriodColumn {
		t.Errorf("default fare period column = %s", conf.Datasets.Fare.PeriodColumn)
	}
	if conf.HTTP.Timeout != constants.DefaultHTTPTimeoutSeconds {
		t.Errorf("default http timeout = %d", conf.HTTP.Timeout)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("default server address = %s", conf.Server.Address)
	}
	if len(conf.Server.AllowedOrigins) != 1 || conf.Server.AllowedOrigins[0] != "*" {
		t.Errorf("default allowed origins = %v", conf.Server.AllowedOrigins)
	}

	warnings, err := conf.Validate()
	if err != nil {
		t.Fatalf("Validate() on defaults error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Validate() on defaults warnings = %v", warnings)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `
logging:
  level: debug
output:
  format: json
periods:
  min: "2015-01"
  max: "2024-12"
datasets:
  dir: /srv/data
  inflation:
    source: https://example.com/inflacion.csv
    valueColumn: ipc
  fare:
    source: ""
server:
  address: 127.0.0.1:9000
  maxBodySize: 1M
  allowedOrigins:
    - https://example.com
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Logging.Level != "debug" {
		t.Errorf("logging level = %s, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "json" {
		t.Errorf("output format = %s, expected json", conf.Output.Format)
	}
	if conf.Periods.Min != "2015-01" || conf.Periods.Max != "2024-12" {
		t.Errorf("periods = %+v", conf.Periods)
	}
	if conf.Datasets.Inflation.ValueColumn != "ipc" {
		t.Errorf("inflation value column = %s, expected ipc", conf.Datasets.Inflation.ValueColumn)
	}
	if conf.Datasets.Inflation.PeriodColumn != constants.DefaultPeriodColumn {
		t.Errorf("inflation period column = %s, expected default", conf.Datasets.Inflation.PeriodColumn)
	}
	if conf.Datasets.BlueRate.Source != constants.DefaultBlueRateFile {
		t.Errorf("blue rate source = %s, expected default", conf.Datasets.BlueRate.Source)
	}
	if conf.Server.MaxBodySize != "1M" {
		t.Errorf("server max body size = %s", conf.Server.MaxBodySize)
	}
	if len(conf.Server.AllowedOrigins) != 1 || conf.Server.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("allowed origins = %v", conf.Server.AllowedOrigins)
	}

	warnings, err := conf.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "fare") {
		t.Errorf("Validate() warnings = %v, expected one about fare", warnings)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("PODER_SERVER_ADDRESS", ":9999")
	t.Setenv("PODER_S3_SECRETKEY", "shh")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  address: :8081\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Server.Address != ":9999" {
		t.Errorf("server address = %s, expected env override :9999", conf.Server.Address)
	}
	if conf.S3.SecretKey != "shh" {
		t.Errorf("s3 secret key not read from environment")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"Inverted periods", func(c *Configuration) { c.Periods.Min, c.Periods.Max = "2025-01", "2020-01" }},
		{"Malformed period", func(c *Configuration) { c.Periods.Min = "2020/01" }},
		{"Unknown output format", func(c *Configuration) { c.Output.Format = "xml" }},
		{"Missing value column", func(c *Configuration) { c.Datasets.Fare.ValueColumn = "" }},
		{"Same column twice", func(c *Configuration) { c.Datasets.Inflation.ValueColumn = c.Datasets.Inflation.PeriodColumn }},
		{"Negative timeout", func(c *Configuration) { c.HTTP.Timeout = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(conf)
			if _, err := conf.Validate(); err == nil {
				t.Errorf("Validate() expected error but got none")
			}
		})
	}
}

func TestResolveSource(t *testing.T) {
	conf := Default()
	conf.Datasets.Dir = "public/datasets"

	tests := []struct {
		source string
		want   string
	}{
		{"inflacion_mensual.csv", "public/datasets/inflacion_mensual.csv"},
		{"dolar_blue/dolar_blue_avg_mensual.csv", "public/datasets/dolar_blue/dolar_blue_avg_mensual.csv"},
		{"/data/boleto.csv", "/data/boleto.csv"},
		{"https://example.com/a.csv", "https://example.com/a.csv"},
		{"s3://bucket/a.csv", "s3://bucket/a.csv"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := conf.ResolveSource(DatasetConfig{Source: tt.source}); got != tt.want {
				t.Errorf("ResolveSource(%q) = %q, expected %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestNamedDatasets(t *testing.T) {
	named := Default().Datasets.Named()
	if len(named) != 4 {
		t.Fatalf("Named() returned %d datasets, expected 4", len(named))
	}
	if named[constants.DatasetOfficialRate].ValueColumn != constants.DefaultOfficialRateColumn {
		t.Errorf("officialRate value column = %s", named[constants.DatasetOfficialRate].ValueColumn)
	}
}
