package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/GODFREY-PNG/SALES-ANALYSIS-DASHBOARD/specs"
)

const configFilePath = "config.json"

// Config represents the runner's configuration structure.
type Config struct {
	RawCSV          string   `json:"raw-csv" mapstructure:"raw-csv"`
	ReportDir       string   `json:"report-dir" mapstructure:"report-dir"`
	DSN             string   `json:"dsn" mapstructure:"dsn"`
	AsOf            string   `json:"as-of" mapstructure:"as-of"`
	TierCount       int      `json:"tier-count" mapstructure:"tier-count"`
	NonProductCodes []string `json:"non-product-codes" mapstructure:"non-product-codes"`
	Granularities   []string `json:"granularities" mapstructure:"granularities"`
	LogLevel        string   `json:"log-level" mapstructure:"log-level"`
}

var requiredFields = []string{
	"raw-csv",
}

var knownFields = []string{
	"raw-csv",
	"report-dir",
	"dsn",
	"as-of",
	"tier-count",
	"non-product-codes",
	"granularities",
	"log-level",
}

// InitConfig reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file; only raw-csv
// is required, everything else has a working default.
func InitConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range knownFields {
		v.BindEnv(field)
	}

	v.SetDefault("report-dir", "reports")
	v.SetDefault("log-level", "info")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}

// PipelineConfigSpec maps the runner configuration onto the pipeline's own
// config contract. Zero values select the pipeline defaults.
func (c *Config) PipelineConfigSpec() specs.PipelineConfigSpec {
	return specs.PipelineConfigSpec{
		TierCount:            c.TierCount,
		NonProductStockCodes: c.NonProductCodes,
		Granularities:        c.Granularities,
	}
}
