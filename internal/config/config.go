package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported data backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendBigQuery  = "bigquery"
)

// EnvPrefix is prepended to every environment override, e.g.
// FINSIGHT_BIGQUERY_DATASET.
const EnvPrefix = "FINSIGHT"

// Config represents the application configuration
type Config struct {
	Backend   string          `mapstructure:"backend"`
	LogLevel  string          `mapstructure:"log_level"`
	PageSize  int32           `mapstructure:"page_size"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Anomaly   AnomalyConfig   `mapstructure:"anomaly"`
	Demo      DemoConfig      `mapstructure:"demo"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	BigQuery  BigQueryConfig  `mapstructure:"bigquery"`
}

// ForecastConfig holds forecast defaults
type ForecastConfig struct {
	Horizon int `mapstructure:"horizon"`
}

// AnomalyConfig holds anomaly detection defaults
type AnomalyConfig struct {
	LookbackDays int     `mapstructure:"lookback_days"`
	Sensitivity  float64 `mapstructure:"sensitivity"`
}

// DemoConfig controls the seeded in-memory backend.
type DemoConfig struct {
	UserID string `mapstructure:"user_id"`
	Seed   int64  `mapstructure:"seed"`
}

// FirestoreConfig selects the Firestore project
type FirestoreConfig struct {
	ProjectID string `mapstructure:"project_id"`
}

// BigQueryConfig selects the warehouse project and dataset
type BigQueryConfig struct {
	ProjectID string `mapstructure:"project_id"`
	Dataset   string `mapstructure:"dataset"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendMemory)
	v.SetDefault("log_level", "info")
	v.SetDefault("page_size", 500)
	v.SetDefault("forecast.horizon", 6)
	v.SetDefault("anomaly.lookback_days", 90)
	v.SetDefault("anomaly.sensitivity", 0.5)
	v.SetDefault("demo.user_id", "demo-user")
	v.SetDefault("demo.seed", 42)
	v.SetDefault("firestore.project_id", "")
	v.SetDefault("bigquery.project_id", "")
	v.SetDefault("bigquery.dataset", "finance")
}

// LoadConfig loads configuration from an optional file and FINSIGHT_*
// environment variables. An empty configPath uses defaults and environment
// only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendMemory:
	case BackendFirestore:
		if c.Firestore.ProjectID == "" {
			errs = append(errs, errors.New("firestore.project_id is required for the firestore backend"))
		}
	case BackendBigQuery:
		if c.BigQuery.ProjectID == "" || c.BigQuery.Dataset == "" {
			errs = append(errs, errors.New("bigquery.project_id and bigquery.dataset are required for the bigquery backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	if c.Forecast.Horizon < 0 {
		errs = append(errs, fmt.Errorf("forecast.horizon must not be negative, got %d", c.Forecast.Horizon))
	}
	if c.Anomaly.Sensitivity < 0 || c.Anomaly.Sensitivity > 1 {
		errs = append(errs, fmt.Errorf("anomaly.sensitivity must be within [0, 1], got %v", c.Anomaly.Sensitivity))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
