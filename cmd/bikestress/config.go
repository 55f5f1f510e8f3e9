package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	bikestress "github.com/dustinmichels/bike-stress-model"
)

// Config is effective configuration of the CLI
type Config struct {
	Log     LogConfig                `yaml:"log" mapstructure:"log"`
	Scoring bikestress.ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Routing RoutingConfig            `yaml:"routing" mapstructure:"routing"`
	Metrics MetricsConfig            `yaml:"metrics" mapstructure:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// RoutingConfig configures router and batch router.
type RoutingConfig struct {
	Weight           string   `yaml:"weight" mapstructure:"weight"`
	Workers          int      `yaml:"workers" mapstructure:"workers"`
	RouteTimeoutSecs float64  `yaml:"route_timeout_secs" mapstructure:"route_timeout_secs"`
	Contraction      []string `yaml:"contraction" mapstructure:"contraction"`
}

// MetricsConfig configures Prometheus text file written after batch runs. Empty path disables it
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" mapstructure:"textfile_path"`
}

// Keys without defaults which still must be reachable from environment
var optionalKeys = []string{
	"scoring.default_speed_mph",
	"scoring.default_lanes",
	"scoring.default_width_meters",
}

// Load reads configuration from bikestress.yaml (optional) and BIKESTRESS_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("bikestress")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BIKESTRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range optionalKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("scoring.residential_speed_mph", bikestress.RESIDENTIAL_SPEED_MPH)
	v.SetDefault("routing.weight", string(bikestress.WEIGHT_COMPOSITE))
	v.SetDefault("routing.workers", 4)
	v.SetDefault("routing.route_timeout_secs", 30)
	v.SetDefault("routing.contraction", []string{})
	v.SetDefault("metrics.textfile_path", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if _, err := bikestress.ParseWeight(cfg.Routing.Weight); err != nil {
		return nil, errors.Wrap(err, "config: routing.weight")
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return errors.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
