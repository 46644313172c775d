package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/denisok6893-rgb/property-matchmaking/internal/matching"
)

const (
	app       = "matchmaker"
	envPrefix = "MATCHMAKER"
)

type Config struct {
	Server   ServerConfig     `mapstructure:"server"`
	Storage  StorageConfig    `mapstructure:"storage"`
	Matching MatchingConfig   `mapstructure:"matching"`
	Weights  matching.Weights `mapstructure:"weights"`
	Log      LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver is "sqlite3" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type MatchingConfig struct {
	MinScore float64 `mapstructure:"min_score"`
	Limit    int     `mapstructure:"limit"`
	// Workers for batch runs; 0 means GOMAXPROCS.
	Workers     int    `mapstructure:"workers"`
	WeightsFile string `mapstructure:"weights_file"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every known key, which also lets AutomaticEnv
// resolve them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("storage.driver", "sqlite3")
	v.SetDefault("storage.dsn", app+".db")
	v.SetDefault("matching.min_score", matching.DefaultMinScore)
	v.SetDefault("matching.limit", matching.DefaultLimit)
	v.SetDefault("matching.workers", 0)
	v.SetDefault("matching.weights_file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	var weights map[string]any
	if err := mapstructure.Decode(matching.DefaultWeights(), &weights); err == nil {
		for k, w := range weights {
			v.SetDefault("weights."+k, w)
		}
	}
}

// New prepares a viper instance: .env preloaded, defaults set, the
// MATCHMAKER_ environment bound and the config file read when present.
// With an empty cfgFile ./matchmaker.yaml and ~/.config/matchmaker/ are searched.
func New(cfgFile string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(app)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", app))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes v into a Config. Weights resolve as defaults, then the
// weights section, then matching.weights_file.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Matching.WeightsFile != "" {
		w, err := matching.OverlayWeightsFile(cfg.Weights, cfg.Matching.WeightsFile)
		if err != nil {
			return nil, err
		}
		cfg.Weights = w
	}

	switch cfg.Storage.Driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Matching.Limit <= 0 {
		cfg.Matching.Limit = matching.DefaultLimit
	}
	return &cfg, nil
}
