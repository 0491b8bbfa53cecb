// Package config loads the matching engine's runtime configuration,
// adapted from tradSys's internal/config/config.go down to the sections
// this engine's domain actually needs: server bind address, the
// pre-registered symbol set, trade channel buffering, and log level.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the application configuration.
type Config struct {
	// Server configuration
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`

	// Engine configuration
	Engine struct {
		// Symbols is the pre-registered tradable symbol set; registering
		// a symbol a second time resets its books.
		Symbols            []string `mapstructure:"symbols"`
		TradeChannelBuffer int      `mapstructure:"trade_channel_buffer"`
	} `mapstructure:"engine"`

	// Monitoring configuration
	Monitoring struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"monitoring"`
}

var (
	config *Config
	once   sync.Once
)

// LoadConfig loads configuration from configPath (a directory), falling
// back to defaults and MATCHCORE_-prefixed environment variables when no
// file is present.
func LoadConfig(configPath string) (*Config, error) {
	var err error

	once.Do(func() {
		config = &Config{}
		setDefaults()

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if configPath != "" {
			v.AddConfigPath(configPath)
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
			v.AddConfigPath("/etc/matchcore")
		}

		v.AutomaticEnv()
		v.SetEnvPrefix("MATCHCORE")
		// Unmarshal only sees keys viper already knows, so each setting is
		// bound to its environment variable explicitly.
		v.BindEnv("server.host", "MATCHCORE_SERVER_HOST")
		v.BindEnv("server.port", "MATCHCORE_SERVER_PORT")
		v.BindEnv("engine.symbols", "MATCHCORE_ENGINE_SYMBOLS")
		v.BindEnv("engine.trade_channel_buffer", "MATCHCORE_ENGINE_TRADE_CHANNEL_BUFFER")
		v.BindEnv("monitoring.log_level", "MATCHCORE_MONITORING_LOG_LEVEL")

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("failed to read config file: %w", readErr)
				return
			}
		}

		if unmarshalErr := v.Unmarshal(config); unmarshalErr != nil {
			err = fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
			return
		}
	})

	return config, err
}

// GetConfig returns the current configuration, loading defaults if
// LoadConfig has not yet run.
func GetConfig() *Config {
	if config == nil {
		if _, err := LoadConfig(""); err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	}
	return config
}

func setDefaults() {
	config.Server.Host = "0.0.0.0"
	config.Server.Port = 8080

	config.Engine.Symbols = []string{"MSFT", "AAPL", "GOOG"}
	config.Engine.TradeChannelBuffer = 10000

	config.Monitoring.LogLevel = "info"
}

// InitLogger builds a zap.Logger from cfg.Monitoring.LogLevel, grounded
// in tradSys's InitLogger: "debug" gives zap's development logger (debug
// level); any other value gives the production logger at info level, so
// levels such as "warn" or "error" are not applied.
func InitLogger(cfg *Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch cfg.Monitoring.LogLevel {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
