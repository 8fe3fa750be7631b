package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/rpi_configurator/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the configurator server.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Misc   MiscConfig
}

type ServerConfig struct {
	Port               int           `validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	IdleTimeout        time.Duration `validate:"gt=0"`
	ShutDownTimeout    time.Duration `validate:"gt=0"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	CORSAllowedOrigins string
}

type DataConfig struct {
	// FilePath is the JSON settings file holding the ServiceMonitor section.
	FilePath string `validate:"required"`
	// PersistInterval is how often unsaved edits are flushed; 0 means explicit save only.
	PersistInterval time.Duration `validate:"gte=0"`
}

type MiscConfig struct {
	LogLevel string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	GinMode  string `validate:"omitempty,oneof=debug release test"`
}

// LoadConfig reads config.yaml from RPI_CONFIG_PATH (default ./config), a .env file
// if present, and RPI_* environment variables, then validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getEnvOrDefault("RPI_CONFIG_PATH", "./config"))

	// Defaults to allow running without config file
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 1000*time.Millisecond)
	v.SetDefault("server.cors_allowed_origins", "*")
	v.SetDefault("data.file_path", "./config/data/servicemonitor.json")
	v.SetDefault("data.persist_interval", 0)
	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.gin_mode", "release")

	// Environment variables like RPI_SERVER_PORT override server.port
	v.SetEnvPrefix("RPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("No config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort(v, "PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        v.GetDuration("server.read_timeout"),
			WriteTimeout:       v.GetDuration("server.write_timeout"),
			IdleTimeout:        v.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     v.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Data: DataConfig{
			FilePath:        filepath.Clean(v.GetString("data.file_path")),
			PersistInterval: v.GetDuration("data.persist_interval"),
		},
		Misc: MiscConfig{
			LogLevel: strings.ToLower(v.GetString("misc.log_level")),
			GinMode:  v.GetString("misc.gin_mode"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvOrViperPort lets a bare env var (e.g. PORT, set by many hosts) win over viper.
func getEnvOrViperPort(v *viper.Viper, envKey, viperKey string) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envKey, val, err)
		}
		return port, nil
	}
	return v.GetInt(viperKey), nil
}
