package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MILPAY_STORE_BACKEND
const EnvPrefix = "MILPAY"

// Store backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Settings are the runtime settings for the server and interactive wizard
type Settings struct {
	Server     ServerSettings `mapstructure:"server"`
	Store      StoreSettings  `mapstructure:"store"`
	Log        LogSettings    `mapstructure:"log"`
	Rules      FileSettings   `mapstructure:"rules"`
	Regulatory FileSettings   `mapstructure:"regulatory"`
}

type ServerSettings struct {
	Port int `mapstructure:"port"`
}

type StoreSettings struct {
	Backend string         `mapstructure:"backend"`
	Redis   RedisSettings  `mapstructure:"redis"`
	SQLite  SQLiteSettings `mapstructure:"sqlite"`
}

type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type SQLiteSettings struct {
	Path string `mapstructure:"path"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FileSettings names an optional override file; empty means the embedded default
type FileSettings struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "milpay:")
	v.SetDefault("store.sqlite.path", "milpay.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("rules.file", "")
	v.SetDefault("regulatory.file", "")
}

// LoadSettings reads .env (if present), then milpay.yaml from the working directory or
// the explicit file, then MILPAY_* environment variables
func LoadSettings(file string) (*Settings, error) {
	loadEnvFile(".env")
	return loadSettings(viper.New(), file)
}

func loadSettings(v *viper.Viper, file string) (*Settings, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("milpay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

// Validate checks the settings that have a closed set of values
func (s *Settings) Validate() error {
	s.Store.Backend = strings.ToLower(strings.TrimSpace(s.Store.Backend))
	switch s.Store.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be memory, redis or sqlite, got %q", s.Store.Backend)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", s.Server.Port)
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", s.Log.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (s *Settings) Addr() string {
	return fmt.Sprintf(":%d", s.Server.Port)
}
