package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TALENTTRACK_ADDR.
const EnvPrefix = "TALENTTRACK"

// ConfigFileName is the optional dotenv-style file read from the config directory.
const ConfigFileName = "talenttrack.env"

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the runtime configuration of the server.
type Config struct {
	Env                string        `mapstructure:"ENV" validate:"oneof=development production test"`
	Addr               string        `mapstructure:"ADDR" validate:"required"`
	LogLevel           string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	StorageBackend     string        `mapstructure:"STORAGE_BACKEND" validate:"oneof=sqlite redis file memory"`
	DBPath             string        `mapstructure:"DB_PATH" validate:"required_if=StorageBackend sqlite"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR" validate:"required_if=StorageBackend redis"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB" validate:"gte=0,lte=15"`
	FilePath           string        `mapstructure:"FILE_PATH" validate:"required_if=StorageBackend file"`
	KeyPrefix          string        `mapstructure:"KEY_PREFIX" validate:"required"`
	BcryptCost         int           `mapstructure:"BCRYPT_COST" validate:"gte=4,lte=31"`
	ResendKey          string        `mapstructure:"RESEND_KEY"`
	EmailFrom          string        `mapstructure:"EMAIL_FROM" validate:"required"`
	CSRFKey            string        `mapstructure:"CSRF_KEY" validate:"omitempty,hexadecimal,len=64"`
	UploadDelay        time.Duration `mapstructure:"UPLOAD_DELAY" validate:"gte=0"`
	AnalysisDelay      time.Duration `mapstructure:"ANALYSIS_DELAY" validate:"gte=0"`
	ClientTTL          time.Duration `mapstructure:"CLIENT_TTL" validate:"gt=0"`
	RateLimitPerSecond int           `mapstructure:"RATE_LIMIT_PER_SECOND" validate:"gt=0"`
}

var defaults = map[string]any{
	"ENV":                   EnvDevelopment,
	"ADDR":                  ":8080",
	"LOG_LEVEL":             "info",
	"STORAGE_BACKEND":       "sqlite",
	"DB_PATH":               "talenttrack.db",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"FILE_PATH":             "data/talenttrack.json",
	"KEY_PREFIX":            "talenttrack_",
	"BCRYPT_COST":           12,
	"RESEND_KEY":            "",
	"EMAIL_FROM":            "TalentTrack <hello@talenttrack.app>",
	"CSRF_KEY":              "",
	"UPLOAD_DELAY":          "2s",
	"ANALYSIS_DELAY":        "3s",
	"CLIENT_TTL":            "24h",
	"RATE_LIMIT_PER_SECOND": 10,
}

// ErrCSRFKeyRequired is returned when production runs without a CSRF key.
var ErrCSRFKeyRequired = errors.New("TALENTTRACK_CSRF_KEY is required in production")

// Load reads configuration from, in increasing precedence: defaults,
// dir/talenttrack.env, and the environment. dir/.env is loaded into the
// environment first without overriding variables that are already set.
// PRE: dir is a directory path, "" for the working directory
// POST: Returns a validated Config
func Load(dir string) (Config, error) {
	if dir == "" {
		dir = "."
	}
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	file := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(file); err == nil {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", file, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and production requirements.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.IsProduction() && c.CSRFKey == "" {
		return ErrCSRFKeyRequired
	}
	return nil
}

// IsProduction reports whether the server runs in production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFKeyBytes decodes the configured CSRF key. It returns nil when no key is set.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	return hex.DecodeString(c.CSRFKey)
}
