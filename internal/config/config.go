// Package config loads and validates the lingrade configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

type Config struct {
	Banks    BanksConfig    `mapstructure:"banks"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Database DatabaseConfig `mapstructure:"database"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Attempts AttemptsConfig `mapstructure:"attempts"`
}

// BanksConfig points at the local question bank YAML directories.
type BanksConfig struct {
	Directories []string `mapstructure:"directories"`
}

// EngineConfig tunes the grading engine thresholds. The defaults are
// the values the platform has always shipped with; changing them
// changes which translations are accepted.
type EngineConfig struct {
	FuzzyThreshold  float64 `mapstructure:"fuzzy_threshold" validate:"gte=0,lte=1"`
	KeywordCoverage float64 `mapstructure:"keyword_coverage" validate:"gte=0,lte=1"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// RemoteConfig configures the hosted question bank service used by
// `lingrade banks sync`.
type RemoteConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string `mapstructure:"api_key"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

// AttemptsConfig configures where graded attempts are recorded.
type AttemptsConfig struct {
	LogDirectory string `mapstructure:"log_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lingrade")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("banks.directories", []string{"banks"})
	v.SetDefault("engine.fuzzy_threshold", 0.85)
	v.SetDefault("engine.keyword_coverage", 0.75)
	v.SetDefault("attempts.log_directory", "attempts")
	v.SetDefault("remote.cache_directory", filepath.Join("banks", "remote-cache"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	// Secrets come from the environment only, never from the config file.
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("remote.api_key", "BANK_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind BANK_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, nil, fmt.Errorf("failed to get english translator")
	}
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	return validate, trans, nil
}
