package main

import (
	"fmt"
	"strings"

	"dareboard/internal/repository"
	"dareboard/internal/service"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	TelegramAuth TelegramAuthConfig `yaml:"telegramAuth"`

	Lifecycle service.LifecycleConfig `yaml:"lifecycle"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TelegramAuthConfig struct {
	TelegramBotToken string `yaml:"telegramBotToken"`
	DebugMode        bool   `yaml:"debugMode"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyLifecycleDefaults(&cfg.Lifecycle)

	return &cfg, nil
}

// applyLifecycleDefaults fills zero-valued lifecycle knobs so a minimal
// config file still yields a working sweep.
func applyLifecycleDefaults(cfg *service.LifecycleConfig) {
	defaults := service.DefaultLifecycleConfig()

	if cfg.DareExpiryDays <= 0 {
		cfg.DareExpiryDays = defaults.DareExpiryDays
	}
	if cfg.LowEngagementDays <= 0 {
		cfg.LowEngagementDays = defaults.LowEngagementDays
	}
	if cfg.CompletionLowSmilesDays <= 0 {
		cfg.CompletionLowSmilesDays = defaults.CompletionLowSmilesDays
	}
	if cfg.MinCompletions <= 0 {
		cfg.MinCompletions = defaults.MinCompletions
	}
	if cfg.MinSmiles <= 0 {
		cfg.MinSmiles = defaults.MinSmiles
	}
	if cfg.SweepIntervalMinutes <= 0 {
		cfg.SweepIntervalMinutes = defaults.SweepIntervalMinutes
	}
}
