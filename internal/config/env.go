package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// envOverrides перечисляет переменные окружения, которые перекрывают значения из YAML.
type envOverrides struct {
	ListenAddr   string `env:"LISTEN_ADDR"`
	PanelURL     string `env:"PANEL_URL"`
	RedirectLink string `env:"REDIRECT_LINK"`
	GuideVariant string `env:"GUIDE_VARIANT"`
	AppsConfig   string `env:"APPS_CONFIG"`
	LogLevel     string `env:"LOG_LEVEL"`

	SubscriptionURL string `env:"SUBSCRIPTION_URL"`
	ShortID         string `env:"SHORT_ID"`
}

// applyEnv подгружает .env (если он есть) и накладывает непустые переменные окружения.
// godotenv.Load не перезаписывает уже выставленные переменные процесса.
func (c *Config) applyEnv() error {
	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", c.EnvFile, err)
		}
	}
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	setIfNotEmpty(&c.ListenAddr, overrides.ListenAddr)
	setIfNotEmpty(&c.PanelURL, overrides.PanelURL)
	setIfNotEmpty(&c.RedirectLink, overrides.RedirectLink)
	setIfNotEmpty(&c.GuideVariant, overrides.GuideVariant)
	setIfNotEmpty(&c.AppsConfig, overrides.AppsConfig)
	setIfNotEmpty(&c.LogLevel, overrides.LogLevel)
	setIfNotEmpty(&c.SubscriptionURL, overrides.SubscriptionURL)
	setIfNotEmpty(&c.ShortID, overrides.ShortID)
	return nil
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
