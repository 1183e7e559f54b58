package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"subpage/internal/platform"
)

// Load читает конфигурацию приложений из JSON (формат app-config.json) или YAML.
func Load(path string) (*PlatformConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return cfg, nil
}

// Decode разбирает конфигурацию; ext определяет формат (".json", ".yaml", ".yml").
func Decode(data []byte, ext string) (*PlatformConfig, error) {
	var cfg PlatformConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig performs presence checks only.
func validateConfig(cfg *PlatformConfig) error {
	for _, p := range platform.All() {
		for i, app := range cfg.Apps(p) {
			if err := validateApp(app); err != nil {
				return fmt.Errorf("%s[%d]: %w", p, i, err)
			}
		}
	}
	return nil
}

func validateApp(app App) error {
	if strings.TrimSpace(app.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(app.URLScheme) == "" {
		return fmt.Errorf("app %s: urlScheme is required", app.Name)
	}
	steps := []*Step{&app.InstallationStep, app.AdditionalBeforeAddSubscriptionStep, &app.AddSubscriptionStep, app.AdditionalAfterAddSubscriptionStep}
	for _, step := range steps {
		if step == nil {
			continue
		}
		for j, button := range step.Buttons {
			if strings.TrimSpace(button.Link) == "" {
				return fmt.Errorf("app %s: button %d: buttonLink is required", app.Name, j)
			}
		}
	}
	return nil
}
