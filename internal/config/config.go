package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigFailed обозначает любую проблему с чтением или разбором config.yaml.
var ErrConfigFailed = errors.New("config: failed to load")

const (
	defaultListenAddr   = ":3010"
	defaultPanelSubPath = "/api/sub/"
	defaultVariant      = "catalog"
)

// Config описывает настройки сервера страницы подписки и десктопного просмотрщика.
type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	PanelURL     string `yaml:"panel_url"`
	PanelSubPath string `yaml:"panel_sub_path"`
	GuideVariant string `yaml:"guide_variant"`
	AppsConfig   string `yaml:"apps_config"`
	RedirectLink string `yaml:"redirect_link"`
	PageTitle    string `yaml:"page_title"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`

	// SubscriptionURL и ShortID задают подписку для десктопного просмотрщика.
	SubscriptionURL string `yaml:"subscription_url"`
	ShortID         string `yaml:"short_id"`
	Lang            string `yaml:"lang"`

	AppDir  string `yaml:"-"`
	EnvFile string `yaml:"-"`
}

// Error содержит дополнительный контекст при неудачной загрузке конфигурации.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ErrConfigFailed.Error()
	}
	return fmt.Sprintf("%v: %s: %v", ErrConfigFailed, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is позволяет проверять ошибку через errors.Is(err, ErrConfigFailed).
func (e *Error) Is(target error) bool {
	return target == ErrConfigFailed
}

// DetectAppDir возвращает каталог, в котором находится исполняемый файл.
func DetectAppDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("detect executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exePath)
	if err == nil {
		exePath = resolved
	}
	return filepath.Dir(exePath), nil
}

// DefaultPath возвращает путь к config.yaml относительно каталога приложения.
func DefaultPath(appDir string) string {
	return filepath.Join(appDir, "config.yaml")
}

// Load читает YAML, накладывает переменные окружения (и .env рядом с конфигом)
// и применяет appDir ко всем относительным путям.
func Load(path string, appDir string) (*Config, error) {
	if path == "" {
		return nil, &Error{Path: path, Err: errors.New("config path is empty")}
	}
	if appDir == "" {
		return nil, &Error{Path: path, Err: errors.New("app directory is empty")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.AppDir = appDir
	cfg.EnvFile = filepath.Join(filepath.Dir(path), ".env")
	if err := cfg.applyEnv(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.normalize()
	cfg.applyAppDir()
	if err := cfg.validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if err := cfg.ensureLogDirectory(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	c.PanelURL = strings.TrimRight(strings.TrimSpace(c.PanelURL), "/")
	c.PanelSubPath = strings.TrimSpace(c.PanelSubPath)
	if c.PanelSubPath == "" {
		c.PanelSubPath = defaultPanelSubPath
	}
	if !strings.HasPrefix(c.PanelSubPath, "/") {
		c.PanelSubPath = "/" + c.PanelSubPath
	}
	if !strings.HasSuffix(c.PanelSubPath, "/") {
		c.PanelSubPath += "/"
	}
	c.GuideVariant = strings.TrimSpace(strings.ToLower(c.GuideVariant))
	if c.GuideVariant == "" {
		c.GuideVariant = defaultVariant
	}
	c.RedirectLink = strings.TrimSpace(c.RedirectLink)
	c.SubscriptionURL = strings.TrimSpace(c.SubscriptionURL)
	c.ShortID = strings.Trim(strings.TrimSpace(c.ShortID), "/")
	c.Lang = strings.TrimSpace(c.Lang)
	c.LogLevel = normalizeLogLevel(c.LogLevel)
}

func (c *Config) applyAppDir() {
	if c.AppDir == "" {
		return
	}
	c.AppDir = filepath.Clean(c.AppDir)
	c.AppsConfig = makeAbsolute(c.AppsConfig, c.AppDir)
	c.LogFile = makeAbsolute(c.LogFile, c.AppDir)
}

func (c *Config) validate() error {
	switch {
	case c.AppDir == "":
		return errors.New("app directory is unknown")
	case c.GuideVariant == "catalog" && c.AppsConfig == "":
		return errors.New("apps_config is required for the catalog guide variant")
	}
	if _, ok := allowedVariants[c.GuideVariant]; !ok {
		return fmt.Errorf("unsupported guide_variant %q", c.GuideVariant)
	}
	if _, ok := allowedLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

func (c *Config) ensureLogDirectory() error {
	if c.LogFile == "" {
		return nil
	}
	dir := filepath.Dir(c.LogFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory %s: %w", dir, err)
	}
	return nil
}

// RequirePanel проверяет, что задан адрес панели. Нужен серверу и режиму загрузки подписки по short id.
func (c *Config) RequirePanel() error {
	if c == nil || c.PanelURL == "" {
		return errors.New("panel_url is required")
	}
	return nil
}

func makeAbsolute(path string, base string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func normalizeLogLevel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "info"
	}
	return value
}

var allowedLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"error": {},
}

var allowedVariants = map[string]struct{}{
	"catalog": {},
	"static":  {},
}
