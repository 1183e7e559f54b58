package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"subpage/internal/catalog"
	"subpage/internal/config"
	"subpage/internal/deeplink"
	"subpage/internal/guide"
	"subpage/internal/hostinfo"
	"subpage/internal/i18n"
	"subpage/internal/logging"
	"subpage/internal/panel"
	"subpage/internal/platform"
	"subpage/internal/subscription"
	"subpage/internal/ui"
)

const fetchTimeout = 15 * time.Second

// Application связывает конфигурацию, источник подписки и окно с инструкцией.
type Application struct {
	cfg           *config.Config
	logger        *logging.Logger
	variant       guide.Variant
	catalog       *catalog.PlatformConfig
	translator    *i18n.Translator
	links         deeplink.Resolver
	lang          i18n.Lang
	desktopTarget string
	panel         *panel.Client
	ui            *ui.Manager

	mu   sync.RWMutex
	info *subscription.Info

	wg        sync.WaitGroup
	shutdown  chan struct{}
	runCtx    context.Context
	runCancel context.CancelFunc
	stopOnce  sync.Once
}

// New создаёт Application поверх переданного Fyne-приложения.
func New(cfg *config.Config, logger *logging.Logger, fyneApp fyne.App) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	variant, err := guide.ParseVariant(cfg.GuideVariant)
	if err != nil {
		return nil, err
	}
	translator, err := i18n.Load()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	var apps *catalog.PlatformConfig
	if variant == guide.VariantCatalog {
		apps, err = catalog.Load(cfg.AppsConfig)
		if err != nil {
			return nil, fmt.Errorf("load apps config: %w", err)
		}
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	a := &Application{
		cfg:           cfg,
		logger:        logger,
		variant:       variant,
		catalog:       apps,
		translator:    translator,
		links:         deeplink.Resolver{RedirectBase: cfg.RedirectLink},
		lang:          i18n.Match(cfg.Lang, systemLocale()),
		desktopTarget: hostinfo.DesktopTarget(),
		info:          subscription.FromURL(cfg.SubscriptionURL).Current(),
		shutdown:      make(chan struct{}),
		runCtx:        runCtx,
		runCancel:     runCancel,
	}
	if cfg.ShortID != "" {
		if err := cfg.RequirePanel(); err != nil {
			runCancel()
			return nil, fmt.Errorf("short_id is set: %w", err)
		}
		client, err := panel.New(cfg.PanelURL, panel.Options{SubPath: cfg.PanelSubPath, Logger: logger})
		if err != nil {
			runCancel()
			return nil, fmt.Errorf("init panel client: %w", err)
		}
		a.panel = client
	}

	initial := platform.Detect(func() (string, error) { return runtime.GOOS, nil }, platform.FromOS)
	title := cfg.PageTitle
	if title == "" {
		title = translator.T(a.lang, "page.title", nil)
	}
	manager, err := ui.NewManager(ui.Options{
		App:         fyneApp,
		AppName:     title,
		Logger:      logger,
		Build:       a.buildView,
		Initial:     initial,
		Unavailable: translator.T(a.lang, "page.unavailable", nil),
	})
	if err != nil {
		runCancel()
		return nil, fmt.Errorf("init ui: %w", err)
	}
	a.ui = manager
	logger.Infof("guide variant %s, language %s, platform %s, desktop target %q", variant, a.lang, initial, a.desktopTarget)
	return a, nil
}

// Run запускает загрузку подписки из панели, если задан short id.
func (a *Application) Run() error {
	if a.ui == nil {
		return fmt.Errorf("ui is not initialized")
	}
	if a.panel == nil {
		return nil
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.loadSubscription(a.runCtx); err != nil {
			a.logger.Errorf("load subscription: %v", err)
		}
	}()
	return nil
}

// RunUILoop запускает главный цикл Fyne и блокирует вызывающую горутину до выхода.
func (a *Application) RunUILoop() {
	if a.ui == nil {
		return
	}
	a.ui.RunMainLoop()
}

// Stop отменяет фоновые запросы и закрывает окно.
func (a *Application) Stop() {
	a.stopOnce.Do(func() {
		a.runCancel()
		a.wg.Wait()
		if a.ui != nil {
			a.ui.Shutdown()
		}
		close(a.shutdown)
	})
}

// Done возвращает канал, закрывающийся после полной остановки приложения.
func (a *Application) Done() <-chan struct{} {
	return a.shutdown
}

// Current реализует subscription.Provider.
func (a *Application) Current() *subscription.Info {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.info
}

func (a *Application) loadSubscription(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	info, err := a.panel.FetchInfo(ctx, a.cfg.ShortID, nil)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.info = info
	a.mu.Unlock()
	a.logger.Infof("subscription %s loaded", a.cfg.ShortID)
	a.ui.Reload()
	return nil
}

func (a *Application) buildView(p platform.Platform) *guide.View {
	return guide.Build(a.variant, guide.Input{
		Subscription:  a.Current(),
		Catalog:       a.catalog,
		Platform:      p,
		Lang:          a.lang,
		Translator:    a.translator,
		Links:         a.links,
		DesktopTarget: a.desktopTarget,
	})
}

// systemLocale возвращает язык из LC_ALL/LC_MESSAGES/LANG без кодировки: "ru_RU.UTF-8" -> "ru_RU".
func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if value != "" && value != "C" && value != "POSIX" {
			return value
		}
	}
	return ""
}
