package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subpage/internal/catalog"
	"subpage/internal/config"
	"subpage/internal/deeplink"
	"subpage/internal/guide"
	"subpage/internal/i18n"
	"subpage/internal/logging"
	"subpage/internal/panel"
	"subpage/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appDir, err := config.DetectAppDir()
	if err != nil {
		return fmt.Errorf("determine app directory: %w", err)
	}
	configPath := flag.String("config", config.DefaultPath(appDir), "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath, appDir)
	if err != nil {
		return err
	}
	if err := cfg.RequirePanel(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Close()

	baseCtx := logging.WithContext(context.Background(), logger)
	ctx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Infof("subscription page starting (config: %s)", *configPath)
	logger.Debugf("panel: %s%s", cfg.PanelURL, cfg.PanelSubPath)

	return startServer(ctx, cfg)
}

func startServer(ctx context.Context, cfg *config.Config) error {
	logger, ok := logging.FromContext(ctx)
	if !ok {
		return fmt.Errorf("logger not found in context")
	}
	variant, err := guide.ParseVariant(cfg.GuideVariant)
	if err != nil {
		return err
	}
	var apps *catalog.PlatformConfig
	if variant == guide.VariantCatalog {
		apps, err = catalog.Load(cfg.AppsConfig)
		if err != nil {
			return fmt.Errorf("load apps config: %w", err)
		}
		logger.Infof("apps config loaded: platforms %v", apps.Available())
	}
	translator, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	client, err := panel.New(cfg.PanelURL, panel.Options{SubPath: cfg.PanelSubPath, Logger: logger})
	if err != nil {
		return fmt.Errorf("init panel client: %w", err)
	}
	srv, err := server.New(server.Options{
		ListenAddr: cfg.ListenAddr,
		PageTitle:  cfg.PageTitle,
		Variant:    variant,
		Catalog:    apps,
		Links:      deeplink.Resolver{RedirectBase: cfg.RedirectLink},
		Panel:      client,
		Translator: translator,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
