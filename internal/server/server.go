package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"subpage/internal/catalog"
	"subpage/internal/deeplink"
	"subpage/internal/guide"
	"subpage/internal/i18n"
	"subpage/internal/logging"
	"subpage/internal/panel"
)

const shutdownTimeout = 5 * time.Second

// Fetcher получает подписку из панели. *panel.Client удовлетворяет этому интерфейсу.
type Fetcher interface {
	Fetch(ctx context.Context, shortID string, header http.Header) (*panel.Response, error)
}

// Options описывает зависимости сервера страницы подписки.
type Options struct {
	ListenAddr string
	PageTitle  string
	Variant    guide.Variant
	Catalog    *catalog.PlatformConfig
	Links      deeplink.Resolver
	Panel      Fetcher
	Translator *i18n.Translator
	Logger     *logging.Logger
}

// Server отдаёт страницу с инструкцией браузерам и саму подписку клиентам.
type Server struct {
	addr       string
	pageTitle  string
	variant    guide.Variant
	catalog    *catalog.PlatformConfig
	links      deeplink.Resolver
	panel      Fetcher
	translator *i18n.Translator
	logger     *logging.Logger
	page       *template.Template
	router     *mux.Router
}

// New создаёт сервер и регистрирует маршруты.
func New(opts Options) (*Server, error) {
	if opts.Panel == nil {
		return nil, fmt.Errorf("panel client is nil")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	translator := opts.Translator
	if translator == nil {
		loaded, err := i18n.Load()
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
		translator = loaded
	}
	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	s := &Server{
		addr:       opts.ListenAddr,
		pageTitle:  opts.PageTitle,
		variant:    opts.Variant,
		catalog:    opts.Catalog,
		links:      opts.Links,
		panel:      opts.Panel,
		translator: translator,
		logger:     opts.Logger,
		page:       page,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/", badRequestHandler).Methods(http.MethodGet)
	r.HandleFunc("/{shortId}", s.subscriptionHandler).Methods(http.MethodGet)
	return r
}

// Handler возвращает корневой http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run обслуживает запросы до отмены ctx, затем корректно завершает сервер.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", s.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infof("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Infof("Server exited")
	return nil
}

// healthHandler handles GET /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`"OK"`))
}

func badRequestHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Bad request.", http.StatusBadRequest)
}
