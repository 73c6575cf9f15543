package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jobboard/jobboard-ui/config"
	httpx "github.com/jobboard/jobboard-ui/internal/http"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

// CookieDomainAuto derives the cookie domain from the base URL.
const CookieDomainAuto = "auto"

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
	// Ready backs the /healthz readiness check. Optional.
	Ready func(context.Context) error
}

// NewHTTPServer builds the HTTP server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	cookieDomain, err := ResolveCookieDomain(appCfg.HTTP.CookieDomain, appCfg.HTTP.BaseURL)
	if err != nil {
		return nil, err
	}

	services := httpx.RouterServices{
		View:    cfg.Services.View,
		Catalog: cfg.Services.Catalog,
		Site: httpx.SiteOptions{
			Name:        appCfg.Site.Name,
			BaseURL:     appCfg.HTTP.BaseURL,
			AnalyticsID: appCfg.Site.AnalyticsID,
		},
		CookieDomain: cookieDomain,
		Ready:        cfg.Ready,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		HTTP:     appCfg.HTTP,
	})

	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Apply compression middleware first (innermost) so logging captures compressed sizes
	// Order: Recover -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel, Logger: cfg.Logger})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

// ResolveCookieDomain returns the cookie domain for setting. "auto" maps the
// base URL host to its registrable domain (eTLD+1); hosts without one, such
// as localhost or IP addresses, yield an empty host-only domain.
func ResolveCookieDomain(setting, baseURL string) (string, error) {
	setting = strings.TrimSpace(setting)
	if !strings.EqualFold(setting, CookieDomainAuto) {
		return setting, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse APP_BASE_URL: %w", err)
	}
	host := u.Hostname()
	if host == "" || net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return "", nil
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return "", fmt.Errorf("derive cookie domain from %q: %w", host, err)
	}
	return domain, nil
}

// RunConfig contains dependencies for Run.
type RunConfig struct {
	Server          *http.Server
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
	// OnShutdown runs after the server has stopped.
	OnShutdown func(ctx context.Context) error
}

// Run serves HTTP until ctx is cancelled, SIGINT/SIGTERM arrives or the
// server fails, then shuts down gracefully.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Server == nil {
		return errors.New("http server is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", cfg.Server.Addr)
		if err := cfg.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()

		var errs []error
		if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
		if cfg.OnShutdown != nil {
			if err := cfg.OnShutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			logger.Info("HTTP server stopped")
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
