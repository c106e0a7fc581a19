package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/foodcheck/web/config"
	httpDelivery "github.com/foodcheck/web/internal/delivery/http"
	"github.com/foodcheck/web/internal/infrastructure/metrics"
	"github.com/foodcheck/web/internal/infrastructure/openfda"
	"github.com/foodcheck/web/internal/infrastructure/openfoodfacts"
	"github.com/foodcheck/web/internal/usecase"
	"github.com/foodcheck/web/internal/version"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App wires configuration, upstream clients, services and the router
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Products   *usecase.ProductService
	Compliance *usecase.ComplianceService
	Router     *gin.Engine
}

// Option customizes an App under construction
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for the page footer year
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New builds an App from configuration. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	m := metrics.New()

	// Initialize infrastructure dependencies
	foodFacts := openfoodfacts.NewClient(cfg.OpenFoodFacts, m, logger)
	drugLabels := openfda.NewClient(cfg.OpenFDA, m, logger)

	// Initialize usecase layer
	products := usecase.NewProductService(foodFacts, logger)
	compliance := usecase.NewComplianceService(drugLabels, logger)

	handler := httpDelivery.NewHandler(products, o.now)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    m,
		Products:   products,
		Compliance: compliance,
		Router:     httpDelivery.SetupRouter(cfg, handler, m, logger),
	}
}

// Run listens on the configured port and serves until ctx is done
func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", a.Config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is done, then shuts down gracefully
// within the configured shutdown timeout
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.Logger.Info("server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("environment", a.Config.Server.Environment),
		zap.String("version", version.Version),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
