package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/api"
	"github.com/nosmoke-health/nosmoke/internal/app/billing"
	"github.com/nosmoke-health/nosmoke/internal/app/insights"
	"github.com/nosmoke-health/nosmoke/internal/health"
	_ "github.com/nosmoke-health/nosmoke/internal/infra/metrics" // Register Prometheus metrics
	"github.com/nosmoke-health/nosmoke/internal/infra/sqlite"
	"github.com/nosmoke-health/nosmoke/internal/security"
)

// Daemon is the core NoSmoke runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Tokens   *security.TokenIssuer
	Billing  *billing.Service
	Insights *insights.Service
	Server   *api.Server
	Health   *health.Checker
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Database.Dir
	if dataDir == "" {
		dataDir = nosmokeHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	if ttl == 0 {
		ttl = 720 * time.Hour
	}
	tokens := security.NewTokenIssuer(cfg.Auth.JWTSecret, ttl)

	// Payment provider: real Stripe if configured, mock otherwise.
	var provider billing.CheckoutProvider
	if cfg.Billing.StripeAPIKey != "" {
		provider = billing.NewStripeProvider(cfg.Billing.StripeAPIKey)
	} else {
		fmt.Fprintf(os.Stderr, "WARNING: no Stripe API key configured, using mock payment provider\n")
		provider = billing.NewMockProvider()
	}

	bill := billing.NewService(db, provider)
	ins := insights.NewService()

	srv := api.NewServer(db, tokens, bill, ins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	if cfg.Auth.TelegramBotToken != "" {
		srv.SetBotToken(cfg.Auth.TelegramBotToken)
	}

	checker := health.NewChecker(db, dataDir)
	srv.SetHealthChecker(checker)

	return &Daemon{
		Config:   cfg,
		DB:       db,
		Tokens:   tokens,
		Billing:  bill,
		Insights: ins,
		Server:   srv,
		Health:   checker,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("NoSmoke serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[daemon] server error: %v", err)
		return err
	}
	return nil
}

// Stop triggers a graceful shutdown.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}
