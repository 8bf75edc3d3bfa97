package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lux-bot/lux/internal/api"
	"github.com/lux-bot/lux/internal/cogs"
	"github.com/lux-bot/lux/internal/config"
	"github.com/lux-bot/lux/internal/env"
	"github.com/lux-bot/lux/internal/logging"
	"github.com/lux-bot/lux/internal/metrics"
	"github.com/lux-bot/lux/internal/process"
)

var signalNotify = signal.Notify

var (
	// ErrAlreadyInitialized is returned when Init is called twice.
	ErrAlreadyInitialized = errors.New("application already initialized")
	// ErrNotInitialized is returned when Run is called before Init.
	ErrNotInitialized = errors.New("application not initialized")
	// ErrAlreadyRunning is returned when Run is called while, or after, a
	// previous Run.
	ErrAlreadyRunning = errors.New("application already running")
)

// Options carries everything the startup pipeline resolved.
type Options struct {
	Production            bool
	Config                config.Config
	CogConfig             config.CogConfig
	DisableDebugExtraInit bool

	State  *process.State
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// App is the bot process: cog registry, metrics and the status API server.
type App struct {
	opts   Options
	logger *zap.Logger

	registry *cogs.MemoryRegistry
	metrics  *metrics.Metrics
	handler  *api.Handler
	router   http.Handler
	server   *http.Server
	logFile  io.Closer

	debugExtraInit bool
	initialized    bool

	mu         sync.Mutex
	started    bool
	listenAddr string
	ready      chan struct{}
}

// New validates opts and returns an App ready for Init.
func New(opts Options) (*App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.State == nil {
		opts.State = process.NewState()
		opts.State.SetProduction(opts.Production)
	}
	if opts.Level == (zap.AtomicLevel{}) {
		opts.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return &App{
		opts:           opts,
		logger:         opts.Logger,
		debugExtraInit: !opts.Production && !opts.DisableDebugExtraInit,
		ready:          make(chan struct{}),
	}, nil
}

// Init builds the cog registry, metrics and status API server. It must
// complete before Run.
func (a *App) Init() error {
	if a.initialized {
		return ErrAlreadyInitialized
	}
	cfg := a.opts.Config

	registry, err := cogs.NewMemoryRegistry(a.opts.CogConfig)
	if err != nil {
		return fmt.Errorf("failed to build cog registry: %w", err)
	}
	a.registry = registry

	if cfg.Log.File != "" {
		a.logger, a.logFile = logging.WithFile(a.logger, a.opts.Level, logging.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	}
	a.logger = a.logger.With(zap.String("bot", cfg.Name))

	a.metrics = metrics.New(nil)
	if a.opts.Production {
		a.metrics.ProductionMode.Set(1)
	}

	a.handler = api.NewHandler(registry, a.opts.State, api.WithHandlerMetrics(a.metrics))
	routerOpts := []api.RouterOption{
		api.WithLogging(cfg.HTTP.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		api.WithMetrics(a.metrics),
	}
	if a.debugExtraInit {
		routerOpts = append(routerOpts, a.initDebugExtras())
	}
	a.router = api.NewRouter(a.handler, a.logger, routerOpts...)
	a.server = NewServer(cfg.HTTP, a.router)

	if a.opts.State.Env().Token() == "" {
		a.logger.Warn("bot token is not set", zap.String("variable", env.EnvToken))
	}

	a.logger.Info("application initialized",
		zap.Bool("production", a.opts.Production),
		zap.Int("cogs_enabled", registry.EnabledCount()),
		zap.Bool("debug_extra_init", a.debugExtraInit),
	)
	a.initialized = true
	return nil
}

// initDebugExtras dumps the resolved configuration and exposes it over the
// status API. Only called in debug mode.
func (a *App) initDebugExtras() api.RouterOption {
	snapshot := debugSnapshot{
		Config:    a.opts.Config,
		CogConfig: a.opts.CogConfig,
		EnvKeys:   a.opts.State.Env().Keys(),
	}
	a.logger.Debug("debug extra init",
		zap.Any("config", snapshot.Config),
		zap.Any("cog_config", snapshot.CogConfig),
		zap.Strings("debug_guilds", snapshot.Config.DebugGuilds),
		zap.Int("env_vars", len(snapshot.EnvKeys)),
	)
	return api.WithDebugConfig(snapshot)
}

type debugSnapshot struct {
	Config    config.Config    `json:"config"`
	CogConfig config.CogConfig `json:"cogConfig"`
	EnvKeys   []string         `json:"envKeys"`
}

// Run serves the status API and blocks until a termination signal arrives or
// the server fails, then shuts down gracefully. Run may only be called once.
func (a *App) Run() error {
	if !a.initialized {
		return ErrNotInitialized
	}
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.started = true
	a.mu.Unlock()
	defer a.closeLogFile()

	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.setListenAddr(ln.Addr().String())
	close(a.ready)
	defer a.setListenAddr("")

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("status server listening", zap.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("status server: %w", err)
	case sig := <-quit:
		a.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	return shutdown(a.server, a.opts.Config.HTTP.ShutdownGracePeriod, a.logger)
}

// Ready is closed once Run is listening. It stays open if listening fails.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Addr returns the address Run is listening on, or "" when it is not.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listenAddr
}

func (a *App) setListenAddr(addr string) {
	a.mu.Lock()
	a.listenAddr = addr
	a.mu.Unlock()
}

// Server returns the HTTP server instance. Nil before Init.
func (a *App) Server() *http.Server {
	return a.server
}

func (a *App) closeLogFile() {
	_ = a.logger.Sync()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
			return fmt.Errorf("close server: %w", closeErr)
		}
	}
	return nil
}
