package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/faber/config"
	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/loader"
	"github.com/kbukum/faber/logger"
	"github.com/kbukum/faber/observability"
	"github.com/kbukum/faber/server"
)

const instrumentationName = "github.com/kbukum/faber"

// App is a running faber service.
type App struct {
	Name      string
	Version   string
	Cfg       *config.Config
	Registry  *container.Registry
	Container *container.Container
	Server    *server.Server
	Logger    *logger.Logger

	gracefulTimeout time.Duration
	shutdowns       []func(context.Context) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and builds the registry,
// the primary container and the server. Telemetry providers are started
// when cfg.Telemetry.Enabled is set.
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	containerOpts := append([]container.Option{container.WithLogger(app.Logger)}, o.containerOpts...)
	if cfg.Telemetry.Enabled {
		obs, err := app.initTelemetry(ctx)
		if err != nil {
			app.shutdownTelemetry(ctx)
			return nil, err
		}
		containerOpts = append(containerOpts, container.WithObserver(obs))
	}

	app.Registry = container.NewRegistry(containerOpts...)
	primary, err := app.Registry.GetOrCreate(cfg.Container.ID)
	if err == nil {
		err = populate(primary, cfg.Container)
	}
	if err != nil {
		app.shutdownTelemetry(ctx)
		return nil, fmt.Errorf("container %s: %w", cfg.Container.ID, err)
	}
	app.Container = primary
	app.Server = server.New(cfg.Name, cfg.Server, app.Registry, app.Logger)
	return app, nil
}

// populate loads the env file, then the definition files, then freezes the
// configured ids.
func populate(c *container.Container, cfg config.ContainerConfig) error {
	if cfg.EnvFile != "" {
		if err := loader.LoadEnvFile(c, cfg.EnvFile); err != nil {
			return err
		}
	}
	if err := loader.LoadFiles(c, cfg.Files...); err != nil {
		return err
	}
	for _, id := range cfg.Freeze {
		if err := c.Freeze(id); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initTelemetry(ctx context.Context) (*observability.Observer, error) {
	mp, err := observability.InitMeter(ctx, a.Cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	a.shutdowns = append(a.shutdowns, mp.Shutdown)

	tp, err := observability.InitTracer(ctx, a.Cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	a.shutdowns = append(a.shutdowns, tp.Shutdown)

	return observability.NewObserver(
		mp.Meter(instrumentationName),
		tp.Tracer(instrumentationName),
		attribute.String(observability.AttrServiceName, a.Name),
	)
}

// Run starts the service, blocks until a shutdown signal or ctx is done and
// then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		stopErr := a.Shutdown(context.Background())
		return stderrors.Join(err, stopErr)
	}
	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.Shutdown(context.Background())
}

// Start starts the server and runs the OnStart and OnReady hooks.
func (a *App) Start(ctx context.Context) error {
	start := time.Now()
	if err := a.Server.Start(ctx); err != nil {
		return err
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Logger.Info("application started", logger.MergeFields(
		logger.Fields(
			"name", a.Name,
			"version", a.Version,
			"addr", a.Server.Addr(),
			logger.FieldContainerID, a.Container.ID(),
			"entries", a.Container.Len(),
			"frozen", len(a.Container.FrozenIDs()),
		),
		logger.DurationFields("startup", time.Since(start)),
	))
	return nil
}

// WaitForSignal blocks until SIGINT, SIGTERM or cancellation of ctx.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown runs the OnStop hooks, stops the server, flushes the registry
// and shuts telemetry down, all within the graceful timeout. Every step
// runs; failures are joined.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		errs = append(errs, fmt.Errorf("onStop hook failed: %w", err))
	}
	if err := a.Server.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Registry.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flushing containers: %w", err))
	}
	if err := a.shutdownTelemetry(ctx); err != nil {
		errs = append(errs, err)
	}

	err := stderrors.Join(errs...)
	if err != nil {
		a.Logger.Error("shutdown completed with errors", logger.ErrorFields("shutdown", err))
	} else {
		a.Logger.Info("application shutdown complete")
	}
	return err
}

func (a *App) shutdownTelemetry(ctx context.Context) error {
	var errs []error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil
	return stderrors.Join(errs...)
}
