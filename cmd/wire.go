package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bnema/deck/internal/adapters/backend/rest"
	consolerender "github.com/bnema/deck/internal/adapters/render/console"
	"github.com/bnema/deck/internal/adapters/repo/postgres"
	tomlrepo "github.com/bnema/deck/internal/adapters/repo/toml"
	chainstore "github.com/bnema/deck/internal/adapters/secrets/chain"
	filestore "github.com/bnema/deck/internal/adapters/secrets/file"
	"github.com/bnema/deck/internal/adapters/session"
	"github.com/bnema/deck/internal/adapters/stream/sse"
	"github.com/bnema/deck/internal/application"
	"github.com/bnema/deck/internal/config"
	"github.com/bnema/deck/internal/ports"
)

var errMigrationsUnsupported = errors.New("database migrations only apply to the postgres driver")

type migrator interface {
	Migrate(ctx context.Context) (int, error)
}

type app struct {
	cfg        config.Config
	service    *application.Service
	backendURL string
	migrator   migrator
	logger     *zap.Logger
	render     consolerender.RenderOptions
	now        func() time.Time

	closeOnce sync.Once
	closers   []func()
}

func wireApp(ctx context.Context) (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, now: time.Now}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	secretStore, err := newSecretStore(cfg.Secrets, logger.Named("secrets"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("wire secret store: %w", err)
	}
	sessions := session.NewProvider(secretStore, ports.SystemClock{})

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	backend, err := rest.NewClient(cfg.Backend.URL, sessions,
		rest.WithHTTPClient(httpClient),
		rest.WithLogger(logger.Named("backend")),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("wire backend client: %w", err)
	}
	a.backendURL = backend.BaseURL()

	// Streams stay open for the whole run, so they get a client without a timeout.
	streams, err := sse.NewOpener(cfg.Backend.URL, sessions,
		sse.WithHTTPClient(&http.Client{}),
		sse.WithLogger(logger.Named("sse")),
		sse.WithReconnectMaxElapsed(cfg.Stream.ReconnectMaxElapsed),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("wire stream opener: %w", err)
	}

	deps := application.Dependencies{
		Backend:       backend,
		Sessions:      sessions,
		Streams:       streams,
		Clock:         ports.SystemClock{},
		Logger:        logger,
		StatusTimeout: cfg.Stream.StatusTimeout,
	}

	switch cfg.Database.Driver {
	case config.DriverPg:
		store, err := postgres.Open(ctx, cfg.Database.URL, sessions, logger.Named("postgres"))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("wire postgres repository: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		a.migrator = store
		deps.Projects, deps.Threads, deps.Messages = store.Projects(), store.Threads(), store.Messages()
	default:
		// The local database belongs to whoever runs the binary.
		repo, err := tomlrepo.NewRepository(v, nil)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("wire local repository: %w", err)
		}
		deps.Projects, deps.Threads, deps.Messages = repo.Projects(), repo.Threads(), repo.Messages()
	}

	a.service = application.NewService(deps)
	a.closers = append(a.closers, a.service.Close)
	a.render = consolerender.RenderOptions{Now: a.now()}

	logger.Debug("deck wired",
		zap.String("backend", a.backendURL),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("secrets_backend", cfg.Secrets.Backend),
	)

	return a, nil
}

// Close releases resources in reverse wiring order.
func (a *app) Close() {
	if a == nil {
		return
	}
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			a.closers[i]()
		}
	})
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zapConfig.OutputPaths = []string{cfg.File}
		zapConfig.ErrorOutputPaths = []string{cfg.File}
	}

	return zapConfig.Build(zap.AddStacktrace(zap.ErrorLevel))
}

func newSecretStore(cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretStore, error) {
	if cfg.Backend == config.SecretsFile {
		return filestore.NewStore(cfg.Dir), nil
	}

	return chainstore.NewPassFirstWithFileFallback(cfg.Dir, logger)
}
