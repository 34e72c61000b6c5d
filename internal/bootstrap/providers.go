package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/config"
	"stockquotes-ingestor/internal/domain"
	infraconfig "stockquotes-ingestor/internal/infrastructure/config"
	httpserver "stockquotes-ingestor/internal/infrastructure/http"
	"stockquotes-ingestor/internal/infrastructure/httpx"
	"stockquotes-ingestor/internal/infrastructure/logx"
	"stockquotes-ingestor/internal/infrastructure/pg"
	"stockquotes-ingestor/internal/infrastructure/provider"
	redisstore "stockquotes-ingestor/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Source pairs a quote source with the tag written to the source column.
type Source struct {
	Quotes application.QuoteSource
	Tag    string
}

// IngestApp is one configured batch pass.
type IngestApp struct {
	Service *application.IngestService
	Symbols []string
}

func (a *IngestApp) Run(ctx context.Context) (application.BatchOutcome, error) {
	return a.Service.Run(ctx, a.Symbols)
}

type APIApp struct {
	Addr    string
	Handler http.Handler
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

// ProvideDB fails with application.ErrStoreUnavailable when the store cannot be reached.
func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, fmt.Errorf("%w: %w", application.ErrStoreUnavailable, ErrMissingDBURL)
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL, cfg.PGMaxConns)
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %w", application.ErrStoreUnavailable, err)
	}
	if err := db.WaitReady(ctx, cfg.StoreConnectTimeout); err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("%w: %w", application.ErrStoreUnavailable, err)
	}
	if cfg.MigrateOnStart {
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
	}
	cleanup := func() {
		if log != nil {
			log.Info("closing pg")
		}
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideStockPriceRepo(db *pg.DB) *pg.StockPriceRepo { return pg.NewStockPriceRepo(db) }

func ProvideHTTPClient(cfg config.Config) *httpx.Client {
	return httpx.New(cfg.FetchTimeout, infraconfig.DefaultUserAgent)
}

func ProvideSource(cfg config.Config, client *httpx.Client) (Source, error) {
	switch cfg.Provider {
	case "alphavantage":
		return Source{
			Quotes: &provider.AlphaVantageProvider{
				BaseURL: cfg.AlphaVantageBase,
				APIKey:  cfg.AlphaVantageKey,
				Client:  client,
			},
			Tag: domain.SourceAlphaVantage,
		}, nil
	case "fake":
		return Source{Quotes: provider.NewFake(cfg.FakePrice), Tag: domain.SourceFake}, nil
	default:
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func ProvideBatchLock(cfg config.Config) (application.BatchLock, func(), error) {
	switch cfg.LockBackend {
	case "", "none":
		return application.NoopLock{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.New(client, cfg.LockTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("%w: %q", ErrUnknownLockBackend, cfg.LockBackend)
	}
}

func ProvideIngestService(src Source, repo *pg.StockPriceRepo, lock application.BatchLock, log *zap.Logger, cfg config.Config) *application.IngestService {
	return application.NewIngestService(src.Quotes, repo, src.Tag,
		application.WithLogger(log),
		application.WithLock(lock),
		application.WithPacing(cfg.PacingDelay),
		application.WithFetchTimeout(cfg.FetchTimeout),
		application.WithStoreTimeout(cfg.StoreTimeout),
	)
}

func ProvideIngestApp(svc *application.IngestService, cfg config.Config) *IngestApp {
	return &IngestApp{Service: svc, Symbols: cfg.Symbols}
}

func ProvidePriceService(repo *pg.StockPriceRepo) *application.PriceService {
	return application.NewPriceService(repo)
}

func ProvideAPIApp(svc *application.PriceService, db *pg.DB, cfg config.Config) *APIApp {
	srv := httpserver.NewServer(svc)
	srv.SetReadyCheck(db.Ping)
	return &APIApp{Addr: ":" + cfg.Port, Handler: httpserver.NewRouter(srv)}
}
