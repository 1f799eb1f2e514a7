package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/config"
	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/server"
	"github.com/kapu/kokkai-giin-go/internal/service/cache"
	"github.com/kapu/kokkai-giin-go/internal/service/database"
	"github.com/kapu/kokkai-giin-go/internal/service/dataset"
	"github.com/kapu/kokkai-giin-go/internal/service/kokkai"
	"github.com/kapu/kokkai-giin-go/internal/service/scraper"
)

// Container bundles the services a command needs. Connections to Postgres and
// Redis are opened lazily by the accessors that need them and released by Close.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *dataset.Store

	fetcher scraper.Fetcher

	mu      sync.Mutex
	closers []func()
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store := dataset.NewStore(cfg.Storage.DataDir, logger)

	fetcher := scraper.NewHTTPFetcher(scraper.FetcherConfig{
		UserAgent:      cfg.Scraper.UserAgent,
		AcceptLanguage: cfg.Scraper.AcceptLanguage,
		Timeout:        cfg.Scraper.RequestTimeout,
	}, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		fetcher: fetcher,
	}, nil
}

// Orchestrator wires the scraper for one chamber.
func (c *Container) Orchestrator(chamber domain.Chamber) (*scraper.Orchestrator, error) {
	var listURLs []string
	switch chamber {
	case domain.ChamberRepresentatives:
		listURLs = c.Config.Scraper.ShugiinListURLs
	case domain.ChamberCouncillors:
		listURLs = c.Config.Scraper.SangiinListURLs
	}

	extractor, err := scraper.NewExtractor(chamber, listURLs, c.Logger)
	if err != nil {
		return nil, err
	}

	return scraper.NewOrchestrator(extractor, c.fetcher, c.Store,
		scraper.FixedPause(c.Config.Scraper.ProfileDelay), c.Logger), nil
}

func (c *Container) Merger() *dataset.Merger {
	return dataset.NewMerger(c.Store, constants.DataFiles.Canonical, c.Logger)
}

// PoliticianRepository connects to Postgres and prepares the schema.
func (c *Container) PoliticianRepository(ctx context.Context) (*database.PoliticianRepository, error) {
	postgresSvc, err := database.NewPostgresService(ctx, database.PostgresConfig{
		Host:     c.Config.Postgres.Host,
		Port:     c.Config.Postgres.Port,
		User:     c.Config.Postgres.User,
		Password: c.Config.Postgres.Password,
		Database: c.Config.Postgres.Database,
		SSLMode:  c.Config.Postgres.SSLMode,
	}, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	c.addCloser(func() {
		_ = postgresSvc.Close()
	})

	repo := database.NewPoliticianRepository(postgresSvc, c.Logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// KokkaiClient builds the proceedings client. Redis is optional: when it is
// disabled or unreachable the client runs without a cache.
func (c *Container) KokkaiClient(ctx context.Context) *kokkai.Client {
	var responseCache kokkai.ResponseCache

	if c.Config.Redis.Enabled {
		cacheSvc, err := cache.NewCacheService(ctx, cache.CacheConfig{
			Host:     c.Config.Redis.Host,
			Port:     c.Config.Redis.Port,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		}, c.Logger)
		if err != nil {
			c.Logger.Warn("Redis unavailable, Kokkai responses will not be cached", zap.Error(err))
		} else {
			responseCache = cacheSvc
			c.addCloser(func() {
				_ = cacheSvc.Close()
			})
		}
	}

	return kokkai.NewClient(kokkai.Config{
		BaseURL:  c.Config.Kokkai.BaseURL,
		CacheTTL: c.Config.Kokkai.CacheTTL,
	}, responseCache, c.Logger)
}

func (c *Container) Server(ctx context.Context, addr string) *server.Server {
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	return server.New(server.Config{
		Addr:           addr,
		AllowedOrigins: c.Config.Server.AllowedOrigins,
		Canonical:      constants.DataFiles.Canonical,
	}, c.Store, c.KokkaiClient(ctx), c.Logger)
}

func (c *Container) addCloser(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
