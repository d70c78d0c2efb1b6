package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vidhub/backend/internal/auth"
	"github.com/vidhub/backend/internal/cache"
	"github.com/vidhub/backend/internal/config"
	"github.com/vidhub/backend/internal/handlers"
	"github.com/vidhub/backend/internal/logging"
	"github.com/vidhub/backend/internal/middleware"
	"github.com/vidhub/backend/internal/providers"
	"github.com/vidhub/backend/internal/videos"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// services owns the long lived collaborators built from a Config.
type services struct {
	deps    handlers.Dependencies
	store   cache.Store
	closers []io.Closer
}

func (r *services) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, cfg config.Config) (*services, error) {
	store, closer, err := buildStore(cfg.Cache)
	if err != nil {
		return nil, err
	}
	rt := &services{store: store, closers: []io.Closer{closer}}

	if p, ok := store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			logging.FromContext(ctx).Warn("cache backend unreachable, continuing uncached until it recovers", "backend", cfg.Cache.Backend, "error", err)
		}
	}

	loader := cache.NewLoader(store, cache.WithDedupe(cfg.Cache.Dedupe))
	svc, err := providers.NewFactory().Create(providers.ParseID(cfg.Provider), providers.Deps{
		Loader: loader,
		Aggregator: videos.AggregatorConfig{
			ListingTTL: cfg.Cache.ListingTTL,
			DetailTTL:  cfg.Cache.DetailTTL,
			BatchSize:  cfg.PopularBatchSize,
			Timeout:    cfg.ProviderTimeout,
		},
		PexelsAPIKey:  cfg.Pexels.APIKey,
		PexelsBaseURL: cfg.Pexels.BaseURL,
	})
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	gate, err := auth.NewPasswordGate(cfg.Auth.FrontendPassword)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("hash frontend password: %w", err)
	}

	var sessions auth.SessionStore = auth.NewMemorySessionStore()
	if rs, ok := store.(*cache.RedisStore); ok {
		sessions = auth.NewRedisSessionStore(rs.Client(), cfg.Cache.Prefix)
	}

	rt.deps = handlers.Dependencies{
		Videos:       svc,
		Sessions:     auth.NewManager(cfg.Auth.SessionTTL, sessions),
		Password:     gate,
		APIKey:       cfg.Auth.APIKey,
		LoginLimiter: middleware.NewPerMinuteLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		Provider:     cfg.Provider,
	}
	return rt, nil
}

func buildStore(cfg config.CacheConfig) (cache.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewRedisStore(client, cfg.Prefix)
		return store, store, nil
	case config.CacheMemory, "":
		store := cache.NewMemoryStore()
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// check builds every dependency and reports the outcome to w. Unlike serve it
// treats an unreachable cache as fatal.
func check(ctx context.Context, cfg config.Config, w io.Writer) error {
	rt, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if p, ok := rt.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("cache backend %s: %w", cfg.Cache.Backend, err)
		}
	}

	fmt.Fprintf(w, "provider %s: ok\ncache %s: ok\n", cfg.Provider, cfg.Cache.Backend)
	return nil
}
