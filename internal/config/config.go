// Package config loads runtime settings from the environment and an optional
// vidhub.toml file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "VIDHUB"
	configName = "vidhub"
)

// EnvKeyReplacer maps config keys onto environment variable names, so
// cache.listing_ttl is read from VIDHUB_CACHE_LISTING_TTL.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Keys.
const (
	KeyPort             = "port"
	KeyLogLevel         = "log.level"
	KeyProvider         = "provider.name"
	KeyProviderTimeout  = "provider.timeout"
	KeyPexelsAPIKey     = "pexels.api_key"
	KeyPexelsBaseURL    = "pexels.base_url"
	KeyPopularBatchSize = "popular.batch_size"
	KeyCacheBackend     = "cache.backend"
	KeyCacheRedisURL    = "cache.redis_url"
	KeyCachePrefix      = "cache.prefix"
	KeyCacheListingTTL  = "cache.listing_ttl"
	KeyCacheDetailTTL   = "cache.detail_ttl"
	KeyCacheDedupe      = "cache.dedupe"
	KeyAuthAPIKey       = "auth.api_key"
	KeyAuthPassword     = "auth.frontend_password"
	KeyAuthSessionTTL   = "auth.session_ttl"
	KeyAuthLoginRate    = "auth.login_rate"
	KeyAuthLoginBurst   = "auth.login_burst"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var defaults = map[string]any{
	KeyPort:             8080,
	KeyLogLevel:         "info",
	KeyProvider:         "pexels",
	KeyProviderTimeout:  10 * time.Second,
	KeyPexelsAPIKey:     "",
	KeyPexelsBaseURL:    "https://api.pexels.com",
	KeyPopularBatchSize: 80,
	KeyCacheBackend:     CacheMemory,
	KeyCacheRedisURL:    "",
	KeyCachePrefix:      "vidhub:",
	KeyCacheListingTTL:  30 * time.Minute,
	KeyCacheDetailTTL:   60 * time.Minute,
	KeyCacheDedupe:      true,
	KeyAuthAPIKey:       "",
	KeyAuthPassword:     "",
	KeyAuthSessionTTL:   24 * time.Hour,
	KeyAuthLoginRate:    5,
	KeyAuthLoginBurst:   5,
}

// Config captures the runtime configuration of the service.
type Config struct {
	Port     int
	LogLevel string

	Provider         string
	ProviderTimeout  time.Duration
	PopularBatchSize int
	Pexels           PexelsConfig

	Cache CacheConfig
	Auth  AuthConfig
}

// PexelsConfig holds the Pexels API credentials.
type PexelsConfig struct {
	APIKey  string
	BaseURL string
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend    string
	RedisURL   string
	Prefix     string
	ListingTTL time.Duration
	DetailTTL  time.Duration
	Dedupe     bool
}

// AuthConfig configures the credential gate.
type AuthConfig struct {
	APIKey           string
	FrontendPassword string
	SessionTTL       time.Duration
	// LoginRate is the number of login attempts allowed per minute per IP.
	LoginRate  int
	LoginBurst int
}

// Option customises Load.
type Option func(*loader)

type loader struct {
	fs   afero.Fs
	file string
	dirs []string
}

// WithFs reads the config file from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *loader) {
		l.fs = fs
	}
}

// WithFile reads an explicit config file. Its absence is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = path
	}
}

// WithSearchPaths replaces the directories searched for vidhub.toml.
func WithSearchPaths(dirs ...string) Option {
	return func(l *loader) {
		l.dirs = dirs
	}
}

// Load resolves the configuration. Environment variables override the config
// file, which overrides the defaults.
func Load(opts ...Option) (Config, error) {
	l := &loader{fs: afero.NewOsFs(), dirs: []string{".", "/etc/vidhub"}}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigType("toml")
	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(configName)
		for _, dir := range l.dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	v.SetTypeByDefaultValue(true)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:             v.GetInt(KeyPort),
		LogLevel:         v.GetString(KeyLogLevel),
		Provider:         strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider))),
		ProviderTimeout:  v.GetDuration(KeyProviderTimeout),
		PopularBatchSize: v.GetInt(KeyPopularBatchSize),
		Pexels: PexelsConfig{
			APIKey:  strings.TrimSpace(v.GetString(KeyPexelsAPIKey)),
			BaseURL: v.GetString(KeyPexelsBaseURL),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(strings.TrimSpace(v.GetString(KeyCacheBackend))),
			RedisURL:   v.GetString(KeyCacheRedisURL),
			Prefix:     v.GetString(KeyCachePrefix),
			ListingTTL: v.GetDuration(KeyCacheListingTTL),
			DetailTTL:  v.GetDuration(KeyCacheDetailTTL),
			Dedupe:     v.GetBool(KeyCacheDedupe),
		},
		Auth: AuthConfig{
			APIKey:           strings.TrimSpace(v.GetString(KeyAuthAPIKey)),
			FrontendPassword: v.GetString(KeyAuthPassword),
			SessionTTL:       v.GetDuration(KeyAuthSessionTTL),
			LoginRate:        v.GetInt(KeyAuthLoginRate),
			LoginBurst:       v.GetInt(KeyAuthLoginBurst),
		},
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s: invalid port %d", KeyPort, c.Port))
	}
	if c.Provider == "pexels" && c.Pexels.APIKey == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyPexelsAPIKey))
	}
	if c.Auth.APIKey == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyAuthAPIKey))
	}
	if !lo.Contains([]string{CacheMemory, CacheRedis}, c.Cache.Backend) {
		errs = append(errs, fmt.Errorf("%s: unknown backend %q", KeyCacheBackend, c.Cache.Backend))
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is %s", KeyCacheRedisURL, KeyCacheBackend, CacheRedis))
	}

	return errors.Join(errs...)
}
