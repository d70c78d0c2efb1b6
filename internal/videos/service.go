package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/vidhub/backend/internal/cache"
	"github.com/vidhub/backend/internal/logging"
)

const (
	// DefaultPage and DefaultPerPage apply when callers pass values below 1.
	DefaultPage    = 1
	DefaultPerPage = 10

	DefaultListingTTL = 30 * time.Minute
	DefaultDetailTTL  = time.Hour
	// DefaultBatchSize is how many popular videos are requested upstream per
	// miss. The listing is paginated locally over this batch.
	DefaultBatchSize = 80
	DefaultTimeout   = 10 * time.Second
)

// Service is the video aggregation contract consumed by the HTTP layer.
// Failures are reported inside the returned value, never as errors.
type Service interface {
	FetchPopular(ctx context.Context, page, perPage int, opts Options) PageResult
	Search(ctx context.Context, query string, page, perPage int, opts Options) PageResult
	FetchByID(ctx context.Context, id string) DetailResult
}

// AggregatorConfig tunes an Aggregator. Zero fields take the package defaults.
type AggregatorConfig struct {
	ListingTTL time.Duration
	DetailTTL  time.Duration
	BatchSize  int
	Timeout    time.Duration
}

func (c AggregatorConfig) withDefaults() AggregatorConfig {
	if c.ListingTTL <= 0 {
		c.ListingTTL = DefaultListingTTL
	}
	if c.DetailTTL <= 0 {
		c.DetailTTL = DefaultDetailTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Aggregator implements Service on top of a provider Client and a cache.
// It holds no per-request state.
type Aggregator struct {
	client    Client
	loader    *cache.Loader
	cfg       AggregatorConfig
	name      string
	keyPrefix string
}

var _ Service = (*Aggregator)(nil)

// NewAggregator wires client and loader. A nil loader disables caching.
func NewAggregator(client Client, loader *cache.Loader, cfg AggregatorConfig) *Aggregator {
	name := "provider"
	if client != nil && strings.TrimSpace(client.Name()) != "" {
		name = client.Name()
	}
	return &Aggregator{
		client:    client,
		loader:    loader,
		cfg:       cfg.withDefaults(),
		name:      name,
		keyPrefix: strings.ToLower(name),
	}
}

// FetchPopular lists the provider's popular videos, filtered by opts.Size and
// paginated locally.
func (a *Aggregator) FetchPopular(ctx context.Context, page, perPage int, opts Options) PageResult {
	page, perPage = normalizePaging(page, perPage)

	ctx, span := logging.StartSpan(ctx, "videos.fetch_popular")
	defer span.End()
	logger := logging.FromContext(ctx)
	logger.Info("fetching popular videos", "provider", a.name, "page", page, "per_page", perPage, "size", opts.Size)

	if a.client == nil {
		return a.listingFailure(ctx, ErrProviderUnavailable, page, perPage)
	}

	// Popular listings ignore locale upstream, so it stays out of the key.
	key := BuildListingKey(a.keyPrefix, "popular", page, perPage, Options{Size: opts.Size})
	size := ParseSize(opts.Size)

	result, err := guard(func() (PageResult, error) {
		return cache.Fetch(ctx, a.loader, key, a.cfg.ListingTTL, func(ctx context.Context) (PageResult, bool, error) {
			records, err := call(ctx, a.cfg.Timeout, "popular", func(ctx context.Context) ([]VideoRecord, error) {
				return a.client.Popular(ctx, Params{PerPage: a.cfg.BatchSize})
			})
			if err != nil {
				return PageResult{}, false, err
			}

			filtered := FilterBySize(records, size)
			result := PageResult{
				Items:      FormatSummaries(Paginate(filtered, page, perPage)),
				Page:       page,
				PerPage:    perPage,
				TotalPages: TotalPages(len(filtered), perPage),
			}

			if len(filtered) == 0 {
				logger.Warn("no popular videos found, skipping cache", "upstream", len(records), "size", opts.Size)
				return result, false, nil
			}

			logger.Info("fetched popular videos", "upstream", len(records), "filtered", len(filtered), "items", len(result.Items))
			return result, true, nil
		})
	})
	if err != nil {
		return a.listingFailure(ctx, err, page, perPage)
	}
	return result
}

// Search queries the provider. Pagination is delegated upstream. A blank query
// falls back to FetchPopular.
func (a *Aggregator) Search(ctx context.Context, query string, page, perPage int, opts Options) PageResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return a.FetchPopular(ctx, page, perPage, opts)
	}
	page, perPage = normalizePaging(page, perPage)

	ctx, span := logging.StartSpan(ctx, "videos.search")
	defer span.End()
	logger := logging.FromContext(ctx)
	logger.Info("searching videos", "provider", a.name, "query", query, "page", page, "per_page", perPage, "size", opts.Size)

	if a.client == nil {
		return a.listingFailure(ctx, ErrProviderUnavailable, page, perPage)
	}

	key := BuildListingKey(a.keyPrefix, BuildSearchScope(query), page, perPage, opts)
	params := Params{
		Page:    page,
		PerPage: perPage,
		Locale:  strings.TrimSpace(opts.Locale),
		Size:    ParseSize(opts.Size),
	}

	result, err := guard(func() (PageResult, error) {
		return cache.Fetch(ctx, a.loader, key, a.cfg.ListingTTL, func(ctx context.Context) (PageResult, bool, error) {
			found, err := call(ctx, a.cfg.Timeout, "search", func(ctx context.Context) (SearchPage, error) {
				return a.client.Search(ctx, query, params)
			})
			if err != nil {
				return PageResult{}, false, err
			}

			result := PageResult{
				Items:      FormatSummaries(found.Videos),
				Page:       page,
				PerPage:    perPage,
				TotalPages: TotalPages(found.TotalResults, perPage),
			}

			if found.TotalResults == 0 {
				logger.Warn("no videos found for query, skipping cache", "query", query)
				return result, false, nil
			}

			logger.Info("searched videos", "query", query, "total_results", found.TotalResults, "items", len(result.Items))
			return result, true, nil
		})
	})
	if err != nil {
		return a.listingFailure(ctx, err, page, perPage)
	}
	return result
}

// FetchByID looks up a single video. Not-found outcomes are never cached.
func (a *Aggregator) FetchByID(ctx context.Context, id string) DetailResult {
	id = strings.TrimSpace(id)

	ctx, span := logging.StartSpan(ctx, "videos.fetch_by_id")
	defer span.End()
	logger := logging.FromContext(ctx)
	logger.Info("fetching video", "provider", a.name, "id", id)

	if id == "" {
		return DetailResult{Error: notFoundMessage}
	}
	if a.client == nil {
		return a.detailFailure(ctx, ErrProviderUnavailable, id)
	}

	key := BuildDetailKey(a.keyPrefix, id)

	result, err := guard(func() (DetailResult, error) {
		return cache.Fetch(ctx, a.loader, key, a.cfg.DetailTTL, func(ctx context.Context) (DetailResult, bool, error) {
			found, err := call(ctx, a.cfg.Timeout, "find", func(ctx context.Context) (mo.Option[VideoRecord], error) {
				return a.client.Find(ctx, id)
			})
			if err != nil {
				return DetailResult{}, false, err
			}

			record, ok := found.Get()
			if !ok {
				return DetailResult{}, false, ErrNotFound
			}

			detail := FormatDetail(record)
			return DetailResult{Video: &detail}, true, nil
		})
	})
	if err != nil {
		return a.detailFailure(ctx, err, id)
	}
	return result
}

func (a *Aggregator) listingFailure(ctx context.Context, err error, page, perPage int) PageResult {
	message := ErrorMessage(a.name, err)
	logging.FromContext(ctx).Error("video listing failed", "provider", a.name, "page", page, "per_page", perPage, "message", message, "error", err)
	return errorPage(message, page, perPage)
}

func (a *Aggregator) detailFailure(ctx context.Context, err error, id string) DetailResult {
	message := detailErrorMessage(a.name, err)
	logger := logging.FromContext(ctx)
	if message == notFoundMessage {
		logger.Warn("video not found", "provider", a.name, "id", id, "error", err)
	} else {
		logger.Error("video lookup failed", "provider", a.name, "id", id, "message", message, "error", err)
	}
	return DetailResult{Error: message}
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// guard turns a panic in fn into an error.
func guard[T any](fn func() (T, error)) (value T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &panicError{value: rec}
		}
	}()
	return fn()
}

// call runs a provider operation bounded by timeout. It returns when the
// deadline passes even if fn ignores its context.
func call[T any](ctx context.Context, timeout time.Duration, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: &panicError{value: rec}}
			}
		}()
		value, err := fn(callCtx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err == nil {
			return out.value, nil
		}
		err := out.err
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return zero, &callError{op: op, err: err}
	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return zero, &callError{op: op, err: err}
	}
}
