// Package providers selects a video aggregation backend by identifier.
package providers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vidhub/backend/internal/cache"
	"github.com/vidhub/backend/internal/pexels"
	"github.com/vidhub/backend/internal/videos"
)

// ID names a supported provider.
type ID string

const (
	Pexels ID = "pexels"

	// Default is used when no identifier is configured.
	Default = Pexels
)

// ParseID normalizes a configured identifier. Blank selects Default.
func ParseID(raw string) ID {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if id == "" {
		return Default
	}
	return id
}

// UnsupportedProviderError reports a request for an unregistered provider.
type UnsupportedProviderError struct {
	ID ID
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported video provider: %q", string(e.ID))
}

// Deps are the collaborators shared by every provider constructor.
type Deps struct {
	Loader     *cache.Loader
	HTTPClient *http.Client
	Aggregator videos.AggregatorConfig

	PexelsAPIKey  string
	PexelsBaseURL string
}

// Constructor builds a Service for one provider.
type Constructor func(deps Deps) (videos.Service, error)

// Factory is a registry of provider constructors.
type Factory struct {
	mu           sync.RWMutex
	constructors map[ID]Constructor
}

// NewFactory returns a Factory with the built-in providers registered.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[ID]Constructor)}
	f.Register(Pexels, newPexels)
	return f
}

// Register adds or replaces the constructor for id.
func (f *Factory) Register(id ID, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[ParseID(string(id))] = ctor
}

// Supported lists the registered identifiers in sorted order.
func (f *Factory) Supported() []ID {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]ID, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Create builds the Service registered for id.
func (f *Factory) Create(id ID, deps Deps) (videos.Service, error) {
	id = ParseID(string(id))

	f.mu.RLock()
	ctor, ok := f.constructors[id]
	f.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedProviderError{ID: id}
	}

	svc, err := ctor(deps)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", id, err)
	}
	return svc, nil
}

func newPexels(deps Deps) (videos.Service, error) {
	opts := []pexels.Option{}
	if deps.HTTPClient != nil {
		opts = append(opts, pexels.WithHTTPClient(deps.HTTPClient))
	}
	if strings.TrimSpace(deps.PexelsBaseURL) != "" {
		opts = append(opts, pexels.WithBaseURL(deps.PexelsBaseURL))
	}

	timeout := deps.Aggregator.Timeout
	if timeout <= 0 {
		timeout = videos.DefaultTimeout
	}
	opts = append(opts, pexels.WithTimeout(timeout+time.Second))

	client, err := pexels.New(deps.PexelsAPIKey, opts...)
	if err != nil {
		return nil, err
	}
	return videos.NewAggregator(client, deps.Loader, deps.Aggregator), nil
}
