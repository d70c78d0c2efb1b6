// Package videos aggregates stock video listings and details from an upstream
// provider behind a cache.
package videos

import (
	"context"

	"github.com/samber/mo"
)

// VideoRecord is the provider-native view of a single stock video.
type VideoRecord struct {
	ID       int64
	Width    int
	Height   int
	Duration int
	User     UserRecord
	URL      string
	Files    []VideoFileRecord
	Pictures []string
}

// UserRecord identifies the creator that owns a video.
type UserRecord struct {
	Name string
	URL  string
}

// VideoFileRecord is one rendition of a video.
type VideoFileRecord struct {
	Link     string
	Quality  string
	Width    int
	Height   int
	FileType string
}

// Params carries the optional upstream request parameters. Zero values are
// left out of the upstream request.
type Params struct {
	Page    int
	PerPage int
	Locale  string
	Size    Size
}

// SearchPage is one upstream page of search results.
type SearchPage struct {
	Videos       []VideoRecord
	TotalResults int
}

// Client is the upstream provider boundary. Implementations wrap failures in
// ErrConnection, ErrTimeout, ErrMalformedResponse or ErrNotFound so the
// Aggregator can normalize them.
type Client interface {
	Name() string
	Popular(ctx context.Context, params Params) ([]VideoRecord, error)
	Search(ctx context.Context, query string, params Params) (SearchPage, error)
	Find(ctx context.Context, id string) (mo.Option[VideoRecord], error)
}
