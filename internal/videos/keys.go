package videos

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Options are the caller supplied listing options.
type Options struct {
	// Size is a display token: "HD", "FullHD" or "4K". Anything else disables
	// filtering.
	Size string
	// Locale is forwarded to the provider's search endpoint.
	Locale string
}

// normalized returns the recognized, non-empty options keyed by name.
func (o Options) normalized() map[string]string {
	out := make(map[string]string, 2)
	if size := ParseSize(o.Size); size != SizeAny {
		out["size"] = strings.ToLower(size.String())
	}
	if locale := strings.TrimSpace(o.Locale); locale != "" {
		out["locale"] = locale
	}
	return out
}

// BuildListingKey derives the cache key of a listing request. Equal option sets
// always produce the same key.
func BuildListingKey(provider, scope string, page, perPage int, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s:page=%d:per_page=%d", provider, scope, page, perPage)

	pairs := opts.normalized()
	names := make([]string, 0, len(pairs))
	for name := range pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, ":%s=%s", name, url.QueryEscape(pairs[name]))
	}
	return b.String()
}

// BuildSearchScope is the listing scope used for a search query.
func BuildSearchScope(query string) string {
	return "search:" + url.QueryEscape(strings.TrimSpace(query))
}

// BuildDetailKey derives the cache key of a single video lookup.
func BuildDetailKey(provider, id string) string {
	return fmt.Sprintf("%s:video:%s", provider, url.PathEscape(strings.TrimSpace(id)))
}
