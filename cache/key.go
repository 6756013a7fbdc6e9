package cache

import (
	"net/url"
	"strings"
)

// defaultQueryToken stands in for the query-string segment when a request
// carries no parameters, keeping the key shape stable.
const defaultQueryToken = "default"

// BuildKey derives a deterministic cache key from a route prefix, request
// path, query parameters and resolved language.
//
// Format: prefix:path:queryString:language
//
// The query string is canonical (url.Values.Encode sorts by key), so two
// requests differing only in parameter order produce the same key. The
// language segment keeps English and Vietnamese responses for the same query
// from colliding, and the shared prefix lets a single trailing-wildcard
// pattern clear every variant at once.
func BuildKey(prefix, path string, query url.Values, lang string) string {
	qs := query.Encode()
	if qs == "" {
		qs = defaultQueryToken
	}
	return strings.Join([]string{prefix, path, qs, lang}, ":")
}
