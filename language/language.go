// Package language resolves the request language from the Accept-Language
// header and threads it through the request context. The resolved language is
// an explicit per-request value, never stored on shared state, so concurrent
// requests in different languages cannot interfere.
package language

import (
	"context"
	"net/http"
	"strings"
)

// Supported language tags.
const (
	English    = "en"
	Vietnamese = "vi"
)

type contextKey string

const languageContextKey contextKey = "language"

// Resolve derives a language tag from an Accept-Language header value.
// Any value containing "vi" selects Vietnamese; everything else, including
// an empty header, selects English. Pure and total.
func Resolve(header string) string {
	if strings.Contains(header, Vietnamese) {
		return Vietnamese
	}
	return English
}

// NewContext returns a child context carrying the given language tag.
func NewContext(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageContextKey, lang)
}

// FromContext returns the language stored in ctx, defaulting to English.
func FromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(languageContextKey).(string); ok {
		return lang
	}
	return English
}

// Middleware resolves the request language once and stores it in the request
// context for all downstream handlers.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := Resolve(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), lang)))
	})
}
