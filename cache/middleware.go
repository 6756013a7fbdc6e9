package cache

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/product-catalog-go/language"
	"github.com/user/product-catalog-go/logging"
)

// Middleware returns read-through cache middleware for idempotent GET routes.
//
// On a hit the cached JSON body is returned immediately with status 200,
// short-circuiting the handler. On a miss the response is captured and, for
// 2xx responses only, written back to the cache asynchronously so the caller
// never waits on the cache backend. The key incorporates the resolved request
// language, keeping localized variants of the same resource separate.
func Middleware(store Store, prefix string, ttl time.Duration) func(next http.Handler) http.Handler {
	log := logging.NewLogger("cache-middleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			lang := language.FromContext(r.Context())
			key := BuildKey(prefix, r.URL.Path, r.URL.Query(), lang)

			if cached, ok := store.Get(r.Context(), key); ok {
				log.Debug().Str("key", key).Msg("cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(cached)
				return
			}
			log.Debug().Str("key", key).Msg("cache miss")

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var buf bytes.Buffer
			ww.Tee(&buf)

			next.ServeHTTP(ww, r)

			if ww.Status() >= 200 && ww.Status() < 300 {
				body := make([]byte, buf.Len())
				copy(body, buf.Bytes())
				// The request context may be cancelled as soon as the
				// response is flushed, so the write-back uses its own.
				go store.Set(context.Background(), key, body, ttl)
			}
		})
	}
}
