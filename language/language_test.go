package language

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: "en"},
		{name: "english", header: "en", want: "en"},
		{name: "english with region", header: "en-US,en;q=0.9", want: "en"},
		{name: "vietnamese", header: "vi", want: "vi"},
		{name: "vietnamese with region", header: "vi-VN,vi;q=0.9,en;q=0.8", want: "vi"},
		{name: "vietnamese anywhere in value", header: "en;q=0.8,vi;q=0.9", want: "vi"},
		{name: "unsupported language", header: "fr-FR", want: "en"},
		{name: "garbage", header: "!!!", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.header); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestFromContext_DefaultsToEnglish(t *testing.T) {
	if got := FromContext(context.Background()); got != English {
		t.Errorf("FromContext on empty context = %q, want %q", got, English)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), Vietnamese)
	if got := FromContext(ctx); got != Vietnamese {
		t.Errorf("FromContext = %q, want %q", got, Vietnamese)
	}
}

func TestMiddleware_SetsLanguage(t *testing.T) {
	var seen string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Accept-Language", "vi")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != Vietnamese {
		t.Errorf("handler saw language %q, want %q", seen, Vietnamese)
	}
}
