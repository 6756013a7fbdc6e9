package cache

import (
	"net/url"
	"testing"
)

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		query  url.Values
		lang   string
		want   string
	}{
		{
			name:   "no params uses default token",
			prefix: "products",
			path:   "/products",
			query:  url.Values{},
			lang:   "en",
			want:   "products:/products:default:en",
		},
		{
			name:   "single param",
			prefix: "products",
			path:   "/products",
			query:  url.Values{"page": []string{"1"}},
			lang:   "en",
			want:   "products:/products:page=1:en",
		},
		{
			name:   "params sorted by key",
			prefix: "products",
			path:   "/products",
			query:  url.Values{"page": []string{"2"}, "limit": []string{"10"}},
			lang:   "en",
			want:   "products:/products:limit=10&page=2:en",
		},
		{
			name:   "search prefix and query",
			prefix: "products:search",
			path:   "/products/search",
			query:  url.Values{"q": []string{"cup"}},
			lang:   "vi",
			want:   "products:search:/products/search:q=cup:vi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildKey(tt.prefix, tt.path, tt.query, tt.lang); got != tt.want {
				t.Errorf("BuildKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildKey_OrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("b", "2")
	a.Set("a", "1")

	b := url.Values{}
	b.Set("a", "1")
	b.Set("b", "2")

	keyA := BuildKey("products", "/products", a, "en")
	keyB := BuildKey("products", "/products", b, "en")
	if keyA != keyB {
		t.Errorf("keys differ for same params in different order: %q vs %q", keyA, keyB)
	}
}

func TestBuildKey_LanguageSeparatesKeySpace(t *testing.T) {
	query := url.Values{"page": []string{"1"}}
	en := BuildKey("products", "/products", query, "en")
	vi := BuildKey("products", "/products", query, "vi")
	if en == vi {
		t.Errorf("expected different keys per language, both were %q", en)
	}
}
