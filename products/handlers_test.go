package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/product-catalog-go/auth"
	"github.com/user/product-catalog-go/language"
)

// newTestRouter mounts the product handlers the way main does, minus the
// redis-backed pieces: language resolution from Accept-Language, URL params
// via chi, and the authenticated user id injected per request.
func newTestRouter(h *Handlers, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(language.Middleware)
	if userID != "" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(auth.NewContextWithUserID(req.Context(), userID)))
			})
		})
	}
	r.Get("/products", h.HandleList())
	r.Get("/products/search", h.HandleSearch())
	r.Post("/products", h.HandleCreate())
	r.Post("/products/{id}/like", h.HandleToggleLike())
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, acceptLanguage string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestHandleList_DefaultsAndGarbageParams(t *testing.T) {
	svc, _, _ := newTestService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), language.English, cupRequest())
		require.NoError(t, err)
	}
	router := newTestRouter(NewHandlers(svc), "")

	tests := []struct {
		name   string
		target string
	}{
		{name: "no params", target: "/products"},
		{name: "garbage page", target: "/products?page=potato&limit=banana"},
		{name: "zero page", target: "/products?page=0&limit=0"},
		{name: "negative page", target: "/products?page=-2&limit=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, tt.target, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ListResponse
			decodeInto(t, rec, &resp)
			assert.Len(t, resp.Products, 3)
			assert.Equal(t, DefaultPage, resp.Pagination.CurrentPage)
			assert.Equal(t, DefaultLimit, resp.Pagination.ItemsPerPage)
		})
	}
}

func TestHandleSearch(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), language.English, cupRequest())
	require.NoError(t, err)
	router := newTestRouter(NewHandlers(svc), "")

	rec := doJSON(t, router, http.MethodGet, "/products/search?q=cup", "en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ListResponse
	decodeInto(t, rec, &resp)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Cup", resp.Products[0].Name)

	rec = doJSON(t, router, http.MethodGet, "/products/search", "en", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The same English query finds nothing under a Vietnamese header.
	rec = doJSON(t, router, http.MethodGet, "/products/search?q=cup", "vi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &resp)
	assert.Empty(t, resp.Products)
}

func TestHandleCreate(t *testing.T) {
	svc, _, _ := newTestService()
	router := newTestRouter(NewHandlers(svc), primitive.NewObjectID().Hex())

	rec := doJSON(t, router, http.MethodPost, "/products", "vi", cupRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var view View
	decodeInto(t, rec, &view)
	assert.Equal(t, "Cốc", view.Name, "created product comes back in the request language")
	assert.Equal(t, float64(5), view.Price)
	assert.Equal(t, 0, view.Likes)
	assert.NotEmpty(t, view.ID)
}

func TestHandleCreate_BadInput(t *testing.T) {
	svc, repo, _ := newTestService()
	router := newTestRouter(NewHandlers(svc), primitive.NewObjectID().Hex())

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid JSON that fails validation.
	bad := cupRequest()
	bad.Price = -1
	rec = doJSON(t, router, http.MethodPost, "/products", "", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.products)
}

func TestHandleToggleLike_Scenario(t *testing.T) {
	svc, _, _ := newTestService()
	userID := primitive.NewObjectID().Hex()
	router := newTestRouter(NewHandlers(svc), userID)

	rec := doJSON(t, router, http.MethodPost, "/products", "en", cupRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created View
	decodeInto(t, rec, &created)

	likeURL := fmt.Sprintf("/products/%s/like", created.ID)

	rec = doJSON(t, router, http.MethodPost, likeURL, "en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled ToggleResponse
	decodeInto(t, rec, &toggled)
	assert.Equal(t, "Product liked", toggled.Message)
	assert.Equal(t, 1, toggled.Product.Likes)
	assert.Equal(t, []string{userID}, toggled.Product.LikedBy)

	rec = doJSON(t, router, http.MethodPost, likeURL, "vi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &toggled)
	assert.Equal(t, "Đã bỏ thích sản phẩm", toggled.Message)
	assert.Equal(t, 0, toggled.Product.Likes)
	assert.Empty(t, toggled.Product.LikedBy)
	assert.Equal(t, "Cốc", toggled.Product.Name)
}

func TestHandleToggleLike_Errors(t *testing.T) {
	svc, _, _ := newTestService()
	userID := primitive.NewObjectID().Hex()

	t.Run("unauthenticated", func(t *testing.T) {
		router := newTestRouter(NewHandlers(svc), "")
		rec := doJSON(t, router, http.MethodPost, "/products/whatever/like", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		router := newTestRouter(NewHandlers(svc), userID)
		rec := doJSON(t, router, http.MethodPost, "/products/not-an-id/like", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		router := newTestRouter(NewHandlers(svc), userID)
		rec := doJSON(t, router, http.MethodPost, "/products/"+primitive.NewObjectID().Hex()+"/like", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
