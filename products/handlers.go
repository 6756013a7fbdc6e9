package products

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/auth"
	"github.com/user/product-catalog-go/language"
)

// Handlers wraps the product Service with HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// queryInt parses a positive integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// HandleList godoc
// @Summary List products
// @Description Returns one page of products localized into the request language.
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param Accept-Language header string false "Response language (en or vi)" default(en)
// @Success 200 {object} products.ListResponse
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /products [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := language.FromContext(r.Context())
		page := queryInt(r, "page", DefaultPage)
		limit := queryInt(r, "limit", DefaultLimit)

		resp, err := h.service.List(r.Context(), lang, page, limit)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleSearch godoc
// @Summary Search products
// @Description Case-insensitive substring search over product names in the request language only.
// @Tags Products
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param Accept-Language header string false "Response language (en or vi)" default(en)
// @Success 200 {object} products.ListResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing search query"
// @Router /products/search [get]
func (h *Handlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := language.FromContext(r.Context())
		q := r.URL.Query().Get("q")
		page := queryInt(r, "page", DefaultPage)
		limit := queryInt(r, "limit", DefaultLimit)

		resp, err := h.service.Search(r.Context(), lang, q, page, limit)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleCreate godoc
// @Summary Create a product
// @Description Creates a product with both language variants of every field.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productBody body products.CreateRequest true "Product fields"
// @Success 201 {object} products.View
// @Failure 400 {object} apperror.ErrorResponse "Missing fields or non-positive price"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Router /products [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		lang := language.FromContext(r.Context())
		view, err := h.service.Create(r.Context(), lang, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, view)
	}
}

// HandleToggleLike godoc
// @Summary Like or unlike a product
// @Description Flips the caller's like on a product and returns the updated product.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id"
// @Success 200 {object} products.ToggleResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid product id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "Product not found"
// @Router /products/{id}/like [post]
func (h *Handlers) HandleToggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("not authenticated", nil))
			return
		}

		lang := language.FromContext(r.Context())
		productID := chi.URLParam(r, "id")

		resp, err := h.service.ToggleLike(r.Context(), lang, productID, userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
