package products

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/cache"
)

// productCachePattern matches every cached product response, across routes,
// query variants and languages. Every product mutation clears the whole
// key-space; the coarse granularity trades a little staleness for a lot of
// simplicity.
const productCachePattern = "products:*"

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Service implements the product operations: paginated listing,
// language-scoped search, creation, and the like-toggle engine.
type Service struct {
	repo     Repository
	cache    cache.Store
	validate *validator.Validate
}

// NewService creates a product service.
func NewService(repo Repository, cacheStore cache.Store, validate *validator.Validate) *Service {
	return &Service{repo: repo, cache: cacheStore, validate: validate}
}

// totalPages computes ceil(total/limit) without floating point.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func localizeAll(items []Product, lang string) []View {
	views := make([]View, 0, len(items))
	for i := range items {
		views = append(views, items[i].Localize(lang))
	}
	return views
}

// List returns one page of products localized into lang. A page beyond the
// end of the collection yields an empty list, not an error.
func (s *Service) List(ctx context.Context, lang string, page, limit int) (*ListResponse, error) {
	skip := int64(page-1) * int64(limit)

	items, err := s.repo.List(ctx, skip, int64(limit))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list products", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count products", err)
	}

	return &ListResponse{
		Products: localizeAll(items, lang),
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages(total, limit),
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// Search returns one page of products whose name in lang contains q,
// case-insensitively. The match is scoped to the resolved language only: an
// English query does not match Vietnamese names and vice versa.
func (s *Service) Search(ctx context.Context, lang, q string, page, limit int) (*ListResponse, error) {
	if q == "" {
		return nil, apperror.NewBadRequestError("search query is required", nil)
	}

	skip := int64(page-1) * int64(limit)

	items, err := s.repo.Search(ctx, lang, q, skip, int64(limit))
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to search products", err)
	}
	total, err := s.repo.SearchCount(ctx, lang, q)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to count search results", err)
	}

	return &ListResponse{
		Products: localizeAll(items, lang),
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages(total, limit),
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// Create validates and persists a new product with zero likes, then
// invalidates the product cache key-space. Nothing is persisted when
// validation fails.
func (s *Service) Create(ctx context.Context, lang string, req CreateRequest) (*View, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, apperror.NewBadRequestError("all fields are required in both languages and price must be positive", err)
	}
	// validator's required tag treats "   " as present, so trimmed emptiness
	// is checked explicitly for every localized variant.
	for _, text := range []LocalizedText{req.Name, req.Category, req.Subcategory} {
		if strings.TrimSpace(text.En) == "" || strings.TrimSpace(text.Vi) == "" {
			return nil, apperror.NewBadRequestError("all fields are required in both languages and price must be positive", nil)
		}
	}

	product := &Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Likes:       0,
		LikedBy:     []primitive.ObjectID{},
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, apperror.NewDatabaseError("failed to create product", err)
	}

	s.cache.Clear(ctx, productCachePattern)

	view := product.Localize(lang)
	return &view, nil
}

// ToggleLike flips userID's membership in the product's likedBy set and
// adjusts the likes counter, as one atomic document update. The like/unlike
// decision comes from a snapshot read; the mutation itself is atomic, so
// concurrent toggles by different users cannot lose updates.
func (s *Service) ToggleLike(ctx context.Context, lang, productID, userID string) (*ToggleResponse, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperror.NewBadRequestError("invalid product id", nil)
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("invalid user id", nil)
	}

	product, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(message(lang, msgNotFound), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get product", err)
	}

	alreadyLiked := false
	for _, id := range product.LikedBy {
		if id == uid {
			alreadyLiked = true
			break
		}
	}

	updated, err := s.repo.ApplyToggle(ctx, pid, uid, !alreadyLiked)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(message(lang, msgNotFound), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update product", err)
	}

	s.cache.Clear(ctx, productCachePattern)

	key := msgLiked
	if alreadyLiked {
		key = msgUnliked
	}
	return &ToggleResponse{
		Message: message(lang, key),
		Product: updated.Localize(lang),
	}, nil
}
