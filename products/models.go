// Package products implements the product catalog: the bilingual product
// model, its repository over the document store, the like-toggle engine,
// and the HTTP handlers for listing, search and creation.
package products

import "go.mongodb.org/mongo-driver/bson/primitive"

// LocalizedText holds parallel strings for each supported language. Both
// variants are required at creation; the response layer projects the pair
// down to the single string for the request's resolved language.
type LocalizedText struct {
	En string `bson:"en" json:"en" validate:"required"`
	Vi string `bson:"vi" json:"vi" validate:"required"`
}

// In returns the variant for the given language tag, defaulting to English.
func (t LocalizedText) In(lang string) string {
	if lang == "vi" {
		return t.Vi
	}
	return t.En
}

// Product is the catalog document. The likes counter is a denormalized cache
// of len(likedBy); the two are only ever mutated together in a single atomic
// update, so likes == |likedBy| holds at all times.
type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        LocalizedText        `bson:"name" json:"name"`
	Price       float64              `bson:"price" json:"price"`
	Category    LocalizedText        `bson:"category" json:"category"`
	Subcategory LocalizedText        `bson:"subcategory" json:"subcategory"`
	Likes       int                  `bson:"likes" json:"likes"`
	LikedBy     []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
}

// View is the localized projection of a product returned by the API.
type View struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Likes       int      `json:"likes"`
	LikedBy     []string `json:"likedBy"`
}

// Localize projects the product into the given language.
func (p *Product) Localize(lang string) View {
	likedBy := make([]string, 0, len(p.LikedBy))
	for _, id := range p.LikedBy {
		likedBy = append(likedBy, id.Hex())
	}
	return View{
		ID:          p.ID.Hex(),
		Name:        p.Name.In(lang),
		Price:       p.Price,
		Category:    p.Category.In(lang),
		Subcategory: p.Subcategory.In(lang),
		Likes:       p.Likes,
		LikedBy:     likedBy,
	}
}
