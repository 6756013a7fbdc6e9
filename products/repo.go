package products

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/product-catalog-go/db"
)

// Repository is the persistence contract for products. The mongo-backed
// implementation is the production one; tests substitute an in-memory fake.
type Repository interface {
	// List returns one page of products in insertion order.
	List(ctx context.Context, skip, limit int64) ([]Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)

	// Search returns one page of products whose name in the given language
	// contains q, case-insensitively.
	Search(ctx context.Context, lang, q string, skip, limit int64) ([]Product, error)

	// SearchCount returns the total number of products matched by Search.
	SearchCount(ctx context.Context, lang, q string) (int64, error)

	// Insert persists a new product and fills in its generated id.
	Insert(ctx context.Context, product *Product) error

	// FindByID returns the product with the given id, or mongo.ErrNoDocuments.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)

	// ApplyToggle applies a like (or unlike) by userID to the product as a
	// single atomic update: set membership and counter change together, so
	// likes == |likedBy| cannot be observed broken. Returns the updated
	// product, or mongo.ErrNoDocuments if the product vanished.
	ApplyToggle(ctx context.Context, id, userID primitive.ObjectID, like bool) (*Product, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository creates the mongo-backed product Repository.
func NewRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.ProductsCollection)}
}

func (r *mongoRepository) List(ctx context.Context, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// nameFilter matches products whose name in lang contains q as a literal,
// case-insensitive substring. Regex metacharacters in the query are quoted
// so "1+1" matches the text "1+1" and nothing else.
func nameFilter(lang, q string) bson.M {
	return bson.M{
		"name." + lang: primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"},
	}
}

func (r *mongoRepository) Search(ctx context.Context, lang, q string, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, nameFilter(lang, q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoRepository) SearchCount(ctx context.Context, lang, q string) (int64, error) {
	return r.coll.CountDocuments(ctx, nameFilter(lang, q))
}

func (r *mongoRepository) Insert(ctx context.Context, product *Product) error {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var product Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *mongoRepository) ApplyToggle(ctx context.Context, id, userID primitive.ObjectID, like bool) (*Product, error) {
	var update bson.M
	if like {
		// $addToSet has set semantics: adding an already-present member is
		// a no-op, so likes can never double-count a user.
		update = bson.M{
			"$addToSet": bson.M{"likedBy": userID},
			"$inc":      bson.M{"likes": 1},
		}
	} else {
		update = bson.M{
			"$pull": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likes": -1},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product Product
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}
