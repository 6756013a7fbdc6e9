// Package db provides document-store connectivity and index bootstrap for
// the product catalog application.
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/config"
)

// Collection names.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
)

// Connect establishes a MongoDB connection and verifies it with a ping.
// The returned client must be disconnected by the caller on shutdown.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to connect to mongodb", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, apperror.NewDatabaseError("failed to ping mongodb", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes the application relies on: unique
// username/email on users, and a text index over both language variants of
// the product name for search. Index creation is idempotent.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := database.Collection(UsersCollection).Indexes().CreateMany(idxCtx, userIndexes); err != nil {
		return apperror.NewDatabaseError("failed to create user indexes", err)
	}

	productIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name.en", Value: "text"},
				{Key: "name.vi", Value: "text"},
			},
		},
	}
	if _, err := database.Collection(ProductsCollection).Indexes().CreateMany(idxCtx, productIndexes); err != nil {
		return apperror.NewDatabaseError("failed to create product indexes", err)
	}

	return nil
}
