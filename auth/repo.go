package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/product-catalog-go/db"
)

// UserRepository is the persistence contract for users. The mongo-backed
// implementation is the production one; tests substitute an in-memory fake.
type UserRepository interface {
	// Insert persists a new user and fills in its generated id.
	// Duplicate username or email surfaces as a driver duplicate-key error.
	Insert(ctx context.Context, user *User) error

	// FindByEmail returns the user with the given email, or
	// mongo.ErrNoDocuments.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the user with the given id, or mongo.ErrNoDocuments.
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates the mongo-backed UserRepository.
func NewUserRepository(database *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: database.Collection(db.UsersCollection)}
}

func (r *mongoUserRepository) Insert(ctx context.Context, user *User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
