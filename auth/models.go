package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered user. Users are created on registration and
// immutable thereafter; products reference them by id in their likedBy sets.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
}

// Info is the public projection of a user returned by the API.
type Info struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Info returns the public projection of u.
func (u *User) Info() Info {
	return Info{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		Username: u.Username,
	}
}
