package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" example:"alice" validate:"required"`
	Email    string `json:"email" example:"alice@example.com" validate:"required,email"`
	Password string `json:"password" example:"strongpassword123" validate:"required"`
}

// RegisterResponse confirms a successful registration.
type RegisterResponse struct {
	Message string `json:"message" example:"User registered successfully"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com" validate:"required"`
	Password string `json:"password" example:"strongpassword123" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  Info   `json:"user"`
}

// StatusResponse reports the authentication state of the caller.
type StatusResponse struct {
	IsAuthenticated bool `json:"isAuthenticated" example:"true"`
	User            Info `json:"user"`
}
