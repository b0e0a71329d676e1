package transport

import "github.com/google/uuid"

// RegisterRequest is the request body for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=patient doctor"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DOB      string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserPayload is the public view of an account returned with a token.
type UserPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// AuthResponse is the response body for register and login
type AuthResponse struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}
