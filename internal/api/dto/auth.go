package dto

import "github.com/hfletcher/jobsite/internal/domain/user"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	FullName string `json:"fullName,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

// UserDTO represents a contractor account in API responses
type UserDTO struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	CompanyName string  `json:"company_name,omitempty"`
	PlanType    string  `json:"plan_type"`
}

// UserToDTO maps a domain user to its API shape
func UserToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		PlanType:    u.PlanType,
	}
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateUserRequest represents a profile update request
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	FullName    *string `json:"full_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}
