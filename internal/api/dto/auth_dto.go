package dto

import (
	"time"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// RegisterRequest payload for self-service sign-up.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=3"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ProfileUpdateRequest payload for PUT /settings/profile.
type ProfileUpdateRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

// CreateUserRequest payload for administrators provisioning accounts.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN AUDITOR MANAGER"`
}

// UpdateUserRequest payload for administrators editing accounts.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN AUDITOR MANAGER"`
}

// UserResponse is the public view of an account. The password hash is never exposed.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToUserResponse maps a domain user.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses maps a list of users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}
