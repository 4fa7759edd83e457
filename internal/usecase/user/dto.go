package user

import (
	domain "user-crud-service/internal/domain/user"
)

// CreateUserRequest represents the request payload for creating a new user.
// IsActive defaults to true when omitted.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// FormData converts the request into the domain input shape.
func (r CreateUserRequest) FormData() domain.FormData {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return domain.FormData{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsActive:  active,
	}
}

// NewCreateUserRequest builds the wire payload for data.
func NewCreateUserRequest(data domain.FormData) CreateUserRequest {
	active := data.IsActive
	return CreateUserRequest{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		IsActive:  &active,
	}
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Only non-null fields are applied.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() domain.Patch {
	return domain.Patch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsActive:  r.IsActive,
	}
}

// NewUpdateUserRequest builds the wire payload for p.
func NewUpdateUserRequest(p domain.Patch) UpdateUserRequest {
	return UpdateUserRequest{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		IsActive:  p.IsActive,
	}
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	Success bool `json:"success"`
}
