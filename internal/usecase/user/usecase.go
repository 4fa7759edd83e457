package user

import (
	"context"

	domain "user-crud-service/internal/domain/user"
)

// GetUsersUseCase lists every user.
type GetUsersUseCase interface {
	Execute(ctx context.Context) ([]domain.User, error)
}

// GetUserByIDUseCase fetches a single user.
type GetUserByIDUseCase interface {
	Execute(ctx context.Context, id int64) (domain.User, error)
}

// CreateUserUseCase creates a user.
type CreateUserUseCase interface {
	Execute(ctx context.Context, data domain.FormData) (domain.User, error)
}

// UpdateUserUseCase applies a partial update to a user.
type UpdateUserUseCase interface {
	Execute(ctx context.Context, id int64, patch domain.Patch) (domain.User, error)
}

// DeleteUserUseCase removes a user.
type DeleteUserUseCase interface {
	Execute(ctx context.Context, id int64) error
}

// GetUsers implements GetUsersUseCase.
type GetUsers struct {
	gateway Gateway
}

// NewGetUsers creates a GetUsers interactor bound to g.
func NewGetUsers(g Gateway) *GetUsers {
	return &GetUsers{gateway: g}
}

// Execute returns all users.
func (uc *GetUsers) Execute(ctx context.Context) ([]domain.User, error) {
	return uc.gateway.GetUsers(ctx)
}

// GetUserByID implements GetUserByIDUseCase.
type GetUserByID struct {
	gateway Gateway
}

// NewGetUserByID creates a GetUserByID interactor bound to g.
func NewGetUserByID(g Gateway) *GetUserByID {
	return &GetUserByID{gateway: g}
}

// Execute returns the user with the given id.
func (uc *GetUserByID) Execute(ctx context.Context, id int64) (domain.User, error) {
	return uc.gateway.GetUserByID(ctx, id)
}

// CreateUser implements CreateUserUseCase.
type CreateUser struct {
	gateway Gateway
}

// NewCreateUser creates a CreateUser interactor bound to g.
func NewCreateUser(g Gateway) *CreateUser {
	return &CreateUser{gateway: g}
}

// Execute creates a user from data.
func (uc *CreateUser) Execute(ctx context.Context, data domain.FormData) (domain.User, error) {
	return uc.gateway.CreateUser(ctx, data)
}

// UpdateUser implements UpdateUserUseCase.
type UpdateUser struct {
	gateway Gateway
}

// NewUpdateUser creates an UpdateUser interactor bound to g.
func NewUpdateUser(g Gateway) *UpdateUser {
	return &UpdateUser{gateway: g}
}

// Execute applies patch to the user with the given id.
func (uc *UpdateUser) Execute(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	return uc.gateway.UpdateUser(ctx, id, patch)
}

// DeleteUser implements DeleteUserUseCase.
type DeleteUser struct {
	gateway Gateway
}

// NewDeleteUser creates a DeleteUser interactor bound to g.
func NewDeleteUser(g Gateway) *DeleteUser {
	return &DeleteUser{gateway: g}
}

// Execute deletes the user with the given id.
func (uc *DeleteUser) Execute(ctx context.Context, id int64) error {
	return uc.gateway.DeleteUser(ctx, id)
}

// Interactors groups the user use cases so transports can receive them as one dependency
// while each field stays independently substitutable.
type Interactors struct {
	GetUsers    GetUsersUseCase
	GetUserByID GetUserByIDUseCase
	CreateUser  CreateUserUseCase
	UpdateUser  UpdateUserUseCase
	DeleteUser  DeleteUserUseCase
}

// NewInteractors binds every use case to the same gateway.
func NewInteractors(g Gateway) *Interactors {
	return &Interactors{
		GetUsers:    NewGetUsers(g),
		GetUserByID: NewGetUserByID(g),
		CreateUser:  NewCreateUser(g),
		UpdateUser:  NewUpdateUser(g),
		DeleteUser:  NewDeleteUser(g),
	}
}
