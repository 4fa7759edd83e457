package user

import (
	"context"

	domain "user-crud-service/internal/domain/user"
)

// Gateway defines the persistence boundary for users.
// It abstracts the storage or transport, allowing in-memory, remote and
// database implementations to be used interchangeably.
type Gateway interface {
	GetUsers(ctx context.Context) ([]domain.User, error)                               // List all users in storage order
	GetUserByID(ctx context.Context, id int64) (domain.User, error)                    // Retrieve user by ID
	CreateUser(ctx context.Context, data domain.FormData) (domain.User, error)         // Create a new user
	UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) // Update present fields of a user
	DeleteUser(ctx context.Context, id int64) error                                    // Delete user by ID
}
