// Package rpc implements the user gateway over the gRPC API.
package rpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"user-crud-service/internal/adapter/grpc/userpb"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
)

// Gateway calls user.v1.UserService.
// Non-positive ids fail with NotFound without a call.
type Gateway struct {
	client *userpb.UserServiceClient
	log    *zap.Logger
}

var _ user.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway over an established connection.
func NewGateway(cc grpc.ClientConnInterface, log *zap.Logger) *Gateway {
	return &Gateway{
		client: userpb.NewUserServiceClient(cc),
		log:    log,
	}
}

// GetUsers lists every user.
func (g *Gateway) GetUsers(ctx context.Context) ([]domain.User, error) {
	resp, err := g.client.GetUsers(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, g.fromStatus("GetUsers", 0, err)
	}

	users := []domain.User{}
	if err := userpb.FromList(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID fetches one user.
func (g *Gateway) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}

	resp, err := g.client.GetUserById(ctx, wrapperspb.Int64(id))
	if err != nil {
		return domain.User{}, g.fromStatus("GetUserById", id, err)
	}

	var u domain.User
	if err := userpb.FromStruct(resp, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// CreateUser creates a user.
func (g *Gateway) CreateUser(ctx context.Context, data domain.FormData) (domain.User, error) {
	req, err := userpb.ToStruct(user.NewCreateUserRequest(data))
	if err != nil {
		return domain.User{}, err
	}

	resp, err := g.client.CreateUser(ctx, req)
	if err != nil {
		return domain.User{}, g.fromStatus("CreateUser", 0, err)
	}

	var u domain.User
	if err := userpb.FromStruct(resp, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateUser sends the id plus only the fields present in patch.
func (g *Gateway) UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}

	req, err := userpb.ToStruct(struct {
		ID int64 `json:"id"`
		user.UpdateUserRequest
	}{ID: id, UpdateUserRequest: user.NewUpdateUserRequest(patch)})
	if err != nil {
		return domain.User{}, err
	}

	resp, err := g.client.UpdateUser(ctx, req)
	if err != nil {
		return domain.User{}, g.fromStatus("UpdateUser", id, err)
	}

	var u domain.User
	if err := userpb.FromStruct(resp, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes a user.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewUserNotFoundError(id)
	}

	if _, err := g.client.DeleteUser(ctx, wrapperspb.Int64(id)); err != nil {
		return g.fromStatus("DeleteUser", id, err)
	}
	return nil
}

// fromStatus maps codes.NotFound on an id-addressed call to NotFound(id).
// Every other error is returned as received.
func (g *Gateway) fromStatus(method string, id int64, err error) error {
	if id > 0 && status.Code(err) == codes.NotFound {
		return apperrors.NewUserNotFoundError(id)
	}
	g.log.Debug("rpc call failed", zap.String("method", method), zap.Error(err))
	return err
}
