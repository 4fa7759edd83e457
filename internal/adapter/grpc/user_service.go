package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"user-crud-service/internal/adapter/grpc/userpb"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/validation"
)

// UserServiceServer implements the gRPC user service
type UserServiceServer struct {
	uc  *user.Interactors
	log *zap.Logger
}

var _ userpb.UserServiceServer = (*UserServiceServer)(nil)

// NewUserServiceServer creates a new gRPC user service server
func NewUserServiceServer(uc *user.Interactors, log *zap.Logger) *UserServiceServer {
	return &UserServiceServer{uc: uc, log: log}
}

// updateUserRequest is the UpdateUser payload: the target id next to the patch fields.
type updateUserRequest struct {
	ID int64 `json:"id"`
	user.UpdateUserRequest
}

// GetUsers handles gRPC GetUsers request
func (s *UserServiceServer) GetUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	users, err := s.uc.GetUsers.Execute(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "GetUsers", err)
	}
	return s.encodeList(ctx, users)
}

// GetUserById handles gRPC GetUserById request
func (s *UserServiceServer) GetUserById(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := req.GetValue()
	if id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive number")
	}

	u, err := s.uc.GetUserByID.Execute(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, "GetUserById", err)
	}
	return s.encode(ctx, u)
}

// CreateUser handles gRPC CreateUser request
func (s *UserServiceServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in user.CreateUserRequest
	if err := userpb.FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	if err := validation.Struct(in); err != nil {
		return nil, s.toStatus(ctx, "CreateUser", err)
	}

	u, err := s.uc.CreateUser.Execute(ctx, in.FormData())
	if err != nil {
		return nil, s.toStatus(ctx, "CreateUser", err)
	}

	logger.WithContext(ctx, s.log).Info("User created", zap.Int64("id", u.ID))
	return s.encode(ctx, u)
}

// UpdateUser handles gRPC UpdateUser request
func (s *UserServiceServer) UpdateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateUserRequest
	if err := userpb.FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	if in.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive number")
	}
	if err := validation.Struct(in.UpdateUserRequest); err != nil {
		return nil, s.toStatus(ctx, "UpdateUser", err)
	}

	u, err := s.uc.UpdateUser.Execute(ctx, in.ID, in.Patch())
	if err != nil {
		return nil, s.toStatus(ctx, "UpdateUser", err)
	}

	logger.WithContext(ctx, s.log).Info("User updated", zap.Int64("id", u.ID))
	return s.encode(ctx, u)
}

// DeleteUser handles gRPC DeleteUser request
func (s *UserServiceServer) DeleteUser(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	id := req.GetValue()
	if id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be a positive number")
	}

	if err := s.uc.DeleteUser.Execute(ctx, id); err != nil {
		return nil, s.toStatus(ctx, "DeleteUser", err)
	}

	logger.WithContext(ctx, s.log).Info("User deleted", zap.Int64("id", id))
	return &emptypb.Empty{}, nil
}

func (s *UserServiceServer) encode(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := userpb.ToStruct(v)
	if err != nil {
		return nil, s.toStatus(ctx, "encode", err)
	}
	return out, nil
}

func (s *UserServiceServer) encodeList(ctx context.Context, v any) (*structpb.ListValue, error) {
	out, err := userpb.ToList(v)
	if err != nil {
		return nil, s.toStatus(ctx, "encode", err)
	}
	return out, nil
}

// toStatus keeps errors that carry a gRPC status and hides everything else behind Internal.
func (s *UserServiceServer) toStatus(ctx context.Context, op string, err error) error {
	log := logger.WithContext(ctx, s.log)

	var statuser apperrors.GRPCStatuser
	if errors.As(err, &statuser) {
		log.Warn(op+" failed", zap.Error(err))
		return statuser.GRPCStatus().Err()
	}

	log.Error(op+" failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
