// Package userpb describes the user.v1.UserService gRPC contract.
//
// Messages are protobuf well-known types: a user travels as a google.protobuf.Struct
// with the same camelCase keys as the HTTP API, and timestamps as RFC 3339 strings.
package userpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "user.v1.UserService"

// Full method names.
const (
	GetUsersMethod    = "/" + ServiceName + "/GetUsers"
	GetUserByIDMethod = "/" + ServiceName + "/GetUserById"
	CreateUserMethod  = "/" + ServiceName + "/CreateUser"
	UpdateUserMethod  = "/" + ServiceName + "/UpdateUser"
	DeleteUserMethod  = "/" + ServiceName + "/DeleteUser"
)

// UserServiceServer is the server API for user.v1.UserService.
type UserServiceServer interface {
	GetUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetUserById(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// RegisterUserServiceServer registers srv on s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method into a grpc.MethodHandler.
func unary[Req any, Resp any](
	fullMethod string,
	call func(UserServiceServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for user.v1.UserService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUsers",
			Handler:    unary(GetUsersMethod, UserServiceServer.GetUsers),
		},
		{
			MethodName: "GetUserById",
			Handler:    unary(GetUserByIDMethod, UserServiceServer.GetUserById),
		},
		{
			MethodName: "CreateUser",
			Handler:    unary(CreateUserMethod, UserServiceServer.CreateUser),
		},
		{
			MethodName: "UpdateUser",
			Handler:    unary(UpdateUserMethod, UserServiceServer.UpdateUser),
		},
		{
			MethodName: "DeleteUser",
			Handler:    unary(DeleteUserMethod, UserServiceServer.DeleteUser),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user/v1/user.proto",
}

// UserServiceClient is the client API for user.v1.UserService.
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient creates a client over cc.
func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

// GetUsers lists every user.
func (c *UserServiceClient) GetUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, GetUsersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserById fetches one user.
func (c *UserServiceClient) GetUserById(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetUserByIDMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a user.
func (c *UserServiceClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser applies a partial update.
func (c *UserServiceClient) UpdateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, UpdateUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes a user.
func (c *UserServiceClient) DeleteUser(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
