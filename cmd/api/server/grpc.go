package server

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/internal/adapter/grpc/middleware"
	"user-crud-service/internal/adapter/grpc/userpb"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/ratelimit"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(svc *grpcadapter.UserServiceServer, limiter *ratelimit.Limiter, l *zap.Logger) *grpc.Server {
	// Request ID first so rate limit rejections are logged with it
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			middleware.RateLimitInterceptor(limiter),
		),
	)
	userpb.RegisterUserServiceServer(grpcServer, svc)

	l.Info("gRPC service registered", zap.String("service", userpb.ServiceName))
	return grpcServer
}
