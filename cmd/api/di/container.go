package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/cmd/api/infrastructure"
	"user-crud-service/internal/adapter/cache"
	"user-crud-service/internal/adapter/db/postgres"
	"user-crud-service/internal/adapter/gateway/cached"
	"user-crud-service/internal/adapter/gateway/memory"
	ginhandler "user-crud-service/internal/adapter/gin/handler"
	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"
	"user-crud-service/pkg/ratelimit"
	redisclient "user-crud-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Gateway     user.Gateway
	Interactors *user.Interactors
	RateLimiter *ratelimit.Limiter
	GinHandler  *ginhandler.UserHandler
	GRPCService *grpcadapter.UserServiceServer
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	gateway, err := c.newStorageGateway()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(rdb.Client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
		gateway = cached.NewGateway(gateway, userCache, l)

		c.RateLimiter = ratelimit.New(rdb.Client, ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		}, l)
	} else if cfg.RateLimit.Enabled {
		l.Warn("rate limiting requires Redis and is disabled")
	}

	c.Gateway = gateway
	c.Interactors = user.NewInteractors(gateway)
	c.GinHandler = ginhandler.NewUserHandler(c.Interactors, l)
	c.GRPCService = grpcadapter.NewUserServiceServer(c.Interactors, l)

	return c, nil
}

// newStorageGateway builds the gateway for STORAGE_DRIVER.
func (c *Container) newStorageGateway() (user.Gateway, error) {
	if c.Config.App.StorageDriver == config.DriverMemory {
		c.Logger.Info("using in-memory user storage")
		return memory.NewGateway(c.Logger), nil
	}

	db, err := infrastructure.NewDatabase(c.Config, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	return postgres.NewUserGatewayPG(db, c.Logger), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
