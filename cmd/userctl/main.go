// Command userctl manages users through the HTTP or gRPC API.
//
//	userctl [-transport http|grpc] [-addr ADDR] list
//	userctl get ID
//	userctl create -first NAME -last NAME -email EMAIL [-active=false]
//	userctl update ID [-first NAME] [-last NAME] [-email EMAIL] [-active=BOOL]
//	userctl delete ID
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"user-crud-service/internal/adapter/gateway/remote"
	"user-crud-service/internal/adapter/gateway/rpc"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	"user-crud-service/pkg/httpclient"
	"user-crud-service/pkg/logger"
)

var errUsage = errors.New("usage: userctl [-transport http|grpc] [-addr ADDR] list|get|create|update|delete")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("userctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	transport := fs.String("transport", "http", "API transport (http|grpc)")
	addr := fs.String("addr", "", "API address (default http://localhost:8080/api or localhost:50051)")
	timeout := fs.Duration("timeout", 10*time.Second, "Request timeout")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logger.NewWithConfig(logger.Config{Level: level, Format: "console", OutputPath: "stderr"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gateway, closeFn, err := newGateway(*transport, *addr, *timeout, log)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	result, err := execute(ctx, user.NewInteractors(gateway), fs.Arg(0), fs.Args()[1:], stderr)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func newGateway(transport, addr string, timeout time.Duration, log *zap.Logger) (user.Gateway, func(), error) {
	switch transport {
	case "http":
		if addr == "" {
			addr = "http://localhost:8080/api"
		}
		return remote.NewGateway(addr, httpclient.NewHTTPClient(timeout), log), func() {}, nil
	case "grpc":
		if addr == "" {
			addr = "localhost:50051"
		}
		conn, err := grpc.NewClient(addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithUnaryInterceptor(logger.RequestIDClientInterceptor()),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connect %s: %w", addr, err)
		}
		return rpc.NewGateway(conn, log), func() { _ = conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown transport %q", transport)
	}
}

func execute(ctx context.Context, uc *user.Interactors, cmd string, args []string, stderr io.Writer) (any, error) {
	switch cmd {
	case "list":
		return uc.GetUsers.Execute(ctx)

	case "get":
		id, err := parseID(args)
		if err != nil {
			return nil, err
		}
		return uc.GetUserByID.Execute(ctx, id)

	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		fs.SetOutput(stderr)
		first := fs.String("first", "", "First name")
		last := fs.String("last", "", "Last name")
		email := fs.String("email", "", "Email address")
		active := fs.Bool("active", true, "Whether the user is active")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return uc.CreateUser.Execute(ctx, domain.FormData{
			FirstName: *first,
			LastName:  *last,
			Email:     *email,
			IsActive:  *active,
		})

	case "update":
		id, err := parseID(args)
		if err != nil {
			return nil, err
		}
		patch, err := parsePatch(args[1:], stderr)
		if err != nil {
			return nil, err
		}
		return uc.UpdateUser.Execute(ctx, id, patch)

	case "delete":
		id, err := parseID(args)
		if err != nil {
			return nil, err
		}
		if err := uc.DeleteUser.Execute(ctx, id); err != nil {
			return nil, err
		}
		return user.DeleteUserResponse{Success: true}, nil

	default:
		return nil, errUsage
	}
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing user id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}

// parsePatch sets only the fields whose flags were given.
func parsePatch(args []string, stderr io.Writer) (domain.Patch, error) {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(stderr)
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	email := fs.String("email", "", "Email address")
	active := fs.Bool("active", false, "Whether the user is active")
	if err := fs.Parse(args); err != nil {
		return domain.Patch{}, err
	}

	var p domain.Patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			p.FirstName = first
		case "last":
			p.LastName = last
		case "email":
			p.Email = email
		case "active":
			p.IsActive = active
		}
	})
	if p.IsEmpty() {
		return domain.Patch{}, errors.New("update needs at least one of -first, -last, -email, -active")
	}
	return p, nil
}
