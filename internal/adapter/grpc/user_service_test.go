package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"user-crud-service/internal/adapter/gateway/memory"
	"user-crud-service/internal/adapter/grpc/userpb"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// failingGetUsers always fails with an unclassified error.
type failingGetUsers struct{ mock.Mock }

func (m *failingGetUsers) Execute(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return nil, args.Error(0)
}

func startServer(t *testing.T, uc *user.Interactors) *userpb.UserServiceClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	log := zaptest.NewLogger(t)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logger.RequestIDInterceptor()))
	userpb.RegisterUserServiceServer(srv, NewUserServiceServer(uc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return userpb.NewUserServiceClient(conn)
}

func newStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestUserService_CreateAndGet(t *testing.T) {
	client := startServer(t, user.NewInteractors(memory.NewGateway(zaptest.NewLogger(t))))
	ctx := context.Background()

	created, err := client.CreateUser(ctx, newStruct(t, map[string]any{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), created.Fields["id"].GetNumberValue())
	assert.True(t, created.Fields["isActive"].GetBoolValue())

	got, err := client.GetUserById(ctx, wrapperspb.Int64(1))
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", got.Fields["email"].GetStringValue())

	list, err := client.GetUsers(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, list.Values, 1)
}

func TestUserService_NotFound(t *testing.T) {
	client := startServer(t, user.NewInteractors(memory.NewGateway(zaptest.NewLogger(t))))
	ctx := context.Background()

	_, err := client.GetUserById(ctx, wrapperspb.Int64(5))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "User with ID 5 not found", st.Message())

	_, err = client.UpdateUser(ctx, newStruct(t, map[string]any{"id": 5, "lastName": "X"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.DeleteUser(ctx, wrapperspb.Int64(5))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestUserService_InvalidArgument(t *testing.T) {
	client := startServer(t, user.NewInteractors(memory.NewGateway(zaptest.NewLogger(t))))
	ctx := context.Background()

	_, err := client.CreateUser(ctx, newStruct(t, map[string]any{"firstName": "John", "email": "nope"}))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "LastName is required")

	_, err = client.CreateUser(ctx, newStruct(t, map[string]any{"firstName": 12}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.UpdateUser(ctx, newStruct(t, map[string]any{"lastName": "X"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetUserById(ctx, wrapperspb.Int64(0))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUserService_PartialUpdate(t *testing.T) {
	store := memory.NewGateway(zaptest.NewLogger(t))
	client := startServer(t, user.NewInteractors(store))
	ctx := context.Background()

	_, err := client.CreateUser(ctx, newStruct(t, map[string]any{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com",
	}))
	require.NoError(t, err)

	updated, err := client.UpdateUser(ctx, newStruct(t, map[string]any{"id": 1, "isActive": false}))
	require.NoError(t, err)
	assert.False(t, updated.Fields["isActive"].GetBoolValue())
	assert.Equal(t, "John", updated.Fields["firstName"].GetStringValue())
}

func TestUserService_HidesInternalErrors(t *testing.T) {
	getUsers := new(failingGetUsers)
	getUsers.On("Execute", mock.Anything).Return(errors.New("pq: connection refused"))
	uc := user.NewInteractors(memory.NewGateway(zaptest.NewLogger(t)))
	uc.GetUsers = getUsers

	client := startServer(t, uc)

	_, err := client.GetUsers(context.Background(), &emptypb.Empty{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.NotContains(t, st.Message(), "pq")
	getUsers.AssertExpectations(t)
}

func TestUserService_StorageErrorsMapToInternal(t *testing.T) {
	getUsers := new(failingGetUsers)
	getUsers.On("Execute", mock.Anything).
		Return(apperrors.NewInternalError("failed to list users", errors.New("pq: connection refused")))
	uc := user.NewInteractors(memory.NewGateway(zaptest.NewLogger(t)))
	uc.GetUsers = getUsers

	client := startServer(t, uc)

	_, err := client.GetUsers(context.Background(), &emptypb.Empty{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "failed to list users", st.Message())
	getUsers.AssertExpectations(t)
}
