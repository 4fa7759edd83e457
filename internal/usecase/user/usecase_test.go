package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
)

// MockGateway is a testify mock of the Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockGateway) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockGateway) CreateUser(ctx context.Context, data domain.FormData) (domain.User, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockGateway) UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockGateway) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func johnDoe() domain.User {
	return domain.New(1, domain.FormData{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true}, now)
}

// ==================== GET USERS ====================

func TestGetUsers_Success(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()
	users := []domain.User{johnDoe()}

	g.On("GetUsers", ctx).Return(users, nil)

	got, err := NewGetUsers(g).Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, users, got)
	g.AssertExpectations(t)
}

func TestGetUsers_PropagatesStorageError(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()
	storageErr := errors.New("connection refused")

	g.On("GetUsers", ctx).Return(nil, storageErr)

	got, err := NewGetUsers(g).Execute(ctx)

	assert.Nil(t, got)
	assert.Same(t, storageErr, err)
	g.AssertExpectations(t)
}

// ==================== GET USER BY ID ====================

func TestGetUserByID_Success(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()

	g.On("GetUserByID", ctx, int64(1)).Return(johnDoe(), nil)

	got, err := NewGetUserByID(g).Execute(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, johnDoe(), got)
	g.AssertExpectations(t)
}

func TestGetUserByID_NotFound(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()
	notFound := apperrors.NewUserNotFoundError(99)

	g.On("GetUserByID", ctx, int64(99)).Return(domain.User{}, notFound)

	_, err := NewGetUserByID(g).Execute(ctx, 99)

	assert.Same(t, notFound, err)
	assert.EqualError(t, err, "User with ID 99 not found")
}

// ==================== CREATE USER ====================

func TestCreateUser_DelegatesUnchanged(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()
	data := domain.FormData{ID: 123, FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true}

	g.On("CreateUser", ctx, data).Return(johnDoe(), nil)

	got, err := NewCreateUser(g).Execute(ctx, data)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	g.AssertExpectations(t)
}

// ==================== UPDATE USER ====================

func TestUpdateUser_DelegatesPatch(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()
	last := "Smith"
	patch := domain.Patch{LastName: &last}
	updated := johnDoe().Apply(patch, now.Add(time.Minute))

	g.On("UpdateUser", ctx, int64(1), patch).Return(updated, nil)

	got, err := NewUpdateUser(g).Execute(ctx, 1, patch)

	require.NoError(t, err)
	assert.Equal(t, "Smith", got.LastName)
	g.AssertExpectations(t)
}

func TestUpdateUser_NotFound(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()

	g.On("UpdateUser", ctx, int64(5), domain.Patch{}).Return(domain.User{}, apperrors.NewUserNotFoundError(5))

	_, err := NewUpdateUser(g).Execute(ctx, 5, domain.Patch{})

	assert.True(t, apperrors.IsNotFound(err))
}

// ==================== DELETE USER ====================

func TestDeleteUser_Success(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()

	g.On("DeleteUser", ctx, int64(1)).Return(nil)

	err := NewDeleteUser(g).Execute(ctx, 1)

	assert.NoError(t, err)
	g.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()

	g.On("DeleteUser", ctx, int64(2)).Return(apperrors.NewUserNotFoundError(2))

	err := NewDeleteUser(g).Execute(ctx, 2)

	assert.EqualError(t, err, "User with ID 2 not found")
}

// ==================== INTERACTORS ====================

func TestNewInteractors_SharesGateway(t *testing.T) {
	g := new(MockGateway)
	ctx := context.Background()

	g.On("GetUsers", ctx).Return([]domain.User{}, nil).Once()
	g.On("DeleteUser", ctx, int64(1)).Return(nil).Once()

	ucs := NewInteractors(g)
	_, err := ucs.GetUsers.Execute(ctx)
	require.NoError(t, err)
	require.NoError(t, ucs.DeleteUser.Execute(ctx, 1))

	g.AssertExpectations(t)
}

// ==================== DTO CONVERSION ====================

func TestCreateUserRequest_DefaultsActive(t *testing.T) {
	data := CreateUserRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"}.FormData()
	assert.True(t, data.IsActive)

	inactive := false
	data = CreateUserRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: &inactive}.FormData()
	assert.False(t, data.IsActive)
}

func TestUpdateUserRequest_RoundTripsPatch(t *testing.T) {
	email := "new@example.com"
	active := false
	patch := domain.Patch{Email: &email, IsActive: &active}

	got := NewUpdateUserRequest(patch).Patch()

	assert.Equal(t, patch, got)
	assert.Nil(t, got.FirstName)
}
