package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
)

var _ user.Gateway = (*UserGatewayPG)(nil)

// UserGatewayPG implements the user Gateway directly on a relational database through GORM.
// Missing rows surface as NotFoundError; driver failures are wrapped in InternalError.
type UserGatewayPG struct {
	db  *gorm.DB         // GORM database connection
	log *zap.Logger      // Structured logger for database operations
	now func() time.Time // Time source, truncated to the database timestamp precision
}

// NewUserGatewayPG creates a new instance of UserGatewayPG.
func NewUserGatewayPG(db *gorm.DB, log *zap.Logger) *UserGatewayPG {
	return &UserGatewayPG{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	FirstName string    `gorm:"not null"`                 // Given name (required)
	LastName  string    `gorm:"not null"`                 // Family name (required)
	Email     string    `gorm:"not null"`                 // Email address, unique by convention only
	IsActive  bool      `gorm:"not null"`                 // Active flag; callers default it to true
	CreatedAt time.Time `gorm:"not null"`                 // Set once on insert
	UpdatedAt time.Time `gorm:"not null"`                 // Refreshed on every update
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Migrate creates or updates the users table to match UserSchema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserSchema{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// GetUsers retrieves every user ordered by primary key.
func (r *UserGatewayPG) GetUsers(ctx context.Context) ([]domain.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	users := make([]domain.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}
	return users, nil
}

// GetUserByID retrieves a user from the database by their unique ID.
func (r *UserGatewayPG) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return domain.User{}, apperrors.NewUserNotFoundError(id)
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return domain.User{}, apperrors.NewInternalError("failed to get user", err)
	}
	return model.toDomain(), nil
}

// CreateUser inserts a new user; the database assigns the id.
func (r *UserGatewayPG) CreateUser(ctx context.Context, data domain.FormData) (domain.User, error) {
	now := r.now()
	model := UserSchema{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		IsActive:  data.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", data.Email))
		return domain.User{}, apperrors.NewInternalError("failed to create user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// UpdateUser writes the present fields of patch together with a fresh updated_at.
func (r *UserGatewayPG) UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	var updated domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewUserNotFoundError(id)
			}
			return apperrors.NewInternalError("failed to load user", err)
		}

		updated = model.toDomain().Apply(patch, r.now())

		columns := map[string]any{"updated_at": updated.UpdatedAt}
		if patch.FirstName != nil {
			columns["first_name"] = updated.FirstName
		}
		if patch.LastName != nil {
			columns["last_name"] = updated.LastName
		}
		if patch.Email != nil {
			columns["email"] = updated.Email
		}
		if patch.IsActive != nil {
			columns["is_active"] = updated.IsActive
		}

		res := tx.Model(&UserSchema{}).Where("id = ?", id).UpdateColumns(columns)
		if res.Error != nil {
			return apperrors.NewInternalError("failed to update user", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewUserNotFoundError(id)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			r.log.Warn("user not found for update", zap.Int64("id", id))
			return domain.User{}, err
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", id))
		// begin and commit failures come back unwrapped
		var internal *apperrors.InternalError
		if !errors.As(err, &internal) {
			err = apperrors.NewInternalError("failed to update user", err)
		}
		return domain.User{}, err
	}

	r.log.Info("user updated in db", zap.Int64("id", id))
	return updated, nil
}

// DeleteUser removes a user from the database by ID.
func (r *UserGatewayPG) DeleteUser(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&UserSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return apperrors.NewInternalError("failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		r.log.Warn("user not found for delete", zap.Int64("id", id))
		return apperrors.NewUserNotFoundError(id)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return nil
}
