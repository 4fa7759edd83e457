package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/validation"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  *user.Interactors
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc *user.Interactors, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Register mounts the user routes on rg.
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", h.GetUsers)
	users.GET("/:id", h.GetUserByID)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	users, err := h.uc.GetUsers.Execute(c.Request.Context())
	if err != nil {
		log.Error("GetUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserByID handles GET /api/users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	u, err := h.uc.GetUserByID.Execute(c.Request.Context(), id)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("GetUserByID failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		h.badRequest(c, err)
		return
	}

	u, err := h.uc.CreateUser.Execute(c.Request.Context(), req.FormData())
	if err != nil {
		log.Error("CreateUser failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	log.Info("User created", zap.Int64("id", u.ID))
	c.JSON(http.StatusCreated, u)
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update user request", zap.Int64("id", id), zap.Error(err))
		h.badRequest(c, err)
		return
	}

	u, err := h.uc.UpdateUser.Execute(c.Request.Context(), id, req.Patch())
	if err != nil {
		log.Warn("UpdateUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	log.Info("User updated", zap.Int64("id", id))
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteUser.Execute(c.Request.Context(), id); err != nil {
		log.Warn("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	log.Info("User deleted", zap.Int64("id", id))
	c.JSON(http.StatusOK, user.DeleteUserResponse{Success: true})
}

func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warn("Invalid user ID", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a positive number",
		})
		return 0, false
	}
	return id, true
}

func (h *UserHandler) badRequest(c *gin.Context, err error) {
	err = validation.Format(err)
	if _, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_body",
		Message: "Request body must be valid JSON",
	})
}

// handleError converts use case errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var (
		notFound *apperrors.NotFoundError
		internal *apperrors.InternalError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		})
	case errors.As(err, &internal):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: internal.Message,
		})
	case isValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func isValidation(err error) bool {
	_, ok := apperrors.AsValidation(err)
	return ok
}
