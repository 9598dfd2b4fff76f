package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sofrahq/sofra/internal/apiserver/database"
	"github.com/sofrahq/sofra/internal/common/cnst"
	"github.com/sofrahq/sofra/internal/common/dto"
	"github.com/sofrahq/sofra/internal/i18n"
)

// User handles account management. All routes are super admin only.
type User struct {
	db     database.Database
	logger *zap.Logger
}

// NewUser creates a new user handler
func NewUser(db database.Database, logger *zap.Logger) *User {
	return &User{
		db:     db,
		logger: logger.Named("apiserver.handler.user"),
	}
}

// List returns all accounts.
func (h *User) List(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to list users"))
		return
	}

	i18n.Success(i18n.SuccessUserList).WithPayload(users).Send(c)
}

// Get returns one account by id.
func (h *User) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorUserNotFound)
			return
		}
		h.logger.Error("failed to load user", zap.Uint("user_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load user"))
		return
	}

	i18n.Success(i18n.SuccessUserInfo).With("user", user).Send(c)
}

// Create adds a new account with the given role.
func (h *User) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to hash password"))
		return
	}

	user := &database.User{
		Username: req.Username,
		Password: string(hashed),
		Name:     req.Name,
		Email:    req.Email,
		Role:     database.UserRole(req.Role),
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateUser(ctx, user); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionCreate, cnst.EntityUser, user.ID, nil, map[string]any{
			"name": user.Username,
			"role": string(user.Role),
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicated) {
			i18n.RespondWithError(c, i18n.ErrorUsernameExists)
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to create user"))
		return
	}

	h.logger.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	i18n.Created(i18n.SuccessUserCreated).With("user", user).Send(c)
}

// Update edits an account. The role is fixed at creation and cannot be
// changed here.
func (h *User) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorUserNotFound)
			return
		}
		h.logger.Error("failed to load user", zap.Uint("user_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load user"))
		return
	}

	if req.Role != "" && req.Role != string(user.Role) {
		h.logger.Warn("rejected role change",
			zap.Uint("user_id", user.ID),
			zap.String("requested_role", req.Role))
		i18n.RespondWithError(c, i18n.ErrorRoleImmutable)
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to hash password"))
			return
		}
		user.Password = string(hashed)
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateUser(ctx, user); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionUpdate, cnst.EntityUser, user.ID, nil, map[string]any{
			"name": user.Username,
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicated) {
			i18n.RespondWithError(c, i18n.ErrorUsernameExists)
			return
		}
		h.logger.Error("failed to update user", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to update user"))
		return
	}

	h.logger.Info("user updated", zap.Uint("user_id", user.ID))
	i18n.Success(i18n.SuccessUserUpdated).With("user", user).Send(c)
}

// Delete removes an account. The last super admin can never be deleted,
// and a restaurant admin must be detached from their restaurant first.
func (h *User) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorUserNotFound)
			return
		}
		h.logger.Error("failed to load user", zap.Uint("user_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to load user"))
		return
	}

	if user.Role == database.RoleSuperAdmin {
		count, err := h.db.CountSuperAdmins(c.Request.Context())
		if err != nil {
			h.logger.Error("failed to count super admins", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to count super admins"))
			return
		}
		if count <= 1 {
			h.logger.Warn("refused to delete the last super admin",
				zap.Uint("user_id", user.ID))
			i18n.RespondWithError(c, i18n.ErrorLastSuperAdmin)
			return
		}
	}

	if user.Role == database.RoleRestaurantAdmin {
		_, err := h.db.GetRestaurantByAdminID(c.Request.Context(), user.ID)
		if err == nil {
			h.logger.Warn("refused to delete an admin who still owns a restaurant",
				zap.Uint("user_id", user.ID))
			i18n.RespondWithError(c, i18n.ErrorAdminOwnsRestaurant)
			return
		}
		if !errors.Is(err, database.ErrNotFound) {
			h.logger.Error("failed to check restaurant ownership", zap.Error(err))
			i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to check ownership"))
			return
		}
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.DeleteUser(ctx, user.ID); err != nil {
			return err
		}
		return appendActivity(ctx, h.db, p, cnst.ActionDelete, cnst.EntityUser, user.ID, nil, map[string]any{
			"name": user.Username,
		})
	})
	if err != nil {
		h.logger.Error("failed to delete user", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer.WithParam("Reason", "Failed to delete user"))
		return
	}

	h.logger.Info("user deleted",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username))
	i18n.Success(i18n.SuccessUserDeleted).Send(c)
}
