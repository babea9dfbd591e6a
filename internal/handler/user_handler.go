package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/suteetoe/platformadmin/internal/model"
	"github.com/suteetoe/platformadmin/pkg/database"
	"github.com/suteetoe/platformadmin/pkg/logger"
	"github.com/suteetoe/platformadmin/prometheus"
)

// MinPasswordLength is the minimum accepted length for an initial password
const MinPasswordLength = 8

// ListUsers returns users scoped by the optional tenantId query parameter.
// Without a tenantId the listing is restricted to tenant-less users, i.e.
// platform administrators.
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("users", "list")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := database.GetDB().Preload("Role").Preload("Tenant").Order("created_at")

	tenantID := c.QueryParam("tenantId")
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	} else {
		query = query.Where("tenant_id IS NULL")
	}

	var users []model.User
	if result := query.Find(&users); result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to list users"})
	}

	return c.JSON(http.StatusOK, users)
}

// CreatePlatformAdmin creates a tenant-less user with a platform role.
// An initial password is mandatory for platform admins.
func CreatePlatformAdmin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("users", "create")

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		RoleID   string `json:"roleId"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse platform admin creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Email == "" || req.Name == "" || req.RoleID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email, name and roleId are required"})
	}
	if len(req.Password) < MinPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
	}

	// The assigned role must be a platform role for a tenant-less user
	var role model.Role
	if result := database.GetDB().First(&role, "id = ?", req.RoleID); result.Error != nil {
		log.Error("Role not found", zap.String("role_id", req.RoleID), zap.Error(result.Error))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role not found"})
	}
	if !role.IsPlatformRole {
		log.Warn("Tenant role supplied for platform admin", zap.String("role_id", role.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "platform admins require a platform role"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user creation failed"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	user := model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hash),
		RoleID:   role.ID,
		TenantID: nil,
	}

	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create platform admin", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"message": "user creation failed, email may already exist"})
	}

	user.Role = &role

	log.Info("Platform admin created",
		zap.String("id", user.ID),
		zap.String("email", user.Email))

	return c.JSON(http.StatusCreated, user)
}

// CreateTenantUser creates a user inside a tenant. The tenant id arrives both
// as a query parameter and in the body; the two must agree. The initial
// password is optional and auto-generated when absent.
func CreateTenantUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("users", "create")

	queryTenantID := c.QueryParam("tenantId")
	if queryTenantID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenantId query parameter is required"})
	}

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		RoleID   string `json:"roleId"`
		TenantID string `json:"tenantId"`
		Password string `json:"password,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant user creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Email == "" || req.Name == "" || req.RoleID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email, name and roleId are required"})
	}

	// The id is duplicated across query string and body; reject a disagreement
	// instead of silently picking one channel.
	if req.TenantID != "" && req.TenantID != queryTenantID {
		log.Warn("Tenant id mismatch between query and body",
			zap.String("query_tenant_id", queryTenantID),
			zap.String("body_tenant_id", req.TenantID))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenantId in query and body do not match"})
	}

	if req.Password != "" && len(req.Password) < MinPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
	}

	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, "id = ?", queryTenantID); result.Error != nil {
		log.Error("Tenant not found", zap.String("tenant_id", queryTenantID), zap.Error(result.Error))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenant not found"})
	}

	// The assigned role must be a tenant role for a tenant-scoped user
	var role model.Role
	if result := database.GetDB().First(&role, "id = ?", req.RoleID); result.Error != nil {
		log.Error("Role not found", zap.String("role_id", req.RoleID), zap.Error(result.Error))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role not found"})
	}
	if role.IsPlatformRole {
		log.Warn("Platform role supplied for tenant user", zap.String("role_id", role.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenant users require a tenant role"})
	}

	// Auto-generate an initial password when none was supplied
	password := req.Password
	if password == "" {
		password = uuid.NewString()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user creation failed"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	user := model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hash),
		RoleID:   role.ID,
		TenantID: &tenant.ID,
	}

	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create tenant user", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"message": "user creation failed, email may already exist"})
	}

	user.Role = &role
	user.Tenant = &tenant

	log.Info("Tenant user created",
		zap.String("id", user.ID),
		zap.String("email", user.Email),
		zap.String("tenant_id", tenant.ID))

	return c.JSON(http.StatusCreated, user)
}

// UpdateUser handles partial user updates (PATCH). The tenant/role invariant
// is re-checked against the role that results from the update: a platform
// role clears the tenant, a tenant role requires one.
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("users", "update")

	id := c.Param("id")

	// Parse request - all fields optional for PATCH semantics
	var req struct {
		Email    *string `json:"email,omitempty"`
		Name     *string `json:"name,omitempty"`
		RoleID   *string `json:"roleId,omitempty"`
		TenantID *string `json:"tenantId,omitempty"`
		Password *string `json:"password,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	var user model.User
	if result := database.GetDB().First(&user, "id = ?", id); result.Error != nil {
		log.Error("User not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	}

	if req.Email != nil {
		if *req.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "email cannot be empty"})
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		if *req.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "name cannot be empty"})
		}
		user.Name = *req.Name
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.TenantID != nil {
		if *req.TenantID == "" {
			user.TenantID = nil
		} else {
			user.TenantID = req.TenantID
		}
	}

	// Password is write-only: present means rotate, absent means keep
	if req.Password != nil {
		if len(*req.Password) < MinPasswordLength {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user update failed"})
		}
		user.Password = string(hash)
	}

	var role model.Role
	if result := database.GetDB().First(&role, "id = ?", user.RoleID); result.Error != nil {
		log.Error("Role not found", zap.String("role_id", user.RoleID), zap.Error(result.Error))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role not found"})
	}

	// Enforce the scope invariant
	if role.IsPlatformRole {
		user.TenantID = nil
	} else if user.TenantID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenant users require a tenant"})
	} else {
		var tenant model.Tenant
		if result := database.GetDB().First(&tenant, "id = ?", *user.TenantID); result.Error != nil {
			log.Error("Tenant not found", zap.String("tenant_id", *user.TenantID), zap.Error(result.Error))
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "tenant not found"})
		}
	}

	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user update failed, email may already exist"})
	}

	// Reload with relations for the denormalized response
	if result := database.GetDB().Preload("Role").Preload("Tenant").First(&user, "id = ?", user.ID); result.Error != nil {
		log.Error("Failed to reload user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user update failed"})
	}

	log.Info("User updated", zap.String("id", user.ID), zap.String("email", user.Email))

	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("users", "delete")

	id := c.Param("id")

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	var user model.User
	if result := database.GetDB().First(&user, "id = ?", id); result.Error != nil {
		log.Error("User not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	}

	if result := database.GetDB().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "user deletion failed"})
	}

	log.Info("User deleted", zap.String("id", id))

	return c.NoContent(http.StatusNoContent)
}
