package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/internal/model"
	"github.com/suteetoe/platformadmin/pkg/database"
	"github.com/suteetoe/platformadmin/pkg/logger"
	"github.com/suteetoe/platformadmin/prometheus"
)

// ListRoles returns all roles, platform and tenant scoped
func ListRoles(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("roles", "list")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var roles []model.Role
	if result := database.GetDB().Order("name").Find(&roles); result.Error != nil {
		log.Error("Failed to list roles", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to list roles"})
	}

	return c.JSON(http.StatusOK, roles)
}

// CreateRole handles role creation
func CreateRole(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("roles", "create")

	// Parse request
	var req struct {
		Name           string `json:"name"`
		Description    string `json:"description,omitempty"`
		IsPlatformRole bool   `json:"isPlatformRole"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse role creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	role := model.Role{
		Name:           req.Name,
		Description:    req.Description,
		IsPlatformRole: req.IsPlatformRole,
	}

	if result := database.GetDB().Create(&role); result.Error != nil {
		log.Error("Failed to create role", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"message": "role creation failed, name may already exist"})
	}

	log.Info("Role created",
		zap.String("name", role.Name),
		zap.String("id", role.ID),
		zap.Bool("is_platform_role", role.IsPlatformRole))

	return c.JSON(http.StatusCreated, role)
}

// UpdateRole handles partial role updates (PATCH)
func UpdateRole(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("roles", "update")

	id := c.Param("id")

	// Parse request - all fields optional for PATCH semantics
	var req struct {
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse role update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	var role model.Role
	if result := database.GetDB().First(&role, "id = ?", id); result.Error != nil {
		log.Error("Role not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "role not found"})
	}

	if req.Name != nil {
		if *req.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "name cannot be empty"})
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if result := database.GetDB().Save(&role); result.Error != nil {
		log.Error("Failed to update role", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "role update failed"})
	}

	log.Info("Role updated", zap.String("id", role.ID), zap.String("name", role.Name))

	return c.JSON(http.StatusOK, role)
}

// DeleteRole removes a role if no user still references it
func DeleteRole(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("roles", "delete")

	id := c.Param("id")

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	var role model.Role
	if result := database.GetDB().First(&role, "id = ?", id); result.Error != nil {
		log.Error("Role not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "role not found"})
	}

	// Refuse to delete a role that is still assigned
	var count int64
	if result := database.GetDB().Model(&model.User{}).Where("role_id = ?", id).Count(&count); result.Error != nil {
		log.Error("Failed to count role assignments", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "role deletion failed"})
	}
	if count > 0 {
		log.Warn("Attempt to delete role still in use", zap.String("id", id), zap.Int64("users", count))
		return c.JSON(http.StatusConflict, echo.Map{"message": "role is still assigned to users"})
	}

	if result := database.GetDB().Delete(&role); result.Error != nil {
		log.Error("Failed to delete role", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "role deletion failed"})
	}

	log.Info("Role deleted", zap.String("id", id))

	return c.NoContent(http.StatusNoContent)
}
