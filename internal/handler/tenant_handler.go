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

// ListTenants returns all tenants on the platform
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenants", "list")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenants []model.Tenant
	if result := database.GetDB().Order("created_at").Find(&tenants); result.Error != nil {
		log.Error("Failed to list tenants", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to list tenants"})
	}

	return c.JSON(http.StatusOK, tenants)
}

// CreateTenant handles tenant creation
func CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenants", "create")

	// Parse request
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid tenant data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	tenant := model.Tenant{
		Name:    req.Name,
		Address: req.Address,
	}

	// Save tenant to database
	if result := database.GetDB().Create(&tenant); result.Error != nil {
		log.Error("Failed to create tenant", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"message": "tenant creation failed, name may already exist"})
	}

	log.Info("Tenant created",
		zap.String("name", tenant.Name),
		zap.String("id", tenant.ID))

	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant handles full tenant replacement (PUT)
func UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenants", "update")

	id := c.Param("id")

	// Parse request
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse tenant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, "id = ?", id); result.Error != nil {
		log.Error("Tenant not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "tenant not found"})
	}

	tenant.Name = req.Name
	tenant.Address = req.Address

	if result := database.GetDB().Save(&tenant); result.Error != nil {
		log.Error("Failed to update tenant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "tenant update failed"})
	}

	log.Info("Tenant updated", zap.String("id", tenant.ID), zap.String("name", tenant.Name))

	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant
func DeleteTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tenants", "delete")

	id := c.Param("id")

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, "id = ?", id); result.Error != nil {
		log.Error("Tenant not found", zap.String("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "tenant not found"})
	}

	if result := database.GetDB().Delete(&tenant); result.Error != nil {
		log.Error("Failed to delete tenant", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "tenant deletion failed"})
	}

	log.Info("Tenant deleted", zap.String("id", id))

	return c.NoContent(http.StatusNoContent)
}
