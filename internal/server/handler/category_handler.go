package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/pkg/database"
	"github.com/suteetoe/catalogadmin/pkg/logger"
)

// CategoryRequest defines the structure for category creation requests
type CategoryRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"isActive"`
}

// ListCategories retrieves categories, optionally filtered by active status.
// The response is a bare array, one of the envelope shapes clients accept.
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Model(&model.Category{})
	if isActive := c.QueryParam("isActive"); isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		} else {
			log.Warn("Invalid isActive parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	var categories []model.Category
	result := query.Order("name ASC").Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve categories"})
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a specific category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().First(&category, id)
	if result.Error != nil {
		log.Error("Category not found", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory creates a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category := model.Category{
		Name:     req.Name,
		Icon:     req.Icon,
		IsActive: req.IsActive,
	}

	result := database.GetDB().Create(&category)
	if result.Error != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create category"})
	}

	log.Info("Category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}
