package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/pkg/database"
	"github.com/suteetoe/catalogadmin/pkg/logger"
)

// sortColumns whitelists the sortable fields and maps them to columns.
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

// ListProducts handles retrieving products with filtering, sorting and pagination
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	query := db.Model(&model.Product{})

	// Free-text search over name and description
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	// Filter by active status if specified
	if isActive := c.QueryParam("isActive"); isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
		} else {
			log.Warn("Invalid isActive parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	// Filter by category if specified
	if categoryID := c.QueryParam("categoryId"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	// Sorting, restricted to the whitelist
	column, ok := sortColumns[c.QueryParam("sortBy")]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if c.QueryParam("sortOrder") == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	// Pagination
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if result := query.Count(&total); result.Error != nil {
		log.Error("Failed to count products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	var products []model.Product
	result := query.Offset((page - 1) * limit).Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	log.Info("Products retrieved", zap.Int("count", len(products)), zap.Int64("total", total))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"products": products,
			"pagination": model.Pagination{
				Page:       page,
				Limit:      limit,
				Total:      total,
				TotalPages: int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.ProductPayload
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := validatePayload(req.Name, req.Price, req.Stock); msg != "" {
		log.Warn("Product payload rejected", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles partially updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req model.ProductUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found for update", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	// Only fields present in the payload are touched
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if msg := validatePayload(product.Name, product.Price, product.Stock); msg != "" {
		log.Warn("Product update rejected", zap.String("product_id", id), zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	log.Info("Product updated", zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func validatePayload(name string, price float64, stock int) string {
	if name == "" {
		return "name is required"
	}
	if price < 0 {
		return "price must not be negative"
	}
	if stock < 0 {
		return "stock must not be negative"
	}
	return ""
}
