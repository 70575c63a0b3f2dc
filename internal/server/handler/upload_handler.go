package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/pkg/logger"
)

// UploadHandler stores product images and serves them back under /uploads.
type UploadHandler struct {
	Dir string
}

// UploadProductImage accepts a multipart form with an "image" field and
// answers with the URL the file is served under.
func (h *UploadHandler) UploadProductImage(c echo.Context) error {
	log := logger.FromContext(c)

	file, err := c.FormFile("image")
	if err != nil {
		log.Warn("Missing image field in upload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image field is required"})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read upload"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		log.Error("Failed to create upload directory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	path := filepath.Join(h.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		log.Error("Failed to create upload file", zap.String("path", path), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Error("Failed to write upload file", zap.String("path", path), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store upload"})
	}

	url := fmt.Sprintf("/uploads/%s", name)
	log.Info("Image uploaded",
		zap.String("filename", file.Filename),
		zap.String("url", url),
		zap.Int64("size", file.Size))
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
