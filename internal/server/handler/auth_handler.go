package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/pkg/jwtutil"
	"github.com/suteetoe/catalogadmin/pkg/logger"
)

// TokenRequest is the body for the dev token endpoint.
type TokenRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DevToken mints a bearer token for local development and testing. Only
// mounted when auth is enabled.
func DevToken(c echo.Context) error {
	log := logger.FromContext(c)

	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Email == "" {
		req.Email = "operator@localhost"
	}
	if req.Role == "" {
		req.Role = "admin"
	}

	token, err := jwtutil.GenerateToken(req.Email, req.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate token"})
	}

	log.Info("Dev token issued", zap.String("email", req.Email), zap.String("role", req.Role))
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
