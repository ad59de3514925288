package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agencydesk/internal/models"
)

// PackageHandler manages the pre-defined website packages.
type PackageHandler struct {
	repos  *Repos
	logger *zap.Logger
}

func NewPackageHandler(repos *Repos, logger *zap.Logger) *PackageHandler {
	return &PackageHandler{repos: repos, logger: logger}
}

// List returns packages. ?all=1 includes deactivated ones.
// GET /api/packages
func (h *PackageHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "1"
	packages, err := h.repos.Package.FindAll(activeOnly)
	if err != nil {
		h.logger.Error("Failed to list packages", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve packages")
	}
	return successResponse(c, "Successful", packages)
}

// Create adds a new package.
// POST /api/packages
func (h *PackageHandler) Create(c echo.Context) error {
	var pkg models.Package
	if err := c.Bind(&pkg); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if pkg.Code == "" || pkg.Name == "" || pkg.Price <= 0 {
		return errorResponse(c, http.StatusBadRequest, "code, name and a positive price are required")
	}
	if pkg.Currency == "" {
		pkg.Currency = "LKR"
	}
	pkg.ID = 0
	pkg.Active = true

	if err := h.repos.Package.Create(&pkg); err != nil {
		h.logger.Error("Failed to create package", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create package")
	}
	return successResponse(c, "Package created", pkg)
}

// Update modifies a package in place.
// PUT /api/packages/:code
func (h *PackageHandler) Update(c echo.Context) error {
	code := c.Param("code")
	if _, err := h.repos.Package.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Package not found")
		}
		h.logger.Error("Package lookup failed", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve package")
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	updates := make(map[string]interface{})
	for _, field := range []string{"name", "description", "price", "currency", "features", "active"} {
		if v, ok := body[field]; ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return errorResponse(c, http.StatusBadRequest, "No updatable fields supplied")
	}

	if err := h.repos.Package.UpdateByCode(code, updates); err != nil {
		h.logger.Error("Failed to update package", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to update package")
	}
	return successResponse(c, "Package updated", map[string]string{"code": code})
}

// Delete removes a package.
// DELETE /api/packages/:code
func (h *PackageHandler) Delete(c echo.Context) error {
	code := c.Param("code")
	if err := h.repos.Package.DeleteByCode(code); err != nil {
		h.logger.Error("Failed to delete package", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to delete package")
	}
	return successResponse(c, "Package deleted", map[string]string{"code": code})
}
