package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agencydesk/internal/models"
	"agencydesk/internal/repository"
)

func successResponse(c echo.Context, msg string, obj interface{}) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Status: true,
		Msg:    msg,
		Obj:    obj,
	})
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, models.APIResponse{
		Status: false,
		Msg:    msg,
		Obj:    nil,
	})
}

func paginatedResponse(key string, data interface{}, total, page, limit int) map[string]interface{} {
	if limit <= 0 {
		limit = 50
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return map[string]interface{}{
		key: data,
		"pagination": map[string]interface{}{
			"total_record": total,
			"total_pages":  pages,
			"current_page": page,
			"per_page":     limit,
		},
	}
}

// Repos bundles all repositories needed by API handlers.
type Repos struct {
	Order   *repository.OrderRepository
	Package *repository.PackageRepository
}
