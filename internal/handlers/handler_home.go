package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/ifd3f/DERP/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the landing route: the root cost centers, the
// entry points into the spending hierarchy.
func registerHomeRoutes(r *gin.Engine, costCenterService portssvc.CostCenterSvcFacade) {
	r.GET("/", func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		roots, err := costCenterService.ListRootCostCenters(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list root cost centers", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list root cost centers"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"rootCostCenters": dto.ToListCostCenterResponse(roots),
		})
	})
}
