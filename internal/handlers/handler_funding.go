package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ifd3f/DERP/internal/apperrors"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/ifd3f/DERP/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fundingHandler handles HTTP requests related to fundings.
type fundingHandler struct {
	fundingService portssvc.FundingSvcFacade
}

// registerFundingRoutes registers routes related to fundings.
func registerFundingRoutes(rg *gin.RouterGroup, fs portssvc.FundingSvcFacade) {
	h := &fundingHandler{fundingService: fs}

	fundings := rg.Group("/fundings")
	{
		fundings.POST("", h.createFunding)
		fundings.GET("/:id", h.getFunding)
	}
}

func (h *fundingHandler) createFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFunding", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	row, err := h.fundingService.CreateFunding(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) { // unknown cost center
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create funding", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create funding"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFundingResponse(row))
}

func (h *fundingHandler) getFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	row, err := h.fundingService.GetFunding(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Funding not found"})
		} else {
			logger.Error("Failed to get funding", slog.Int64("funding_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve funding"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFundingResponse(row))
}
