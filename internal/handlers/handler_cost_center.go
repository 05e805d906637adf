package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ifd3f/DERP/internal/apperrors"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/ifd3f/DERP/internal/middleware"
	"github.com/gin-gonic/gin"
)

// costCenterHandler handles HTTP requests related to cost centers.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
	purchaseService   portssvc.PurchaseSvcFacade
	fundingService    portssvc.FundingSvcFacade
	reportingService  portssvc.ReportingSvcFacade
}

// registerCostCenterRoutes registers routes related to cost centers.
func registerCostCenterRoutes(rg *gin.RouterGroup, ccs portssvc.CostCenterSvcFacade, ps portssvc.PurchaseSvcFacade, fs portssvc.FundingSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := &costCenterHandler{
		costCenterService: ccs,
		purchaseService:   ps,
		fundingService:    fs,
		reportingService:  rs,
	}

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listRootCostCenters)
		costCenters.GET("/:id", h.getCostCenter)
		costCenters.PUT("/:id/parent", h.reparentCostCenter)
		costCenters.DELETE("/:id", h.deleteCostCenter)
		costCenters.GET("/:id/balance-sheet", h.getBalanceSheet)
		costCenters.GET("/:id/purchases", h.listPurchases)
		costCenters.GET("/:id/fundings", h.listFundings)
	}
}

// idParam parses the numeric :id path parameter, replying 400 on garbage.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cc, err := h.costCenterService.CreateCostCenter(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) { // unknown parent
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create cost center", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cost center"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(cc))
}

func (h *costCenterHandler) listRootCostCenters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roots, err := h.costCenterService.ListRootCostCenters(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list root cost centers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cost centers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListCostCenterResponse(roots))
}

func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	cc, err := h.costCenterService.GetCostCenter(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost center not found"})
		} else {
			logger.Error("Failed to get cost center", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cost center"})
		}
		return
	}

	children, err := h.costCenterService.ListChildCostCenters(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to list children", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cost center"})
		return
	}

	c.JSON(http.StatusOK, dto.CostCenterDetailResponse{
		CostCenterResponse: dto.ToCostCenterResponse(cc),
		Children:           dto.ToListCostCenterResponse(children),
	})
}

func (h *costCenterHandler) reparentCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.ReparentCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReparentCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cc, err := h.costCenterService.ReparentCostCenter(c.Request.Context(), id, req.ParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCycle) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reparent cost center", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reparent cost center"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(cc))
}

func (h *costCenterHandler) deleteCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.costCenterService.DeleteCostCenter(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrProtected) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost center not found"})
		} else {
			logger.Error("Failed to delete cost center", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cost center"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *costCenterHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.GetBalanceSheet(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost center not found"})
		} else {
			logger.Error("Failed to compute balance sheet", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance sheet"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(id, rows))
}

func (h *costCenterHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	purchases, err := h.purchaseService.ListPurchasesByCostCenter(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost center not found"})
		} else {
			logger.Error("Failed to list purchases", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListPurchaseResponse(purchases))
}

func (h *costCenterHandler) listFundings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := idParam(c)
	if !ok {
		return
	}

	fundings, err := h.fundingService.ListFundingsByCostCenter(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost center not found"})
		} else {
			logger.Error("Failed to list fundings", slog.Int64("cost_center_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fundings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListFundingResponse(fundings))
}
