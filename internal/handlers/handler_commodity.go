package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finbook/finbook_app/internal/apperrors"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commodityHandler handles HTTP requests related to commodities.
type commodityHandler struct {
	commodityService portssvc.CommoditySvcFacade
	priceService     portssvc.PriceSvcFacade
}

// newCommodityHandler creates a new commodityHandler.
func newCommodityHandler(cs portssvc.CommoditySvcFacade, ps portssvc.PriceSvcFacade) *commodityHandler {
	return &commodityHandler{
		commodityService: cs,
		priceService:     ps,
	}
}

// registerCommodityRoutes registers routes related to commodities.
func registerCommodityRoutes(rg *gin.RouterGroup, commodityService portssvc.CommoditySvcFacade, priceService portssvc.PriceSvcFacade) {
	h := newCommodityHandler(commodityService, priceService)

	commodities := rg.Group("/commodities")
	{
		commodities.POST("", h.createCommodity)
		commodities.GET("", h.listCommodities)
		commodities.GET("/:code", h.getCommodityByCode)
		commodities.GET("/:code/convert", h.convertCommodity)
		commodities.GET("/:code/prices", h.listPrices)
	}
}

func (h *commodityHandler) createCommodity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCommodityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCommodity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create commodity", slog.String("code", req.Code))

	created, err := h.commodityService.CreateCommodity(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate commodity", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Commodity code '%s' already exists", req.Code)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating commodity", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create commodity in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create commodity"})
		}
		return
	}

	logger.Info("Commodity created successfully", slog.String("code", created.Code), slog.Int64("commodity_id", created.CommodityID))
	c.JSON(http.StatusCreated, dto.ToCommodityResponse(created))
}

func (h *commodityHandler) listCommodities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	commodities, err := h.commodityService.ListCommodities(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list commodities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list commodities"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCommodityResponse(commodities))
}

func (h *commodityHandler) getCommodityByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	commodity, err := h.commodityService.GetCommodityByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Commodity '%s' not found", code)})
			return
		}
		logger.Error("Failed to get commodity", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve commodity"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommodityResponse(commodity))
}

// convertCommodity returns the conversion factor from the commodity in the
// path to the commodity named by the `to` query parameter. Unknown targets
// resolve to factor 1.
func (h *commodityHandler) convertCommodity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")
	target := c.Query("to")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'to' is required"})
		return
	}

	from, err := h.commodityService.GetCommodityByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Commodity '%s' not found", code)})
			return
		}
		logger.Error("Failed to get commodity", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve commodity"})
		return
	}

	factor, err := h.commodityService.ConvertTo(c.Request.Context(), *from, target)
	if err != nil {
		logger.Error("Failed to compute conversion factor", slog.String("from", code), slog.String("to", target), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute conversion factor"})
		return
	}

	c.JSON(http.StatusOK, dto.ConversionResponse{From: from.Code, To: target, Factor: factor})
}

func (h *commodityHandler) listPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	prices, err := h.priceService.ListPricesByCommodityCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Commodity '%s' not found", code)})
			return
		}
		logger.Error("Failed to list prices", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPriceResponse(prices))
}
