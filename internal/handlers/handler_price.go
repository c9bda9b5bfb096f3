package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbook/finbook_app/internal/apperrors"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// priceHandler handles HTTP requests related to prices.
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

// newPriceHandler creates a new priceHandler.
func newPriceHandler(ps portssvc.PriceSvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// registerPriceRoutes registers routes related to prices.
func registerPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.POST("", h.createPrice)
	}
}

func (h *priceHandler) createPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create price",
		slog.String("commodity_code", req.CommodityCode),
		slog.String("unit_code", req.UnitCode),
	)

	created, err := h.priceService.CreatePrice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate price", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "A price for this commodity, unit, date and backend already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating price", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create price in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price"})
		}
		return
	}

	logger.Info("Price created successfully", slog.Int64("price_id", created.PriceID))
	c.JSON(http.StatusCreated, dto.ToPriceResponse(created))
}
