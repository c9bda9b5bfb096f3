package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finbook/finbook_app/internal/apperrors"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankHandler handles HTTP requests related to banks.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

// newBankHandler creates a new bankHandler.
func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{
		bankService: bs,
	}
}

// registerBankRoutes registers routes related to banks.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.GET("/:bankID", h.getBankByID)
	}
}

func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.bankService.CreateBank(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate bank", slog.String("name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": "A bank with this name already exists"})
		} else {
			logger.Error("Failed to create bank in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank"})
		}
		return
	}

	logger.Info("Bank created successfully", slog.Int64("bank_id", created.BankID))
	c.JSON(http.StatusCreated, dto.ToBankResponse(created))
}

func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.bankService.ListBanks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankResponse(banks))
}

func (h *bankHandler) getBankByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bankID, err := strconv.ParseInt(c.Param("bankID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bank ID"})
		return
	}

	bank, err := h.bankService.GetBankByID(c.Request.Context(), bankID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
			return
		}
		logger.Error("Failed to get bank", slog.Int64("bank_id", bankID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bank"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}
