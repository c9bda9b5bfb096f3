package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions and
// their postings.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	postingService     portssvc.PostingSvcFacade
	commodityService   portssvc.CommoditySvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, ps portssvc.PostingSvcFacade, cs portssvc.CommoditySvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		postingService:     ps,
		commodityService:   cs,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, postingService portssvc.PostingSvcFacade, commodityService portssvc.CommoditySvcFacade) {
	h := newTransactionHandler(transactionService, postingService, commodityService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransactionByID)
		transactions.POST("/:transactionID/postings", h.createPosting)
		transactions.PUT("/:transactionID/postings/:postingID", h.updatePosting)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create transaction", slog.Int("postings", len(req.Postings)))

	transaction, postings, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", transaction.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction, postings, nil))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactions, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	res := make([]dto.TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = dto.ToTransactionResponse(&transactions[i], nil, nil)
	}
	c.JSON(http.StatusOK, res)
}

// getTransactionByID returns the transaction with its postings and its
// derived display balance.
func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	transaction, postings, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	var balanceRes *dto.BalanceResponse
	balance, err := h.transactionService.GetBalance(c.Request.Context(), transactionID)
	if err != nil {
		logger.Warn("Failed to compute transaction balance", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
	} else {
		b := dto.ToBalanceResponse(balance)
		balanceRes = &b
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(transaction, postings, balanceRes))
}

// createPosting adds a posting to an existing transaction, running the full
// posting save pipeline including the balance recompute.
func (h *transactionHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	posting := domain.Posting{
		TransactionID: transactionID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		ForeignAmount: req.ForeignAmount,
	}
	if err := h.resolveCommodities(c, &posting, req.CommodityCode, req.ForeignCommodityCode); err != nil {
		return
	}

	h.savePosting(c, logger, &posting, http.StatusCreated)
}

// updatePosting amends an existing posting; the sibling balance posting is
// recomputed as part of the save.
func (h *transactionHandler) updatePosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	transactionID, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}
	postingID, err := strconv.ParseInt(c.Param("postingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	existing, err := h.postingService.GetPostingByID(c.Request.Context(), postingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Posting not found"})
			return
		}
		logger.Error("Failed to get posting", slog.Int64("posting_id", postingID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posting"})
		return
	}
	if existing.TransactionID != transactionID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Posting not found on this transaction"})
		return
	}

	var req dto.UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	posting := domain.Posting{
		PostingID:     postingID,
		TransactionID: transactionID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		ForeignAmount: req.ForeignAmount,
		AuditFields:   existing.AuditFields,
	}
	if err := h.resolveCommodities(c, &posting, req.CommodityCode, req.ForeignCommodityCode); err != nil {
		return
	}

	h.savePosting(c, logger, &posting, http.StatusOK)
}

// resolveCommodities fills the posting's commodity IDs from the request
// codes. On failure the HTTP response has already been written.
func (h *transactionHandler) resolveCommodities(c *gin.Context, posting *domain.Posting, commodityCode, foreignCommodityCode string) error {
	if commodityCode != "" {
		commodity, err := h.commodityService.GetCommodityByCode(c.Request.Context(), commodityCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Commodity '%s' not found", commodityCode)})
			return err
		}
		posting.CommodityID = commodity.CommodityID
	}
	if foreignCommodityCode != "" {
		foreign, err := h.commodityService.GetCommodityByCode(c.Request.Context(), foreignCommodityCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Commodity '%s' not found", foreignCommodityCode)})
			return err
		}
		posting.ForeignCommodityID = &foreign.CommodityID
	}
	return nil
}

func (h *transactionHandler) savePosting(c *gin.Context, logger *slog.Logger, posting *domain.Posting, successStatus int) {
	if err := h.postingService.SavePosting(c.Request.Context(), posting); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving posting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save posting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save posting"})
		}
		return
	}

	logger.Info("Posting saved successfully",
		slog.Int64("posting_id", posting.PostingID),
		slog.Int64("transaction_id", posting.TransactionID),
	)
	c.JSON(successStatus, dto.ToPostingResponse(posting))
}
