package dto

import (
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePostingRequest is one leg of a new transaction. A zero amount marks
// the leg as the balance posting; its amount is then derived by the balancer.
type CreatePostingRequest struct {
	AccountID            int64           `json:"accountID" binding:"required"`
	Amount               decimal.Decimal `json:"amount"`
	CommodityCode        string          `json:"commodityCode" binding:"omitempty,commoditycode"`
	ForeignAmount        decimal.Decimal `json:"foreignAmount"`
	ForeignCommodityCode string          `json:"foreignCommodityCode" binding:"omitempty,commoditycode"`
}

// CreateTransactionRequest defines the data needed to create a transaction
// together with its postings.
type CreateTransactionRequest struct {
	Description string                 `json:"description" binding:"max=250"`
	Date        time.Time              `json:"date"`
	Postings    []CreatePostingRequest `json:"postings" binding:"required,min=2,dive"`
}

// UpdatePostingRequest defines the data needed to amend a posting.
type UpdatePostingRequest struct {
	AccountID            int64           `json:"accountID" binding:"required"`
	Amount               decimal.Decimal `json:"amount"`
	CommodityCode        string          `json:"commodityCode" binding:"omitempty,commoditycode"`
	ForeignAmount        decimal.Decimal `json:"foreignAmount"`
	ForeignCommodityCode string          `json:"foreignCommodityCode" binding:"omitempty,commoditycode"`
}

// PostingResponse defines the data returned for a posting.
type PostingResponse struct {
	PostingID          int64           `json:"postingID"`
	TransactionID      int64           `json:"transactionID"`
	AccountID          int64           `json:"accountID"`
	Amount             decimal.Decimal `json:"amount"`
	CommodityID        int64           `json:"commodityID"`
	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	ForeignCommodityID *int64          `json:"foreignCommodityID,omitempty"`
	IsBalancePosting   bool            `json:"isBalancePosting"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64             `json:"transactionID"`
	Description   string            `json:"description,omitempty"`
	Date          string            `json:"date"`
	Postings      []PostingResponse `json:"postings,omitempty"`
	Balance       *BalanceResponse  `json:"balance,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ToPostingResponse converts a domain.Posting to its response DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		PostingID:          p.PostingID,
		TransactionID:      p.TransactionID,
		AccountID:          p.AccountID,
		Amount:             p.Amount,
		CommodityID:        p.CommodityID,
		ForeignAmount:      p.ForeignAmount,
		ForeignCommodityID: p.ForeignCommodityID,
		IsBalancePosting:   p.IsBalancePosting,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}

// ToListPostingResponse converts a slice of postings to response DTOs.
func ToListPostingResponse(postings []domain.Posting) []PostingResponse {
	res := make([]PostingResponse, len(postings))
	for i := range postings {
		res[i] = ToPostingResponse(&postings[i])
	}
	return res
}

// ToTransactionResponse converts a domain.Transaction and its postings to a response DTO.
func ToTransactionResponse(t *domain.Transaction, postings []domain.Posting, balance *BalanceResponse) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Date:          t.Date.Format("2006-01-02"),
		Postings:      ToListPostingResponse(postings),
		Balance:       balance,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}
