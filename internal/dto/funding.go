package dto

import (
	"time"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundingRequest defines the data needed to book a one-time funding.
type CreateFundingRequest struct {
	Name         string          `json:"name" binding:"required,max=64"`
	CostCenterID int64           `json:"costCenterID" binding:"required"`
	FundingDate  time.Time       `json:"fundingDate" binding:"required"`
	Credit       decimal.Decimal `json:"credit" binding:"dgt0"`
	Comment      string          `json:"comment"`
}

// FundingResponse defines the data returned for a funding.
type FundingResponse struct {
	FundingID      int64           `json:"fundingID"`
	Name           string          `json:"name"`
	CostCenterID   int64           `json:"costCenterID"`
	CostCenterName string          `json:"costCenterName"`
	FundingDate    time.Time       `json:"fundingDate"`
	Credit         decimal.Decimal `json:"credit"`
	Comment        string          `json:"comment"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToFundingResponse converts a funding ledger row to its response DTO.
func ToFundingResponse(row *domain.FundingLedgerRow) FundingResponse {
	return FundingResponse{
		FundingID:      row.FundingID,
		Name:           row.Name,
		CostCenterID:   row.CostCenterID,
		CostCenterName: row.CostCenterName,
		FundingDate:    row.FundingDate,
		Credit:         row.Credit,
		Comment:        row.Comment,
		CreatedAt:      row.CreatedAt,
		LastUpdatedAt:  row.LastUpdatedAt,
	}
}

// ToListFundingResponse converts funding ledger rows to response DTOs.
func ToListFundingResponse(rows []domain.FundingLedgerRow) []FundingResponse {
	res := make([]FundingResponse, len(rows))
	for i := range rows {
		res[i] = ToFundingResponse(&rows[i])
	}
	return res
}
