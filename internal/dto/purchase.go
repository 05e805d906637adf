package dto

import (
	"time"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest defines the data needed to book a purchase.
// The item kind is named, not referenced: an unknown name creates a new kind.
type CreatePurchaseRequest struct {
	PurchaseDate    time.Time       `json:"purchaseDate" binding:"required"`
	Comment         string          `json:"comment"`
	ItemName        string          `json:"itemName" binding:"required,max=64"`
	ItemDescription string          `json:"itemDescription"`
	Quantity        decimal.Decimal `json:"quantity" binding:"dgt0"`
	TotalPrice      decimal.Decimal `json:"totalPrice" binding:"dgte0"`
	Supplier        string          `json:"supplier" binding:"omitempty,url"`
	CostCenterID    int64           `json:"costCenterID" binding:"required"`
	Purchaser       string          `json:"purchaser"`
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID     int64           `json:"purchaseID"`
	PurchaseDate   time.Time       `json:"purchaseDate"`
	Label          string          `json:"label"`
	Comment        string          `json:"comment"`
	ItemKindID     int64           `json:"itemKindID"`
	ItemName       string          `json:"itemName"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Supplier       string          `json:"supplier"`
	CostCenterID   int64           `json:"costCenterID"`
	CostCenterName string          `json:"costCenterName"`
	Purchaser      string          `json:"purchaser"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToPurchaseResponse converts a purchase ledger row to its response DTO.
func ToPurchaseResponse(row *domain.PurchaseLedgerRow) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:     row.PurchaseID,
		PurchaseDate:   row.PurchaseDate,
		Label:          row.DisplayLabel(row.ItemName),
		Comment:        row.Comment,
		ItemKindID:     row.ItemKindID,
		ItemName:       row.ItemName,
		Quantity:       row.Quantity,
		TotalPrice:     row.TotalPrice,
		Supplier:       row.Supplier,
		CostCenterID:   row.CostCenterID,
		CostCenterName: row.CostCenterName,
		Purchaser:      row.Purchaser,
		CreatedAt:      row.CreatedAt,
		LastUpdatedAt:  row.LastUpdatedAt,
	}
}

// ToListPurchaseResponse converts purchase ledger rows to response DTOs.
func ToListPurchaseResponse(rows []domain.PurchaseLedgerRow) []PurchaseResponse {
	res := make([]PurchaseResponse, len(rows))
	for i := range rows {
		res[i] = ToPurchaseResponse(&rows[i])
	}
	return res
}
