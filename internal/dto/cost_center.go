package dto

import (
	"time"

	"github.com/ifd3f/DERP/internal/core/domain"
)

// CreateCostCenterRequest defines the data needed to create a cost center.
type CreateCostCenterRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parentID"` // Optional, nil creates a root
}

// ReparentCostCenterRequest moves a cost center under a new parent.
// A nil ParentID detaches the node into a new root.
type ReparentCostCenterRequest struct {
	ParentID *int64 `json:"parentID"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID  int64     `json:"costCenterID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ParentID      *int64    `json:"parentID"`
	Path          string    `json:"path"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CostCenterDetailResponse is a cost center together with its direct children.
type CostCenterDetailResponse struct {
	CostCenterResponse
	Children []CostCenterResponse `json:"children"`
}

// ToCostCenterResponse converts a domain.CostCenter to its response DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID:  cc.CostCenterID,
		Name:          cc.Name,
		Description:   cc.Description,
		ParentID:      cc.ParentID,
		Path:          cc.Path,
		CreatedAt:     cc.CreatedAt,
		LastUpdatedAt: cc.LastUpdatedAt,
	}
}

// ToListCostCenterResponse converts a slice of domain.CostCenter to DTOs.
func ToListCostCenterResponse(ccs []domain.CostCenter) []CostCenterResponse {
	res := make([]CostCenterResponse, len(ccs))
	for i, cc := range ccs {
		res[i] = ToCostCenterResponse(&cc)
	}
	return res
}
