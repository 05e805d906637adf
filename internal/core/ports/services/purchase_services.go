package services

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/ifd3f/DERP/internal/dto"
)

// PurchaseSvcFacade defines the purchase workflow operations.
type PurchaseSvcFacade interface {
	// CreatePurchase validates and books a purchase against a cost center,
	// resolving or creating the named item kind in the same transaction.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.PurchaseLedgerRow, error)

	// GetPurchase retrieves a purchase with its display names.
	GetPurchase(ctx context.Context, purchaseID int64) (*domain.PurchaseLedgerRow, error)

	// ListPurchasesByCostCenter lists purchases booked directly on a cost center.
	ListPurchasesByCostCenter(ctx context.Context, costCenterID int64) ([]domain.PurchaseLedgerRow, error)
}

// FundingSvcFacade defines the funding workflow operations.
type FundingSvcFacade interface {
	// CreateFunding validates and books a one-time funding on a cost center.
	CreateFunding(ctx context.Context, req dto.CreateFundingRequest) (*domain.FundingLedgerRow, error)

	// GetFunding retrieves a funding with its cost-center name.
	GetFunding(ctx context.Context, fundingID int64) (*domain.FundingLedgerRow, error)

	// ListFundingsByCostCenter lists fundings booked directly on a cost center.
	ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error)
}
