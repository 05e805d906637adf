package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/ifd3f/DERP/internal/middleware"
)

// purchaseService books purchases against cost centers. Item kinds are
// resolved by name, created on first use, and never mutated afterwards.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	itemKindRepo portsrepo.ItemKindRepository
	ccRepo       portsrepo.CostCenterReader
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryWithTx, itemKindRepo portsrepo.ItemKindRepository, ccRepo portsrepo.CostCenterReader) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		itemKindRepo: itemKindRepo,
		ccRepo:       ccRepo,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchase validates and books a purchase. The item-kind lookup (or
// creation) and the purchase insert share one transaction.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.PurchaseLedgerRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrValidation, req.Quantity.String())
	}
	if req.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: total price must not be negative, got %s", apperrors.ErrValidation, req.TotalPrice.String())
	}

	cc, err := s.ccRepo.FindCostCenterByID(ctx, req.CostCenterID)
	if err != nil {
		return nil, fmt.Errorf("cost center %d: %w", req.CostCenterID, err)
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	kind, err := s.itemKindRepo.FindItemKindByNameInTx(ctx, tx, req.ItemName)
	if errors.Is(err, apperrors.ErrNotFound) {
		kind = &domain.ItemKind{Name: req.ItemName, Description: req.ItemDescription}
		if err := s.itemKindRepo.SaveItemKindInTx(ctx, tx, kind); err != nil {
			return nil, err
		}
		logger.Info("Item kind created", slog.Int64("item_kind_id", kind.ItemKindID), slog.String("name", kind.Name))
	} else if err != nil {
		return nil, err
	}

	purchase := domain.Purchase{
		PurchaseDate: req.PurchaseDate,
		Comment:      req.Comment,
		ItemKindID:   kind.ItemKindID,
		Quantity:     req.Quantity,
		TotalPrice:   req.TotalPrice,
		Supplier:     req.Supplier,
		CostCenterID: cc.CostCenterID,
		Purchaser:    req.Purchaser,
	}
	purchase.Touch(now)

	if err := s.purchaseRepo.SavePurchaseInTx(ctx, tx, &purchase); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Purchase created",
		slog.Int64("purchase_id", purchase.PurchaseID),
		slog.Int64("cost_center_id", cc.CostCenterID),
		slog.String("total_price", purchase.TotalPrice.String()),
	)
	return &domain.PurchaseLedgerRow{
		Purchase:       purchase,
		ItemName:       kind.Name,
		CostCenterName: cc.Name,
	}, nil
}

// GetPurchase retrieves a purchase with its display names.
func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID int64) (*domain.PurchaseLedgerRow, error) {
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

// ListPurchasesByCostCenter lists purchases booked directly on a cost center.
func (s *purchaseService) ListPurchasesByCostCenter(ctx context.Context, costCenterID int64) ([]domain.PurchaseLedgerRow, error) {
	if _, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID); err != nil {
		return nil, err
	}
	return s.purchaseRepo.ListPurchasesByCostCenter(ctx, costCenterID)
}
