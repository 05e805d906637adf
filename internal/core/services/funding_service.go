package services

import (
	"context"
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

// fundingService books one-time fundings on cost centers.
type fundingService struct {
	fundingRepo portsrepo.FundingRepositoryFacade
	ccRepo      portsrepo.CostCenterReader
}

// NewFundingService creates a new funding service.
func NewFundingService(fundingRepo portsrepo.FundingRepositoryFacade, ccRepo portsrepo.CostCenterReader) portssvc.FundingSvcFacade {
	return &fundingService{
		fundingRepo: fundingRepo,
		ccRepo:      ccRepo,
	}
}

var _ portssvc.FundingSvcFacade = (*fundingService)(nil)

// CreateFunding validates and books a funding.
func (s *fundingService) CreateFunding(ctx context.Context, req dto.CreateFundingRequest) (*domain.FundingLedgerRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if !req.Credit.IsPositive() {
		return nil, fmt.Errorf("%w: credit must be positive, got %s", apperrors.ErrValidation, req.Credit.String())
	}

	cc, err := s.ccRepo.FindCostCenterByID(ctx, req.CostCenterID)
	if err != nil {
		return nil, fmt.Errorf("cost center %d: %w", req.CostCenterID, err)
	}

	funding := domain.Funding{
		Name:         req.Name,
		CostCenterID: cc.CostCenterID,
		FundingDate:  req.FundingDate,
		Credit:       req.Credit,
		Comment:      req.Comment,
	}
	funding.Touch(now)

	if err := s.fundingRepo.SaveFunding(ctx, &funding); err != nil {
		return nil, err
	}

	logger.Info("Funding created",
		slog.Int64("funding_id", funding.FundingID),
		slog.Int64("cost_center_id", cc.CostCenterID),
		slog.String("credit", funding.Credit.String()),
	)
	return &domain.FundingLedgerRow{
		Funding:        funding,
		CostCenterName: cc.Name,
	}, nil
}

// GetFunding retrieves a funding with its cost-center name.
func (s *fundingService) GetFunding(ctx context.Context, fundingID int64) (*domain.FundingLedgerRow, error) {
	return s.fundingRepo.FindFundingByID(ctx, fundingID)
}

// ListFundingsByCostCenter lists fundings booked directly on a cost center.
func (s *fundingService) ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error) {
	if _, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID); err != nil {
		return nil, err
	}
	return s.fundingRepo.ListFundingsByCostCenter(ctx, costCenterID)
}
