package repositories

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
)

// FundingReader defines read operations for funding data.
type FundingReader interface {
	// FindFundingByID retrieves a funding joined with its cost-center name.
	FindFundingByID(ctx context.Context, fundingID int64) (*domain.FundingLedgerRow, error)

	// ListFundingsByCostCenter returns the fundings booked directly on one
	// cost center, newest funding date first.
	ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error)

	// FindFundingRowsByPathPrefix returns every funding whose owning cost
	// center lies in the subtree identified by path (that node included).
	FindFundingRowsByPathPrefix(ctx context.Context, path string) ([]domain.FundingLedgerRow, error)
}

// FundingWriter defines write operations for funding data.
type FundingWriter interface {
	// SaveFunding inserts a new funding and sets the assigned id on it.
	SaveFunding(ctx context.Context, funding *domain.Funding) error
}

// FundingRepositoryFacade combines all funding repository interfaces.
type FundingRepositoryFacade interface {
	FundingReader
	FundingWriter
}
