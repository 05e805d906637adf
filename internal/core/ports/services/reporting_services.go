package services

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
)

// ReportingSvcFacade defines the balance-sheet query operations.
type ReportingSvcFacade interface {
	// GetBalanceSheet returns the chronologically ordered transactions of the
	// cost center and all its descendants, each row carrying the running
	// balance through itself.
	GetBalanceSheet(ctx context.Context, costCenterID int64) ([]domain.TransactionRow, error)
}
