package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingService computes balance sheets: the union of purchases and
// fundings under a cost center's path prefix, chronologically merged with a
// running balance. Each underlying fetch is a single indexed prefix scan;
// that is the whole point of maintaining the materialized path.
type reportingService struct {
	ccRepo       portsrepo.CostCenterReader
	purchaseRepo portsrepo.PurchaseReader
	fundingRepo  portsrepo.FundingReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(ccRepo portsrepo.CostCenterReader, purchaseRepo portsrepo.PurchaseReader, fundingRepo portsrepo.FundingReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		ccRepo:       ccRepo,
		purchaseRepo: purchaseRepo,
		fundingRepo:  fundingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetBalanceSheet returns every transaction belonging to the cost center or
// any of its descendants, ordered by date (transaction id as tie-break, so
// repeated queries return identical orderings), with the running balance
// filled in. Purchases enter negative, fundings positive; the final row's
// balance is the subtree's total balance.
func (s *reportingService) GetBalanceSheet(ctx context.Context, costCenterID int64) ([]domain.TransactionRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cc, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.FindPurchaseRowsByPathPrefix(ctx, cc.Path)
	if err != nil {
		return nil, err
	}
	fundings, err := s.fundingRepo.FindFundingRowsByPathPrefix(ctx, cc.Path)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TransactionRow, 0, len(purchases)+len(fundings))
	for _, p := range purchases {
		rows = append(rows, p.ToTransactionRow())
	}
	for _, f := range fundings {
		rows = append(rows, f.ToTransactionRow())
	}

	slices.SortStableFunc(rows, func(a, b domain.TransactionRow) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.TransactionID, b.TransactionID)
	})

	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Price)
		rows[i].Balance = running
	}

	logger.Debug("Balance sheet computed",
		slog.Int64("cost_center_id", costCenterID),
		slog.Int("rows", len(rows)),
		slog.String("total_balance", running.String()),
	)
	return rows, nil
}
