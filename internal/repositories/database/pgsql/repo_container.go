package pgsql

import (
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	costCenterRepo := newPgxCostCenterRepository(dbPool)
	itemKindRepo := newPgxItemKindRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	fundingRepo := newPgxFundingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CostCenterRepo: costCenterRepo,
		ItemKindRepo:   itemKindRepo,
		PurchaseRepo:   purchaseRepo,
		FundingRepo:    fundingRepo,
	}
}
