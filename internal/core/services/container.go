package services

import (
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
)

// NewServiceContainer wires all services against the given repositories.
func NewServiceContainer(
	ccRepo portsrepo.CostCenterRepositoryWithTx,
	itemKindRepo portsrepo.ItemKindRepository,
	purchaseRepo portsrepo.PurchaseRepositoryWithTx,
	fundingRepo portsrepo.FundingRepositoryFacade,
	maxPathLength int,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		CostCenter: NewCostCenterService(ccRepo, maxPathLength),
		Purchase:   NewPurchaseService(purchaseRepo, itemKindRepo, ccRepo),
		Funding:    NewFundingService(fundingRepo, ccRepo),
		Reporting:  NewReportingService(ccRepo, purchaseRepo, fundingRepo),
	}
}
