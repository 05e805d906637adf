package repositories

// RepositoryProvider aggregates the concrete repositories handed to the
// service layer.
type RepositoryProvider struct {
	CostCenterRepo CostCenterRepositoryWithTx
	ItemKindRepo   ItemKindRepository
	PurchaseRepo   PurchaseRepositoryWithTx
	FundingRepo    FundingRepositoryFacade
}
