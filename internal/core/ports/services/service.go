package services

// ServiceContainer aggregates the service facades handed to the HTTP layer.
type ServiceContainer struct {
	CostCenter CostCenterSvcFacade
	Purchase   PurchaseSvcFacade
	Funding    FundingSvcFacade
	Reporting  ReportingSvcFacade
}
