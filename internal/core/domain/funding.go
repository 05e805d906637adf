package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Funding is a one-time credit transaction increasing a cost center's
// balance.
type Funding struct {
	FundingID    int64           `json:"fundingID"`
	Name         string          `json:"name"`
	CostCenterID int64           `json:"costCenterID"`
	FundingDate  time.Time       `json:"fundingDate"`
	Credit       decimal.Decimal `json:"credit"`
	Comment      string          `json:"comment"`
	AuditFields
}
