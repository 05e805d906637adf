package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a debit transaction: some quantity of an item kind bought for
// a cost center. Quantity and TotalPrice are exact decimals; float money is
// not acceptable here.
type Purchase struct {
	PurchaseID   int64           `json:"purchaseID"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Comment      string          `json:"comment"`
	ItemKindID   int64           `json:"itemKindID"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Supplier     string          `json:"supplier"`  // URL of the supplier/listing
	CostCenterID int64           `json:"costCenterID"`
	Purchaser    string          `json:"purchaser"` // optional, empty means unknown
	AuditFields
}

// DisplayLabel is the human-readable label for a purchase: the comment when
// one was given, otherwise "<item> x<quantity>".
func (p *Purchase) DisplayLabel(itemName string) string {
	if p.Comment != "" {
		return p.Comment
	}
	return fmt.Sprintf("%s x%s", itemName, p.Quantity.String())
}
