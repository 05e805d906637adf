package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags the two row kinds that make up a balance sheet.
type TransactionKind string

const (
	KindPurchase TransactionKind = "P"
	KindFunding  TransactionKind = "F"
)

// TransactionRow is the derived, never-persisted projection a balance sheet
// is made of. Price is signed: purchases negative, fundings positive.
// Balance is the running total through this row, inclusive.
type TransactionRow struct {
	TransactionID  string          `json:"transactionID"` // "P<id>" or "F<id>"
	Kind           TransactionKind `json:"kind"`
	Date           time.Time       `json:"date"`
	Label          string          `json:"label"`
	CostCenterID   int64           `json:"costCenterID"`
	CostCenterName string          `json:"costCenterName"`
	Price          decimal.Decimal `json:"price"`
	Reference      string          `json:"reference"`
	Balance        decimal.Decimal `json:"balance"`
}

// PurchaseLedgerRow is a purchase joined with the display data the balance
// sheet needs. One of the two variants feeding TransactionRow.
type PurchaseLedgerRow struct {
	Purchase
	ItemName       string
	CostCenterName string
}

// ToTransactionRow projects the purchase as a debit row. Balance is left
// zero; the reporting service fills it in during the running-sum walk.
func (r PurchaseLedgerRow) ToTransactionRow() TransactionRow {
	return TransactionRow{
		TransactionID:  fmt.Sprintf("P%d", r.PurchaseID),
		Kind:           KindPurchase,
		Date:           r.PurchaseDate,
		Label:          r.DisplayLabel(r.ItemName),
		CostCenterID:   r.CostCenterID,
		CostCenterName: r.CostCenterName,
		Price:          r.TotalPrice.Neg(),
		Reference:      fmt.Sprintf("/purchases/%d", r.PurchaseID),
	}
}

// FundingLedgerRow is a funding joined with its cost center's name.
type FundingLedgerRow struct {
	Funding
	CostCenterName string
}

// ToTransactionRow projects the funding as a credit row.
func (r FundingLedgerRow) ToTransactionRow() TransactionRow {
	return TransactionRow{
		TransactionID:  fmt.Sprintf("F%d", r.FundingID),
		Kind:           KindFunding,
		Date:           r.FundingDate,
		Label:          r.Name,
		CostCenterID:   r.CostCenterID,
		CostCenterName: r.CostCenterName,
		Price:          r.Credit,
		Reference:      fmt.Sprintf("/fundings/%d", r.FundingID),
	}
}
