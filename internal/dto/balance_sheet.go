package dto

import (
	"time"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRowResponse is one line of a balance sheet.
type TransactionRowResponse struct {
	TransactionID  string          `json:"transactionID"`
	Kind           string          `json:"kind"`
	Date           time.Time       `json:"date"`
	Label          string          `json:"label"`
	CostCenterID   int64           `json:"costCenterID"`
	CostCenterName string          `json:"costCenterName"`
	Price          decimal.Decimal `json:"price"`
	Reference      string          `json:"reference"`
	Balance        decimal.Decimal `json:"balance"`
}

// BalanceSheetResponse is the full balance sheet of a cost-center subtree.
// TotalBalance equals the Balance of the last row, or zero for an empty sheet.
type BalanceSheetResponse struct {
	CostCenterID int64                    `json:"costCenterID"`
	Rows         []TransactionRowResponse `json:"rows"`
	TotalBalance decimal.Decimal          `json:"totalBalance"`
}

// ToBalanceSheetResponse converts balance-sheet rows to the response DTO.
func ToBalanceSheetResponse(costCenterID int64, rows []domain.TransactionRow) BalanceSheetResponse {
	res := BalanceSheetResponse{
		CostCenterID: costCenterID,
		Rows:         make([]TransactionRowResponse, len(rows)),
		TotalBalance: decimal.Zero,
	}
	for i, row := range rows {
		res.Rows[i] = TransactionRowResponse{
			TransactionID:  row.TransactionID,
			Kind:           string(row.Kind),
			Date:           row.Date,
			Label:          row.Label,
			CostCenterID:   row.CostCenterID,
			CostCenterName: row.CostCenterName,
			Price:          row.Price,
			Reference:      row.Reference,
			Balance:        row.Balance,
		}
	}
	if len(rows) > 0 {
		res.TotalBalance = rows[len(rows)-1].Balance
	}
	return res
}
