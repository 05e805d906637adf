package repositories

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PurchaseReader defines read operations for purchase data.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase joined with its item-kind and
	// cost-center names for display.
	FindPurchaseByID(ctx context.Context, purchaseID int64) (*domain.PurchaseLedgerRow, error)

	// ListPurchasesByCostCenter returns the purchases booked directly on one
	// cost center (descendants excluded), newest purchase date first.
	ListPurchasesByCostCenter(ctx context.Context, costCenterID int64) ([]domain.PurchaseLedgerRow, error)

	// FindPurchaseRowsByPathPrefix returns every purchase whose owning cost
	// center lies in the subtree identified by path (that node included).
	FindPurchaseRowsByPathPrefix(ctx context.Context, path string) ([]domain.PurchaseLedgerRow, error)
}

// PurchaseWriter defines write operations for purchase data.
type PurchaseWriter interface {
	// SavePurchaseInTx inserts a new purchase and sets the assigned id on it.
	SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase *domain.Purchase) error
}

// PurchaseRepositoryFacade combines all purchase repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}

// PurchaseRepositoryWithTx extends the facade with transaction capabilities.
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
