package repositories

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CostCenterReader defines read operations for cost-center data.
type CostCenterReader interface {
	// FindCostCenterByID retrieves a cost center by id.
	FindCostCenterByID(ctx context.Context, costCenterID int64) (*domain.CostCenter, error)

	// FindCostCenterByIDInTx is FindCostCenterByID inside an open transaction,
	// so cascades read the tree state they are about to rewrite.
	FindCostCenterByIDInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (*domain.CostCenter, error)

	// FindCostCentersByPathPrefixInTx returns the cost center owning the given
	// path together with all of its descendants. The '/' boundary is part of
	// the match: "/1/2" must not capture "/1/22".
	FindCostCentersByPathPrefixInTx(ctx context.Context, tx pgx.Tx, path string) ([]domain.CostCenter, error)

	// ListRootCostCenters returns all cost centers without a parent.
	ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error)

	// ListChildCostCenters returns the direct children of a cost center.
	ListChildCostCenters(ctx context.Context, parentID int64) ([]domain.CostCenter, error)

	// CountLedgerReferencesInTx counts purchases and fundings still attached
	// to the cost center. A non-zero count protects it from deletion.
	CountLedgerReferencesInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (int64, error)
}

// CostCenterWriter defines write operations for cost-center data. All writes
// happen inside a caller-owned transaction: path maintenance is never a
// single-statement affair.
type CostCenterWriter interface {
	// SaveCostCenterInTx inserts a new cost center and sets the
	// store-assigned id on it. The path is written separately, since the id
	// it is derived from does not exist before the insert.
	SaveCostCenterInTx(ctx context.Context, tx pgx.Tx, cc *domain.CostCenter) error

	// UpdateCostCenterInTx rewrites all fields of an existing cost center.
	// It must never create a record; updating an unknown id is ErrNotFound.
	UpdateCostCenterInTx(ctx context.Context, tx pgx.Tx, cc domain.CostCenter) error

	// DeleteCostCenterInTx removes a cost center.
	DeleteCostCenterInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) error
}

// CostCenterRepositoryFacade combines all cost-center repository interfaces.
type CostCenterRepositoryFacade interface {
	CostCenterReader
	CostCenterWriter
}

// CostCenterRepositoryWithTx extends the facade with transaction capabilities.
type CostCenterRepositoryWithTx interface {
	CostCenterRepositoryFacade
	TransactionManager
}
