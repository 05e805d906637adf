package services

import (
	"context"

	"github.com/ifd3f/DERP/internal/core/domain"
	"github.com/ifd3f/DERP/internal/dto"
)

// CostCenterSvcFacade defines the cost-center tree operations, including the
// materialized-path maintenance on create, reparent and delete.
type CostCenterSvcFacade interface {
	// CreateCostCenter allocates a new node and writes its materialized path.
	CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest) (*domain.CostCenter, error)

	// GetCostCenter retrieves a single cost center.
	GetCostCenter(ctx context.Context, costCenterID int64) (*domain.CostCenter, error)

	// ListRootCostCenters returns all parentless cost centers.
	ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error)

	// ListChildCostCenters returns the direct children of a cost center.
	ListChildCostCenters(ctx context.Context, costCenterID int64) ([]domain.CostCenter, error)

	// ReparentCostCenter moves a node under newParentID (nil detaches it to a
	// root) and rewrites the paths of the node and every descendant in one
	// transaction. Moving a node into its own subtree is ErrCycle.
	ReparentCostCenter(ctx context.Context, costCenterID int64, newParentID *int64) (*domain.CostCenter, error)

	// DeleteCostCenter removes a node. Nodes still referenced by purchases or
	// fundings are ErrProtected; children are detached to roots and re-pathed.
	DeleteCostCenter(ctx context.Context, costCenterID int64) error
}
