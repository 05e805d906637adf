package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/ifd3f/DERP/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// costCenterService owns the materialized-path maintenance on the
// cost-center tree. All multi-node path rewrites run inside a single
// transaction: a failed cascade leaves the tree untouched. Concurrent
// reparents of overlapping subtrees are serialized only by the storage
// layer's transaction isolation.
type costCenterService struct {
	ccRepo        portsrepo.CostCenterRepositoryWithTx
	maxPathLength int
}

// NewCostCenterService creates a new cost-center service. maxPathLength
// bounds the materialized path; zero or negative selects the default.
func NewCostCenterService(ccRepo portsrepo.CostCenterRepositoryWithTx, maxPathLength int) portssvc.CostCenterSvcFacade {
	if maxPathLength <= 0 {
		maxPathLength = domain.DefaultMaxPathLength
	}
	return &costCenterService{
		ccRepo:        ccRepo,
		maxPathLength: maxPathLength,
	}
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

// CreateCostCenter allocates a new node. The insert happens without a path
// (the id the path is derived from does not exist yet), then the computed
// path is written as an update. A brand-new node has no descendants, so no
// cascade is needed; both writes share one transaction.
func (s *costCenterService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	cc := domain.CostCenter{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	cc.Touch(now)

	tx, err := s.ccRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ccRepo.Rollback(ctx, tx)

	var parentPath string
	if req.ParentID != nil {
		parent, err := s.ccRepo.FindCostCenterByIDInTx(ctx, tx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent cost center %d: %w", *req.ParentID, err)
		}
		parentPath = parent.Path
	}

	if err := s.ccRepo.SaveCostCenterInTx(ctx, tx, &cc); err != nil {
		return nil, err
	}

	cc.Path = domain.ChildPath(parentPath, cc.CostCenterID)
	if len(cc.Path) > s.maxPathLength {
		return nil, fmt.Errorf("%w: path %q exceeds %d characters", apperrors.ErrValidation, cc.Path, s.maxPathLength)
	}
	if err := s.ccRepo.UpdateCostCenterInTx(ctx, tx, cc); err != nil {
		return nil, err
	}

	if err := s.ccRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Cost center created",
		slog.Int64("cost_center_id", cc.CostCenterID),
		slog.String("path", cc.Path),
	)
	return &cc, nil
}

// GetCostCenter retrieves a single cost center.
func (s *costCenterService) GetCostCenter(ctx context.Context, costCenterID int64) (*domain.CostCenter, error) {
	return s.ccRepo.FindCostCenterByID(ctx, costCenterID)
}

// ListRootCostCenters returns all parentless cost centers.
func (s *costCenterService) ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	return s.ccRepo.ListRootCostCenters(ctx)
}

// ListChildCostCenters returns the direct children of a cost center.
func (s *costCenterService) ListChildCostCenters(ctx context.Context, costCenterID int64) ([]domain.CostCenter, error) {
	if _, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID); err != nil {
		return nil, err
	}
	return s.ccRepo.ListChildCostCenters(ctx, costCenterID)
}

// ReparentCostCenter moves a node under a new parent (nil detaches it into a
// root) and rewrites the materialized path of the node and every transitive
// descendant. The whole cascade commits or rolls back as one transaction.
func (s *costCenterService) ReparentCostCenter(ctx context.Context, costCenterID int64, newParentID *int64) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.ccRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ccRepo.Rollback(ctx, tx)

	node, err := s.ccRepo.FindCostCenterByIDInTx(ctx, tx, costCenterID)
	if err != nil {
		return nil, err
	}

	var newParentPath string
	if newParentID != nil {
		if *newParentID == node.CostCenterID {
			return nil, fmt.Errorf("%w: cost center %d cannot be its own parent", apperrors.ErrCycle, costCenterID)
		}
		parent, err := s.ccRepo.FindCostCenterByIDInTx(ctx, tx, *newParentID)
		if err != nil {
			return nil, fmt.Errorf("new parent cost center %d: %w", *newParentID, err)
		}
		// The materialized path makes the ancestry check a prefix test: the
		// proposed parent sitting inside the moving node's subtree is a cycle.
		if domain.PathWithinSubtree(parent.Path, node.Path) {
			return nil, fmt.Errorf("%w: cost center %d is a descendant of %d", apperrors.ErrCycle, *newParentID, costCenterID)
		}
		newParentPath = parent.Path
	}

	childrenOf, err := s.loadSubtreeChildrenInTx(ctx, tx, node.Path)
	if err != nil {
		return nil, err
	}

	moved := *node
	moved.ParentID = newParentID
	moved, err = s.rewriteSubtreePathsInTx(ctx, tx, moved, newParentPath, childrenOf, now)
	if err != nil {
		return nil, err
	}

	if err := s.ccRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Cost center reparented",
		slog.Int64("cost_center_id", moved.CostCenterID),
		slog.String("path", moved.Path),
	)
	return &moved, nil
}

// DeleteCostCenter removes a node. A node still referenced by purchases or
// fundings is protected. Children are not orphaned with stale paths: they
// are detached into roots and their subtrees re-pathed by the same cascade
// the reparent uses, all inside the delete transaction.
func (s *costCenterService) DeleteCostCenter(ctx context.Context, costCenterID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.ccRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ccRepo.Rollback(ctx, tx)

	node, err := s.ccRepo.FindCostCenterByIDInTx(ctx, tx, costCenterID)
	if err != nil {
		return err
	}

	refs, err := s.ccRepo.CountLedgerReferencesInTx(ctx, tx, costCenterID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: cost center %d has %d booked transactions", apperrors.ErrProtected, costCenterID, refs)
	}

	childrenOf, err := s.loadSubtreeChildrenInTx(ctx, tx, node.Path)
	if err != nil {
		return err
	}

	for _, child := range childrenOf[node.CostCenterID] {
		child.ParentID = nil
		if _, err := s.rewriteSubtreePathsInTx(ctx, tx, child, "", childrenOf, now); err != nil {
			return err
		}
	}

	if err := s.ccRepo.DeleteCostCenterInTx(ctx, tx, costCenterID); err != nil {
		return err
	}

	if err := s.ccRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Cost center deleted", slog.Int64("cost_center_id", costCenterID))
	return nil
}

// loadSubtreeChildrenInTx fetches the subtree rooted at path in one prefix
// scan and indexes it as a parent-id -> children map for the cascade walk.
func (s *costCenterService) loadSubtreeChildrenInTx(ctx context.Context, tx pgx.Tx, path string) (map[int64][]domain.CostCenter, error) {
	subtree, err := s.ccRepo.FindCostCentersByPathPrefixInTx(ctx, tx, path)
	if err != nil {
		return nil, err
	}
	childrenOf := make(map[int64][]domain.CostCenter, len(subtree))
	for _, cc := range subtree {
		if cc.ParentID == nil {
			continue
		}
		childrenOf[*cc.ParentID] = append(childrenOf[*cc.ParentID], cc)
	}
	return childrenOf, nil
}

// rewriteSubtreePathsInTx recomputes and persists the path of root and every
// node below it, carrying the freshly computed parent path down an explicit
// stack (no recursion, so depth is bounded deterministically). Returns the
// updated root.
func (s *costCenterService) rewriteSubtreePathsInTx(ctx context.Context, tx pgx.Tx, root domain.CostCenter, parentPath string, childrenOf map[int64][]domain.CostCenter, now time.Time) (domain.CostCenter, error) {
	type frame struct {
		cc         domain.CostCenter
		parentPath string
	}

	updatedRoot := root
	stack := []frame{{cc: root, parentPath: parentPath}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.cc.Path = domain.ChildPath(f.parentPath, f.cc.CostCenterID)
		if len(f.cc.Path) > s.maxPathLength {
			return root, fmt.Errorf("%w: path %q exceeds %d characters", apperrors.ErrValidation, f.cc.Path, s.maxPathLength)
		}
		f.cc.LastUpdatedAt = now
		if err := s.ccRepo.UpdateCostCenterInTx(ctx, tx, f.cc); err != nil {
			return root, err
		}
		if f.cc.CostCenterID == root.CostCenterID {
			updatedRoot = f.cc
		}

		for _, child := range childrenOf[f.cc.CostCenterID] {
			stack = append(stack, frame{cc: child, parentPath: f.cc.Path})
		}
	}
	return updatedRoot, nil
}
