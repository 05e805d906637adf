package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCostCenterRepository struct {
	BaseRepository
}

// newPgxCostCenterRepository creates a new repository for cost-center data.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryWithTx {
	return &PgxCostCenterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCostCenterRepository implements portsrepo.CostCenterRepositoryWithTx
var _ portsrepo.CostCenterRepositoryWithTx = (*PgxCostCenterRepository)(nil)

const costCenterColumns = `cost_center_id, name, description, parent_id, path, created_at, last_updated_at`

func scanCostCenter(row pgx.Row) (*domain.CostCenter, error) {
	var cc domain.CostCenter
	var parentID sql.NullInt64
	err := row.Scan(
		&cc.CostCenterID,
		&cc.Name,
		&cc.Description,
		&parentID,
		&cc.Path,
		&cc.CreatedAt,
		&cc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan cost center: %w", err)
	}
	if parentID.Valid {
		cc.ParentID = &parentID.Int64
	}
	return &cc, nil
}

func collectCostCenters(rows pgx.Rows) ([]domain.CostCenter, error) {
	defer rows.Close()
	var ccs []domain.CostCenter
	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, err
		}
		ccs = append(ccs, *cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cost centers: %w", err)
	}
	return ccs, nil
}

func (r *PgxCostCenterRepository) findByID(ctx context.Context, q querier, costCenterID int64) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE cost_center_id = $1;`
	return scanCostCenter(q.QueryRow(ctx, query, costCenterID))
}

// FindCostCenterByID retrieves a cost center by its ID.
func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID int64) (*domain.CostCenter, error) {
	return r.findByID(ctx, r.Pool, costCenterID)
}

// FindCostCenterByIDInTx retrieves a cost center inside an open transaction.
func (r *PgxCostCenterRepository) FindCostCenterByIDInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (*domain.CostCenter, error) {
	return r.findByID(ctx, tx, costCenterID)
}

// FindCostCentersByPathPrefixInTx returns the subtree rooted at path. Paths
// contain only digits and '/', so the LIKE pattern needs no escaping; the
// appended '/' keeps "/1/22" out of "/1/2"'s subtree.
func (r *PgxCostCenterRepository) FindCostCentersByPathPrefixInTx(ctx context.Context, tx pgx.Tx, path string) ([]domain.CostCenter, error) {
	query := `
		SELECT ` + costCenterColumns + `
		FROM cost_centers
		WHERE path = $1 OR path LIKE $2
		ORDER BY path;
	`
	rows, err := tx.Query(ctx, query, path, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers by path prefix %q: %w", path, err)
	}
	return collectCostCenters(rows)
}

// ListRootCostCenters returns all cost centers without a parent.
func (r *PgxCostCenterRepository) ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE parent_id IS NULL ORDER BY name, cost_center_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query root cost centers: %w", err)
	}
	return collectCostCenters(rows)
}

// ListChildCostCenters returns the direct children of a cost center.
func (r *PgxCostCenterRepository) ListChildCostCenters(ctx context.Context, parentID int64) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE parent_id = $1 ORDER BY name, cost_center_id;`
	rows, err := r.Pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child cost centers of %d: %w", parentID, err)
	}
	return collectCostCenters(rows)
}

// CountLedgerReferencesInTx counts purchases and fundings booked directly on
// the cost center.
func (r *PgxCostCenterRepository) CountLedgerReferencesInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (int64, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM purchases WHERE cost_center_id = $1)
		     + (SELECT COUNT(*) FROM fundings WHERE cost_center_id = $1);
	`
	var count int64
	if err := tx.QueryRow(ctx, query, costCenterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledger references of cost center %d: %w", costCenterID, err)
	}
	return count, nil
}

// SaveCostCenterInTx inserts a new cost center and sets the assigned id on
// it. The path column starts empty; the service writes it in a follow-up
// update once the id is known.
func (r *PgxCostCenterRepository) SaveCostCenterInTx(ctx context.Context, tx pgx.Tx, cc *domain.CostCenter) error {
	query := `
		INSERT INTO cost_centers (name, description, parent_id, path, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING cost_center_id;
	`
	var parentID sql.NullInt64
	if cc.ParentID != nil {
		parentID = sql.NullInt64{Int64: *cc.ParentID, Valid: true}
	}
	err := tx.QueryRow(ctx, query,
		cc.Name,
		cc.Description,
		parentID,
		cc.Path,
		cc.CreatedAt,
		cc.LastUpdatedAt,
	).Scan(&cc.CostCenterID)
	if err != nil {
		return fmt.Errorf("failed to save cost center %q: %w", cc.Name, err)
	}
	return nil
}

// UpdateCostCenterInTx rewrites all fields of an existing cost center. It is
// update-only: an unknown id is ErrNotFound, never an insert.
func (r *PgxCostCenterRepository) UpdateCostCenterInTx(ctx context.Context, tx pgx.Tx, cc domain.CostCenter) error {
	query := `
		UPDATE cost_centers
		SET name = $2, description = $3, parent_id = $4, path = $5, last_updated_at = $6
		WHERE cost_center_id = $1;
	`
	var parentID sql.NullInt64
	if cc.ParentID != nil {
		parentID = sql.NullInt64{Int64: *cc.ParentID, Valid: true}
	}
	tag, err := tx.Exec(ctx, query,
		cc.CostCenterID,
		cc.Name,
		cc.Description,
		parentID,
		cc.Path,
		cc.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update cost center %d: %w", cc.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cost center %d: %w", cc.CostCenterID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCostCenterInTx removes a cost center.
func (r *PgxCostCenterRepository) DeleteCostCenterInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM cost_centers WHERE cost_center_id = $1;`, costCenterID)
	if err != nil {
		return fmt.Errorf("failed to delete cost center %d: %w", costCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cost center %d: %w", costCenterID, apperrors.ErrNotFound)
	}
	return nil
}
