package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portsrepo "github.com/ifd3f/DERP/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFundingRepository struct {
	pool *pgxpool.Pool
}

// newPgxFundingRepository creates a new repository for funding data.
func newPgxFundingRepository(pool *pgxpool.Pool) portsrepo.FundingRepositoryFacade {
	return &PgxFundingRepository{pool: pool}
}

// Ensure PgxFundingRepository implements portsrepo.FundingRepositoryFacade
var _ portsrepo.FundingRepositoryFacade = (*PgxFundingRepository)(nil)

const fundingRowSelect = `
	SELECT f.funding_id, f.name, f.cost_center_id, f.funding_date, f.credit,
	       f.comment, f.created_at, f.last_updated_at, c.name
	FROM fundings f
	JOIN cost_centers c ON c.cost_center_id = f.cost_center_id
`

func scanFundingRow(row pgx.Row) (*domain.FundingLedgerRow, error) {
	var r domain.FundingLedgerRow
	err := row.Scan(
		&r.FundingID,
		&r.Name,
		&r.CostCenterID,
		&r.FundingDate,
		&r.Credit,
		&r.Comment,
		&r.CreatedAt,
		&r.LastUpdatedAt,
		&r.CostCenterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan funding: %w", err)
	}
	return &r, nil
}

func collectFundingRows(rows pgx.Rows) ([]domain.FundingLedgerRow, error) {
	defer rows.Close()
	var result []domain.FundingLedgerRow
	for rows.Next() {
		r, err := scanFundingRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fundings: %w", err)
	}
	return result, nil
}

// FindFundingByID retrieves a funding joined with its cost-center name.
func (r *PgxFundingRepository) FindFundingByID(ctx context.Context, fundingID int64) (*domain.FundingLedgerRow, error) {
	query := fundingRowSelect + ` WHERE f.funding_id = $1;`
	return scanFundingRow(r.pool.QueryRow(ctx, query, fundingID))
}

// ListFundingsByCostCenter returns fundings booked directly on one cost
// center, newest funding date first.
func (r *PgxFundingRepository) ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error) {
	query := fundingRowSelect + ` WHERE f.cost_center_id = $1 ORDER BY f.funding_date DESC, f.funding_id DESC;`
	rows, err := r.pool.Query(ctx, query, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fundings of cost center %d: %w", costCenterID, err)
	}
	return collectFundingRows(rows)
}

// FindFundingRowsByPathPrefix returns every funding in the subtree whose
// root owns the given path.
func (r *PgxFundingRepository) FindFundingRowsByPathPrefix(ctx context.Context, path string) ([]domain.FundingLedgerRow, error) {
	query := fundingRowSelect + ` WHERE c.path = $1 OR c.path LIKE $2 ORDER BY f.funding_date, f.funding_id;`
	rows, err := r.pool.Query(ctx, query, path, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("failed to query fundings under path %q: %w", path, err)
	}
	return collectFundingRows(rows)
}

// SaveFunding inserts a new funding and sets the assigned id on it.
func (r *PgxFundingRepository) SaveFunding(ctx context.Context, funding *domain.Funding) error {
	query := `
		INSERT INTO fundings (name, cost_center_id, funding_date, credit, comment, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING funding_id;
	`
	err := r.pool.QueryRow(ctx, query,
		funding.Name,
		funding.CostCenterID,
		funding.FundingDate,
		funding.Credit,
		funding.Comment,
		funding.CreatedAt,
		funding.LastUpdatedAt,
	).Scan(&funding.FundingID)
	if err != nil {
		return fmt.Errorf("failed to save funding %q: %w", funding.Name, err)
	}
	return nil
}
