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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryWithTx
var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

const purchaseRowSelect = `
	SELECT p.purchase_id, p.purchase_date, p.comment, p.item_kind_id, p.quantity,
	       p.total_price, p.supplier, p.cost_center_id, p.purchaser,
	       p.created_at, p.last_updated_at, i.name, c.name
	FROM purchases p
	JOIN item_kinds i ON i.item_kind_id = p.item_kind_id
	JOIN cost_centers c ON c.cost_center_id = p.cost_center_id
`

func scanPurchaseRow(row pgx.Row) (*domain.PurchaseLedgerRow, error) {
	var r domain.PurchaseLedgerRow
	err := row.Scan(
		&r.PurchaseID,
		&r.PurchaseDate,
		&r.Comment,
		&r.ItemKindID,
		&r.Quantity,
		&r.TotalPrice,
		&r.Supplier,
		&r.CostCenterID,
		&r.Purchaser,
		&r.CreatedAt,
		&r.LastUpdatedAt,
		&r.ItemName,
		&r.CostCenterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan purchase: %w", err)
	}
	return &r, nil
}

func collectPurchaseRows(rows pgx.Rows) ([]domain.PurchaseLedgerRow, error) {
	defer rows.Close()
	var result []domain.PurchaseLedgerRow
	for rows.Next() {
		r, err := scanPurchaseRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read purchases: %w", err)
	}
	return result, nil
}

// FindPurchaseByID retrieves a purchase joined with its display names.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID int64) (*domain.PurchaseLedgerRow, error) {
	query := purchaseRowSelect + ` WHERE p.purchase_id = $1;`
	return scanPurchaseRow(r.Pool.QueryRow(ctx, query, purchaseID))
}

// ListPurchasesByCostCenter returns purchases booked directly on one cost
// center, newest purchase date first.
func (r *PgxPurchaseRepository) ListPurchasesByCostCenter(ctx context.Context, costCenterID int64) ([]domain.PurchaseLedgerRow, error) {
	query := purchaseRowSelect + ` WHERE p.cost_center_id = $1 ORDER BY p.purchase_date DESC, p.purchase_id DESC;`
	rows, err := r.Pool.Query(ctx, query, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases of cost center %d: %w", costCenterID, err)
	}
	return collectPurchaseRows(rows)
}

// FindPurchaseRowsByPathPrefix returns every purchase in the subtree whose
// root owns the given path. With the path invariant holding, "equals or
// extends the path" is exactly "is that node or a descendant".
func (r *PgxPurchaseRepository) FindPurchaseRowsByPathPrefix(ctx context.Context, path string) ([]domain.PurchaseLedgerRow, error) {
	query := purchaseRowSelect + ` WHERE c.path = $1 OR c.path LIKE $2 ORDER BY p.purchase_date, p.purchase_id;`
	rows, err := r.Pool.Query(ctx, query, path, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases under path %q: %w", path, err)
	}
	return collectPurchaseRows(rows)
}

// SavePurchaseInTx inserts a new purchase and sets the assigned id on it.
func (r *PgxPurchaseRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (purchase_date, comment, item_kind_id, quantity, total_price,
		                       supplier, cost_center_id, purchaser, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING purchase_id;
	`
	err := tx.QueryRow(ctx, query,
		purchase.PurchaseDate,
		purchase.Comment,
		purchase.ItemKindID,
		purchase.Quantity,
		purchase.TotalPrice,
		purchase.Supplier,
		purchase.CostCenterID,
		purchase.Purchaser,
		purchase.CreatedAt,
		purchase.LastUpdatedAt,
	).Scan(&purchase.PurchaseID)
	if err != nil {
		return fmt.Errorf("failed to save purchase: %w", err)
	}
	return nil
}
